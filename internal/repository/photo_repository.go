package repository

import (
	"context"

	"gorm.io/gorm"

	"fotobox/internal/model"
)

// PhotoRepository defines photo persistence operations.
type PhotoRepository interface {
	Create(ctx context.Context, photo *model.Photo) error
	ListByUserID(ctx context.Context, userID uint) ([]model.Photo, error)
}

type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository.
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

// Create appends a photo row.
func (r *photoRepository) Create(ctx context.Context, photo *model.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

// ListByUserID returns a user's photos in insertion order.
func (r *photoRepository) ListByUserID(ctx context.Context, userID uint) ([]model.Photo, error) {
	var photos []model.Photo
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}
