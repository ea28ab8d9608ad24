package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"regexp"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	"fotobox/internal/cache"
	apperrors "fotobox/internal/errors"
	"fotobox/internal/model"
	"fotobox/internal/repository"
	"fotobox/internal/storage"
)

const (
	galleryCacheTTL = 5 * time.Minute
	// PublicPathPrefix is where stored frames are served from.
	PublicPathPrefix = "/capturas/"
)

// dataURIPrefix matches the media-type marker of a base64 image data URI.
var dataURIPrefix = regexp.MustCompile(`^data:image/[A-Za-z0-9.+-]+;base64,`)

// CaptureService stores uploaded webcam frames and lists a user's gallery.
type CaptureService interface {
	Capture(ctx context.Context, user *model.User, dataURI string) (string, error)
	Gallery(ctx context.Context, user *model.User) ([]string, error)
}

type captureService struct {
	photos repository.PhotoRepository
	store  storage.FrameStore
	cache  *cache.Client
	now    func() time.Time
}

// NewCaptureService creates a new capture service.
func NewCaptureService(photos repository.PhotoRepository, store storage.FrameStore, cache *cache.Client) CaptureService {
	return &captureService{
		photos: photos,
		store:  store,
		cache:  cache,
		now:    time.Now,
	}
}

func (s *captureService) galleryKey(userID uint) string {
	return fmt.Sprintf("gallery:%d", userID)
}

// Capture decodes a data-URI image payload, validates it as a raster image,
// stores it as a PNG named {username}_{UTC timestamp}.png and appends a Photo
// row for the user. Any payload defect is reported as ErrMalformedImage.
func (s *captureService) Capture(ctx context.Context, user *model.User, dataURI string) (string, error) {
	loc := dataURIPrefix.FindStringIndex(dataURI)
	if loc == nil {
		return "", apperrors.ErrMalformedImage
	}

	raw, err := base64.StdEncoding.DecodeString(dataURI[loc[1]:])
	if err != nil {
		return "", apperrors.ErrMalformedImage
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", apperrors.ErrMalformedImage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	// Second granularity; rapid captures by the same user within one second
	// overwrite each other.
	filename := fmt.Sprintf("%s_%s.png", user.Username, s.now().UTC().Format("20060102_150405"))
	if err := s.store.Save(filename, buf.Bytes()); err != nil {
		return "", fmt.Errorf("save frame: %w", err)
	}

	photo := &model.Photo{Filename: filename, UserID: user.ID}
	if err := s.photos.Create(ctx, photo); err != nil {
		// Keep storage and rows consistent when the insert fails.
		_ = s.store.Remove(filename)
		return "", fmt.Errorf("create photo: %w", err)
	}

	_ = s.cache.Delete(ctx, s.galleryKey(user.ID))

	return filename, nil
}

// Gallery returns the public URLs of a user's frames in insertion order,
// serving from the cache when possible.
func (s *captureService) Gallery(ctx context.Context, user *model.User) ([]string, error) {
	if data, _ := s.cache.Get(ctx, s.galleryKey(user.ID)); data != nil {
		var cached []string
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	photos, err := s.photos.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}

	urls := make([]string, 0, len(photos))
	for _, photo := range photos {
		urls = append(urls, PublicPathPrefix+photo.Filename)
	}

	if payload, err := json.Marshal(urls); err == nil {
		_ = s.cache.Set(ctx, s.galleryKey(user.ID), payload, galleryCacheTTL)
	}

	return urls, nil
}
