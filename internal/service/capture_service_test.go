package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "fotobox/internal/errors"
	"fotobox/internal/model"
	"fotobox/internal/storage"
)

// MockPhotoRepository is a mock implementation of repository.PhotoRepository.
type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) Create(ctx context.Context, photo *model.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockPhotoRepository) ListByUserID(ctx context.Context, userID uint) ([]model.Photo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Photo), args.Error(1)
}

// pngDataURI builds a valid data-URI payload around a tiny in-memory PNG.
func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newTestStore(t *testing.T) *storage.DiskStore {
	t.Helper()
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCaptureService_Capture(t *testing.T) {
	bob := &model.User{ID: 7, Username: "bob", Email: "bob@example.com"}

	t.Run("stores frame and appends photo row", func(t *testing.T) {
		store := newTestStore(t)

		mockPhotos := new(MockPhotoRepository)
		mockPhotos.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Photo) bool {
			return p.UserID == 7 && strings.HasPrefix(p.Filename, "bob_")
		})).Return(nil).Once()

		service := NewCaptureService(mockPhotos, store, nil).(*captureService)
		service.now = func() time.Time {
			return time.Date(2024, 5, 17, 9, 30, 15, 0, time.UTC)
		}

		filename, err := service.Capture(context.Background(), bob, pngDataURI(t))
		require.NoError(t, err)
		assert.Equal(t, "bob_20240517_093015.png", filename)

		// The stored file must itself be a well-formed PNG.
		data, err := os.ReadFile(filepath.Join(store.Dir(), filename))
		require.NoError(t, err)
		_, err = png.Decode(bytes.NewReader(data))
		assert.NoError(t, err)

		mockPhotos.AssertExpectations(t)
	})

	t.Run("removes file when row insert fails", func(t *testing.T) {
		store := newTestStore(t)

		mockPhotos := new(MockPhotoRepository)
		mockPhotos.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

		service := NewCaptureService(mockPhotos, store, nil)
		_, err := service.Capture(context.Background(), bob, pngDataURI(t))
		require.Error(t, err)

		entries, err := os.ReadDir(store.Dir())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("malformed payloads", func(t *testing.T) {
		tests := []struct {
			name    string
			payload string
		}{
			{name: "missing data-URI prefix", payload: "iVBORw0KGgo="},
			{name: "not base64", payload: "data:image/png;base64,!!!not-base64!!!"},
			{name: "base64 but not an image", payload: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("hello"))},
			{name: "empty", payload: ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := newTestStore(t)
				mockPhotos := new(MockPhotoRepository)

				service := NewCaptureService(mockPhotos, store, nil)
				_, err := service.Capture(context.Background(), bob, tt.payload)

				assert.ErrorIs(t, err, apperrors.ErrMalformedImage)
				mockPhotos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestCaptureService_Gallery(t *testing.T) {
	bob := &model.User{ID: 7, Username: "bob"}

	t.Run("empty gallery", func(t *testing.T) {
		mockPhotos := new(MockPhotoRepository)
		mockPhotos.On("ListByUserID", mock.Anything, uint(7)).Return([]model.Photo{}, nil)

		service := NewCaptureService(mockPhotos, newTestStore(t), nil)
		urls, err := service.Gallery(context.Background(), bob)

		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("urls in insertion order", func(t *testing.T) {
		mockPhotos := new(MockPhotoRepository)
		mockPhotos.On("ListByUserID", mock.Anything, uint(7)).Return([]model.Photo{
			{ID: 1, Filename: "bob_20240517_093015.png", UserID: 7},
			{ID: 2, Filename: "bob_20240517_093016.png", UserID: 7},
			{ID: 3, Filename: "bob_20240517_093020.png", UserID: 7},
		}, nil)

		service := NewCaptureService(mockPhotos, newTestStore(t), nil)
		urls, err := service.Gallery(context.Background(), bob)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"/capturas/bob_20240517_093015.png",
			"/capturas/bob_20240517_093016.png",
			"/capturas/bob_20240517_093020.png",
		}, urls)
	})
}
