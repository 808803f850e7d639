package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/linemk/shop-dashboard/internal/objectstore"
)

var allowedImageExt = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// ObjectStore — то, что сервису нужно от цепочки хранилищ
type ObjectStore interface {
	Put(ctx context.Context, r io.ReadSeeker, filename, folder string) (*objectstore.Object, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(u string) (string, bool)
}

type UploadService interface {
	Upload(ctx context.Context, r io.ReadSeeker, filename string, size int64, folder string) (*objectstore.Object, error)
	// Delete удаляет объект по ключу; если ключ пуст, ключ выводится из url
	Delete(ctx context.Context, key, url string) error
}

type uploadService struct {
	log           *slog.Logger
	store         ObjectStore
	maxSize       int64
	defaultFolder string
}

func NewUploadService(log *slog.Logger, store ObjectStore, maxSize int64, defaultFolder string) UploadService {
	return &uploadService{log: log, store: store, maxSize: maxSize, defaultFolder: defaultFolder}
}

func (s *uploadService) Upload(ctx context.Context, r io.ReadSeeker, filename string, size int64, folder string) (*objectstore.Object, error) {
	const op = "service.UploadService.Upload"
	log := s.log.With(slog.String("op", op), slog.String("filename", filename))

	if filename == "" {
		return nil, fmt.Errorf("%s: %w: file name is required", op, ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedImageExt[ext]; !ok {
		return nil, fmt.Errorf("%s: %w: unsupported file type %q", op, ErrInvalidInput, ext)
	}
	if s.maxSize > 0 && size > s.maxSize {
		return nil, fmt.Errorf("%s: %w: %d bytes, limit %d", op, ErrFileTooLarge, size, s.maxSize)
	}
	if folder = strings.TrimSpace(folder); folder == "" {
		folder = s.defaultFolder
	}

	obj, err := s.store.Put(ctx, r, filename, folder)
	if err != nil {
		log.Error("failed to store upload", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("file uploaded", slog.String("store", obj.Store), slog.String("key", obj.Key))
	return obj, nil
}

func (s *uploadService) Delete(ctx context.Context, key, url string) error {
	const op = "service.UploadService.Delete"

	key = strings.TrimSpace(key)
	if key == "" {
		url = strings.TrimSpace(url)
		if url == "" {
			return fmt.Errorf("%s: %w: key or url is required", op, ErrInvalidInput)
		}
		var ok bool
		if key, ok = s.store.KeyFromURL(url); !ok {
			return fmt.Errorf("%s: %w: url does not belong to any store", op, ErrInvalidInput)
		}
	}

	if err := s.store.Delete(ctx, key); err != nil {
		if errors.Is(err, objectstore.ErrInvalidKey) || errors.Is(err, objectstore.ErrUnknownStore) {
			return fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
