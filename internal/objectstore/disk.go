package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var ErrInvalidKey = errors.New("invalid object key")

// DiskStore сохраняет файлы в локальный каталог, отдаваемый как статика.
type DiskStore struct {
	dir        string
	publicPath string
}

func NewDiskStore(dir, publicPath string) *DiskStore {
	return &DiskStore{dir: dir, publicPath: strings.TrimRight(publicPath, "/")}
}

func (d *DiskStore) Name() string { return "local" }

func (d *DiskStore) Put(_ context.Context, r io.Reader, filename, folder string) (*Object, error) {
	folder = sanitize(folder)
	target := filepath.Join(d.dir, folder)
	if err := os.MkdirAll(target, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitize(filepath.Base(filename)))
	if len(name) > 255 {
		name = fmt.Sprintf("%d%s", time.Now().UnixNano(), strings.ToLower(filepath.Ext(filename)))
	}

	f, err := os.Create(filepath.Join(target, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	key := path.Join(folder, name)
	return &Object{URL: d.publicPath + "/" + key, Key: key}, nil
}

// Delete удаляет файл. Отсутствие файла ошибкой не считается.
func (d *DiskStore) Delete(_ context.Context, key string) error {
	full, err := d.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// KeyFromURL вытаскивает ключ из публичного URL файла
func (d *DiskStore) KeyFromURL(u string) (string, bool) {
	i := strings.Index(u, d.publicPath+"/")
	if i < 0 {
		return "", false
	}
	return u[i+len(d.publicPath)+1:], true
}

func (d *DiskStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", ErrInvalidKey
	}
	return filepath.Join(d.dir, clean), nil
}

func sanitize(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	s = strings.ReplaceAll(s, "..", "")
	s = strings.ReplaceAll(s, ":", "_")
	return strings.Trim(s, "/\\")
}
