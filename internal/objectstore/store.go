package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var ErrUnknownStore = errors.New("unknown object store")

// Object — сохранённый файл. Key передаётся клиенту и используется для удаления.
type Object struct {
	URL   string `json:"url"`
	Key   string `json:"key"`
	Store string `json:"store"`
}

// Store — хранилище загружаемых файлов
type Store interface {
	Name() string
	Put(ctx context.Context, r io.Reader, filename, folder string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// Chain пробует хранилища по порядку: сначала облачное, последним — локальный диск.
// Ключи объектов префиксуются именем хранилища ("<store>:<key>").
type Chain struct {
	log    *slog.Logger
	stores []Store
}

func NewChain(log *slog.Logger, stores ...Store) *Chain {
	return &Chain{log: log, stores: stores}
}

// Put сохраняет файл в первое хранилище, которое справилось.
// r должен поддерживать Seek, чтобы повторить чтение для следующего хранилища.
func (c *Chain) Put(ctx context.Context, r io.ReadSeeker, filename, folder string) (*Object, error) {
	const op = "objectstore.Chain.Put"
	if len(c.stores) == 0 {
		return nil, fmt.Errorf("%s: no stores configured", op)
	}

	var lastErr error
	for _, s := range c.stores {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%s: rewind upload: %w", op, err)
		}
		obj, err := s.Put(ctx, r, filename, folder)
		if err != nil {
			c.log.Warn("object store failed, trying next",
				slog.String("op", op), slog.String("store", s.Name()), slog.Any("error", err))
			lastErr = err
			continue
		}
		obj.Store = s.Name()
		obj.Key = s.Name() + ":" + obj.Key
		return obj, nil
	}
	return nil, fmt.Errorf("%s: all stores failed: %w", op, lastErr)
}

// Delete направляет удаление в хранилище из префикса ключа.
// Ключ без префикса считается ключом последнего (локального) хранилища.
func (c *Chain) Delete(ctx context.Context, key string) error {
	if len(c.stores) == 0 {
		return ErrUnknownStore
	}
	name, rest, ok := strings.Cut(key, ":")
	if !ok {
		return c.stores[len(c.stores)-1].Delete(ctx, key)
	}
	for _, s := range c.stores {
		if s.Name() == name {
			return s.Delete(ctx, rest)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownStore, name)
}

type urlResolver interface {
	KeyFromURL(u string) (string, bool)
}

// KeyFromURL находит хранилище, которому принадлежит URL, и возвращает полный ключ
func (c *Chain) KeyFromURL(u string) (string, bool) {
	for _, s := range c.stores {
		r, ok := s.(urlResolver)
		if !ok {
			continue
		}
		if key, ok := r.KeyFromURL(u); ok {
			return s.Name() + ":" + key, true
		}
	}
	return "", false
}
