package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect подключается к redis. При пустом адресе или неудачном ping
// возвращает nil — приложение работает без кэша.
func Connect(ctx context.Context, log *slog.Logger, addr, password string) *redis.Client {
	if addr == "" {
		log.Info("redis address not configured, running without cache")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DialTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis connection failed, running without cache", slog.Any("error", err))
		_ = rdb.Close()
		return nil
	}

	log.Info("redis connected", slog.String("addr", addr))
	return rdb
}
