package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/linemk/shop-dashboard/internal/cache"
	"github.com/linemk/shop-dashboard/internal/config"
	"github.com/linemk/shop-dashboard/internal/events"
	"github.com/linemk/shop-dashboard/internal/objectstore"
	"github.com/linemk/shop-dashboard/internal/service"
	"github.com/linemk/shop-dashboard/internal/storage"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	DB        *sql.DB
	Redis     *redis.Client
	Publisher events.Publisher
	Stores    *storage.Stores
	Router    http.Handler
}

// NewApp собирает приложение. Недоступная БД не считается ошибкой:
// в этом случае данные живут в памяти процесса.
func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: log,
	}

	app.DB = openDB(ctx, log, cfg.Database)
	app.Stores = storage.NewStores(log, app.DB)

	products := app.Stores.Products
	if rdb := cache.Connect(ctx, log, cfg.Redis.Addr, cfg.Redis.Password); rdb != nil {
		app.Redis = rdb
		products = cache.NewProductCache(log, products, rdb, cfg.Redis.TTL)
	}

	app.Publisher = events.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		app.Publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Info("publishing order events to kafka",
			slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.Topic))
	}

	chain, err := newObjectChain(log, cfg.Storage)
	if err != nil {
		app.Close()
		return nil, err
	}

	authService := service.NewAuthService(log, cfg.Auth.AdminUsername, cfg.Auth.AdminPassHash, cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if cfg.Auth.Secret != "" && !authService.Enabled() {
		log.Warn("JWT_SECRET is set but ADMIN_PASSWORD_HASH is empty: admin login is impossible")
	}

	app.Router = NewRouter(log, RouterConfig{
		PingMessage:    cfg.PingMessage,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		JWTSecret:      cfg.Auth.Secret,
		UploadDir:      cfg.Storage.UploadDir,
		PublicPath:     cfg.Storage.PublicPath,
		MaxUploadSize:  cfg.Storage.MaxUploadSize,
	}, Services{
		Customers:  service.NewCustomerService(log, app.Stores.Customers),
		Products:   service.NewProductService(log, products, app.Stores.Categories),
		Orders:     service.NewOrderService(log, app.Stores.Orders, products, app.Stores.Customers, app.Publisher, cfg.Orders.Fee()),
		Categories: service.NewCategoryService(log, app.Stores.Categories),
		Uploads:    service.NewUploadService(log, chain, cfg.Storage.MaxUploadSize, cfg.Storage.Folder),
		Auth:       authService,
	})

	return app, nil
}

// openDB возвращает nil, если БД не настроена или не отвечает
func openDB(ctx context.Context, log *slog.Logger, cfg config.DatabaseConfig) *sql.DB {
	if !cfg.Configured() {
		log.Warn("database is not configured, using in-memory storage")
		return nil
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Warn("failed to open database, using in-memory storage", slog.Any("error", err))
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Warn("database is unreachable, using in-memory storage", slog.Any("error", err))
		_ = db.Close()
		return nil
	}

	log.Info("database connected")
	return db
}

// newObjectChain: Cloudinary (если задан CLOUDINARY_URL), затем локальный диск
func newObjectChain(log *slog.Logger, cfg config.StorageConfig) (*objectstore.Chain, error) {
	var stores []objectstore.Store
	if cfg.CloudinaryURL != "" {
		cld, err := objectstore.NewCloudinaryStore(cfg.CloudinaryURL)
		if err != nil {
			return nil, fmt.Errorf("failed to init cloudinary: %w", err)
		}
		stores = append(stores, cld)
		log.Info("uploads go to cloudinary with local fallback")
	}
	stores = append(stores, objectstore.NewDiskStore(cfg.UploadDir, cfg.PublicPath))
	return objectstore.NewChain(log, stores...), nil
}

// Close освобождает соединения приложения
func (a *App) Close() error {
	var errs []error
	if a.Publisher != nil {
		errs = append(errs, a.Publisher.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
