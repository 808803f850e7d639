package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Env         string           `yaml:"env" env:"APP_ENV" env-default:"local"` // environment
	HTTPServer  HTTPServerConfig `yaml:"http_server"`
	Database    DatabaseConfig   `yaml:"database"`
	Redis       RedisConfig      `yaml:"redis"`
	Storage     StorageConfig    `yaml:"storage"`
	Kafka       KafkaConfig      `yaml:"kafka"`
	Orders      OrdersConfig     `yaml:"orders"`
	Auth        AuthConfig       `yaml:"auth"`
	CORS        CORSConfig       `yaml:"cors"`
	PingMessage string           `yaml:"ping_message" env:"PING_MESSAGE"`
	Migrations  MigrationsConfig `yaml:"migrations"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// DatabaseConfig структура по работе с БД.
// Пустое имя базы и пустой DATABASE_URL означают, что БД не настроена.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"-" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	URL      string `yaml:"-" env:"DATABASE_URL"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"-" env:"REDIS_PASSWORD"`
	TTL      time.Duration `yaml:"ttl" env-default:"5m"`
}

// StorageConfig — загрузка изображений: Cloudinary, если задан CLOUDINARY_URL, иначе диск
type StorageConfig struct {
	UploadDir     string `yaml:"upload_dir" env:"UPLOAD_DIR" env-default:"./uploads"`
	PublicPath    string `yaml:"public_path" env-default:"/uploads"`
	MaxUploadSize int64  `yaml:"max_upload_size" env-default:"5242880"`
	Folder        string `yaml:"folder" env-default:"products"`
	CloudinaryURL string `yaml:"-" env:"CLOUDINARY_URL"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"orders.events"`
}

// OrdersConfig: стоимость доставки читается строкой, чтобы не терять точность
type OrdersConfig struct {
	DeliveryFee string `yaml:"delivery_fee" env:"DELIVERY_FEE" env-default:"0"`
}

// Fee возвращает стоимость доставки. Значение проверяется в Load.
func (o OrdersConfig) Fee() decimal.Decimal {
	fee, err := decimal.NewFromString(o.DeliveryFee)
	if err != nil {
		return decimal.Zero
	}
	return fee
}

// AuthConfig настройка jwt. Без JWT_SECRET админские маршруты открыты.
type AuthConfig struct {
	Secret        string        `yaml:"-" env:"JWT_SECRET"`
	TokenTTL      time.Duration `yaml:"token_ttl" env-default:"1h"`
	AdminUsername string        `yaml:"admin_username" env:"ADMIN_USERNAME" env-default:"admin"`
	AdminPassHash string        `yaml:"-" env:"ADMIN_PASSWORD_HASH"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

// Configured сообщает, задано ли подключение к БД
func (d DatabaseConfig) Configured() bool {
	return d.URL != "" || d.Name != ""
}

// DSN возвращает строку подключения; DATABASE_URL имеет приоритет
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// MustLoad - если не загружаем - паникуем
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	if f := flag.Lookup("config"); f != nil {
		path = f.Value.String()
	} else {
		flag.StringVar(&path, "config", "", "path to config file")
		flag.Parse()
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("can't read config file %s: %v", configPath, err)
	}
	return cfg
}

// Load читает .env (если есть), затем yaml и переменные окружения
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	fee, err := decimal.NewFromString(cfg.Orders.DeliveryFee)
	if err != nil {
		return nil, fmt.Errorf("invalid orders.delivery_fee %q: %w", cfg.Orders.DeliveryFee, err)
	}
	if fee.IsNegative() {
		return nil, errors.New("orders.delivery_fee must not be negative")
	}
	return &cfg, nil
}
