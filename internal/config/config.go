package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Допустимые значения STORAGE_BACKEND
const (
	BackendSQLX   = "sqlx"
	BackendGorm   = "gorm"
	BackendMemory = "memory"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL       string `env:"DATABASE_URL"`
	StorageBackend    string `env:"STORAGE_BACKEND" envDefault:"sqlx"`
	MigrationsEnabled bool   `env:"MIGRATIONS_ENABLED" envDefault:"true"`

	ServerPort      string        `env:"SERVER_PORT" envDefault:"8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// BcryptCost 0 означает bcrypt.DefaultCost
	BcryptCost int `env:"BCRYPT_COST"`

	// Архив задач в MinIO, пустой MINIO_ENDPOINT отключает архив
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME" envDefault:"task-archive"`
	MinioRegion          string `env:"MINIO_REGION" envDefault:"us-east-1"`

	// События задач, пустой RABBITMQ_URL отключает публикацию
	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"task_events"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность параметров.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendSQLX, BackendGorm:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL обязателен для STORAGE_BACKEND=%s", c.StorageBackend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("неизвестный STORAGE_BACKEND: %q (используйте sqlx, gorm или memory)", c.StorageBackend)
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST должен быть в диапазоне [%d, %d], получено %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	return nil
}

// RabbitMQEnabled сообщает, настроена ли публикация событий.
func (c *Config) RabbitMQEnabled() bool {
	return c.RabbitMQ.RabbitMQURL != ""
}

// ArchiveEnabled сообщает, настроен ли архив в MinIO.
func (c *Config) ArchiveEnabled() bool {
	return c.MinioEndpoint != ""
}
