// Package postgres содержит реализацию хранилища на GORM (STORAGE_BACKEND=gorm).
// Схема создаётся теми же миграциями golang-migrate, AutoMigrate не используется.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/core/ports"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var _ ports.Storage = (*GormStorage)(nil)

// GormStorage реализует ports.Storage с использованием GORM
type GormStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open подключается к PostgreSQL через GORM.
// TranslateError включает перевод ошибок драйвера в gorm.ErrDuplicatedKey и gorm.ErrForeignKeyViolated.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*GormStorage, error) {
	start := time.Now()

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия соединения с БД через GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm: получение *sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	logger.Info("GORM connection established successfully", "duration_ms", time.Since(start).Milliseconds())
	return NewGormStorage(db, logger), nil
}

// NewGormStorage создает новый экземпляр GormStorage
func NewGormStorage(db *gorm.DB, logger *slog.Logger) *GormStorage {
	return &GormStorage{db: db, logger: logger}
}

func (s *GormStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
