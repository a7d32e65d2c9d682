package migrations

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// Apply применяет все доступные миграции к бд
func Apply(databaseURL string, logger *slog.Logger) error {
	start := time.Now()

	source, err := iofs.New(files, "sql")
	if err != nil {
		return fmt.Errorf("не удалось открыть встроенные миграции: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("не удалось создать экземпляр мигратора: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("failed to close migrator", "source_error", srcErr, "database_error", dbErr)
		}
	}()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("migrations are up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("ошибка выполнения миграций: %w", err)
	}

	version, _, _ := m.Version()
	logger.Info("migrations applied",
		"version", version,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
