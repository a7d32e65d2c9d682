package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/GoArmGo/TasksAPI/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateUserWithToken создаёт пользователя и токен в одной транзакции GORM
func (s *GormStorage) CreateUserWithToken(ctx context.Context, user *domain.User, tokenKey string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		token := domain.Token{Key: tokenKey, UserID: user.ID, CreatedAt: user.CreatedAt}
		return tx.Create(&token).Error
	})
	if err != nil {
		user.ID = 0
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("username already exists", "username", user.Username)
			return domain.ErrAlreadyExists
		}
		s.logger.Error("failed to create user", "username", user.Username, "error", err)
		return fmt.Errorf("ошибка при создании пользователя с GORM: %w", err)
	}

	s.logger.Info("user created successfully", "user_id", user.ID)
	return nil
}

func (s *GormStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя с GORM: %w", err)
	}
	return &user, nil
}

func (s *GormStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("ошибка при получении пользователей с GORM: %w", err)
	}
	return users, nil
}

// GetOrCreateToken использует ON CONFLICT (user_id) DO NOTHING, затем читает токен
func (s *GormStorage) GetOrCreateToken(ctx context.Context, userID int64, candidateKey string) (*domain.Token, error) {
	db := s.db.WithContext(ctx)

	candidate := domain.Token{Key: candidateKey, UserID: userID, CreatedAt: nowUTC()}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании токена с GORM: %w", err)
	}

	var token domain.Token
	if err := db.Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, fmt.Errorf("ошибка при чтении токена с GORM: %w", err)
	}
	return &token, nil
}

func (s *GormStorage) GetUserByToken(ctx context.Context, key string) (*domain.User, error) {
	var user domain.User
	db := s.db.WithContext(ctx)
	owner := db.Model(&domain.Token{}).Select("user_id").Where("key = ?", key)
	err := db.Where("id = (?)", owner).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при проверке токена с GORM: %w", err)
	}
	return &user, nil
}
