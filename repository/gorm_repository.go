package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/Mathew-2006/school-website/models"
	"gorm.io/gorm"
)

type GORMRepository struct {
	db *gorm.DB
}

func NewGORMRepository(db *gorm.DB) *GORMRepository {
	return &GORMRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GORMRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Document{},
	)
}

// User operations
func (r *GORMRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		slog.Error("Failed to create user", "error", err)
		return err
	}
	slog.Info("User created", "user_id", user.ID, "email", user.Email)
	return nil
}

func (r *GORMRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		slog.Error("Failed to get user by email", "error", err, "email", email)
		return nil, err
	}
	return &user, nil
}

func (r *GORMRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		slog.Error("Failed to get user by ID", "error", err, "user_id", id)
		return nil, err
	}
	return &user, nil
}

func (r *GORMRepository) UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("password", hashedPassword)
	if result.Error != nil {
		slog.Error("Failed to update user password", "error", result.Error, "user_id", userID)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	slog.Info("User password updated", "user_id", userID)
	return nil
}

// Token operations
func (r *GORMRepository) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		slog.Error("Failed to create refresh token", "error", err)
		return err
	}
	return nil
}

func (r *GORMRepository) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ? AND expires_at > ?", token, time.Now()).First(&refreshToken).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		slog.Error("Failed to get refresh token", "error", err)
		return nil, err
	}
	return &refreshToken, nil
}

func (r *GORMRepository) DeleteAllUserTokens(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
		slog.Error("Failed to delete user refresh tokens", "error", err, "user_id", userID)
		return err
	}
	return nil
}
