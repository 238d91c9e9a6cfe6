package repository

import (
	"context"

	"animehub/internal/http-api/models"

	"gorm.io/gorm"
)

// Repositories for the two single-use credential-recovery token tables.
// Both follow the same lifecycle: DeleteByUser before issuing a new token,
// Delete on use or on expiry detection.

type VerificationTokenRepository interface {
	Create(ctx context.Context, t *models.EmailVerificationToken) error
	FindByToken(ctx context.Context, token string) (*models.EmailVerificationToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type verificationTokenRepository struct {
	db *gorm.DB
}

func NewVerificationTokenRepository(db *gorm.DB) VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

func (r *verificationTokenRepository) Create(ctx context.Context, t *models.EmailVerificationToken) error {
	return translateError(r.db.WithContext(ctx).Create(t).Error)
}

func (r *verificationTokenRepository) FindByToken(ctx context.Context, token string) (*models.EmailVerificationToken, error) {
	var t models.EmailVerificationToken
	if err := r.db.WithContext(ctx).First(&t, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *verificationTokenRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&models.EmailVerificationToken{}, "token = ?", token).Error
}

func (r *verificationTokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&models.EmailVerificationToken{}, "user_id = ?", userID).Error
}

type ResetTokenRepository interface {
	Create(ctx context.Context, t *models.PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type resetTokenRepository struct {
	db *gorm.DB
}

func NewResetTokenRepository(db *gorm.DB) ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

func (r *resetTokenRepository) Create(ctx context.Context, t *models.PasswordResetToken) error {
	return translateError(r.db.WithContext(ctx).Create(t).Error)
}

func (r *resetTokenRepository) FindByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	if err := r.db.WithContext(ctx).First(&t, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *resetTokenRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&models.PasswordResetToken{}, "token = ?", token).Error
}

func (r *resetTokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&models.PasswordResetToken{}, "user_id = ?", userID).Error
}
