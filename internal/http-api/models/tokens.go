package models

import "time"

// Single-use, time-boxed tokens for the email confirmation and password
// reset flows. Superseded tokens for the same user are deleted before a new
// one is issued; expired tokens are deleted on detection.

type EmailVerificationToken struct {
	Token     string    `gorm:"primaryKey" json:"token"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (EmailVerificationToken) TableName() string {
	return "email_verification_tokens"
}

type PasswordResetToken struct {
	Token     string    `gorm:"primaryKey" json:"token"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

func (t *EmailVerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
