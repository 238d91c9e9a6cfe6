package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"animehub/internal/config"
	"animehub/internal/http-api/middleware/auth"
	"animehub/internal/http-api/models"
	"animehub/internal/http-api/repository"
	"animehub/internal/mailer"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
)

const minPasswordLength = 8

// Claims is the identity carried by a session token. Handlers must still
// re-resolve the user row per request; the claims are never authoritative
// for role checks.
type Claims struct {
	UserID   string
	Username string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(tokenString string) (*Claims, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ConfirmEmail(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	verifyRepo repository.VerificationTokenRepository
	resetRepo  repository.ResetTokenRepository
	mail       mailer.Mailer
	log        *slog.Logger

	jwtSecret string
	jwtExpiry time.Duration
	verifyTTL time.Duration
	resetTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	verifyRepo repository.VerificationTokenRepository,
	resetRepo repository.ResetTokenRepository,
	mail mailer.Mailer,
	log *slog.Logger,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		verifyRepo: verifyRepo,
		resetRepo:  resetRepo,
		mail:       mail,
		log:        log,
		jwtSecret:  cfg.JWTSecret,
		jwtExpiry:  cfg.JWTExpiry,
		verifyTTL:  cfg.VerificationTokenTTL,
		resetTTL:   cfg.ResetTokenTTL,
	}
}

// Register creates a new account, issues a 24h email-verification token and
// returns the user together with a session token. The verification mail is
// fire-and-forget: registration succeeds even if it never arrives.
func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	// Pre-checks give friendly errors; the unique indexes stay the source
	// of truth under concurrent registration.
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, "", ErrNameInUse
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailInUse
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailInUse
		}
		return nil, "", err
	}

	s.issueVerificationToken(ctx, user)

	token, err := s.generateSessionToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) issueVerificationToken(ctx context.Context, user *models.User) {
	// Supersede any previous token for this user before issuing a new one.
	if err := s.verifyRepo.DeleteByUser(ctx, user.ID); err != nil {
		s.log.Warn("failed to clear previous verification tokens", "user_id", user.ID, "error", err)
		return
	}
	vt := &models.EmailVerificationToken{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.verifyTTL),
	}
	if err := s.verifyRepo.Create(ctx, vt); err != nil {
		s.log.Warn("failed to store verification token", "user_id", user.ID, "error", err)
		return
	}
	email, token := user.Email, vt.Token
	mailer.SendAsync(s.log, func(ctx context.Context) error {
		return s.mail.SendVerification(ctx, email, token)
	})
}

// Login authenticates by email. The error is identical for an unknown email
// and a wrong password to avoid user enumeration.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Dummy compare to keep the unknown-email path at the same cost
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return nil, "", ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	token, err := s.generateSessionToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) generateSessionToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.jwtExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, _ := mapClaims["user_id"].(string)
	username, _ := mapClaims["username"].(string)
	role, _ := mapClaims["role"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, Username: username, Role: role}, nil
}

// ForgotPassword responds identically whether or not the email exists.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := s.resetRepo.DeleteByUser(ctx, user.ID); err != nil {
		return err
	}
	rt := &models.PasswordResetToken{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resetRepo.Create(ctx, rt); err != nil {
		return err
	}

	to, token := user.Email, rt.Token
	mailer.SendAsync(s.log, func(ctx context.Context) error {
		return s.mail.SendPasswordReset(ctx, to, token)
	})
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	rt, err := s.resetRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	if rt.Expired(time.Now()) {
		// Single use even in failure: a retry with the same token reports
		// it as invalid, not expired.
		if err := s.resetRepo.Delete(ctx, rt.Token); err != nil {
			s.log.Warn("failed to delete expired reset token", "error", err)
		}
		return ErrTokenExpired
	}

	user, err := s.userRepo.FindByID(ctx, rt.UserID)
	if err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.resetRepo.Delete(ctx, rt.Token)
}

func (s *authService) ConfirmEmail(ctx context.Context, token string) error {
	vt, err := s.verifyRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	if vt.Expired(time.Now()) {
		if err := s.verifyRepo.Delete(ctx, vt.Token); err != nil {
			s.log.Warn("failed to delete expired verification token", "error", err)
		}
		return ErrTokenExpired
	}

	user, err := s.userRepo.FindByID(ctx, vt.UserID)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		if err := s.verifyRepo.Delete(ctx, vt.Token); err != nil {
			s.log.Warn("failed to delete verification token", "error", err)
		}
		return ErrAlreadyVerified
	}

	user.EmailVerified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.verifyRepo.Delete(ctx, vt.Token)
}
