package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/gateway"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/repository"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase struct {
	directory repository.AccountDirectory
	sessions  gateway.SessionStore
	logger    *zap.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthUsecase(
	directory repository.AccountDirectory,
	sessions gateway.SessionStore,
	logger *zap.Logger,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		directory: directory,
		sessions:  sessions,
		logger:    logger.Named("AuthUsecase"),
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Login resolves the email across all three account collections, so one form
// serves clients, contractors and admins alike.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, entity.Account, error) {
	acct, err := u.directory.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.HashedPassword()), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !acct.Verified() {
		return "", nil, domain.ErrEmailNotVerified
	}
	if !acct.Activated() {
		// Verified contractors still waiting on the document review land here.
		return "", nil, domain.ErrPendingReview
	}

	token, err := u.issueToken(acct)
	if err != nil {
		u.logger.Error("Failed to sign JWT", zap.String("accountID", acct.AccountID()), zap.Error(err))
		return "", nil, err
	}

	if err := u.sessions.Save(ctx, acct.AccountID(), token, u.tokenTTL); err != nil {
		// The JWT is self-contained; a session-store hiccup should not block
		// the login.
		u.logger.Warn("Failed to save session", zap.String("accountID", acct.AccountID()), zap.Error(err))
	}

	u.logger.Info("Account logged in",
		zap.String("accountID", acct.AccountID()), zap.String("role", string(acct.AccountRole())))
	return token, acct, nil
}

func (u *AuthUsecase) Logout(ctx context.Context, accountID string) error {
	if err := u.sessions.Delete(ctx, accountID); err != nil {
		u.logger.Error("Failed to delete session", zap.String("accountID", accountID), zap.Error(err))
		return err
	}
	u.logger.Info("Account logged out", zap.String("accountID", accountID))
	return nil
}

// Profile loads the full account behind an authenticated request.
func (u *AuthUsecase) Profile(ctx context.Context, role entity.Role, accountID string) (entity.Account, error) {
	return u.directory.FindByID(ctx, role, accountID)
}

func (u *AuthUsecase) issueToken(acct entity.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  acct.AccountID(),
		"role": string(acct.AccountRole()),
		"iat":  now.Unix(),
		"exp":  now.Add(u.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(u.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
