package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/platform/metrics"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/gateway"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// VerificationUsecase owns the email-verification and password-reset flows.
type VerificationUsecase struct {
	clients     repository.ClientRepository
	contractors repository.ContractorRepository
	admins      repository.AdminRepository
	directory   repository.AccountDirectory
	mailer      gateway.EmailSender
	events      gateway.EventPublisher
	metrics     *metrics.Manager
	logger      *zap.Logger
	baseURL     string
}

func NewVerificationUsecase(
	clients repository.ClientRepository,
	contractors repository.ContractorRepository,
	admins repository.AdminRepository,
	directory repository.AccountDirectory,
	mailer gateway.EmailSender,
	events gateway.EventPublisher,
	m *metrics.Manager,
	logger *zap.Logger,
	baseURL string,
) *VerificationUsecase {
	return &VerificationUsecase{
		clients:     clients,
		contractors: contractors,
		admins:      admins,
		directory:   directory,
		mailer:      mailer,
		events:      events,
		metrics:     m,
		logger:      logger.Named("VerificationUsecase"),
		baseURL:     baseURL,
	}
}

// VerifyEmail confirms the address behind a raw token. The stored digest is
// kept after success, so a repeated click on the same link lands here again,
// sees the account already verified and succeeds idempotently instead of
// confusing the user with an error.
func (u *VerificationUsecase) VerifyEmail(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return fmt.Errorf("%w: token is required", domain.ErrValidation)
	}

	acct, err := u.directory.FindByVerificationHash(ctx, hashSecret(rawToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidOrExpiredToken
		}
		return err
	}

	if acct.Verified() {
		return nil
	}

	switch a := acct.(type) {
	case *entity.Client:
		if time.Now().After(a.EmailVerificationExpires) {
			return domain.ErrInvalidOrExpiredToken
		}
		a.EmailVerified = true
		a.IsActive = true
		err = u.clients.Update(ctx, a)
	case *entity.Contractor:
		if time.Now().After(a.EmailVerificationExpires) {
			return domain.ErrInvalidOrExpiredToken
		}
		a.EmailVerified = true
		// Contractors activate only once an admin approves their documents.
		if a.ContractorStatus == entity.ContractorVerified {
			a.IsActive = true
		}
		err = u.contractors.Update(ctx, a)
	case *entity.Admin:
		if time.Now().After(a.EmailVerificationExpires) {
			return domain.ErrInvalidOrExpiredToken
		}
		a.EmailVerified = true
		a.IsActive = true
		err = u.admins.Update(ctx, a)
	default:
		return domain.ErrInvalidOrExpiredToken
	}
	if err != nil {
		return err
	}

	u.logger.Info("Email verified",
		zap.String("accountID", acct.AccountID()), zap.String("role", string(acct.AccountRole())))
	if err := u.events.PublishEmailVerified(ctx, acct); err != nil {
		u.logger.Warn("Failed to publish email-verified event", zap.String("accountID", acct.AccountID()), zap.Error(err))
	}
	u.metrics.EmailVerificationsTotal.Inc()
	return nil
}

// ResendVerification issues a fresh token for an unverified account.
func (u *VerificationUsecase) ResendVerification(ctx context.Context, email string) error {
	acct, err := u.directory.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if acct.Verified() {
		return nil
	}

	rawToken, digest, err := newSecretToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(verificationTokenTTLHours * time.Hour)

	if err := u.mutateProfile(ctx, acct, func(p *entity.Profile) {
		p.EmailVerificationHash = digest
		p.EmailVerificationExpires = expires
	}); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/verify-email?token=%s", u.baseURL, rawToken)
	htmlBody := fmt.Sprintf(`<p>Hello %s,</p>
<p>Here is your new verification link:</p>
<p><a href="%s">Verify my email</a></p>
<p>The link expires in 24 hours.</p>`, acct.AccountName(), link)
	textBody := fmt.Sprintf("Hello %s,\n\nYour new verification link: %s", acct.AccountName(), link)

	if err := u.mailer.Send(ctx, acct.AccountEmail(), "Verify your email address", htmlBody, textBody); err != nil {
		u.logger.Error("Failed to send verification email", zap.String("accountID", acct.AccountID()), zap.Error(err))
		// The verification email is the deliverable here, so the failure
		// surfaces instead of being swallowed.
		return fmt.Errorf("%w: could not send verification email", domain.ErrUpstream)
	}
	return nil
}

// RequestPasswordReset emails a 6-digit one-time password valid for 10 minutes.
func (u *VerificationUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	acct, err := u.directory.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return err
	}

	rawOTP, digest, err := newResetOTP()
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetOTPTTLMinutes * time.Minute)

	if err := u.mutateProfile(ctx, acct, func(p *entity.Profile) {
		p.ResetOTPHash = digest
		p.ResetOTPExpires = expires
	}); err != nil {
		return err
	}

	htmlBody := fmt.Sprintf(`<p>Hello %s,</p>
<p>Your password reset code is: <b>%s</b></p>
<p>This code expires in %d minutes. If you did not request a reset, ignore this email.</p>`,
		acct.AccountName(), rawOTP, resetOTPTTLMinutes)
	textBody := fmt.Sprintf("Hello %s,\n\nYour password reset code is: %s\nIt expires in %d minutes.",
		acct.AccountName(), rawOTP, resetOTPTTLMinutes)

	if err := u.mailer.Send(ctx, acct.AccountEmail(), "Password reset code", htmlBody, textBody); err != nil {
		u.logger.Error("Failed to send password reset email", zap.String("accountID", acct.AccountID()), zap.Error(err))
		return fmt.Errorf("%w: could not send password reset email", domain.ErrUpstream)
	}
	return nil
}

// ResetPassword consumes the OTP: the digest is cleared on success so the
// code cannot be replayed.
func (u *VerificationUsecase) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	acct, err := u.directory.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return err
	}

	profile := profileOf(acct)
	if profile.ResetOTPHash == "" || profile.ResetOTPHash != hashSecret(otp) {
		return domain.ErrInvalidOrExpiredToken
	}
	if time.Now().After(profile.ResetOTPExpires) {
		return domain.ErrInvalidOrExpiredToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := u.mutateProfile(ctx, acct, func(p *entity.Profile) {
		p.PasswordHash = string(hashed)
		p.ResetOTPHash = ""
		p.ResetOTPExpires = time.Time{}
	}); err != nil {
		return err
	}

	u.logger.Info("Password reset completed", zap.String("accountID", acct.AccountID()))
	return nil
}

// mutateProfile applies a change to whichever variant the account is and
// persists it through the matching repository.
func (u *VerificationUsecase) mutateProfile(ctx context.Context, acct entity.Account, apply func(*entity.Profile)) error {
	switch a := acct.(type) {
	case *entity.Client:
		apply(&a.Profile)
		return u.clients.Update(ctx, a)
	case *entity.Contractor:
		apply(&a.Profile)
		return u.contractors.Update(ctx, a)
	case *entity.Admin:
		apply(&a.Profile)
		return u.admins.Update(ctx, a)
	default:
		return domain.ErrNotFound
	}
}

func profileOf(acct entity.Account) *entity.Profile {
	switch a := acct.(type) {
	case *entity.Client:
		return &a.Profile
	case *entity.Contractor:
		return &a.Profile
	case *entity.Admin:
		return &a.Profile
	default:
		return &entity.Profile{}
	}
}
