package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/platform/metrics"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/gateway"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Document is an uploaded file travelling from the HTTP layer to storage.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

type RegisterInput struct {
	Role     entity.Role
	Name     string
	Email    string
	Phone    string
	Password string

	IdentityDocument   *Document
	ContractorDocument *Document
	ProfileImage       *Document
}

type RegistrationUsecase struct {
	clients     repository.ClientRepository
	contractors repository.ContractorRepository
	admins      repository.AdminRepository
	directory   repository.AccountDirectory
	documents   gateway.DocumentStore
	extractor   gateway.IdentityExtractor
	mailer      gateway.EmailSender
	events      gateway.EventPublisher
	metrics     *metrics.Manager
	logger      *zap.Logger
	baseURL     string
}

func NewRegistrationUsecase(
	clients repository.ClientRepository,
	contractors repository.ContractorRepository,
	admins repository.AdminRepository,
	directory repository.AccountDirectory,
	documents gateway.DocumentStore,
	extractor gateway.IdentityExtractor,
	mailer gateway.EmailSender,
	events gateway.EventPublisher,
	m *metrics.Manager,
	logger *zap.Logger,
	baseURL string,
) *RegistrationUsecase {
	return &RegistrationUsecase{
		clients:     clients,
		contractors: contractors,
		admins:      admins,
		directory:   directory,
		documents:   documents,
		extractor:   extractor,
		mailer:      mailer,
		events:      events,
		metrics:     m,
		logger:      logger.Named("RegistrationUsecase"),
		baseURL:     baseURL,
	}
}

func (u *RegistrationUsecase) Register(ctx context.Context, in RegisterInput) (entity.Account, error) {
	if err := validateRegisterInput(in); err != nil {
		return nil, err
	}

	email := entity.NormalizeEmail(in.Email)
	phone := entity.NormalizePhone(in.Phone)

	// Uniqueness guard across all three collections, before the bcrypt work.
	// This is a fast fail for the common case; the unique indexes catch the
	// check-then-insert race and the repository reports it as the same error.
	if err := u.checkUnique(ctx, email, phone); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		u.logger.Error("Failed to hash password during registration", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	rawToken, tokenDigest, err := newSecretToken()
	if err != nil {
		return nil, err
	}

	profile := entity.Profile{
		Name:                     strings.TrimSpace(in.Name),
		Email:                    email,
		Phone:                    phone,
		PasswordHash:             string(hashed),
		IsActive:                 false,
		EmailVerified:            false,
		EmailVerificationHash:    tokenDigest,
		EmailVerificationExpires: time.Now().Add(verificationTokenTTLHours * time.Hour),
	}

	if in.ProfileImage != nil {
		key, err := u.documents.Upload(ctx, string(in.Role)+"/profile", in.ProfileImage.FileName, in.ProfileImage.Data, in.ProfileImage.ContentType)
		if err != nil {
			// Profile images are cosmetic; registration proceeds without one.
			u.logger.Warn("Failed to upload profile image, continuing", zap.String("email", email), zap.Error(err))
		} else {
			profile.ProfileImage = key
		}
	}

	var acct entity.Account
	switch in.Role {
	case entity.RoleClient:
		client := &entity.Client{Profile: profile}
		client.IdentityStatus = entity.IdentityNone
		if err := u.attachIdentityDocument(ctx, in, &client.IdentityProfile); err != nil {
			return nil, err
		}
		if _, err := u.clients.Create(ctx, client); err != nil {
			return nil, err
		}
		acct = client
	case entity.RoleContractor:
		contractor := &entity.Contractor{Profile: profile, ContractorStatus: entity.ContractorPending}
		contractor.IdentityStatus = entity.IdentityNone
		if err := u.attachIdentityDocument(ctx, in, &contractor.IdentityProfile); err != nil {
			return nil, err
		}
		if in.ContractorDocument != nil {
			key, err := u.documents.Upload(ctx, "contractor/license", in.ContractorDocument.FileName, in.ContractorDocument.Data, in.ContractorDocument.ContentType)
			if err != nil {
				u.logger.Error("Failed to upload contractor document", zap.String("email", email), zap.Error(err))
				return nil, fmt.Errorf("%w: contractor document upload failed", domain.ErrUpstream)
			}
			contractor.ContractorDocument = key
		}
		if _, err := u.contractors.Create(ctx, contractor); err != nil {
			return nil, err
		}
		acct = contractor
	case entity.RoleAdmin:
		admin := &entity.Admin{Profile: profile}
		if _, err := u.admins.Create(ctx, admin); err != nil {
			return nil, err
		}
		acct = admin
	default:
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, in.Role)
	}

	u.logger.Info("Account registered",
		zap.String("accountID", acct.AccountID()),
		zap.String("role", string(acct.AccountRole())),
		zap.String("email", email))

	// Email and event delivery are best effort; failures never undo the
	// registration. The user can request a fresh verification email.
	u.sendVerificationEmail(ctx, acct, rawToken)
	if err := u.events.PublishAccountRegistered(ctx, acct); err != nil {
		u.logger.Warn("Failed to publish registration event", zap.String("accountID", acct.AccountID()), zap.Error(err))
	}
	u.metrics.RegistrationsTotal.WithLabelValues(string(acct.AccountRole())).Inc()

	return acct, nil
}

// attachIdentityDocument uploads the identity scan and runs best-effort OCR.
// OCR only ever fills the candidate fields; the confirmed national id is
// written exclusively by admin approval.
func (u *RegistrationUsecase) attachIdentityDocument(ctx context.Context, in RegisterInput, ip *entity.IdentityProfile) error {
	if in.IdentityDocument == nil {
		return nil
	}

	key, err := u.documents.Upload(ctx, string(in.Role)+"/identity", in.IdentityDocument.FileName, in.IdentityDocument.Data, in.IdentityDocument.ContentType)
	if err != nil {
		u.logger.Error("Failed to upload identity document", zap.String("email", in.Email), zap.Error(err))
		return fmt.Errorf("%w: identity document upload failed", domain.ErrUpstream)
	}
	ip.IdentityDocument = key
	ip.IdentityStatus = entity.IdentityPending

	res, err := u.extractor.Extract(ctx, key)
	if err != nil {
		u.logger.Warn("OCR extraction failed, registration continues without candidate",
			zap.String("document", key), zap.Error(err))
		return nil
	}
	if candidate, confidence := extractNationalIDCandidate(res); candidate != "" {
		ip.NationalIDCandidate = candidate
		ip.NationalIDConfidence = confidence
	}
	return nil
}

// checkUnique fails with the conflict error when the normalized email or
// phone already exists in any of the three collections.
func (u *RegistrationUsecase) checkUnique(ctx context.Context, email, phone string) error {
	if _, err := u.directory.FindByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: email", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if phone != "" {
		if _, err := u.directory.FindByPhone(ctx, phone); err == nil {
			return fmt.Errorf("%w: phone", domain.ErrConflict)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (u *RegistrationUsecase) sendVerificationEmail(ctx context.Context, acct entity.Account, rawToken string) {
	link := fmt.Sprintf("%s/api/verify-email?token=%s", u.baseURL, rawToken)
	htmlBody := fmt.Sprintf(`<p>Hello %s,</p>
<p>Welcome to Damanah. Please confirm your email address by clicking the link below:</p>
<p><a href="%s">Verify my email</a></p>
<p>The link expires in 24 hours. If you did not create this account, ignore this email.</p>`,
		acct.AccountName(), link)
	textBody := fmt.Sprintf("Hello %s,\n\nConfirm your email address: %s\n\nThe link expires in 24 hours.",
		acct.AccountName(), link)

	if err := u.mailer.Send(ctx, acct.AccountEmail(), "Verify your email address", htmlBody, textBody); err != nil {
		u.logger.Warn("Failed to send verification email",
			zap.String("accountID", acct.AccountID()), zap.Error(err))
	}
}

func validateRegisterInput(in RegisterInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	email := entity.NormalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	if entity.NormalizePhone(in.Phone) == "" {
		return fmt.Errorf("%w: phone is required", domain.ErrValidation)
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	return nil
}
