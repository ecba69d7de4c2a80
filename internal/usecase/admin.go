package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/platform/metrics"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/gateway"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/repository"
	"go.uber.org/zap"
)

// AdminUsecase covers the review queue: identity-document decisions for
// clients and contractors, plus the contractor activation gate.
type AdminUsecase struct {
	clients     repository.ClientRepository
	contractors repository.ContractorRepository
	events      gateway.EventPublisher
	metrics     *metrics.Manager
	logger      *zap.Logger
}

func NewAdminUsecase(
	clients repository.ClientRepository,
	contractors repository.ContractorRepository,
	events gateway.EventPublisher,
	m *metrics.Manager,
	logger *zap.Logger,
) *AdminUsecase {
	return &AdminUsecase{
		clients:     clients,
		contractors: contractors,
		events:      events,
		metrics:     m,
		logger:      logger.Named("AdminUsecase"),
	}
}

// ApproveIdentity marks the identity document verified. The confirmed national
// id is written only from the admin's explicit input; the OCR candidate stays
// a candidate even when the admin agrees with it.
func (u *AdminUsecase) ApproveIdentity(ctx context.Context, role entity.Role, id, confirmedNationalID string) error {
	confirmedNationalID = strings.TrimSpace(confirmedNationalID)
	if confirmedNationalID != "" && !nationalIDPattern.MatchString(confirmedNationalID) {
		return fmt.Errorf("%w: national id must be ten digits starting with 2 or 9", domain.ErrValidation)
	}

	switch role {
	case entity.RoleClient:
		client, err := u.clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		client.IdentityStatus = entity.IdentityVerified
		if confirmedNationalID != "" {
			client.NationalID = confirmedNationalID
		}
		if err := u.clients.Update(ctx, client); err != nil {
			return err
		}
	case entity.RoleContractor:
		contractor, err := u.contractors.GetByID(ctx, id)
		if err != nil {
			return err
		}
		contractor.IdentityStatus = entity.IdentityVerified
		if confirmedNationalID != "" {
			contractor.NationalID = confirmedNationalID
		}
		if err := u.contractors.Update(ctx, contractor); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: role %q has no identity documents", domain.ErrValidation, role)
	}

	u.logger.Info("Identity approved", zap.String("role", string(role)), zap.String("accountID", id))
	u.metrics.AdminReviewsTotal.WithLabelValues("identity_approved").Inc()
	return nil
}

func (u *AdminUsecase) RejectIdentity(ctx context.Context, role entity.Role, id string) error {
	switch role {
	case entity.RoleClient:
		client, err := u.clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		client.IdentityStatus = entity.IdentityRejected
		if err := u.clients.Update(ctx, client); err != nil {
			return err
		}
	case entity.RoleContractor:
		contractor, err := u.contractors.GetByID(ctx, id)
		if err != nil {
			return err
		}
		contractor.IdentityStatus = entity.IdentityRejected
		if err := u.contractors.Update(ctx, contractor); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: role %q has no identity documents", domain.ErrValidation, role)
	}

	u.logger.Info("Identity rejected", zap.String("role", string(role)), zap.String("accountID", id))
	u.metrics.AdminReviewsTotal.WithLabelValues("identity_rejected").Inc()
	return nil
}

// ApproveContractor clears the review gate. The account only goes live when
// the email is verified too; otherwise activation waits for the verify click.
func (u *AdminUsecase) ApproveContractor(ctx context.Context, id string) error {
	contractor, err := u.contractors.GetByID(ctx, id)
	if err != nil {
		return err
	}

	contractor.ContractorStatus = entity.ContractorVerified
	if contractor.EmailVerified {
		contractor.IsActive = true
	}
	if err := u.contractors.Update(ctx, contractor); err != nil {
		return err
	}

	u.logger.Info("Contractor approved",
		zap.String("accountID", id), zap.Bool("activated", contractor.IsActive))
	if err := u.events.PublishContractorApproved(ctx, contractor); err != nil {
		u.logger.Warn("Failed to publish contractor-approved event", zap.String("accountID", id), zap.Error(err))
	}
	u.metrics.AdminReviewsTotal.WithLabelValues("contractor_approved").Inc()
	return nil
}

func (u *AdminUsecase) RejectContractor(ctx context.Context, id string) error {
	contractor, err := u.contractors.GetByID(ctx, id)
	if err != nil {
		return err
	}

	contractor.ContractorStatus = entity.ContractorRejected
	contractor.IsActive = false
	if err := u.contractors.Update(ctx, contractor); err != nil {
		return err
	}

	u.logger.Info("Contractor rejected", zap.String("accountID", id))
	u.metrics.AdminReviewsTotal.WithLabelValues("contractor_rejected").Inc()
	return nil
}

func (u *AdminUsecase) ListClients(ctx context.Context, skip, limit int64) ([]*entity.Client, error) {
	return u.clients.List(ctx, skip, normalizeLimit(limit))
}

func (u *AdminUsecase) ListContractors(ctx context.Context, skip, limit int64) ([]*entity.Contractor, error) {
	return u.contractors.List(ctx, skip, normalizeLimit(limit))
}

func normalizeLimit(limit int64) int64 {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}
