package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/config"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	AccountRegisteredSubject  = "account.registered"
	EmailVerifiedSubject      = "account.email_verified"
	ContractorApprovedSubject = "account.contractor_approved"
)

type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

type accountEventPayload struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewPublisher(cfg *config.NATSConfig, logger *zap.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.ConnectTimeout),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Successfully connected to NATS", zap.String("url", nc.ConnectedUrl()))

	return &Publisher{nc: nc, logger: logger.Named("NATSPublisher")}, nil
}

func (p *Publisher) publish(subject string, payload accountEventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal account event",
			zap.String("subject", subject), zap.String("account_id", payload.ID), zap.Error(err))
		return fmt.Errorf("failed to marshal event for %s: %w", subject, err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish NATS message",
			zap.String("subject", subject), zap.String("account_id", payload.ID), zap.Error(err))
		return fmt.Errorf("failed to publish NATS message for %s: %w", subject, err)
	}
	p.logger.Info("Published NATS message",
		zap.String("subject", subject), zap.String("account_id", payload.ID))
	return nil
}

func payloadFromAccount(acct entity.Account) accountEventPayload {
	return accountEventPayload{
		ID:    acct.AccountID(),
		Role:  string(acct.AccountRole()),
		Email: acct.AccountEmail(),
		Name:  acct.AccountName(),
	}
}

func (p *Publisher) PublishAccountRegistered(ctx context.Context, acct entity.Account) error {
	return p.publish(AccountRegisteredSubject, payloadFromAccount(acct))
}

func (p *Publisher) PublishEmailVerified(ctx context.Context, acct entity.Account) error {
	return p.publish(EmailVerifiedSubject, payloadFromAccount(acct))
}

func (p *Publisher) PublishContractorApproved(ctx context.Context, contractor *entity.Contractor) error {
	return p.publish(ContractorApprovedSubject, payloadFromAccount(contractor))
}

func (p *Publisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		if err := p.nc.Drain(); err != nil {
			p.logger.Error("Error draining NATS connection", zap.Error(err))
		}
		p.nc.Close()
	}
}
