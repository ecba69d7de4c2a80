package gateway

import (
	"context"
	"time"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
)

// EmailSender delivers a single message. Failures are logged by callers and
// never abort the operation that triggered the email, except where the email
// is the deliverable itself.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// Extraction is the best-effort result of running OCR over an identity
// document. NationalID may be empty; RawText is whatever the engine read.
type Extraction struct {
	NationalID string
	Confidence float64
	RawText    string
}

// IdentityExtractor wraps the external OCR service. Registration proceeds even
// when extraction fails or returns nothing usable.
type IdentityExtractor interface {
	Extract(ctx context.Context, documentKey string) (*Extraction, error)
}

// DocumentStore persists uploaded artifacts (identity scans, contractor
// licenses, profile images) and returns the stored object key.
type DocumentStore interface {
	Upload(ctx context.Context, prefix, fileName string, data []byte, contentType string) (string, error)
}

// SessionStore keys issued tokens by account id under one canonical keyspace.
type SessionStore interface {
	Save(ctx context.Context, accountID, token string, ttl time.Duration) error
	Get(ctx context.Context, accountID string) (string, error)
	Delete(ctx context.Context, accountID string) error
}

// EventPublisher emits fire-and-forget lifecycle events.
type EventPublisher interface {
	PublishAccountRegistered(ctx context.Context, acct entity.Account) error
	PublishEmailVerified(ctx context.Context, acct entity.Account) error
	PublishContractorApproved(ctx context.Context, contractor *entity.Contractor) error
}
