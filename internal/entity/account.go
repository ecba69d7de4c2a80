package entity

import (
	"strings"
	"time"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleContractor Role = "contractor"
	RoleAdmin      Role = "admin"
)

type IdentityStatus string

const (
	IdentityNone     IdentityStatus = "none"
	IdentityPending  IdentityStatus = "pending"
	IdentityVerified IdentityStatus = "verified"
	IdentityRejected IdentityStatus = "rejected"
)

type ContractorStatus string

const (
	ContractorPending  ContractorStatus = "pending"
	ContractorVerified ContractorStatus = "verified"
	ContractorRejected ContractorStatus = "rejected"
)

// Account is the capability common to the three account variants. Each variant
// lives in its own collection; lookups that must hold across all of them
// (uniqueness, login, token verification) go through this interface.
type Account interface {
	AccountID() string
	AccountName() string
	AccountEmail() string
	AccountPhone() string
	AccountRole() Role
	Activated() bool
	Verified() bool
	HashedPassword() string
}

// Profile carries the fields shared by every account variant.
type Profile struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	PasswordHash  string
	ProfileImage  string
	IsActive      bool
	EmailVerified bool

	// Single-use, time-boxed secrets. Only digests are persisted; the raw
	// values are emailed once and never stored.
	EmailVerificationHash    string
	EmailVerificationExpires time.Time
	ResetOTPHash             string
	ResetOTPExpires          time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Profile) AccountID() string      { return p.ID }
func (p *Profile) AccountName() string    { return p.Name }
func (p *Profile) AccountEmail() string   { return p.Email }
func (p *Profile) AccountPhone() string   { return p.Phone }
func (p *Profile) Activated() bool        { return p.IsActive }
func (p *Profile) Verified() bool         { return p.EmailVerified }
func (p *Profile) HashedPassword() string { return p.PasswordHash }

// IdentityProfile holds the identity-verification fields shared by clients and
// contractors. The OCR candidate is a suggestion only and is kept separate from
// the confirmed national id so that a re-run of the extractor can never clobber
// a value an admin has already confirmed.
type IdentityProfile struct {
	IdentityDocument     string
	NationalID           string
	NationalIDCandidate  string
	NationalIDConfidence float64
	IdentityStatus       IdentityStatus
}

type Client struct {
	Profile
	IdentityProfile
}

func (c *Client) AccountRole() Role { return RoleClient }

type Contractor struct {
	Profile
	IdentityProfile
	ContractorDocument string
	ContractorStatus   ContractorStatus
}

func (c *Contractor) AccountRole() Role { return RoleContractor }

type Admin struct {
	Profile
}

func (a *Admin) AccountRole() Role { return RoleAdmin }

// NormalizeEmail and NormalizePhone are applied before every uniqueness check
// and before persisting. Both are idempotent.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}
