package mongo

import (
	"time"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// accountDoc is the persisted shape shared by the three account collections.
// Role-specific fields stay empty (and unset in bson) for roles that do not
// carry them. Email is stored pre-normalized (lowercase, trimmed), which is
// what makes the unique index effectively case-insensitive.
type accountDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	Phone         string             `bson:"phone,omitempty"`
	PasswordHash  string             `bson:"password_hash"`
	ProfileImage  string             `bson:"profile_image,omitempty"`
	IsActive      bool               `bson:"is_active"`
	EmailVerified bool               `bson:"email_verified"`

	EmailVerificationHash    string     `bson:"email_verification_hash,omitempty"`
	EmailVerificationExpires *time.Time `bson:"email_verification_expires,omitempty"`
	ResetOTPHash             string     `bson:"reset_otp_hash,omitempty"`
	ResetOTPExpires          *time.Time `bson:"reset_otp_expires,omitempty"`

	IdentityDocument     string  `bson:"identity_document,omitempty"`
	NationalID           string  `bson:"national_id,omitempty"`
	NationalIDCandidate  string  `bson:"national_id_candidate,omitempty"`
	NationalIDConfidence float64 `bson:"national_id_confidence,omitempty"`
	IdentityStatus       string  `bson:"identity_status,omitempty"`

	ContractorDocument string `bson:"contractor_document,omitempty"`
	ContractorStatus   string `bson:"contractor_status,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d *accountDoc) profile() entity.Profile {
	p := entity.Profile{
		ID:                    d.ID.Hex(),
		Name:                  d.Name,
		Email:                 d.Email,
		Phone:                 d.Phone,
		PasswordHash:          d.PasswordHash,
		ProfileImage:          d.ProfileImage,
		IsActive:              d.IsActive,
		EmailVerified:         d.EmailVerified,
		EmailVerificationHash: d.EmailVerificationHash,
		ResetOTPHash:          d.ResetOTPHash,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
	if d.EmailVerificationExpires != nil {
		p.EmailVerificationExpires = *d.EmailVerificationExpires
	}
	if d.ResetOTPExpires != nil {
		p.ResetOTPExpires = *d.ResetOTPExpires
	}
	return p
}

func (d *accountDoc) identity() entity.IdentityProfile {
	return entity.IdentityProfile{
		IdentityDocument:     d.IdentityDocument,
		NationalID:           d.NationalID,
		NationalIDCandidate:  d.NationalIDCandidate,
		NationalIDConfidence: d.NationalIDConfidence,
		IdentityStatus:       entity.IdentityStatus(d.IdentityStatus),
	}
}

func docFromProfile(p *entity.Profile) accountDoc {
	d := accountDoc{
		Name:                  p.Name,
		Email:                 p.Email,
		Phone:                 p.Phone,
		PasswordHash:          p.PasswordHash,
		ProfileImage:          p.ProfileImage,
		IsActive:              p.IsActive,
		EmailVerified:         p.EmailVerified,
		EmailVerificationHash: p.EmailVerificationHash,
		ResetOTPHash:          p.ResetOTPHash,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
	if p.ID != "" {
		if oid, err := primitive.ObjectIDFromHex(p.ID); err == nil {
			d.ID = oid
		}
	}
	if !p.EmailVerificationExpires.IsZero() {
		t := p.EmailVerificationExpires
		d.EmailVerificationExpires = &t
	}
	if !p.ResetOTPExpires.IsZero() {
		t := p.ResetOTPExpires
		d.ResetOTPExpires = &t
	}
	return d
}

func applyIdentity(d *accountDoc, ip *entity.IdentityProfile) {
	d.IdentityDocument = ip.IdentityDocument
	d.NationalID = ip.NationalID
	d.NationalIDCandidate = ip.NationalIDCandidate
	d.NationalIDConfidence = ip.NationalIDConfidence
	d.IdentityStatus = string(ip.IdentityStatus)
}

func docFromClient(c *entity.Client) accountDoc {
	d := docFromProfile(&c.Profile)
	applyIdentity(&d, &c.IdentityProfile)
	return d
}

func docToClient(d *accountDoc) *entity.Client {
	return &entity.Client{Profile: d.profile(), IdentityProfile: d.identity()}
}

func docFromContractor(c *entity.Contractor) accountDoc {
	d := docFromProfile(&c.Profile)
	applyIdentity(&d, &c.IdentityProfile)
	d.ContractorDocument = c.ContractorDocument
	d.ContractorStatus = string(c.ContractorStatus)
	return d
}

func docToContractor(d *accountDoc) *entity.Contractor {
	return &entity.Contractor{
		Profile:            d.profile(),
		IdentityProfile:    d.identity(),
		ContractorDocument: d.ContractorDocument,
		ContractorStatus:   entity.ContractorStatus(d.ContractorStatus),
	}
}

func docFromAdmin(a *entity.Admin) accountDoc {
	return docFromProfile(&a.Profile)
}

func docToAdmin(d *accountDoc) *entity.Admin {
	return &entity.Admin{Profile: d.profile()}
}
