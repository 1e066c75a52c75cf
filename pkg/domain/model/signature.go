package model

import (
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/types"
)

// Signature represents an e-signature request on a project document
type Signature struct {
	ID         string
	ProjectID  string
	TaskID     string // Optional: signing completes the linked task
	DocumentID string // Optional
	Title      string
	Status     types.SignatureStatus

	// Signer metadata, populated on signing
	SignerName     string
	SignerEmail    string
	SignerTitle    string
	SignerCompany  string
	SignerInitials string

	// Exactly one of SignatureImage (drawn) or TypedName (typed) is set
	Method         types.SignatureMethod
	SignatureImage string // Base64 data URL of the drawn signature
	TypedName      string

	ConsentAt *time.Time
	SignedAt  *time.Time
	IPAddress string // Only recorded when it parses as a valid address
	UserAgent string

	CreatedAt time.Time
	UpdatedAt time.Time
}
