package model

import (
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/types"
)

// Project represents one client onboarding engagement
type Project struct {
	ID          string
	TemplateID  string // Optional: empty when the project was created ad hoc
	Name        string
	Status      types.ProjectStatus
	ClientName  string
	ClientEmail string
	StaffEmail  string // Assigned onboarding manager
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecipientEmail resolves the email address for a send_email recipient type.
// Returns an empty string when no address is on file.
func (p *Project) RecipientEmail(recipient types.RecipientType) string {
	switch recipient {
	case types.RecipientClient:
		return p.ClientEmail
	case types.RecipientStaff:
		return p.StaffEmail
	default:
		return ""
	}
}
