package models

import (
	"time"

	"github.com/google/uuid"
)

// Rfp is the canonical procurement opportunity record. Every record in the
// store has this shape regardless of whether it came from the seed list or
// from the SAM.gov adapter.
type Rfp struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Organization        string    `json:"organization"`
	Description         string    `json:"description"`
	Technology          string    `json:"technology"`
	BudgetMin           *int      `json:"budget_min"`
	BudgetMax           *int      `json:"budget_max"`
	Deadline            time.Time `json:"deadline"`
	PostedDate          time.Time `json:"posted_date"`
	Location            string    `json:"location"`
	OrganizationType    string    `json:"organization_type"`
	ContactEmail        string    `json:"contact_email,omitempty"`
	OrganizationWebsite string    `json:"organization_website,omitempty"`
	DocumentURL         string    `json:"document_url,omitempty"`
	IsPriority          bool      `json:"is_priority"`
	IsActive            bool      `json:"is_active"`
}

// IntPtr is a convenience for building optional budget bounds.
func IntPtr(v int) *int {
	return &v
}
