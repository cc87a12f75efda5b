package models

import (
	"strings"
	"time"

	"github.com/saral-ai/landing/pkg/form"
)

// LeadFormData is a submitted access request, independent of which form
// variant collected it
type LeadFormData struct {
	Name        string    `json:"name" binding:"required"`
	Email       string    `json:"email" binding:"required"`
	Company     string    `json:"company,omitempty"`
	Role        string    `json:"role,omitempty"`
	TeamSize    string    `json:"teamSize,omitempty"`
	Mobile      string    `json:"mobile,omitempty"`
	Variant     string    `json:"variant"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// NewLeadFormData maps a variant's field values onto a lead
func NewLeadFormData(v *form.Variant, rec form.Record, at time.Time) LeadFormData {
	get := func(lead string) string {
		return strings.TrimSpace(rec[v.FieldFor(lead)])
	}
	return LeadFormData{
		Name:        get(form.LeadName),
		Email:       get(form.LeadEmail),
		Company:     get(form.LeadCompany),
		Role:        get(form.LeadRole),
		TeamSize:    get(form.LeadTeamSize),
		Mobile:      get(form.LeadMobile),
		Variant:     v.Name,
		SubmittedAt: at.UTC(),
	}
}

// FirstName is the first word of the lead's name
func (l LeadFormData) FirstName() string {
	parts := strings.Fields(l.Name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
