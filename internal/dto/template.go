package dto

import (
	"time"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// CreateTemplateRequest defines data for creating an invoice template.
type CreateTemplateRequest struct {
	Name         string `json:"name" binding:"required"`
	HeaderText   string `json:"headerText"`
	FooterText   string `json:"footerText"`
	AccentColor  string `json:"accentColor" binding:"omitempty,hexcolor"`
	PaymentTerms string `json:"paymentTerms"`
}

// UpdateTemplateRequest defines data for updating a template. Nil fields are untouched.
type UpdateTemplateRequest struct {
	Name         *string `json:"name"`
	HeaderText   *string `json:"headerText"`
	FooterText   *string `json:"footerText"`
	AccentColor  *string `json:"accentColor" binding:"omitempty,hexcolor"`
	PaymentTerms *string `json:"paymentTerms"`
}

// TemplateResponse defines data returned for a template.
type TemplateResponse struct {
	TemplateID   string    `json:"templateID"`
	WorkspaceID  string    `json:"workspaceID"`
	Name         string    `json:"name"`
	HeaderText   string    `json:"headerText"`
	FooterText   string    `json:"footerText"`
	AccentColor  string    `json:"accentColor"`
	PaymentTerms string    `json:"paymentTerms"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToTemplateResponse converts domain.InvoiceTemplate to DTO.
func ToTemplateResponse(t *domain.InvoiceTemplate) TemplateResponse {
	return TemplateResponse{
		TemplateID:   t.TemplateID,
		WorkspaceID:  t.WorkspaceID,
		Name:         t.Name,
		HeaderText:   t.HeaderText,
		FooterText:   t.FooterText,
		AccentColor:  t.AccentColor,
		PaymentTerms: t.PaymentTerms,
		CreatedAt:    t.CreatedAt,
	}
}

// ToListTemplatesResponse converts a slice of templates to DTOs.
func ToListTemplatesResponse(ts []domain.InvoiceTemplate) []TemplateResponse {
	list := make([]TemplateResponse, len(ts))
	for i, t := range ts {
		list[i] = ToTemplateResponse(&t)
	}
	return list
}
