package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// CreateInvoiceRequest defines data for generating an invoice for a client
// month. Line items and totals are computed server-side from the
// workspace's timesheets and the client's fixed projects.
type CreateInvoiceRequest struct {
	ClientID   string    `json:"clientID" binding:"required"`
	TemplateID *string   `json:"templateID"`
	DateIssued time.Time `json:"dateIssued" binding:"required" time_format:"2006-01-02"`
	DueDate    time.Time `json:"dueDate" binding:"required" time_format:"2006-01-02"`
	Notes      string    `json:"notes"`
}

// UpdateInvoiceRequest defines data for updating an invoice. Nil fields are untouched.
type UpdateInvoiceRequest struct {
	Status     *domain.InvoiceStatus `json:"status" binding:"omitempty,oneof=draft sent paid overdue"`
	DueDate    *time.Time            `json:"dueDate" time_format:"2006-01-02"`
	TemplateID *string               `json:"templateID"`
	Notes      *string               `json:"notes"`
}

// InvoiceItemRequest defines one line when items are replaced manually.
type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// ReplaceInvoiceItemsRequest swaps the full item set of an invoice.
type ReplaceInvoiceItemsRequest struct {
	Items []InvoiceItemRequest `json:"items" binding:"required,dive"`
}

// InvoiceItemResponse defines data returned for one invoice line.
type InvoiceItemResponse struct {
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse defines data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string                `json:"invoiceID"`
	WorkspaceID   string                `json:"workspaceID"`
	ClientID      string                `json:"clientID"`
	TemplateID    *string               `json:"templateID,omitempty"`
	InvoiceNumber string                `json:"invoiceNumber"`
	DateIssued    time.Time             `json:"dateIssued"`
	DueDate       time.Time             `json:"dueDate"`
	Status        domain.InvoiceStatus  `json:"status"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Tax           decimal.Decimal       `json:"tax"`
	Total         decimal.Decimal       `json:"total"`
	Notes         string                `json:"notes"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// ToInvoiceItemResponse converts domain.InvoiceItem to DTO.
func ToInvoiceItemResponse(it *domain.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ItemID:      it.ItemID,
		Description: it.Description,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		Total:       it.Total,
	}
}

// ToInvoiceResponse converts domain.Invoice (and optional items) to DTO.
func ToInvoiceResponse(inv *domain.Invoice, items []domain.InvoiceItem) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		WorkspaceID:   inv.WorkspaceID,
		ClientID:      inv.ClientID,
		TemplateID:    inv.TemplateID,
		InvoiceNumber: inv.InvoiceNumber,
		DateIssued:    inv.DateIssued,
		DueDate:       inv.DueDate,
		Status:        inv.Status,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
	}
	for i := range items {
		resp.Items = append(resp.Items, ToInvoiceItemResponse(&items[i]))
	}
	return resp
}

// ToListInvoicesResponse converts a slice of domain.Invoice to DTOs without items.
func ToListInvoicesResponse(invs []domain.Invoice) []InvoiceResponse {
	list := make([]InvoiceResponse, len(invs))
	for i, inv := range invs {
		list[i] = ToInvoiceResponse(&inv, nil)
	}
	return list
}
