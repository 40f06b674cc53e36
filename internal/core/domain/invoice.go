package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle status of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// Invoice is a billed statement for a client, covering the calendar month
// of DateIssued.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID" db:"invoice_id"`
	WorkspaceID   string          `json:"workspaceID" db:"workspace_id"`
	ClientID      string          `json:"clientID" db:"client_id"`
	TemplateID    *string         `json:"templateID" db:"template_id"`
	InvoiceNumber string          `json:"invoiceNumber" db:"invoice_number"`
	DateIssued    time.Time       `json:"dateIssued" db:"date_issued"`
	DueDate       time.Time       `json:"dueDate" db:"due_date"`
	Status        InvoiceStatus   `json:"status" db:"status"`
	Subtotal      decimal.Decimal `json:"subtotal" db:"subtotal"`
	Tax           decimal.Decimal `json:"tax" db:"tax"`
	Total         decimal.Decimal `json:"total" db:"total"`
	Notes         string          `json:"notes" db:"notes"`
	AuditFields
	Version int64 `json:"-" db:"version"`
}

// InvoiceItem is one line on an invoice.
type InvoiceItem struct {
	ItemID      string          `json:"itemID" db:"item_id"`
	InvoiceID   string          `json:"invoiceID" db:"invoice_id"`
	Description string          `json:"description" db:"description"`
	Quantity    decimal.Decimal `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Total       decimal.Decimal `json:"total" db:"total"`
	Position    int             `json:"position" db:"position"`
}

// InvoiceTemplate stores presentation defaults for rendered invoices.
type InvoiceTemplate struct {
	TemplateID   string `json:"templateID" db:"template_id"`
	WorkspaceID  string `json:"workspaceID" db:"workspace_id"`
	Name         string `json:"name" db:"name"`
	HeaderText   string `json:"headerText" db:"header_text"`
	FooterText   string `json:"footerText" db:"footer_text"`
	AccentColor  string `json:"accentColor" db:"accent_color"`
	PaymentTerms string `json:"paymentTerms" db:"payment_terms"`
	AuditFields
}
