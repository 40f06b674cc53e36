package repositories

import (
	"context"
	"time"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoices and their items.
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, workspaceID, invoiceID string) (*domain.Invoice, error)
	ListInvoicesByWorkspace(ctx context.Context, workspaceID string) ([]domain.Invoice, error)
	ListItemsByInvoice(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error)

	// ListInvoiceNumbersByPeriod returns the invoice numbers already issued
	// in the calendar month of the given time, for sequence derivation.
	ListInvoiceNumbersByPeriod(ctx context.Context, workspaceID string, period time.Time) ([]string, error)
}

// InvoiceWriter defines write operations for invoices and their items.
type InvoiceWriter interface {
	// SaveInvoice persists the invoice and its items in one transaction.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error

	// UpdateInvoice updates mutable invoice fields with optimistic locking
	// on the version column.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// ReplaceItems swaps the full item set of an invoice transactionally.
	ReplaceItems(ctx context.Context, invoiceID string, items []domain.InvoiceItem) error

	DeleteInvoice(ctx context.Context, workspaceID, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceTemplateRepository manages invoice templates.
type InvoiceTemplateRepository interface {
	FindTemplateByID(ctx context.Context, workspaceID, templateID string) (*domain.InvoiceTemplate, error)
	ListTemplatesByWorkspace(ctx context.Context, workspaceID string) ([]domain.InvoiceTemplate, error)
	SaveTemplate(ctx context.Context, template domain.InvoiceTemplate) error
	UpdateTemplate(ctx context.Context, template domain.InvoiceTemplate) error
	DeleteTemplate(ctx context.Context, workspaceID, templateID string) error
}
