package services

import (
	"context"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
)

// ClientSvcFacade defines client CRUD operations.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, userID, workspaceID string, req dto.CreateClientRequest) (*domain.Client, error)
	GetClient(ctx context.Context, userID, workspaceID, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, userID, workspaceID string, forceRefresh bool) ([]domain.Client, error)
	UpdateClient(ctx context.Context, userID, workspaceID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, userID, workspaceID, clientID string) error
}

// ProjectSvcFacade defines project CRUD operations.
type ProjectSvcFacade interface {
	CreateProject(ctx context.Context, userID, workspaceID string, req dto.CreateProjectRequest) (*domain.Project, error)
	GetProject(ctx context.Context, userID, workspaceID, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context, userID, workspaceID string, forceRefresh bool) ([]domain.Project, error)
	UpdateProject(ctx context.Context, userID, workspaceID, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error)
	DeleteProject(ctx context.Context, userID, workspaceID, projectID string) error
}

// TimesheetSvcFacade defines timesheet entry operations.
type TimesheetSvcFacade interface {
	CreateEntry(ctx context.Context, userID, workspaceID string, req dto.CreateTimesheetEntryRequest) (*domain.TimesheetEntry, error)
	GetEntry(ctx context.Context, userID, workspaceID, entryID string) (*domain.TimesheetEntry, error)
	ListEntries(ctx context.Context, userID, workspaceID string, forceRefresh bool) ([]domain.TimesheetEntry, error)
	UpdateEntry(ctx context.Context, userID, workspaceID, entryID string, req dto.UpdateTimesheetEntryRequest) (*domain.TimesheetEntry, error)
	DeleteEntry(ctx context.Context, userID, workspaceID, entryID string) error
}

// InvoiceSvcFacade defines invoice operations. Creation aggregates the
// client's billable month and fixed fees into computed line items.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, userID, workspaceID string, req dto.CreateInvoiceRequest) (*domain.Invoice, []domain.InvoiceItem, error)
	GetInvoice(ctx context.Context, userID, workspaceID, invoiceID string) (*domain.Invoice, []domain.InvoiceItem, error)
	ListInvoices(ctx context.Context, userID, workspaceID string, forceRefresh bool) ([]domain.Invoice, error)
	UpdateInvoice(ctx context.Context, userID, workspaceID, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)
	ReplaceItems(ctx context.Context, userID, workspaceID, invoiceID string, req dto.ReplaceInvoiceItemsRequest) (*domain.Invoice, []domain.InvoiceItem, error)
	DeleteInvoice(ctx context.Context, userID, workspaceID, invoiceID string) error
}

// SalaryCreditSvcFacade defines salary credit operations.
type SalaryCreditSvcFacade interface {
	// MarkCredited records a manual credit: the work month is the calendar
	// month before the credited date.
	MarkCredited(ctx context.Context, userID, workspaceID string, req dto.MarkCreditedRequest) (*domain.SalaryCredit, error)

	// RecordForPaidInvoice is the best-effort automatic path used when an
	// invoice transitions to paid; errors must not fail the caller.
	RecordForPaidInvoice(ctx context.Context, userID string, invoice *domain.Invoice) error

	ListCredits(ctx context.Context, userID, workspaceID string, projectIDs []string) ([]domain.SalaryCredit, error)
}

// TemplateSvcFacade defines invoice template operations.
type TemplateSvcFacade interface {
	CreateTemplate(ctx context.Context, userID, workspaceID string, req dto.CreateTemplateRequest) (*domain.InvoiceTemplate, error)
	GetTemplate(ctx context.Context, userID, workspaceID, templateID string) (*domain.InvoiceTemplate, error)
	ListTemplates(ctx context.Context, userID, workspaceID string) ([]domain.InvoiceTemplate, error)
	UpdateTemplate(ctx context.Context, userID, workspaceID, templateID string, req dto.UpdateTemplateRequest) (*domain.InvoiceTemplate, error)
	DeleteTemplate(ctx context.Context, userID, workspaceID, templateID string) error
}

// ExportSvcFacade renders an invoice as a downloadable document.
type ExportSvcFacade interface {
	ExportInvoicePDF(ctx context.Context, userID, workspaceID, invoiceID string) ([]byte, string, error)
	ExportInvoiceExcel(ctx context.Context, userID, workspaceID, invoiceID string) ([]byte, string, error)
}
