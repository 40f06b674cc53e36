package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/billing"
	"github.com/timekeep-hq/timekeep_app/internal/cache"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
)

// invoiceService implements the InvoiceSvcFacade interface. Creation pulls
// the client's billable month and fixed fees together, numbers the invoice,
// and persists header plus items in one transaction.
type invoiceService struct {
	BaseService
	invoiceRepo   portsrepo.InvoiceRepositoryFacade
	templateRepo  portsrepo.InvoiceTemplateRepository
	clientRepo    portsrepo.ClientReader
	projectRepo   portsrepo.ProjectReader
	timesheetRepo portsrepo.TimesheetReader
	settingsSvc   portssvc.SettingsSvcFacade
	creditSvc     portssvc.SalaryCreditSvcFacade
	cache         *cache.Service
}

// NewInvoiceService creates a new invoice service with the provided dependencies.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	templateRepo portsrepo.InvoiceTemplateRepository,
	clientRepo portsrepo.ClientReader,
	projectRepo portsrepo.ProjectReader,
	timesheetRepo portsrepo.TimesheetReader,
	settingsSvc portssvc.SettingsSvcFacade,
	creditSvc portssvc.SalaryCreditSvcFacade,
	cacheSvc *cache.Service,
	authorizer portssvc.WorkspaceAuthorizerSvc,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService:   BaseService{WorkspaceAuthorizer: authorizer},
		invoiceRepo:   invoiceRepo,
		templateRepo:  templateRepo,
		clientRepo:    clientRepo,
		projectRepo:   projectRepo,
		timesheetRepo: timesheetRepo,
		settingsSvc:   settingsSvc,
		creditSvc:     creditSvc,
		cache:         cacheSvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice generates an invoice for a client's calendar month. Line
// items are computed from billable timesheet entries in the month of
// DateIssued plus one monthly-fee line per fixed project of the client.
func (s *invoiceService) CreateInvoice(ctx context.Context, userID, workspaceID string, req dto.CreateInvoiceRequest) (*domain.Invoice, []domain.InvoiceItem, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, nil, err
	}

	if _, err := s.clientRepo.FindClientByID(ctx, workspaceID, req.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewValidationFailedError("client not found in workspace")
		}
		return nil, nil, err
	}
	if req.TemplateID != nil && *req.TemplateID != "" {
		if _, err := s.templateRepo.FindTemplateByID(ctx, workspaceID, *req.TemplateID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil, apperrors.NewValidationFailedError("invoice template not found in workspace")
			}
			return nil, nil, err
		}
	}

	projects, err := s.projectRepo.ListProjectsByWorkspace(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects for invoice generation",
			slog.String("workspace_id", workspaceID))
		return nil, nil, err
	}
	entries, err := s.timesheetRepo.ListEntriesByMonth(ctx, workspaceID, req.DateIssued)
	if err != nil {
		s.LogError(ctx, err, "Failed to list month entries for invoice generation",
			slog.String("workspace_id", workspaceID))
		return nil, nil, err
	}

	lines := billing.BuildLineItems(req.ClientID, req.DateIssued, entries, projects)
	if len(lines) == 0 {
		return nil, nil, apperrors.NewValidationFailedError("nothing to invoice for this client and month")
	}

	taxRate, err := s.settingsSvc.TaxRate(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	totals := billing.ComputeTotals(lines, taxRate)

	number := s.nextInvoiceNumber(ctx, workspaceID, req.DateIssued)

	now := time.Now()
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		WorkspaceID:   workspaceID,
		ClientID:      req.ClientID,
		TemplateID:    req.TemplateID,
		InvoiceNumber: number,
		DateIssued:    req.DateIssued,
		DueDate:       req.DueDate,
		Status:        domain.InvoiceDraft,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Version: 1,
	}
	items := itemsFromLines(invoice.InvoiceID, lines)

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice, items); err != nil {
		s.LogError(ctx, err, "Failed to save invoice",
			slog.String("workspace_id", workspaceID),
			slog.String("invoice_number", number))
		return nil, nil, err
	}
	s.cache.Invalidate(cache.ResourceInvoices, workspaceID)

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", number),
		slog.String("client_id", req.ClientID),
		slog.Int("items", len(items)))
	return &invoice, items, nil
}

// GetInvoice retrieves an invoice with its items.
func (s *invoiceService) GetInvoice(ctx context.Context, userID, workspaceID, invoiceID string) (*domain.Invoice, []domain.InvoiceItem, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, workspaceID, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice",
				slog.String("invoice_id", invoiceID))
		}
		return nil, nil, err
	}
	items, err := s.invoiceRepo.ListItemsByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	return invoice, items, nil
}

// ListInvoices lists the workspace's invoices through the cache, without items.
func (s *invoiceService) ListInvoices(ctx context.Context, userID, workspaceID string, forceRefresh bool) ([]domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	data, err := s.cache.GetOrFetch(ctx, cache.ResourceInvoices, workspaceID, forceRefresh, func(ctx context.Context) (any, error) {
		return s.invoiceRepo.ListInvoicesByWorkspace(ctx, workspaceID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	invoices, _ := data.([]domain.Invoice)
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

// UpdateInvoice applies the non-nil request fields. A transition into the
// paid status additionally triggers best-effort salary credit recording;
// a failure there is logged but never fails the update.
func (s *invoiceService) UpdateInvoice(ctx context.Context, userID, workspaceID, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, workspaceID, invoiceID)
	if err != nil {
		return nil, err
	}

	becamePaid := false
	if req.Status != nil {
		becamePaid = *req.Status == domain.InvoicePaid && invoice.Status != domain.InvoicePaid
		invoice.Status = *req.Status
	}
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
	}
	if req.TemplateID != nil {
		if *req.TemplateID != "" {
			if _, err := s.templateRepo.FindTemplateByID(ctx, workspaceID, *req.TemplateID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, apperrors.NewValidationFailedError("invoice template not found in workspace")
				}
				return nil, err
			}
			invoice.TemplateID = req.TemplateID
		} else {
			invoice.TemplateID = nil
		}
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	invoice.LastUpdatedAt = time.Now()
	invoice.LastUpdatedBy = userID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update invoice",
			slog.String("invoice_id", invoiceID))
		return nil, err
	}
	invoice.Version++
	s.cache.Invalidate(cache.ResourceInvoices, workspaceID)

	if becamePaid {
		if err := s.creditSvc.RecordForPaidInvoice(ctx, userID, invoice); err != nil {
			s.LogError(ctx, err, "Salary credit recording failed for paid invoice",
				slog.String("invoice_id", invoiceID))
		}
	}
	return invoice, nil
}

// ReplaceItems swaps the invoice's line items for a manually edited set and
// recomputes the totals under the workspace tax rate.
func (s *invoiceService) ReplaceItems(ctx context.Context, userID, workspaceID, invoiceID string, req dto.ReplaceInvoiceItemsRequest) (*domain.Invoice, []domain.InvoiceItem, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, workspaceID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if len(req.Items) == 0 {
		return nil, nil, apperrors.NewValidationFailedError("an invoice needs at least one item")
	}

	lines := make([]billing.Line, 0, len(req.Items))
	for _, it := range req.Items {
		if !it.Quantity.IsPositive() {
			return nil, nil, apperrors.NewValidationFailedError("item quantity must be positive")
		}
		lines = append(lines, billing.Line{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Quantity.Mul(it.UnitPrice),
		})
	}
	taxRate, err := s.settingsSvc.TaxRate(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	totals := billing.ComputeTotals(lines, taxRate)

	items := itemsFromLines(invoiceID, lines)
	if err := s.invoiceRepo.ReplaceItems(ctx, invoiceID, items); err != nil {
		s.LogError(ctx, err, "Failed to replace invoice items",
			slog.String("invoice_id", invoiceID))
		return nil, nil, err
	}

	invoice.Subtotal = totals.Subtotal
	invoice.Tax = totals.Tax
	invoice.Total = totals.Total
	invoice.LastUpdatedAt = time.Now()
	invoice.LastUpdatedBy = userID
	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update invoice totals after item replace",
			slog.String("invoice_id", invoiceID))
		return nil, nil, err
	}
	invoice.Version++
	s.cache.Invalidate(cache.ResourceInvoices, workspaceID)
	return invoice, items, nil
}

// DeleteInvoice removes an invoice and its items.
func (s *invoiceService) DeleteInvoice(ctx context.Context, userID, workspaceID, invoiceID string) error {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.invoiceRepo.DeleteInvoice(ctx, workspaceID, invoiceID); err != nil {
		s.LogError(ctx, err, "Failed to delete invoice",
			slog.String("invoice_id", invoiceID))
		return err
	}
	s.cache.Invalidate(cache.ResourceInvoices, workspaceID)
	s.LogInfo(ctx, "Invoice deleted",
		slog.String("invoice_id", invoiceID),
		slog.String("workspace_id", workspaceID))
	return nil
}

// nextInvoiceNumber derives `{prefix}-{YYYYMM}-{NNN}` from the numbers
// already issued in the period. When the lookup fails the invoice still
// goes out under a timestamp fallback number.
func (s *invoiceService) nextInvoiceNumber(ctx context.Context, workspaceID string, period time.Time) string {
	prefix, err := s.settingsSvc.InvoicePrefix(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve invoice prefix, using fallback number",
			slog.String("workspace_id", workspaceID))
		return billing.FallbackInvoiceNumber(time.Now())
	}
	existing, err := s.invoiceRepo.ListInvoiceNumbersByPeriod(ctx, workspaceID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to list period invoice numbers, using fallback number",
			slog.String("workspace_id", workspaceID))
		return billing.FallbackInvoiceNumber(time.Now())
	}
	seq := billing.NextSequence(existing, prefix, period)
	return billing.FormatInvoiceNumber(prefix, period, seq)
}

func itemsFromLines(invoiceID string, lines []billing.Line) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, len(lines))
	for i, l := range lines {
		items[i] = domain.InvoiceItem{
			ItemID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Total:       l.Total,
			Position:    i + 1,
		}
	}
	return items
}
