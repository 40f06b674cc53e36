package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/export"
)

// exportService implements the ExportSvcFacade interface.
type exportService struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceReader
	templateRepo portsrepo.InvoiceTemplateRepository
	clientRepo   portsrepo.ClientReader
	settingsSvc  portssvc.SettingsSvcFacade
}

// NewExportService creates a new export service with the provided dependencies.
func NewExportService(invoiceRepo portsrepo.InvoiceReader, templateRepo portsrepo.InvoiceTemplateRepository, clientRepo portsrepo.ClientReader, settingsSvc portssvc.SettingsSvcFacade, authorizer portssvc.WorkspaceAuthorizerSvc) portssvc.ExportSvcFacade {
	return &exportService{
		BaseService:  BaseService{WorkspaceAuthorizer: authorizer},
		invoiceRepo:  invoiceRepo,
		templateRepo: templateRepo,
		clientRepo:   clientRepo,
		settingsSvc:  settingsSvc,
	}
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// ExportInvoicePDF renders the invoice as a PDF download.
func (s *exportService) ExportInvoicePDF(ctx context.Context, userID, workspaceID, invoiceID string) ([]byte, string, error) {
	doc, err := s.buildDocument(ctx, userID, workspaceID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	data, err := export.RenderPDF(*doc)
	if err != nil {
		s.LogError(ctx, err, "Failed to render invoice PDF",
			slog.String("invoice_id", invoiceID))
		return nil, "", err
	}
	return data, fmt.Sprintf("%s.pdf", doc.Invoice.InvoiceNumber), nil
}

// ExportInvoiceExcel renders the invoice as an xlsx download.
func (s *exportService) ExportInvoiceExcel(ctx context.Context, userID, workspaceID, invoiceID string) ([]byte, string, error) {
	doc, err := s.buildDocument(ctx, userID, workspaceID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	data, err := export.RenderExcel(*doc)
	if err != nil {
		s.LogError(ctx, err, "Failed to render invoice workbook",
			slog.String("invoice_id", invoiceID))
		return nil, "", err
	}
	return data, fmt.Sprintf("%s.xlsx", doc.Invoice.InvoiceNumber), nil
}

func (s *exportService) buildDocument(ctx context.Context, userID, workspaceID, invoiceID string) (*export.InvoiceDocument, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, workspaceID, invoiceID)
	if err != nil {
		return nil, err
	}
	items, err := s.invoiceRepo.ListItemsByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindClientByID(ctx, workspaceID, invoice.ClientID)
	if err != nil {
		return nil, err
	}

	var template *domain.InvoiceTemplate
	if invoice.TemplateID != nil && *invoice.TemplateID != "" {
		template, err = s.templateRepo.FindTemplateByID(ctx, workspaceID, *invoice.TemplateID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	currency := ""
	if settings, err := s.settingsSvc.GetSettings(ctx, userID, workspaceID); err == nil {
		currency = settings[domain.SettingCurrency]
	}

	return &export.InvoiceDocument{
		Invoice:  *invoice,
		Items:    items,
		Client:   *client,
		Template: template,
		Currency: currency,
	}, nil
}
