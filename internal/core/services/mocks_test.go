package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
)

// Shared mock repositories and services used across the service tests.

type MockWorkspaceAuthorizer struct {
	mock.Mock
}

func (m *MockWorkspaceAuthorizer) AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.UserWorkspaceRole) error {
	args := m.Called(ctx, userID, workspaceID, requiredRole)
	return args.Error(0)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, workspaceID, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, workspaceID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListProjectsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListProjectsByClient(ctx context.Context, workspaceID, clientID string) ([]domain.Project, error) {
	args := m.Called(ctx, workspaceID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteProject(ctx context.Context, workspaceID, projectID string) error {
	args := m.Called(ctx, workspaceID, projectID)
	return args.Error(0)
}

type MockSalaryCreditRepository struct {
	mock.Mock
}

func (m *MockSalaryCreditRepository) FindCreditByPeriod(ctx context.Context, projectID string, workMonth time.Time) (*domain.SalaryCredit, error) {
	args := m.Called(ctx, projectID, workMonth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalaryCredit), args.Error(1)
}

func (m *MockSalaryCreditRepository) ListCreditsByProjects(ctx context.Context, workspaceID string, projectIDs []string) ([]domain.SalaryCredit, error) {
	args := m.Called(ctx, workspaceID, projectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalaryCredit), args.Error(1)
}

func (m *MockSalaryCreditRepository) SaveCredit(ctx context.Context, credit domain.SalaryCredit) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, workspaceID, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, workspaceID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClientsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Client, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

type MockTimesheetRepository struct {
	mock.Mock
}

func (m *MockTimesheetRepository) FindEntryByID(ctx context.Context, workspaceID, entryID string) (*domain.TimesheetEntry, error) {
	args := m.Called(ctx, workspaceID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimesheetEntry), args.Error(1)
}

func (m *MockTimesheetRepository) ListEntriesByWorkspace(ctx context.Context, workspaceID string) ([]domain.TimesheetEntry, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimesheetEntry), args.Error(1)
}

func (m *MockTimesheetRepository) ListEntriesByMonth(ctx context.Context, workspaceID string, month time.Time) ([]domain.TimesheetEntry, error) {
	args := m.Called(ctx, workspaceID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimesheetEntry), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, workspaceID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, workspaceID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByWorkspace(ctx context.Context, workspaceID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListItemsByInvoice(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceItem), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoiceNumbersByPeriod(ctx context.Context, workspaceID string, period time.Time) ([]string, error) {
	args := m.Called(ctx, workspaceID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	args := m.Called(ctx, invoice, items)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ReplaceItems(ctx context.Context, invoiceID string, items []domain.InvoiceItem) error {
	args := m.Called(ctx, invoiceID, items)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, workspaceID, invoiceID string) error {
	args := m.Called(ctx, workspaceID, invoiceID)
	return args.Error(0)
}

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindTemplateByID(ctx context.Context, workspaceID, templateID string) (*domain.InvoiceTemplate, error) {
	args := m.Called(ctx, workspaceID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ListTemplatesByWorkspace(ctx context.Context, workspaceID string) ([]domain.InvoiceTemplate, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceTemplate), args.Error(1)
}

func (m *MockTemplateRepository) SaveTemplate(ctx context.Context, template domain.InvoiceTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) UpdateTemplate(ctx context.Context, template domain.InvoiceTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) DeleteTemplate(ctx context.Context, workspaceID, templateID string) error {
	args := m.Called(ctx, workspaceID, templateID)
	return args.Error(0)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSettings(ctx context.Context, userID, workspaceID string) (domain.WorkspaceSettings, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.WorkspaceSettings), args.Error(1)
}

func (m *MockSettingsService) UpdateSettings(ctx context.Context, userID, workspaceID string, settings domain.WorkspaceSettings) (domain.WorkspaceSettings, error) {
	args := m.Called(ctx, userID, workspaceID, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.WorkspaceSettings), args.Error(1)
}

func (m *MockSettingsService) TaxRate(ctx context.Context, workspaceID string) (decimal.Decimal, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSettingsService) InvoicePrefix(ctx context.Context, workspaceID string) (string, error) {
	args := m.Called(ctx, workspaceID)
	return args.String(0), args.Error(1)
}

type MockSalaryCreditService struct {
	mock.Mock
}

func (m *MockSalaryCreditService) MarkCredited(ctx context.Context, userID, workspaceID string, req dto.MarkCreditedRequest) (*domain.SalaryCredit, error) {
	args := m.Called(ctx, userID, workspaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalaryCredit), args.Error(1)
}

func (m *MockSalaryCreditService) RecordForPaidInvoice(ctx context.Context, userID string, invoice *domain.Invoice) error {
	args := m.Called(ctx, userID, invoice)
	return args.Error(0)
}

func (m *MockSalaryCreditService) ListCredits(ctx context.Context, userID, workspaceID string, projectIDs []string) ([]domain.SalaryCredit, error) {
	args := m.Called(ctx, userID, workspaceID, projectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalaryCredit), args.Error(1)
}
