package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/cache"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/core/services"
)

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSettings(ctx context.Context, workspaceID string) (domain.WorkspaceSettings, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.WorkspaceSettings), args.Error(1)
}

func (m *MockSettingsRepository) UpsertSettings(ctx context.Context, workspaceID string, settings domain.WorkspaceSettings, updatedBy string) error {
	args := m.Called(ctx, workspaceID, settings, updatedBy)
	return args.Error(0)
}

type MockWorkspaceReader struct {
	mock.Mock
}

func (m *MockWorkspaceReader) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceReader) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

type SettingsServiceTestSuite struct {
	suite.Suite
	mockSettingsRepo  *MockSettingsRepository
	mockWorkspaceRepo *MockWorkspaceReader
	mockAuthorizer    *MockWorkspaceAuthorizer
	service           portssvc.SettingsSvcFacade
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.mockWorkspaceRepo = new(MockWorkspaceReader)
	suite.mockAuthorizer = new(MockWorkspaceAuthorizer)
	suite.service = services.NewSettingsService(suite.mockSettingsRepo, suite.mockWorkspaceRepo, cache.NewService(), suite.mockAuthorizer)
}

func (suite *SettingsServiceTestSuite) TestTaxRate_Configured() {
	ctx := context.Background()
	suite.mockSettingsRepo.On("GetSettings", mock.Anything, "ws1").
		Return(domain.WorkspaceSettings{domain.SettingTaxRate: "6"}, nil).Once()

	rate, err := suite.service.TaxRate(ctx, "ws1")
	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("6")))
}

func (suite *SettingsServiceTestSuite) TestTaxRate_DefaultsToZero() {
	ctx := context.Background()

	tests := []domain.WorkspaceSettings{
		{},                                     // unset
		{domain.SettingTaxRate: ""},            // empty
		{domain.SettingTaxRate: "six percent"}, // malformed
		{domain.SettingTaxRate: "-3"},          // negative
	}
	for _, settings := range tests {
		suite.SetupTest()
		suite.mockSettingsRepo.On("GetSettings", mock.Anything, "ws1").Return(settings, nil).Once()

		rate, err := suite.service.TaxRate(ctx, "ws1")
		suite.Require().NoError(err, "settings %v", settings)
		suite.True(rate.IsZero(), "settings %v gave %s", settings, rate)
	}
}

func (suite *SettingsServiceTestSuite) TestInvoicePrefix_Configured() {
	ctx := context.Background()
	suite.mockSettingsRepo.On("GetSettings", mock.Anything, "ws1").
		Return(domain.WorkspaceSettings{domain.SettingInvoicePrefix: "ACME"}, nil).Once()

	prefix, err := suite.service.InvoicePrefix(ctx, "ws1")
	suite.Require().NoError(err)
	suite.Equal("ACME", prefix)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "FindWorkspaceByID", mock.Anything, mock.Anything)
}

func (suite *SettingsServiceTestSuite) TestInvoicePrefix_FallsBackToWorkspaceSlug() {
	ctx := context.Background()
	suite.mockSettingsRepo.On("GetSettings", mock.Anything, "ws1").
		Return(domain.WorkspaceSettings{}, nil).Once()
	suite.mockWorkspaceRepo.On("FindWorkspaceByID", mock.Anything, "ws1").
		Return(&domain.Workspace{WorkspaceID: "ws1", Name: "Acme Corp"}, nil).Once()

	prefix, err := suite.service.InvoicePrefix(ctx, "ws1")
	suite.Require().NoError(err)
	suite.Equal("ACMECORP", prefix)
}

func (suite *SettingsServiceTestSuite) TestGetSettings_UsesCacheOnSecondRead() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, "u1", "ws1", domain.RoleReadOnly).Return(nil).Twice()
	suite.mockSettingsRepo.On("GetSettings", mock.Anything, "ws1").
		Return(domain.WorkspaceSettings{domain.SettingCurrency: "EUR"}, nil).Once()

	first, err := suite.service.GetSettings(ctx, "u1", "ws1")
	suite.Require().NoError(err)
	second, err := suite.service.GetSettings(ctx, "u1", "ws1")
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.mockSettingsRepo.AssertNumberOfCalls(suite.T(), "GetSettings", 1)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_InvalidatesAndRefetches() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, "u1", "ws1", domain.RoleAdmin).Return(nil).Once()

	update := domain.WorkspaceSettings{domain.SettingTaxRate: "8"}
	suite.mockSettingsRepo.On("UpsertSettings", mock.Anything, "ws1", update, "u1").Return(nil).Once()
	suite.mockSettingsRepo.On("GetSettings", mock.Anything, "ws1").
		Return(domain.WorkspaceSettings{domain.SettingTaxRate: "8"}, nil).Once()

	updated, err := suite.service.UpdateSettings(ctx, "u1", "ws1", update)
	suite.Require().NoError(err)
	suite.Equal("8", updated[domain.SettingTaxRate])
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_RejectsEmptyUpdate() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, "u1", "ws1", domain.RoleAdmin).Return(nil).Once()

	_, err := suite.service.UpdateSettings(ctx, "u1", "ws1", domain.WorkspaceSettings{})
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockSettingsRepo.AssertNotCalled(suite.T(), "UpsertSettings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
