package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	"github.com/timekeep-hq/timekeep_app/internal/core/services"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
)

type SalaryCreditServiceTestSuite struct {
	suite.Suite
	mockCreditRepo  *MockSalaryCreditRepository
	mockProjectRepo *MockProjectRepository
	mockAuthorizer  *MockWorkspaceAuthorizer
	service         portssvc.SalaryCreditSvcFacade
}

func (suite *SalaryCreditServiceTestSuite) SetupTest() {
	suite.mockCreditRepo = new(MockSalaryCreditRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockAuthorizer = new(MockWorkspaceAuthorizer)
	suite.service = services.NewSalaryCreditService(suite.mockCreditRepo, suite.mockProjectRepo, suite.mockAuthorizer)
}

func (suite *SalaryCreditServiceTestSuite) fixedProject() *domain.Project {
	return &domain.Project{
		ProjectID:   "p-retainer",
		WorkspaceID: "ws1",
		ClientID:    "c-acme",
		Name:        "Retainer",
		BillingType: domain.BillingFixed,
		FixedAmount: decimal.RequireFromString("2000"),
	}
}

func (suite *SalaryCreditServiceTestSuite) authorizeMember() {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, "u1", "ws1", domain.RoleMember).Return(nil).Once()
}

func (suite *SalaryCreditServiceTestSuite) TestMarkCredited_CreditsPreviousMonth() {
	ctx := context.Background()
	suite.authorizeMember()
	suite.mockProjectRepo.On("FindProjectByID", ctx, "ws1", "p-retainer").Return(suite.fixedProject(), nil).Once()

	// Credited on any day of March targets February.
	creditedDate := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	wantWorkMonth := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	suite.mockCreditRepo.On("FindCreditByPeriod", ctx, "p-retainer", wantWorkMonth).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCreditRepo.On("SaveCredit", ctx, mock.MatchedBy(func(c domain.SalaryCredit) bool {
		return c.WorkMonth.Equal(wantWorkMonth) && c.Amount.Equal(decimal.RequireFromString("2000"))
	})).Return(nil).Once()

	credit, err := suite.service.MarkCredited(ctx, "u1", "ws1", dto.MarkCreditedRequest{
		ProjectID:    "p-retainer",
		CreditedDate: creditedDate,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(credit)
	suite.True(credit.WorkMonth.Equal(wantWorkMonth))
	suite.True(credit.Amount.Equal(decimal.RequireFromString("2000")), "defaults to the project's fixed amount")
	suite.mockCreditRepo.AssertExpectations(suite.T())
}

func (suite *SalaryCreditServiceTestSuite) TestMarkCredited_MonthEndStillCreditsPreviousMonth() {
	// Day-31 dates must not slip back into the credited month via date
	// normalization: March 31 minus one month is not "February 31".
	tests := []struct {
		creditedDate  time.Time
		wantWorkMonth time.Time
	}{
		{time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 3, 29, 0, 0, 0, 0, time.UTC), time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		suite.SetupTest()
		ctx := context.Background()
		suite.authorizeMember()
		suite.mockProjectRepo.On("FindProjectByID", ctx, "ws1", "p-retainer").Return(suite.fixedProject(), nil).Once()
		suite.mockCreditRepo.On("FindCreditByPeriod", ctx, "p-retainer", tc.wantWorkMonth).
			Return(nil, apperrors.ErrNotFound).Once()
		suite.mockCreditRepo.On("SaveCredit", ctx, mock.AnythingOfType("domain.SalaryCredit")).Return(nil).Once()

		credit, err := suite.service.MarkCredited(ctx, "u1", "ws1", dto.MarkCreditedRequest{
			ProjectID:    "p-retainer",
			CreditedDate: tc.creditedDate,
		})

		suite.Require().NoError(err, "credited %s", tc.creditedDate.Format("2006-01-02"))
		suite.True(credit.WorkMonth.Equal(tc.wantWorkMonth),
			"credited %s: want work month %s, got %s",
			tc.creditedDate.Format("2006-01-02"), tc.wantWorkMonth.Format("2006-01-02"), credit.WorkMonth.Format("2006-01-02"))
		suite.mockCreditRepo.AssertExpectations(suite.T())
	}
}

func (suite *SalaryCreditServiceTestSuite) TestMarkCredited_JanuaryCreditsPreviousDecember() {
	ctx := context.Background()
	suite.authorizeMember()
	suite.mockProjectRepo.On("FindProjectByID", ctx, "ws1", "p-retainer").Return(suite.fixedProject(), nil).Once()

	creditedDate := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	wantWorkMonth := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	suite.mockCreditRepo.On("FindCreditByPeriod", ctx, "p-retainer", wantWorkMonth).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCreditRepo.On("SaveCredit", ctx, mock.AnythingOfType("domain.SalaryCredit")).Return(nil).Once()

	credit, err := suite.service.MarkCredited(ctx, "u1", "ws1", dto.MarkCreditedRequest{
		ProjectID:    "p-retainer",
		CreditedDate: creditedDate,
	})

	suite.Require().NoError(err)
	suite.True(credit.WorkMonth.Equal(wantWorkMonth), "year boundary wraps to December")
}

func (suite *SalaryCreditServiceTestSuite) TestMarkCredited_ExplicitAmountOverrides() {
	ctx := context.Background()
	suite.authorizeMember()
	suite.mockProjectRepo.On("FindProjectByID", ctx, "ws1", "p-retainer").Return(suite.fixedProject(), nil).Once()
	suite.mockCreditRepo.On("FindCreditByPeriod", ctx, "p-retainer", mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCreditRepo.On("SaveCredit", ctx, mock.AnythingOfType("domain.SalaryCredit")).Return(nil).Once()

	amount := decimal.RequireFromString("1500")
	credit, err := suite.service.MarkCredited(ctx, "u1", "ws1", dto.MarkCreditedRequest{
		ProjectID:    "p-retainer",
		CreditedDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Amount:       &amount,
	})

	suite.Require().NoError(err)
	suite.True(credit.Amount.Equal(amount))
}

func (suite *SalaryCreditServiceTestSuite) TestMarkCredited_DuplicatePeriodRejected() {
	ctx := context.Background()
	suite.authorizeMember()
	suite.mockProjectRepo.On("FindProjectByID", ctx, "ws1", "p-retainer").Return(suite.fixedProject(), nil).Once()

	wantWorkMonth := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	suite.mockCreditRepo.On("FindCreditByPeriod", ctx, "p-retainer", wantWorkMonth).
		Return(&domain.SalaryCredit{CreditID: "existing"}, nil).Once()

	_, err := suite.service.MarkCredited(ctx, "u1", "ws1", dto.MarkCreditedRequest{
		ProjectID:    "p-retainer",
		CreditedDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicatePeriod)
	suite.mockCreditRepo.AssertNotCalled(suite.T(), "SaveCredit", mock.Anything, mock.Anything)
}

func (suite *SalaryCreditServiceTestSuite) TestMarkCredited_HourlyProjectRejected() {
	ctx := context.Background()
	suite.authorizeMember()
	hourly := &domain.Project{
		ProjectID:   "p-consulting",
		WorkspaceID: "ws1",
		BillingType: domain.BillingHourly,
		HourlyRate:  decimal.RequireFromString("50"),
	}
	suite.mockProjectRepo.On("FindProjectByID", ctx, "ws1", "p-consulting").Return(hourly, nil).Once()

	_, err := suite.service.MarkCredited(ctx, "u1", "ws1", dto.MarkCreditedRequest{
		ProjectID:    "p-consulting",
		CreditedDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SalaryCreditServiceTestSuite) TestRecordForPaidInvoice_CreditsIssueMonth() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID:     "inv1",
		WorkspaceID:   "ws1",
		ClientID:      "c-acme",
		InvoiceNumber: "ACME-202503-001",
		DateIssued:    time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Total:         decimal.RequireFromString("2544"),
	}
	wantWorkMonth := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.mockProjectRepo.On("ListProjectsByClient", ctx, "ws1", "c-acme").
		Return([]domain.Project{*suite.fixedProject()}, nil).Once()
	suite.mockCreditRepo.On("FindCreditByPeriod", ctx, "p-retainer", wantWorkMonth).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCreditRepo.On("SaveCredit", ctx, mock.MatchedBy(func(c domain.SalaryCredit) bool {
		return c.WorkMonth.Equal(wantWorkMonth) &&
			c.Amount.Equal(decimal.RequireFromString("2000")) &&
			c.Notes == "Auto-credited from invoice ACME-202503-001"
	})).Return(nil).Once()

	err := suite.service.RecordForPaidInvoice(ctx, "u1", invoice)
	suite.Require().NoError(err)
	suite.mockCreditRepo.AssertExpectations(suite.T())
}

func (suite *SalaryCreditServiceTestSuite) TestRecordForPaidInvoice_SkipsAlreadyCredited() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID:   "inv1",
		WorkspaceID: "ws1",
		ClientID:    "c-acme",
		DateIssued:  time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	wantWorkMonth := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.mockProjectRepo.On("ListProjectsByClient", ctx, "ws1", "c-acme").
		Return([]domain.Project{*suite.fixedProject()}, nil).Once()
	suite.mockCreditRepo.On("FindCreditByPeriod", ctx, "p-retainer", wantWorkMonth).
		Return(&domain.SalaryCredit{CreditID: "existing"}, nil).Once()

	err := suite.service.RecordForPaidInvoice(ctx, "u1", invoice)
	suite.Require().NoError(err, "an already-credited month is a silent skip")
	suite.mockCreditRepo.AssertNotCalled(suite.T(), "SaveCredit", mock.Anything, mock.Anything)
}

func (suite *SalaryCreditServiceTestSuite) TestRecordForPaidInvoice_IgnoresHourlyProjects() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID:   "inv1",
		WorkspaceID: "ws1",
		ClientID:    "c-acme",
		DateIssued:  time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	hourly := domain.Project{ProjectID: "p-consulting", ClientID: "c-acme", BillingType: domain.BillingHourly}

	suite.mockProjectRepo.On("ListProjectsByClient", ctx, "ws1", "c-acme").
		Return([]domain.Project{hourly}, nil).Once()

	err := suite.service.RecordForPaidInvoice(ctx, "u1", invoice)
	suite.Require().NoError(err)
	suite.mockCreditRepo.AssertNotCalled(suite.T(), "SaveCredit", mock.Anything, mock.Anything)
}

func (suite *SalaryCreditServiceTestSuite) TestRecordForPaidInvoice_LostRaceIsSilent() {
	ctx := context.Background()
	invoice := &domain.Invoice{
		InvoiceID:     "inv1",
		WorkspaceID:   "ws1",
		ClientID:      "c-acme",
		InvoiceNumber: "ACME-202503-001",
		DateIssued:    time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	suite.mockProjectRepo.On("ListProjectsByClient", ctx, "ws1", "c-acme").
		Return([]domain.Project{*suite.fixedProject()}, nil).Once()
	suite.mockCreditRepo.On("FindCreditByPeriod", ctx, "p-retainer", mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCreditRepo.On("SaveCredit", ctx, mock.AnythingOfType("domain.SalaryCredit")).
		Return(apperrors.ErrDuplicatePeriod).Once()

	err := suite.service.RecordForPaidInvoice(ctx, "u1", invoice)
	suite.Require().NoError(err, "a concurrent writer winning the insert is not an error")
}

func (suite *SalaryCreditServiceTestSuite) TestListCredits() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, "u1", "ws1", domain.RoleReadOnly).Return(nil).Once()
	credits := []domain.SalaryCredit{{CreditID: "cr1", ProjectID: "p-retainer"}}
	suite.mockCreditRepo.On("ListCreditsByProjects", ctx, "ws1", []string{"p-retainer"}).Return(credits, nil).Once()

	got, err := suite.service.ListCredits(ctx, "u1", "ws1", []string{"p-retainer"})
	suite.Require().NoError(err)
	suite.Len(got, 1)
}

func TestSalaryCreditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SalaryCreditServiceTestSuite))
}
