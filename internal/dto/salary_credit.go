package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// SalaryCreditResponse defines data returned for a salary credit.
type SalaryCreditResponse struct {
	CreditID     string          `json:"creditID"`
	ProjectID    string          `json:"projectID"`
	WorkMonth    time.Time       `json:"workMonth"`
	CreditedDate time.Time       `json:"creditedDate"`
	Amount       decimal.Decimal `json:"amount"`
	Notes        string          `json:"notes"`
}

// ToSalaryCreditResponse converts domain.SalaryCredit to DTO.
func ToSalaryCreditResponse(sc *domain.SalaryCredit) SalaryCreditResponse {
	return SalaryCreditResponse{
		CreditID:     sc.CreditID,
		ProjectID:    sc.ProjectID,
		WorkMonth:    sc.WorkMonth,
		CreditedDate: sc.CreditedDate,
		Amount:       sc.Amount,
		Notes:        sc.Notes,
	}
}

// ToListSalaryCreditsResponse converts a slice of domain.SalaryCredit to DTOs.
func ToListSalaryCreditsResponse(scs []domain.SalaryCredit) []SalaryCreditResponse {
	list := make([]SalaryCreditResponse, len(scs))
	for i, sc := range scs {
		list[i] = ToSalaryCreditResponse(&sc)
	}
	return list
}
