package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryCredit records that a fixed-fee project's work month has been paid
// out. At most one credit may exist per (project, work month); the pair is
// unique-constrained in the database.
type SalaryCredit struct {
	CreditID     string          `json:"creditID" db:"credit_id"`
	WorkspaceID  string          `json:"workspaceID" db:"workspace_id"`
	ProjectID    string          `json:"projectID" db:"project_id"`
	WorkMonth    time.Time       `json:"workMonth" db:"work_month"` // always first-of-month UTC
	CreditedDate time.Time       `json:"creditedDate" db:"credited_date"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Notes        string          `json:"notes" db:"notes"`
	AuditFields
}
