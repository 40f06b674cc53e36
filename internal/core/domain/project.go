package domain

import "github.com/shopspring/decimal"

// BillingType distinguishes hourly projects from fixed monthly fee projects.
type BillingType string

const (
	BillingHourly BillingType = "hourly"
	BillingFixed  BillingType = "fixed"
)

// ProjectStatus is the lifecycle status of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on-hold"
)

// Project belongs to one client. Hourly projects carry an hourly rate,
// fixed projects a flat monthly amount.
type Project struct {
	ProjectID   string          `json:"projectID" db:"project_id"`
	WorkspaceID string          `json:"workspaceID" db:"workspace_id"`
	ClientID    string          `json:"clientID" db:"client_id"`
	Name        string          `json:"name" db:"name"`
	Code        string          `json:"code" db:"code"`
	BillingType BillingType     `json:"billingType" db:"billing_type"`
	HourlyRate  decimal.Decimal `json:"hourlyRate" db:"hourly_rate"`
	FixedAmount decimal.Decimal `json:"fixedAmount" db:"fixed_amount"`
	Status      ProjectStatus   `json:"status" db:"status"`
	AuditFields
}

// IsFixed reports whether the project bills a flat recurring monthly amount.
func (p Project) IsFixed() bool {
	return p.BillingType == BillingFixed
}
