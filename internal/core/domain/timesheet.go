package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimesheetEntry is one dated block of work booked against a project.
type TimesheetEntry struct {
	EntryID     string          `json:"entryID" db:"entry_id"`
	WorkspaceID string          `json:"workspaceID" db:"workspace_id"`
	ProjectID   string          `json:"projectID" db:"project_id"`
	Date        time.Time       `json:"date" db:"entry_date"`
	Hours       decimal.Decimal `json:"hours" db:"hours"`
	Description string          `json:"description" db:"description"`
	Billable    bool            `json:"billable" db:"billable"`
	AuditFields
}

// Total computes the revenue for the entry against its project's hourly
// rate. Non-billable entries contribute zero.
func (e TimesheetEntry) Total(hourlyRate decimal.Decimal) decimal.Decimal {
	if !e.Billable {
		return decimal.Zero
	}
	return e.Hours.Mul(hourlyRate)
}
