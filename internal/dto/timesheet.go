package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// CreateTimesheetEntryRequest defines data for creating a timesheet entry.
type CreateTimesheetEntryRequest struct {
	ProjectID   string          `json:"projectID" binding:"required"`
	Date        time.Time       `json:"date" binding:"required" time_format:"2006-01-02"`
	Hours       decimal.Decimal `json:"hours" binding:"required"`
	Description string          `json:"description"`
	Billable    bool            `json:"billable"`
}

// UpdateTimesheetEntryRequest defines data for updating an entry. Nil fields are untouched.
type UpdateTimesheetEntryRequest struct {
	ProjectID   *string          `json:"projectID"`
	Date        *time.Time       `json:"date" time_format:"2006-01-02"`
	Hours       *decimal.Decimal `json:"hours"`
	Description *string          `json:"description"`
	Billable    *bool            `json:"billable"`
}

// TimesheetEntryResponse defines data returned for an entry. Total is
// derived from the project's hourly rate for billable entries.
type TimesheetEntryResponse struct {
	EntryID     string          `json:"entryID"`
	WorkspaceID string          `json:"workspaceID"`
	ProjectID   string          `json:"projectID"`
	Date        time.Time       `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	Billable    bool            `json:"billable"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToTimesheetEntryResponse converts a domain entry plus its project rate to DTO.
func ToTimesheetEntryResponse(e *domain.TimesheetEntry, hourlyRate decimal.Decimal) TimesheetEntryResponse {
	return TimesheetEntryResponse{
		EntryID:     e.EntryID,
		WorkspaceID: e.WorkspaceID,
		ProjectID:   e.ProjectID,
		Date:        e.Date,
		Hours:       e.Hours,
		Description: e.Description,
		Billable:    e.Billable,
		Total:       e.Total(hourlyRate),
		CreatedAt:   e.CreatedAt,
	}
}
