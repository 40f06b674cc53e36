package repositories

import (
	"context"
	"time"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// TimesheetReader defines read operations for timesheet entries.
type TimesheetReader interface {
	FindEntryByID(ctx context.Context, workspaceID, entryID string) (*domain.TimesheetEntry, error)
	ListEntriesByWorkspace(ctx context.Context, workspaceID string) ([]domain.TimesheetEntry, error)

	// ListEntriesByMonth returns the entries whose date falls in the
	// calendar month containing the given time.
	ListEntriesByMonth(ctx context.Context, workspaceID string, month time.Time) ([]domain.TimesheetEntry, error)
}

// TimesheetWriter defines write operations for timesheet entries.
type TimesheetWriter interface {
	SaveEntry(ctx context.Context, entry domain.TimesheetEntry) error
	UpdateEntry(ctx context.Context, entry domain.TimesheetEntry) error
	DeleteEntry(ctx context.Context, workspaceID, entryID string) error
}

// TimesheetRepositoryFacade combines all timesheet repository interfaces.
type TimesheetRepositoryFacade interface {
	TimesheetReader
	TimesheetWriter
}
