package tracking

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Step is the tagged state of the guided timesheet entry conversation.
type Step string

const (
	StepProject     Step = "project"
	StepDate        Step = "date"
	StepHours       Step = "hours"
	StepDescription Step = "description"
	StepBillable    Step = "billable"
	StepConfirm     Step = "confirm"
	StepDone        Step = "done"
)

// Draft accumulates the answers collected so far.
type Draft struct {
	ProjectID   string          `json:"projectID"`
	Date        time.Time       `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	Billable    bool            `json:"billable"`
}

// Prompt returns the question shown when entering a step.
func Prompt(step Step, draft Draft) string {
	switch step {
	case StepProject:
		return "Which project is this entry for?"
	case StepDate:
		return "What date was the work done? (YYYY-MM-DD, or 'today')"
	case StepHours:
		return "How many hours?"
	case StepDescription:
		return "Briefly, what did you work on?"
	case StepBillable:
		return "Is this billable? (yes/no)"
	case StepConfirm:
		return fmt.Sprintf("Log %s hours on %s for project %s (%q, billable: %t)? (yes/no)",
			draft.Hours.String(), draft.Date.Format("2006-01-02"), draft.ProjectID,
			draft.Description, draft.Billable)
	case StepDone:
		return "Entry recorded."
	default:
		return ""
	}
}

// Advance is the pure transition function of the guided entry flow: given
// the current step, the draft so far, and the user's input, it returns the
// next step, the updated draft, and the message to show. Invalid input
// keeps the current step and returns a corrective message. The clock is
// passed in so "today" stays deterministic for callers and tests.
func Advance(step Step, draft Draft, input string, now time.Time) (Step, Draft, string) {
	input = strings.TrimSpace(input)

	switch step {
	case StepProject:
		if input == "" {
			return step, draft, "Please pick a project to continue."
		}
		draft.ProjectID = input
		return StepDate, draft, Prompt(StepDate, draft)

	case StepDate:
		var date time.Time
		if strings.EqualFold(input, "today") {
			date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		} else {
			parsed, err := time.ParseInLocation("2006-01-02", input, time.UTC)
			if err != nil {
				return step, draft, "That doesn't look like a date. Use YYYY-MM-DD or 'today'."
			}
			date = parsed
		}
		draft.Date = date
		return StepHours, draft, Prompt(StepHours, draft)

	case StepHours:
		hours, err := decimal.NewFromString(input)
		if err != nil || !hours.IsPositive() {
			return step, draft, "Hours must be a positive number, e.g. 1.5."
		}
		draft.Hours = hours
		return StepDescription, draft, Prompt(StepDescription, draft)

	case StepDescription:
		if input == "" {
			return step, draft, "A short description is required."
		}
		draft.Description = input
		return StepBillable, draft, Prompt(StepBillable, draft)

	case StepBillable:
		switch strings.ToLower(input) {
		case "yes", "y":
			draft.Billable = true
		case "no", "n":
			draft.Billable = false
		default:
			return step, draft, "Please answer yes or no."
		}
		return StepConfirm, draft, Prompt(StepConfirm, draft)

	case StepConfirm:
		switch strings.ToLower(input) {
		case "yes", "y":
			return StepDone, draft, Prompt(StepDone, draft)
		case "no", "n":
			return StepProject, Draft{}, "Okay, starting over. " + Prompt(StepProject, Draft{})
		default:
			return step, draft, "Please answer yes or no."
		}

	default:
		// Done (or unknown) is terminal; restart.
		return StepProject, Draft{}, Prompt(StepProject, Draft{})
	}
}
