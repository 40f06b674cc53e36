package tracking_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timekeep-hq/timekeep_app/internal/tracking"
)

var guidedNow = time.Date(2025, 3, 15, 14, 0, 0, 0, time.UTC)

func TestGuidedHappyPath(t *testing.T) {
	step := tracking.StepProject
	draft := tracking.Draft{}
	var msg string

	step, draft, _ = tracking.Advance(step, draft, "p-consulting", guidedNow)
	require.Equal(t, tracking.StepDate, step)
	assert.Equal(t, "p-consulting", draft.ProjectID)

	step, draft, _ = tracking.Advance(step, draft, "2025-03-14", guidedNow)
	require.Equal(t, tracking.StepHours, step)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), draft.Date)

	step, draft, _ = tracking.Advance(step, draft, "1.5", guidedNow)
	require.Equal(t, tracking.StepDescription, step)
	assert.True(t, draft.Hours.Equal(decimal.RequireFromString("1.5")))

	step, draft, _ = tracking.Advance(step, draft, "design review", guidedNow)
	require.Equal(t, tracking.StepBillable, step)

	step, draft, msg = tracking.Advance(step, draft, "yes", guidedNow)
	require.Equal(t, tracking.StepConfirm, step)
	assert.True(t, draft.Billable)
	assert.Contains(t, msg, "design review")

	step, _, _ = tracking.Advance(step, draft, "yes", guidedNow)
	assert.Equal(t, tracking.StepDone, step)
}

func TestGuidedTodayShortcut(t *testing.T) {
	draft := tracking.Draft{ProjectID: "p1"}
	step, draft, _ := tracking.Advance(tracking.StepDate, draft, "Today", guidedNow)
	require.Equal(t, tracking.StepHours, step)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), draft.Date)
}

func TestGuidedInvalidInputKeepsStep(t *testing.T) {
	tests := []struct {
		step  tracking.Step
		input string
	}{
		{tracking.StepProject, ""},
		{tracking.StepDate, "not-a-date"},
		{tracking.StepHours, "zero"},
		{tracking.StepHours, "-2"},
		{tracking.StepHours, "0"},
		{tracking.StepDescription, "   "},
		{tracking.StepBillable, "maybe"},
		{tracking.StepConfirm, "maybe"},
	}
	for _, tc := range tests {
		before := tracking.Draft{ProjectID: "p1", Hours: decimal.RequireFromString("1")}
		step, draft, msg := tracking.Advance(tc.step, before, tc.input, guidedNow)
		assert.Equal(t, tc.step, step, "step %s input %q", tc.step, tc.input)
		assert.Equal(t, before, draft, "draft unchanged for step %s input %q", tc.step, tc.input)
		assert.NotEmpty(t, msg)
	}
}

func TestGuidedDecliningConfirmationStartsOver(t *testing.T) {
	draft := tracking.Draft{ProjectID: "p1", Description: "something"}
	step, draft, _ := tracking.Advance(tracking.StepConfirm, draft, "no", guidedNow)
	assert.Equal(t, tracking.StepProject, step)
	assert.Equal(t, tracking.Draft{}, draft)
}

func TestGuidedDoneIsTerminal(t *testing.T) {
	step, draft, _ := tracking.Advance(tracking.StepDone, tracking.Draft{ProjectID: "p1"}, "anything", guidedNow)
	assert.Equal(t, tracking.StepProject, step)
	assert.Equal(t, tracking.Draft{}, draft)
}
