package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timekeep-hq/timekeep_app/internal/billing"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

func d(s string) decimal.Decimal {
	dec, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return dec
}

func entry(projectID string, date time.Time, hours string, desc string, billable bool) domain.TimesheetEntry {
	return domain.TimesheetEntry{
		EntryID:     "e-" + desc,
		ProjectID:   projectID,
		Date:        date,
		Hours:       d(hours),
		Description: desc,
		Billable:    billable,
	}
}

func TestBuildLineItems(t *testing.T) {
	issued := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	march := func(day int) time.Time {
		return time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC)
	}

	retainer := domain.Project{
		ProjectID:   "p-retainer",
		ClientID:    "c-acme",
		Name:        "Retainer",
		BillingType: domain.BillingFixed,
		FixedAmount: d("2000"),
	}
	consulting := domain.Project{
		ProjectID:   "p-consulting",
		ClientID:    "c-acme",
		Name:        "Consulting",
		BillingType: domain.BillingHourly,
		HourlyRate:  d("50"),
	}
	otherClient := domain.Project{
		ProjectID:   "p-other",
		ClientID:    "c-other",
		Name:        "Other",
		BillingType: domain.BillingHourly,
		HourlyRate:  d("120"),
	}
	projects := []domain.Project{retainer, consulting, otherClient}

	entries := []domain.TimesheetEntry{
		entry("p-consulting", march(3), "3", "design review", true),
		entry("p-consulting", march(20), "5", "implementation", true),
		entry("p-consulting", march(21), "2", "internal sync", false),                                  // not billable
		entry("p-consulting", time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), "4", "prior month", true), // wrong month
		entry("p-other", march(10), "6", "other client work", true),                                    // other client
		entry("p-unknown", march(11), "1", "orphan", true),                                             // unknown project
	}

	lines := billing.BuildLineItems("c-acme", issued, entries, projects)
	require.Len(t, lines, 3)

	assert.Equal(t, "Consulting - design review", lines[0].Description)
	assert.True(t, lines[0].Total.Equal(d("150")))
	assert.Equal(t, "Consulting - implementation", lines[1].Description)
	assert.True(t, lines[1].Total.Equal(d("250")))

	fee := lines[2]
	assert.Equal(t, "Retainer - Monthly Fee", fee.Description)
	assert.True(t, fee.Quantity.Equal(d("1")))
	assert.True(t, fee.UnitPrice.Equal(d("2000")))
	assert.True(t, fee.Total.Equal(d("2000")))
}

func TestBuildLineItems_FixedFeeBillsEveryInvoiceMonth(t *testing.T) {
	// A fixed project contributes its monthly fee to any invoice generated
	// for its client, whatever month the invoice covers.
	retainer := domain.Project{
		ProjectID:   "p-retainer",
		ClientID:    "c-acme",
		Name:        "Retainer",
		BillingType: domain.BillingFixed,
		FixedAmount: d("2000"),
	}

	for _, month := range []time.Month{time.January, time.June, time.December} {
		issued := time.Date(2025, month, 1, 0, 0, 0, 0, time.UTC)
		lines := billing.BuildLineItems("c-acme", issued, nil, []domain.Project{retainer})
		require.Len(t, lines, 1, "month %s", month)
		assert.True(t, lines[0].Total.Equal(d("2000")))
	}
}

func TestBuildLineItems_EmptyInputs(t *testing.T) {
	issued := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, billing.BuildLineItems("", issued, nil, nil))
	assert.Nil(t, billing.BuildLineItems("c-acme", time.Time{}, nil, nil))
	assert.Nil(t, billing.BuildLineItems("c-acme", issued, nil, nil))
}

func TestComputeTotals(t *testing.T) {
	lines := []billing.Line{
		{Total: d("2000")},
		{Total: d("150")},
		{Total: d("250")},
	}

	totals := billing.ComputeTotals(lines, d("6"))
	assert.True(t, totals.Subtotal.Equal(d("2400")), "subtotal was %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(d("144")), "tax was %s", totals.Tax)
	assert.True(t, totals.Total.Equal(d("2544")), "total was %s", totals.Total)
}

func TestComputeTotals_ZeroTaxRate(t *testing.T) {
	totals := billing.ComputeTotals([]billing.Line{{Total: d("100")}}, decimal.Zero)
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.Equal(d("100")))
}

func TestComputeTotals_NoLines(t *testing.T) {
	totals := billing.ComputeTotals(nil, d("6"))
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}
