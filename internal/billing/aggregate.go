// Package billing holds the pure invoice computations: line item
// aggregation, totals, and invoice numbering. Everything here operates on
// already-fetched data and performs no I/O.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// Line is a computed invoice line before it is persisted as an InvoiceItem.
type Line struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// Totals is the computed money summary of an invoice.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// BuildLineItems assembles the invoice lines for a client's invoice month.
//
// Billable timesheet entries whose project belongs to the client and whose
// date falls in the calendar month of dateIssued each produce one line
// priced at the project's hourly rate. Every fixed-billing project of the
// client produces one flat monthly-fee line, regardless of the invoice
// month; a fixed project contributes once per invoice whenever one is
// generated for its client.
//
// A zero clientID or zero dateIssued yields no lines.
func BuildLineItems(clientID string, dateIssued time.Time, entries []domain.TimesheetEntry, projects []domain.Project) []Line {
	if clientID == "" || dateIssued.IsZero() {
		return nil
	}

	byID := make(map[string]domain.Project, len(projects))
	for _, p := range projects {
		byID[p.ProjectID] = p
	}

	var lines []Line
	for _, e := range entries {
		p, ok := byID[e.ProjectID]
		if !ok || p.ClientID != clientID {
			continue
		}
		if !e.Billable || !domain.SameMonth(e.Date, dateIssued) {
			continue
		}
		lines = append(lines, Line{
			Description: fmt.Sprintf("%s - %s", p.Name, e.Description),
			Quantity:    e.Hours,
			UnitPrice:   p.HourlyRate,
			Total:       e.Hours.Mul(p.HourlyRate),
		})
	}

	for _, p := range projects {
		if p.ClientID != clientID || !p.IsFixed() {
			continue
		}
		lines = append(lines, Line{
			Description: fmt.Sprintf("%s - Monthly Fee", p.Name),
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   p.FixedAmount,
			Total:       p.FixedAmount,
		})
	}

	return lines
}

// ComputeTotals sums the line totals and applies the workspace tax rate,
// given as a percentage (6 means 6%).
func ComputeTotals(lines []Line, taxRatePercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total)
	}
	tax := subtotal.Mul(taxRatePercent).Div(decimal.NewFromInt(100))
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
