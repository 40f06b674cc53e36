package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// FormatInvoiceNumber renders `{prefix}-{YYYYMM}-{NNN}`.
func FormatInvoiceNumber(prefix string, period time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, period.Format("200601"), seq)
}

// PeriodPrefix is the shared `{prefix}-{YYYYMM}-` stem of all invoice
// numbers in a workspace month, used for matching existing numbers.
func PeriodPrefix(prefix string, period time.Time) string {
	return fmt.Sprintf("%s-%s-", prefix, period.Format("200601"))
}

// NextSequence derives the next invoice sequence from existing numbers for
// the same workspace and period. The result is max(parsed sequence) + 1,
// starting at 1, so gaps left by deleted invoices never cause collisions.
// Numbers that do not match the stem or carry a non-numeric tail are ignored.
func NextSequence(existing []string, prefix string, period time.Time) int {
	stem := PeriodPrefix(prefix, period)
	max := 0
	for _, num := range existing {
		tail, ok := strings.CutPrefix(num, stem)
		if !ok {
			continue
		}
		seq, err := strconv.Atoi(tail)
		if err != nil || seq <= 0 {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max + 1
}

// FallbackInvoiceNumber is used when the existing-number lookup fails; a
// millisecond timestamp keeps the number unique without the sequence scan.
func FallbackInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d", now.UnixMilli())
}

// Slug condenses a workspace name into an invoice number prefix: the
// upper-cased alphanumeric runes of the name, capped at 8, defaulting to
// "INV" for names with no usable runes.
func Slug(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() >= 8 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "INV"
	}
	return b.String()
}
