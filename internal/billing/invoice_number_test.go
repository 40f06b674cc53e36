package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/timekeep-hq/timekeep_app/internal/billing"
)

func TestFormatInvoiceNumber(t *testing.T) {
	period := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "ACME-202503-001", billing.FormatInvoiceNumber("ACME", period, 1))
	assert.Equal(t, "ACME-202503-042", billing.FormatInvoiceNumber("ACME", period, 42))
	assert.Equal(t, "ACME-202503-1000", billing.FormatInvoiceNumber("ACME", period, 1000))
}

func TestNextSequence(t *testing.T) {
	period := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty period starts at one", func(t *testing.T) {
		assert.Equal(t, 1, billing.NextSequence(nil, "ACME", period))
	})

	t.Run("continues past the max", func(t *testing.T) {
		existing := []string{"ACME-202503-001", "ACME-202503-002", "ACME-202503-003"}
		assert.Equal(t, 4, billing.NextSequence(existing, "ACME", period))
	})

	t.Run("gaps from deleted invoices never collide", func(t *testing.T) {
		existing := []string{"ACME-202503-001", "ACME-202503-005"}
		assert.Equal(t, 6, billing.NextSequence(existing, "ACME", period))
	})

	t.Run("ignores other periods and prefixes", func(t *testing.T) {
		existing := []string{
			"ACME-202502-009",
			"OTHER-202503-007",
			"ACME-202503-002",
		}
		assert.Equal(t, 3, billing.NextSequence(existing, "ACME", period))
	})

	t.Run("ignores malformed tails", func(t *testing.T) {
		existing := []string{"ACME-202503-abc", "ACME-202503-", "ACME-202503-0", "ACME-202503-002"}
		assert.Equal(t, 3, billing.NextSequence(existing, "ACME", period))
	})
}

func TestFallbackInvoiceNumber(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "INV-1742034600000", billing.FallbackInvoiceNumber(now))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Acme Corp", "ACMECORP"},
		{"acme", "ACME"},
		{"Freelance Collective 2025", "FREELANC"},
		{"  - !! - ", "INV"},
		{"", "INV"},
		{"a1 b2", "A1B2"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, billing.Slug(tc.name), "name %q", tc.name)
	}
}
