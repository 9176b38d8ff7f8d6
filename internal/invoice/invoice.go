package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Detail is a single line item of an invoice.
type Detail struct {
	ID          uuid.UUID
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// LineTotal is derived on read so it can never disagree with quantity and
// unit price.
func (d Detail) LineTotal() decimal.Decimal {
	return d.UnitPrice.Mul(decimal.NewFromInt(d.Quantity))
}

func (d Detail) Validate() error {
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("description is required")
	}

	if d.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	if d.UnitPrice.IsNegative() {
		return fmt.Errorf("unit price cannot be negative")
	}

	return nil
}

// NewDetail mints a line item with a fresh id. The id never changes after
// creation.
func NewDetail() Detail {
	return Detail{
		ID:       uuid.New(),
		Quantity: 1,
	}
}

// Invoice is a billable document: header fields plus an ordered sequence of
// line items. Insertion order of Details is significant for display.
type Invoice struct {
	ID            uuid.UUID
	InvoiceNumber string
	CustomerName  string
	Date          time.Time
	Details       []Detail
}

// New mints an invoice with a fresh id, dated today, with no line items.
func New() Invoice {
	now := time.Now()

	return Invoice{
		ID:   uuid.New(),
		Date: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// TotalAmount is the sum of all line totals, derived on read.
func (inv Invoice) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, d := range inv.Details {
		total = total.Add(d.LineTotal())
	}

	return total
}

// Validate checks the rules enforced at form submission. Duplicate invoice
// numbers are allowed; the system does not guarantee global uniqueness.
func (inv Invoice) Validate() error {
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		return fmt.Errorf("invoice number is required")
	}

	if strings.TrimSpace(inv.CustomerName) == "" {
		return fmt.Errorf("customer name is required")
	}

	if inv.Date.IsZero() {
		return fmt.Errorf("date is required")
	}

	for i, d := range inv.Details {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	return nil
}
