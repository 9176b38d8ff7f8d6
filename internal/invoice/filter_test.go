package invoice_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueiredo/fatura/internal/invoice"
)

func namedInvoices() []invoice.Invoice {
	a := acmeInvoice()

	b := acmeInvoice()
	b.InvoiceNumber = "INV-2"
	b.CustomerName = "Globex"

	c := acmeInvoice()
	c.InvoiceNumber = "REF-77"
	c.CustomerName = "Initech"

	return []invoice.Invoice{a, b, c}
}

func TestFilter(t *testing.T) {
	invs := namedInvoices()

	tests := []struct {
		name        string
		query       string
		wantNumbers []string
	}{
		{name: "EmptyMatchesAll", query: "", wantNumbers: []string{"INV-1", "INV-2", "REF-77"}},
		{name: "CustomerCaseInsensitive", query: "gLoBeX", wantNumbers: []string{"INV-2"}},
		{name: "NumberSubstring", query: "inv-", wantNumbers: []string{"INV-1", "INV-2"}},
		{name: "EitherField", query: "i", wantNumbers: []string{"INV-1", "INV-2", "REF-77"}},
		{name: "NoMatch", query: "umbrella"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoice.Filter(invs, tt.query)

			numbers := make([]string, len(got))
			for i, inv := range got {
				numbers[i] = inv.InvoiceNumber
			}

			if len(tt.wantNumbers) == 0 {
				assert.Empty(t, got)
				return
			}

			assert.Equal(t, tt.wantNumbers, numbers)
		})
	}
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, invoice.PageCount(0, 5))
	assert.Equal(t, 1, invoice.PageCount(1, 5))
	assert.Equal(t, 1, invoice.PageCount(5, 5))
	assert.Equal(t, 2, invoice.PageCount(6, 5))
	assert.Equal(t, 3, invoice.PageCount(11, 5))
	assert.Equal(t, 0, invoice.PageCount(3, 0))
}

func TestPaginate(t *testing.T) {
	invs := make([]invoice.Invoice, 0, 12)
	for i := 0; i < 12; i++ {
		inv := acmeInvoice()
		inv.InvoiceNumber = fmt.Sprintf("INV-%02d", i)
		invs = append(invs, inv)
	}

	// Page k holds entries [5(k-1), 5k).
	first := invoice.Paginate(invs, 1, 5)
	require.Len(t, first, 5)
	assert.Equal(t, "INV-00", first[0].InvoiceNumber)
	assert.Equal(t, "INV-04", first[4].InvoiceNumber)

	second := invoice.Paginate(invs, 2, 5)
	require.Len(t, second, 5)
	assert.Equal(t, "INV-05", second[0].InvoiceNumber)

	last := invoice.Paginate(invs, 3, 5)
	require.Len(t, last, 2)
	assert.Equal(t, "INV-11", last[1].InvoiceNumber)

	assert.Empty(t, invoice.Paginate(invs, 4, 5))
	assert.Empty(t, invoice.Paginate(invs, 0, 5))
}
