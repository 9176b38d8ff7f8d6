package invoice_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueiredo/fatura/internal/invoice"
)

func TestReduce_SetInvoices(t *testing.T) {
	s := invoice.State{Loading: true}
	invs := []invoice.Invoice{acmeInvoice(), acmeInvoice()}

	next := invoice.Reduce(s, invoice.SetInvoices{Invoices: invs})

	assert.Len(t, next.Invoices, 2)
	assert.False(t, next.Loading)
	assert.Empty(t, s.Invoices, "input snapshot must stay untouched")
}

func TestReduce_AddAppends(t *testing.T) {
	first := acmeInvoice()
	second := acmeInvoice()
	second.InvoiceNumber = "INV-2"

	s := invoice.Reduce(invoice.State{}, invoice.AddInvoice{Invoice: first})
	s = invoice.Reduce(s, invoice.AddInvoice{Invoice: second})

	require.Len(t, s.Invoices, 2)
	assert.Equal(t, "INV-1", s.Invoices[0].InvoiceNumber)
	assert.Equal(t, "INV-2", s.Invoices[1].InvoiceNumber)
}

func TestReduce_UpdateReplacesByID(t *testing.T) {
	inv := acmeInvoice()
	other := acmeInvoice()
	other.InvoiceNumber = "INV-2"

	s := invoice.State{Invoices: []invoice.Invoice{inv, other}}

	edited := inv
	edited.CustomerName = "Acme Holdings"

	next := invoice.Reduce(s, invoice.UpdateInvoice{Invoice: edited})

	require.Len(t, next.Invoices, 2)
	assert.Equal(t, inv.ID, next.Invoices[0].ID, "id never changes on update")
	assert.Equal(t, "Acme Holdings", next.Invoices[0].CustomerName)
	assert.Equal(t, "INV-2", next.Invoices[1].InvoiceNumber, "non-matching entries unchanged")
}

func TestReduce_UpdateUnknownIDIsNoop(t *testing.T) {
	s := invoice.State{Invoices: []invoice.Invoice{acmeInvoice()}}

	stranger := acmeInvoice() // fresh id, not in the collection
	next := invoice.Reduce(s, invoice.UpdateInvoice{Invoice: stranger})

	assert.Equal(t, s.Invoices, next.Invoices)
	assert.Empty(t, next.Err, "unmatched update is silent")
}

func TestReduce_Delete(t *testing.T) {
	inv := acmeInvoice()
	s := invoice.State{Invoices: []invoice.Invoice{inv}}

	next := invoice.Reduce(s, invoice.DeleteInvoice{ID: inv.ID})
	assert.Empty(t, next.Invoices)

	// Deleting an absent id leaves the collection unchanged.
	again := invoice.Reduce(s, invoice.DeleteInvoice{ID: uuid.New()})
	assert.Equal(t, s.Invoices, again.Invoices)
}

func TestReduce_ErrorAndLoading(t *testing.T) {
	s := invoice.Reduce(invoice.State{}, invoice.SetLoading{Loading: true})
	assert.True(t, s.Loading)

	s = invoice.Reduce(s, invoice.SetError{Message: "storage unavailable"})
	assert.Equal(t, "storage unavailable", s.Err)
	assert.False(t, s.Loading, "an error clears the loading flag")
}

func TestReduce_ActionSequenceKeepsIDsUnique(t *testing.T) {
	var s invoice.State

	invs := make([]invoice.Invoice, 0, 5)

	for i := 0; i < 5; i++ {
		inv := acmeInvoice()
		invs = append(invs, inv)
		s = invoice.Reduce(s, invoice.AddInvoice{Invoice: inv})
	}

	edited := invs[2]
	edited.CustomerName = "Edited"
	s = invoice.Reduce(s, invoice.UpdateInvoice{Invoice: edited})
	s = invoice.Reduce(s, invoice.DeleteInvoice{ID: invs[0].ID})

	seen := make(map[uuid.UUID]bool)
	for _, inv := range s.Invoices {
		assert.False(t, seen[inv.ID], "duplicate id in collection")
		seen[inv.ID] = true
	}

	assert.Len(t, s.Invoices, 4)
	assert.Equal(t, "Edited", s.Invoices[1].CustomerName)
}
