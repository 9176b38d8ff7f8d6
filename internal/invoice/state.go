package invoice

import "github.com/google/uuid"

// State is one snapshot of the invoice collection. Reduce never mutates its
// input, so observers can hold on to a snapshot and diff it against later
// ones.
type State struct {
	Invoices []Invoice
	Loading  bool
	Err      string
}

// Action is the discriminated input of Reduce.
type Action interface{ action() }

// SetInvoices replaces the whole collection and clears the loading flag.
type SetInvoices struct{ Invoices []Invoice }

// AddInvoice appends one invoice to the end of the collection.
type AddInvoice struct{ Invoice Invoice }

// UpdateInvoice replaces the entry whose id matches. If no entry matches,
// the collection is left unchanged and no error is raised.
type UpdateInvoice struct{ Invoice Invoice }

// DeleteInvoice removes the entry with the given id, a no-op if absent.
type DeleteInvoice struct{ ID uuid.UUID }

// SetError records the last error and clears the loading flag.
type SetError struct{ Message string }

// SetLoading toggles the loading flag.
type SetLoading struct{ Loading bool }

func (SetInvoices) action()   {}
func (AddInvoice) action()    {}
func (UpdateInvoice) action() {}
func (DeleteInvoice) action() {}
func (SetError) action()      {}
func (SetLoading) action()    {}

// Reduce applies an action to a state snapshot and returns the next
// snapshot. Collection-changing actions allocate a fresh slice; the input
// slice is never written to. Reduce does not validate business rules, that
// is the form's job.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetInvoices:
		s.Invoices = append([]Invoice(nil), a.Invoices...)
		s.Loading = false

	case AddInvoice:
		invs := make([]Invoice, 0, len(s.Invoices)+1)
		invs = append(invs, s.Invoices...)
		s.Invoices = append(invs, a.Invoice)

	case UpdateInvoice:
		invs := append([]Invoice(nil), s.Invoices...)
		for i := range invs {
			if invs[i].ID == a.Invoice.ID {
				invs[i] = a.Invoice
			}
		}

		s.Invoices = invs

	case DeleteInvoice:
		invs := make([]Invoice, 0, len(s.Invoices))

		for _, inv := range s.Invoices {
			if inv.ID == a.ID {
				continue
			}

			invs = append(invs, inv)
		}

		s.Invoices = invs

	case SetError:
		s.Err = a.Message
		s.Loading = false

	case SetLoading:
		s.Loading = a.Loading
	}

	return s
}
