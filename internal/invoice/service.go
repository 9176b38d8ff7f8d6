package invoice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	LoadInvoices(ctx context.Context) ([]Invoice, error)
	SaveInvoices(ctx context.Context, invoices []Invoice) error
}

// Service holds the authoritative state snapshot and mirrors the full
// collection to the repository after every collection-changing action.
// Writes always overwrite the whole collection, never a single record.
type Service struct {
	repo Repository

	// mu serializes each reduction with its storage mirror. Tea commands
	// dispatch from concurrent goroutines; releasing the lock between
	// reduce and save would let overlapping writes land out of order and
	// leave storage holding a stale snapshot.
	mu    sync.Mutex
	state State
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// State returns the current snapshot. Snapshots are safe to keep: the
// reducer never mutates a slice it has handed out.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Load seeds the state from storage. Malformed stored data propagates as an
// error; callers decide whether that is fatal.
func (s *Service) Load(ctx context.Context) error {
	_, _ = s.Dispatch(ctx, SetLoading{Loading: true})

	invs, err := s.repo.LoadInvoices(ctx)
	if err != nil {
		_, _ = s.Dispatch(ctx, SetError{Message: err.Error()})
		return fmt.Errorf("loading invoices: %w", err)
	}

	if _, err := s.Dispatch(ctx, SetInvoices{Invoices: invs}); err != nil {
		return err
	}

	return nil
}

// Dispatch applies an action and, for collection-changing actions, mirrors
// the new collection to storage. There is no retry: a failed write is
// recorded in the state error and returned.
func (s *Service) Dispatch(ctx context.Context, a Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, a)
	next := s.state

	switch a.(type) {
	case SetInvoices, AddInvoice, UpdateInvoice, DeleteInvoice:
	default:
		return next, nil
	}

	if err := s.repo.SaveInvoices(ctx, next.Invoices); err != nil {
		s.state = Reduce(s.state, SetError{Message: err.Error()})
		return s.state, fmt.Errorf("saving invoices: %w", err)
	}

	return next, nil
}

func (s *Service) Add(ctx context.Context, inv Invoice) error {
	_, err := s.Dispatch(ctx, AddInvoice{Invoice: inv})
	return err
}

func (s *Service) Update(ctx context.Context, inv Invoice) error {
	_, err := s.Dispatch(ctx, UpdateInvoice{Invoice: inv})
	return err
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.Dispatch(ctx, DeleteInvoice{ID: id})
	return err
}

// Get looks an invoice up by id in the current snapshot.
func (s *Service) Get(id uuid.UUID) (Invoice, bool) {
	for _, inv := range s.State().Invoices {
		if inv.ID == id {
			return inv, true
		}
	}

	return Invoice{}, false
}

// LineParams describes one line item to create.
type LineParams struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// CreateParams describes one invoice to create. Ids are minted by the
// service at creation time and never change afterwards.
type CreateParams struct {
	InvoiceNumber string
	CustomerName  string
	Date          time.Time
	Lines         []LineParams
}

type ImportResult struct {
	Imported  []Invoice
	New       []CreateParams
	Conflicts []Conflict
}

// Conflict pairs an incoming invoice with an existing one that carries the
// same invoice number.
type Conflict struct {
	Incoming CreateParams
	Existing Invoice
}

// ImportBatch adds the given invoices to the collection. Incoming invoices
// whose number is already present are reported as conflicts instead of
// being added; the caller decides which conflicts to force through
// CreateBatch.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	existing := make(map[string]Invoice)
	for _, inv := range s.State().Invoices {
		existing[inv.InvoiceNumber] = inv
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		if match, found := existing[p.InvoiceNumber]; found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: match})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	invs, err := s.CreateBatch(ctx, newParams)
	if err != nil {
		return nil, err
	}

	return &ImportResult{Imported: invs}, nil
}

// CreateBatch mints and adds one invoice per params entry.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]Invoice, error) {
	if len(params) == 0 {
		return nil, nil
	}

	invs := paramsToInvoices(params)
	for _, inv := range invs {
		if err := s.Add(ctx, inv); err != nil {
			return nil, fmt.Errorf("adding invoice %s: %w", inv.InvoiceNumber, err)
		}
	}

	return invs, nil
}

func paramsToInvoices(params []CreateParams) []Invoice {
	invs := make([]Invoice, len(params))

	for i, p := range params {
		details := make([]Detail, len(p.Lines))
		for j, l := range p.Lines {
			details[j] = Detail{
				ID:          uuid.New(),
				Description: l.Description,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
			}
		}

		invs[i] = Invoice{
			ID:            uuid.New(),
			InvoiceNumber: p.InvoiceNumber,
			CustomerName:  p.CustomerName,
			Date:          p.Date,
			Details:       details,
		}
	}

	return invs
}
