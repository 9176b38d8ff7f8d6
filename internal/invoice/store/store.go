// Package store persists the invoice collection to a single-file BoltDB
// database. The whole collection lives under one key as a JSON array; every
// save overwrites it entirely. No external database process is required.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfigueiredo/fatura/internal/invoice"
)

const (
	bucketName    = "invoices"
	collectionKey = "invoices"
)

type Store struct {
	db *bolt.DB
}

// New opens (or creates) the database file and ensures the invoices bucket
// exists.
func New(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// detailRecord and invoiceRecord are the wire shape of the persisted JSON.
// lineTotal and totalAmount are written for the benefit of external readers
// and recomputed from quantity and unitPrice on load.
type detailRecord struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

type invoiceRecord struct {
	ID            string         `json:"id"`
	InvoiceNumber string         `json:"invoiceNumber"`
	CustomerName  string         `json:"customerName"`
	Date          string         `json:"date"`
	Details       []detailRecord `json:"details"`
	TotalAmount   float64        `json:"totalAmount"`
}

func toRecord(inv invoice.Invoice) invoiceRecord {
	details := make([]detailRecord, len(inv.Details))
	for i, d := range inv.Details {
		details[i] = detailRecord{
			ID:          d.ID.String(),
			Description: d.Description,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice.InexactFloat64(),
			LineTotal:   d.LineTotal().InexactFloat64(),
		}
	}

	return invoiceRecord{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  inv.CustomerName,
		Date:          inv.Date.Format(time.DateOnly),
		Details:       details,
		TotalAmount:   inv.TotalAmount().InexactFloat64(),
	}
}

func fromRecord(rec invoiceRecord) (invoice.Invoice, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("invoice id %q: %w", rec.ID, err)
	}

	date, err := time.Parse(time.DateOnly, rec.Date)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("invoice date %q: %w", rec.Date, err)
	}

	details := make([]invoice.Detail, len(rec.Details))

	for i, d := range rec.Details {
		detailID, err := uuid.Parse(d.ID)
		if err != nil {
			return invoice.Invoice{}, fmt.Errorf("detail id %q: %w", d.ID, err)
		}

		details[i] = invoice.Detail{
			ID:          detailID,
			Description: d.Description,
			Quantity:    d.Quantity,
			UnitPrice:   decimal.NewFromFloat(d.UnitPrice),
		}
	}

	return invoice.Invoice{
		ID:            id,
		InvoiceNumber: rec.InvoiceNumber,
		CustomerName:  rec.CustomerName,
		Date:          date,
		Details:       details,
	}, nil
}

// LoadInvoices reads the stored collection. A database with no stored
// collection yields an empty result; malformed stored content propagates as
// an error with no recovery path.
func (s *Store) LoadInvoices(ctx context.Context) ([]invoice.Invoice, error) {
	var invs []invoice.Invoice

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(collectionKey))
		if v == nil {
			return nil
		}

		var records []invoiceRecord
		if err := json.Unmarshal(v, &records); err != nil {
			return fmt.Errorf("parsing stored invoices: %w", err)
		}

		invs = make([]invoice.Invoice, len(records))

		for i, rec := range records {
			inv, err := fromRecord(rec)
			if err != nil {
				return fmt.Errorf("parsing stored invoices: %w", err)
			}

			invs[i] = inv
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return invs, nil
}

// SaveInvoices overwrites the stored collection with the given one. An empty
// collection is stored as an empty JSON array.
func (s *Store) SaveInvoices(ctx context.Context, invoices []invoice.Invoice) error {
	records := make([]invoiceRecord, len(invoices))
	for i, inv := range invoices {
		records[i] = toRecord(inv)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding invoices: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(collectionKey), data)
	})
	if err != nil {
		return fmt.Errorf("saving invoices: %w", err)
	}

	return nil
}
