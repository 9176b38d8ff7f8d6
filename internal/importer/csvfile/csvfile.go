// Package csvfile parses invoice spreadsheets exported as semicolon-
// separated CSV. Rows sharing an invoice number fold into one invoice with
// one line item per row.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/mfigueiredo/fatura/internal/encoding"
	"github.com/mfigueiredo/fatura/internal/invoice"
)

const (
	colNumber   = "Invoice Number"
	colCustomer = "Customer"
	colDate     = "Date"
	colDesc     = "Description"
	colQty      = "Quantity"
	colPrice    = "Unit Price"
)

var dateLayouts = []string{time.DateOnly, "02-01-2006", "02/01/2006"}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]invoice.CreateParams, error) {
	utf8r, err := enc.DecodeReader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no header row found: expected columns %q, %q, %q, %q, %q, %q",
			colNumber, colCustomer, colDate, colDesc, colQty, colPrice)
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx)
}

// colIndex maps column names to their position in a row.
type colIndex map[string]int

func findHeader(rows [][]string) (colIndex, int, bool) {
	required := []string{colNumber, colCustomer, colDate, colDesc, colQty, colPrice}

	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		matched := true

		for _, name := range required {
			if _, ok := cols[name]; !ok {
				matched = false
				break
			}
		}

		if matched {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func parseRows(cols colIndex, rows [][]string, headerIdx int) ([]invoice.CreateParams, error) {
	var (
		order  []string
		byNum  = make(map[string]*invoice.CreateParams)
		maxIdx = 0
	)

	for _, name := range []string{colNumber, colCustomer, colDate, colDesc, colQty, colPrice} {
		if cols[name] > maxIdx {
			maxIdx = cols[name]
		}
	}

	for i, row := range rows {
		rowNum := headerIdx + i + 2 // 1-based, for error messages

		if isBlank(row) {
			continue
		}

		if len(row) <= maxIdx {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", rowNum, maxIdx+1, len(row))
		}

		number := strings.TrimSpace(row[cols[colNumber]])
		if number == "" {
			return nil, fmt.Errorf("row %d: missing invoice number", rowNum)
		}

		desc := strings.TrimSpace(row[cols[colDesc]])
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		qty, err := strconv.ParseInt(strings.TrimSpace(row[cols[colQty]]), 10, 64)
		if err != nil || qty < 1 {
			return nil, fmt.Errorf("row %d: invalid quantity %q", rowNum, row[cols[colQty]])
		}

		price, err := parseMoney(row[cols[colPrice]])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid unit price %q", rowNum, row[cols[colPrice]])
		}

		if price.IsNegative() {
			return nil, fmt.Errorf("row %d: unit price cannot be negative", rowNum)
		}

		line := invoice.LineParams{Description: desc, Quantity: qty, UnitPrice: price}

		if existing, found := byNum[number]; found {
			existing.Lines = append(existing.Lines, line)
			continue
		}

		date, err := parseDate(row[cols[colDate]])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q", rowNum, row[cols[colDate]])
		}

		byNum[number] = &invoice.CreateParams{
			InvoiceNumber: number,
			CustomerName:  strings.TrimSpace(row[cols[colCustomer]]),
			Date:          date,
			Lines:         []invoice.LineParams{line},
		}
		order = append(order, number)
	}

	params := make([]invoice.CreateParams, len(order))
	for i, number := range order {
		params[i] = *byNum[number]
	}

	return params, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseMoney accepts both "1.234,56" and "1234.56". When both separators
// appear the last one wins as the decimal mark.
func parseMoney(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)

	lastComma := strings.LastIndex(clean, ",")
	lastDot := strings.LastIndex(clean, ".")

	if lastComma > lastDot {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}
