package csvfile_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueiredo/fatura/internal/importer/csvfile"
)

func TestParse_GroupsRowsByInvoiceNumber(t *testing.T) {
	input := strings.Join([]string{
		"Invoice Number;Customer;Date;Description;Quantity;Unit Price",
		"INV-1;Acme;2024-01-01;Widget;2;10.00",
		"INV-1;Acme;2024-01-01;Gadget;1;5,50",
		"INV-2;Globex;2024-02-15;Sprocket;3;1.234,56",
		"",
	}, "\n")

	params, err := csvfile.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	first := params[0]
	assert.Equal(t, "INV-1", first.InvoiceNumber)
	assert.Equal(t, "Acme", first.CustomerName)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.Date)
	require.Len(t, first.Lines, 2)
	assert.Equal(t, "Widget", first.Lines[0].Description)
	assert.Equal(t, int64(2), first.Lines[0].Quantity)
	assert.True(t, first.Lines[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, first.Lines[1].UnitPrice.Equal(decimal.RequireFromString("5.50")))

	second := params[1]
	assert.Equal(t, "Globex", second.CustomerName)
	require.Len(t, second.Lines, 1)
	assert.True(t, second.Lines[0].UnitPrice.Equal(decimal.RequireFromString("1234.56")))
}

func TestParse_SkipsPreambleBeforeHeader(t *testing.T) {
	input := strings.Join([]string{
		"Exported 2024-03-01",
		"",
		"Invoice Number;Customer;Date;Description;Quantity;Unit Price",
		"INV-9;Initech;01-03-2024;Stapler;1;9.99",
	}, "\n")

	params, err := csvfile.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), params[0].Date)
}

func TestParse_Windows1252Input(t *testing.T) {
	// "Reparação" in Windows-1252: ç = 0xE7, ã = 0xE3.
	header := "Invoice Number;Customer;Date;Description;Quantity;Unit Price\n"
	row := append([]byte("INV-3;Silva Lda;2024-05-05;Repara"), 0xE7, 0xE3)
	row = append(row, []byte("o;1;30,00\n")...)

	input := append([]byte(header), row...)

	params, err := csvfile.NewParser().Parse(strings.NewReader(string(input)))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "Reparação", params[0].Lines[0].Description)
}

func TestParse_Errors(t *testing.T) {
	header := "Invoice Number;Customer;Date;Description;Quantity;Unit Price\n"

	tests := []struct {
		name  string
		input string
	}{
		{name: "NoHeader", input: "a;b;c\n1;2;3\n"},
		{name: "MissingNumber", input: header + ";Acme;2024-01-01;Widget;1;10\n"},
		{name: "MissingDescription", input: header + "INV-1;Acme;2024-01-01;;1;10\n"},
		{name: "ZeroQuantity", input: header + "INV-1;Acme;2024-01-01;Widget;0;10\n"},
		{name: "BadDate", input: header + "INV-1;Acme;yesterday;Widget;1;10\n"},
		{name: "BadPrice", input: header + "INV-1;Acme;2024-01-01;Widget;1;abc\n"},
		{name: "NegativePrice", input: header + "INV-1;Acme;2024-01-01;Widget;1;-5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := csvfile.NewParser().Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
