package importer

import (
	"io"

	"github.com/mfigueiredo/fatura/internal/invoice"
)

type Format string

const (
	FormatCSV Format = "csv"
)

type Importer interface {
	Parse(r io.Reader) ([]invoice.CreateParams, error)
}
