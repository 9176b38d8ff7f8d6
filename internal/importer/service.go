package importer

import (
	"fmt"
	"io"

	"github.com/mfigueiredo/fatura/internal/importer/csvfile"
	"github.com/mfigueiredo/fatura/internal/invoice"
)

type Service struct {
	csvImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter: csvfile.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]invoice.CreateParams, error) {
	var imp Importer

	switch format {
	case FormatCSV:
		imp = s.csvImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return imp.Parse(r)
}
