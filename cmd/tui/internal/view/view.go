package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/mfigueiredo/fatura/internal/invoice"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

// BackMsg asks the shell to return to the list view.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// NewInvoiceMsg asks the shell to open the create form.
type NewInvoiceMsg struct{}

// EditInvoiceMsg asks the shell to open the edit form for an invoice.
type EditInvoiceMsg struct{ ID uuid.UUID }

// OpenImportMsg asks the shell to open the CSV import view.
type OpenImportMsg struct{}

// SubmitInvoiceMsg hands an assembled invoice to the shell. The shell
// decides between add and update based on Existing, then navigates back to
// the list.
type SubmitInvoiceMsg struct {
	Invoice  invoice.Invoice
	Existing bool
}
