package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mfigueiredo/fatura/internal/invoice"
)

type formState int

const (
	formStateHeader formState = iota
	formStateLines
	formStateLine
)

// FormModel edits one invoice: a new one with a freshly minted id, or an
// existing one whose id is preserved. It never touches the store itself;
// the assembled invoice goes to the shell in a SubmitInvoiceMsg.
type FormModel struct {
	CommonModel
	existing bool
	inv      invoice.Invoice

	state      formState
	headerForm *huh.Form
	lineForm   *huh.Form
	linesTable table.Model

	// -1 while adding a new line, otherwise the index being edited.
	editingLine int

	// Form field bindings
	formNumber   string
	formCustomer string
	formDate     string
	formDesc     string
	formQty      string
	formPrice    string

	status string
}

func NewFormModel(inv invoice.Invoice, existing bool) FormModel {
	// Work on a private copy of the line items so edits never leak into the
	// store's snapshot before submission.
	inv.Details = append([]invoice.Detail(nil), inv.Details...)

	columns := []table.Column{
		{Title: "Description", Width: 32},
		{Title: "Qty", Width: 6},
		{Title: "Unit Price", Width: 12},
		{Title: "Line Total", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := FormModel{
		existing:     existing,
		inv:          inv,
		linesTable:   t,
		editingLine:  -1,
		formNumber:   inv.InvoiceNumber,
		formCustomer: inv.CustomerName,
	}

	if !inv.Date.IsZero() {
		m.formDate = FormatDate(inv.Date)
	}

	m.headerForm = m.newHeaderForm()
	m.refreshLines()

	return m
}

func (m FormModel) Title() string {
	if m.existing {
		return "Edit Invoice"
	}

	return "Create New Invoice"
}

func (m FormModel) ShortHelp() string {
	switch m.state {
	case formStateHeader:
		return "Navigate form | Esc: cancel"
	case formStateLine:
		return "Navigate form | Esc: back to items"
	}

	return "a: add item | e: edit | x: remove | b: header | s: save | Esc: cancel"
}

func (m FormModel) Init() tea.Cmd {
	return m.headerForm.Init()
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Width = msg.Width
		m.Height = msg.Height
	}

	switch m.state {
	case formStateHeader:
		return m.updateHeader(msg)
	case formStateLines:
		return m.updateLines(msg)
	case formStateLine:
		return m.updateLine(msg)
	}

	return m, nil
}

func (m FormModel) updateHeader(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.headerForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.headerForm = f
	}

	if m.headerForm.State != huh.StateCompleted {
		return m, cmd
	}

	m.applyHeader()
	m.state = formStateLines

	return m, nil
}

func (m FormModel) updateLines(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.startLineEdit(-1)
		case "e", "enter":
			idx := m.linesTable.Cursor()
			if idx < 0 || idx >= len(m.inv.Details) {
				return m, nil
			}

			return m.startLineEdit(idx)
		case "x":
			idx := m.linesTable.Cursor()
			if idx < 0 || idx >= len(m.inv.Details) {
				return m, nil
			}

			m.inv.Details = append(m.inv.Details[:idx], m.inv.Details[idx+1:]...)
			m.refreshLines()

			return m, nil
		case "b":
			m.headerForm = m.newHeaderForm()
			m.state = formStateHeader

			return m, m.headerForm.Init()
		case "s":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.linesTable, cmd = m.linesTable.Update(msg)

	return m, cmd
}

func (m FormModel) updateLine(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = formStateLines
			m.lineForm = nil

			return m, nil
		}
	}

	form, cmd := m.lineForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.lineForm = f
	}

	if m.lineForm.State != huh.StateCompleted {
		return m, cmd
	}

	m.applyLine()
	m.state = formStateLines
	m.lineForm = nil

	return m, nil
}

func (m *FormModel) applyHeader() {
	m.inv.InvoiceNumber = strings.TrimSpace(m.headerForm.GetString("invoice_number"))
	m.inv.CustomerName = strings.TrimSpace(m.headerForm.GetString("customer_name"))

	// The header form already validated the date.
	if date, err := time.Parse(time.DateOnly, strings.TrimSpace(m.headerForm.GetString("date"))); err == nil {
		m.inv.Date = date
	}
}

func (m *FormModel) applyLine() {
	desc := strings.TrimSpace(m.lineForm.GetString("description"))
	qty, _ := strconv.ParseInt(strings.TrimSpace(m.lineForm.GetString("quantity")), 10, 64)
	price, _ := decimal.NewFromString(strings.TrimSpace(m.lineForm.GetString("unit_price")))

	if m.editingLine >= 0 && m.editingLine < len(m.inv.Details) {
		d := &m.inv.Details[m.editingLine]
		d.Description = desc
		d.Quantity = qty
		d.UnitPrice = price
	} else {
		d := invoice.NewDetail()
		d.Description = desc
		d.Quantity = qty
		d.UnitPrice = price
		m.inv.Details = append(m.inv.Details, d)
	}

	m.refreshLines()
}

func (m FormModel) startLineEdit(idx int) (tea.Model, tea.Cmd) {
	m.editingLine = idx
	m.formDesc = ""
	m.formQty = "1"
	m.formPrice = "0"

	if idx >= 0 {
		d := m.inv.Details[idx]
		m.formDesc = d.Description
		m.formQty = strconv.FormatInt(d.Quantity, 10)
		m.formPrice = d.UnitPrice.String()
	}

	m.lineForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description is required")
					}
					return nil
				}),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.formQty).
				Validate(func(s string) error {
					n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil {
						return fmt.Errorf("must be a whole number")
					}
					if n < 1 {
						return fmt.Errorf("must be at least 1")
					}
					return nil
				}),

			huh.NewInput().
				Key("unit_price").
				Title("Unit Price").
				Value(&m.formPrice).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("must be a number")
					}
					if d.IsNegative() {
						return fmt.Errorf("cannot be negative")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = formStateLine

	return m, m.lineForm.Init()
}

func (m FormModel) newHeaderForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("invoice_number").
				Title("Invoice Number").
				Value(&m.formNumber).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("invoice number is required")
					}
					return nil
				}),

			huh.NewInput().
				Key("customer_name").
				Title("Customer Name").
				Value(&m.formCustomer).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("customer name is required")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date (YYYY-MM-DD)").
				Placeholder("2024-01-01").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("must be a date like 2024-01-31")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m FormModel) submit() (tea.Model, tea.Cmd) {
	inv := m.inv
	existing := m.existing

	if err := inv.Validate(); err != nil {
		m.status = fmt.Sprintf("Cannot save: %v", err)
		return m, nil
	}

	return m, func() tea.Msg {
		return SubmitInvoiceMsg{Invoice: inv, Existing: existing}
	}
}

func (m *FormModel) refreshLines() {
	rows := make([]table.Row, len(m.inv.Details))
	for i, d := range m.inv.Details {
		rows[i] = table.Row{
			d.Description,
			strconv.FormatInt(d.Quantity, 10),
			FormatMoney(d.UnitPrice),
			FormatMoney(d.LineTotal()),
		}
	}

	m.linesTable.SetRows(rows)

	if m.linesTable.Cursor() >= len(rows) {
		m.linesTable.SetCursor(0)
	}
}

func (m FormModel) View() string {
	switch m.state {
	case formStateHeader:
		return lipgloss.NewStyle().Padding(1).Render(
			m.Title() + "\n\n" + m.headerForm.View(),
		)

	case formStateLine:
		panelTitle := "Add Item"
		if m.editingLine >= 0 {
			panelTitle = "Edit Item"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(panelTitle + "\n\n" + m.lineForm.View())

		return lipgloss.NewStyle().Padding(1).Render(panel)
	}

	header := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf("Invoice: %s  |  Customer: %s  |  Date: %s",
			m.inv.InvoiceNumber, m.inv.CustomerName, FormatDate(m.inv.Date)))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.linesTable.View())

	total := fmt.Sprintf("Total Amount: %s", FormatMoney(m.inv.TotalAmount()))

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		tableView,
		lipgloss.NewStyle().Bold(true).Render(total),
	)

	if m.status != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content,
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status))
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
