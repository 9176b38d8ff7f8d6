package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mfigueiredo/fatura/internal/invoice"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateSearch
	listStateConfirmDelete
)

type ListModel struct {
	CommonModel
	invoiceService *invoice.Service
	pageSize       int

	state  listState
	table  table.Model
	search textinput.Model

	page    int // 1-based
	total   int // filtered result count
	visible []invoice.Invoice

	pendingDelete invoice.Invoice
	status        string
}

func NewListModel(invoiceSvc *invoice.Service, pageSize int) ListModel {
	columns := []table.Column{
		{Title: "Invoice Number", Width: 16},
		{Title: "Customer Name", Width: 28},
		{Title: "Date", Width: 12},
		{Title: "Total Amount", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
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

	search := textinput.New()
	search.Placeholder = "customer or invoice number"
	search.Width = 40

	m := ListModel{
		invoiceService: invoiceSvc,
		pageSize:       pageSize,
		table:          t,
		search:         search,
		page:           1,
	}
	m.refresh()

	return m
}

func (m ListModel) Title() string { return "Invoices" }

func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStateSearch:
		return "Type to filter | Enter/Esc: done"
	case listStateConfirmDelete:
		return "y: delete | n: keep"
	}

	return "n: new | e: edit | d: delete | /: search | ←/→: page | i: import | q: quit"
}

func (m ListModel) Init() tea.Cmd {
	return nil
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case deleteResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = "Deleted."
		}

		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateSearch:
		return m.updateSearch(msg)
	case listStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "q":
			return m, tea.Quit
		case "/":
			m.state = listStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "n":
			return m, func() tea.Msg { return NewInvoiceMsg{} }
		case "i":
			return m, func() tea.Msg { return OpenImportMsg{} }
		case "e", "enter":
			inv, ok := m.selected()
			if !ok {
				return m, nil
			}

			return m, func() tea.Msg { return EditInvoiceMsg{ID: inv.ID} }
		case "d":
			inv, ok := m.selected()
			if !ok {
				return m, nil
			}

			m.pendingDelete = inv
			m.state = listStateConfirmDelete

			return m, nil
		case "left", "h":
			if m.page > 1 {
				m.page--
				m.refresh()
			}

			return m, nil
		case "right", "l":
			if m.page < invoice.PageCount(m.total, m.pageSize) {
				m.page++
				m.refresh()
			}

			return m, nil
		case "r":
			m.status = ""
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.state = listStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		}
	}

	before := m.search.Value()

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	// The filter applies as the query is typed; jump back to page one so
	// the first matches are visible. Blink ticks and other non-edits leave
	// the paging state alone.
	if m.search.Value() != before {
		m.page = 1
		m.refresh()
	}

	return m, cmd
}

func (m ListModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		m.state = listStateBrowse
		return m, m.deleteCmd(m.pendingDelete.ID)
	case "n", "esc":
		m.state = listStateBrowse
		return m, nil
	}

	return m, nil
}

func (m *ListModel) refresh() {
	st := m.invoiceService.State()

	filtered := invoice.Filter(st.Invoices, m.search.Value())
	m.total = len(filtered)

	pages := invoice.PageCount(m.total, m.pageSize)
	if m.page > pages {
		m.page = pages
	}

	if m.page < 1 {
		m.page = 1
	}

	m.visible = invoice.Paginate(filtered, m.page, m.pageSize)

	rows := make([]table.Row, len(m.visible))
	for i, inv := range m.visible {
		rows[i] = table.Row{
			inv.InvoiceNumber,
			inv.CustomerName,
			FormatDate(inv.Date),
			FormatMoney(inv.TotalAmount()),
		}
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m ListModel) selected() (invoice.Invoice, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return invoice.Invoice{}, false
	}

	return m.visible[idx], true
}

func (m ListModel) View() string {
	st := m.invoiceService.State()
	if st.Loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	searchLine := "Search: " + m.search.View()

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	pages := invoice.PageCount(m.total, m.pageSize)
	footer := fmt.Sprintf("Page %d/%d  (%d invoices)", m.page, max(pages, 1), m.total)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(searchLine),
		tableView,
		lipgloss.NewStyle().Faint(true).Render(footer),
	)

	if m.state == listStateConfirmDelete {
		prompt := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Render(fmt.Sprintf("Delete invoice %s for %s? (y/n)",
				m.pendingDelete.InvoiceNumber, m.pendingDelete.CustomerName))

		content = lipgloss.JoinVertical(lipgloss.Left, content, prompt)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	if st.Err != "" {
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(st.Err) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type deleteResultMsg struct {
	err error
}

func (m ListModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return deleteResultMsg{err: m.invoiceService.Delete(ctx, id)}
	}
}
