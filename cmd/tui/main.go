package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/mfigueiredo/fatura/cmd/tui/internal/view"
	"github.com/mfigueiredo/fatura/internal/config"
	"github.com/mfigueiredo/fatura/internal/importer"
	"github.com/mfigueiredo/fatura/internal/invoice"
	"github.com/mfigueiredo/fatura/internal/invoice/store"
)

type model struct {
	invoiceService *invoice.Service
	importService  *importer.Service
	pageSize       int

	currentView View

	listView   view.ListModel
	formView   view.FormModel
	importView view.ImportModel
}

type View int

const (
	ViewList     View = 0
	ViewForm     View = 1
	ViewImport   View = 2
	ViewNotFound View = 3
)

func initialModel(route Route) model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	st, err := store.New(cfg.Store.Path)
	if err != nil {
		slog.Error("failed to open invoice store", "error", err)
		os.Exit(1)
	}

	invoiceSvc := invoice.NewService(st)
	impSvc := importer.NewService()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := invoiceSvc.Load(ctx); err != nil {
		slog.Error("failed to load invoices", "error", err)
		os.Exit(1)
	}

	m := model{
		invoiceService: invoiceSvc,
		importService:  impSvc,
		pageSize:       cfg.List.PageSize,
		currentView:    ViewList,
		listView:       view.NewListModel(invoiceSvc, cfg.List.PageSize),
	}

	switch route.Kind {
	case RouteNew:
		m.currentView = ViewForm
		m.formView = view.NewFormModel(invoice.New(), false)
	case RouteEdit:
		inv, found := invoiceSvc.Get(route.InvoiceID)
		if !found {
			m.currentView = ViewNotFound
			break
		}

		m.currentView = ViewForm
		m.formView = view.NewFormModel(inv, true)
	}

	return m
}

func (m model) Init() tea.Cmd {
	switch m.currentView {
	case ViewForm:
		return m.formView.Init()
	default:
		return m.listView.Init()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}

		if m.currentView == ViewNotFound {
			return m.openList()
		}
	case view.BackMsg:
		return m.openList()
	case view.NewInvoiceMsg:
		m.currentView = ViewForm
		m.formView = view.NewFormModel(invoice.New(), false)

		return m, m.formView.Init()
	case view.EditInvoiceMsg:
		inv, found := m.invoiceService.Get(msg.ID)
		if !found {
			m.currentView = ViewNotFound
			return m, nil
		}

		m.currentView = ViewForm
		m.formView = view.NewFormModel(inv, true)

		return m, m.formView.Init()
	case view.OpenImportMsg:
		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.invoiceService, m.importService)

		return m, m.importView.Init()
	case view.SubmitInvoiceMsg:
		return m, m.saveCmd(msg.Invoice, msg.Existing)
	case saveDoneMsg:
		if msg.err != nil {
			slog.Error("failed to save invoice", "error", msg.err)
		}

		return m.openList()
	}

	switch m.currentView {
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewForm:
		var newModel tea.Model
		newModel, cmd = m.formView.Update(msg)
		m.formView = newModel.(view.FormModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) openList() (tea.Model, tea.Cmd) {
	m.currentView = ViewList
	m.listView = view.NewListModel(m.invoiceService, m.pageSize)

	return m, m.listView.Init()
}

type saveDoneMsg struct {
	err error
}

func (m model) saveCmd(inv invoice.Invoice, existing bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if existing {
			return saveDoneMsg{err: m.invoiceService.Update(ctx, inv)}
		}

		return saveDoneMsg{err: m.invoiceService.Add(ctx, inv)}
	}
}

func (m model) View() string {
	switch m.currentView {
	case ViewList:
		return m.listView.View()
	case ViewForm:
		return m.formView.View()
	case ViewImport:
		return m.importView.View()
	case ViewNotFound:
		return lipgloss.NewStyle().Padding(2).Render(
			"Invoice not found\n\n" +
				"Press any key to go back to the list.",
		)
	}

	return "Unknown View"
}

func main() {
	path := "/"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	route, err := ParseRoute(path)
	if err != nil {
		slog.Error("failed to parse route", "error", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(route))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
