package view

import (
	"context"
	"fmt"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfigueiredo/fatura/internal/invoice"
)

func seededService(t *testing.T, n int) *invoice.Service {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().SaveInvoices(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := invoice.NewService(repo)

	for i := 0; i < n; i++ {
		inv := invoice.New()
		inv.InvoiceNumber = fmt.Sprintf("INV-%d", i+1)
		inv.CustomerName = "Acme"
		require.NoError(t, svc.Add(context.Background(), inv))
	}

	return svc
}

func TestListSearchPageResetsOnlyOnQueryChange(t *testing.T) {
	m := NewListModel(seededService(t, 3), 1)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = next.(ListModel)
	require.Equal(t, listStateSearch, m.state)

	m.page = 2
	m.refresh()
	require.Equal(t, 2, m.page)

	next, _ = m.Update(cursor.BlinkMsg{})
	m = next.(ListModel)
	assert.Equal(t, 2, m.page, "a blink tick must not touch paging")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = next.(ListModel)
	assert.Equal(t, "a", m.search.Value())
	assert.Equal(t, 1, m.page, "an edited query jumps back to the first page")
}
