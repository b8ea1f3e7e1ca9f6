package view

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/till/internal/checkout"
	"github.com/MrJamesThe3rd/till/internal/register"
)

// ReceiptModel reprints the last completed transaction.
type ReceiptModel struct {
	CommonModel
	session *register.Session
	opts    checkout.ReceiptOptions

	text string
	err  error
}

func NewReceiptModel(session *register.Session, opts checkout.ReceiptOptions) ReceiptModel {
	return ReceiptModel{session: session, opts: opts}
}

func (m ReceiptModel) Title() string     { return "Last Receipt" }
func (m ReceiptModel) ShortHelp() string { return "Esc: back" }

type receiptLoadedMsg struct {
	tx  *checkout.Transaction
	err error
}

func (m ReceiptModel) Init() tea.Cmd {
	return func() tea.Msg {
		tx, err := m.session.LastTransaction()
		return receiptLoadedMsg{tx: tx, err: err}
	}
}

func (m ReceiptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case receiptLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.text = checkout.FormatReceipt(msg.tx, m.opts)

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ReceiptModel) View() string {
	if errors.Is(m.err, register.ErrNoTransaction) {
		return lipgloss.NewStyle().Padding(2).Render("No transaction yet.\n\n(Esc to back)")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.text == "" {
		return lipgloss.NewStyle().Padding(2).Render("Loading receipt...")
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(m.text),
	)
}
