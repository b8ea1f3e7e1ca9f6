package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/till/internal/checkout"
	"github.com/MrJamesThe3rd/till/internal/register"
	"github.com/MrJamesThe3rd/till/internal/scan"
)

type registerState int

const (
	registerStateScan registerState = iota
	registerStateCart
	registerStateConfirm
	registerStateReceipt
)

// RegisterModel is the checkout counter: a scan input fed by a keyboard-wedge
// scanner (or typed codes) above the live cart.
type RegisterModel struct {
	CommonModel
	session *register.Session
	receipt checkout.ReceiptOptions

	state     registerState
	input     textinput.Model
	table     table.Model
	cart      register.CartView
	form      *huh.Form
	confirmed *bool

	receiptText string
	status      string
	statusErr   bool
}

func NewRegisterModel(session *register.Session, receipt checkout.ReceiptOptions) RegisterModel {
	ti := textinput.New()
	ti.Placeholder = "Scan or type a barcode"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	m := RegisterModel{
		session: session,
		receipt: receipt,
		input:   ti,
		table: newTable([]table.Column{
			{Title: "Code", Width: 15},
			{Title: "Item", Width: 28},
			{Title: "Price", Width: 10},
			{Title: "Qty", Width: 4},
			{Title: "Amount", Width: 11},
		}, 12),
	}
	m.table.Blur()
	m.refresh()

	return m
}

func (m RegisterModel) Title() string { return "Register" }

func (m RegisterModel) ShortHelp() string {
	switch m.state {
	case registerStateCart:
		return "+/-: quantity | d: remove | c: checkout | Tab: scan | Esc: back"
	case registerStateConfirm:
		return "Navigate form | Esc: cancel"
	case registerStateReceipt:
		return "Enter: next customer"
	}

	return "Enter: add | Tab: edit cart | Esc: back"
}

func (m RegisterModel) Init() tea.Cmd {
	m.session.StartScanning()
	return textinput.Blink
}

func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.Width, m.Height = size.Width, size.Height
		m.table.SetHeight(max(size.Height-16, 5))

		return m, nil
	}

	switch m.state {
	case registerStateScan:
		return m.updateScan(msg)
	case registerStateCart:
		return m.updateCart(msg)
	case registerStateConfirm:
		return m.updateConfirm(msg)
	case registerStateReceipt:
		return m.updateReceipt(msg)
	}

	return m, nil
}

func (m RegisterModel) updateScan(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyTab:
			m.state = registerStateCart
			m.input.Blur()
			m.table.Focus()

			return m, nil
		case tea.KeyEnter:
			m.scan(m.input.Value())
			m.input.SetValue("")

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *RegisterModel) scan(raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}

	res := m.session.Scan(scan.Event{RawCode: raw, Timestamp: time.Now()})

	switch {
	case res.Suppressed:
		m.setStatus(fmt.Sprintf("Ignored repeat scan of %s", raw), false)
	case !res.Found:
		m.setStatus(fmt.Sprintf("Product not found: %s", raw), true)
	default:
		m.setStatus(fmt.Sprintf("Added %s (x%d)", res.Line.Name, res.Line.Quantity), false)
	}

	m.refresh()
}

func (m RegisterModel) updateCart(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		code := m.selectedCode()

		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "tab":
			m.state = registerStateScan
			m.table.Blur()
			m.input.Focus()

			return m, textinput.Blink
		case "+", "=":
			m.session.IncreaseQuantity(code)
			m.refresh()

			return m, nil
		case "-":
			m.session.DecreaseQuantity(code)
			m.refresh()

			return m, nil
		case "d", "delete", "backspace":
			m.session.RemoveItem(code)
			m.refresh()

			return m, nil
		case "c":
			return m.enterConfirm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RegisterModel) enterConfirm() (tea.Model, tea.Cmd) {
	if len(m.cart.Lines) == 0 {
		m.setStatus("Cart is empty", true)
		return m, nil
	}

	m.confirmed = new(false)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Complete sale for %s?", FormatAmount(m.cart.Total))).
				Affirmative("Checkout").
				Negative("Cancel").
				Value(m.confirmed),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = registerStateConfirm
	m.table.Blur()

	return m, m.form.Init()
}

func (m RegisterModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.leaveConfirm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.confirmed {
		return m.leaveConfirm(), nil
	}

	tx, err := m.session.Checkout()
	if err != nil {
		m = m.leaveConfirm()

		if errors.Is(err, checkout.ErrEmptyCart) {
			m.setStatus("Cart is empty", true)
		} else {
			m.setStatus(fmt.Sprintf("Checkout failed: %v", err), true)
		}

		return m, nil
	}

	m.form = nil
	m.receiptText = checkout.FormatReceipt(tx, m.receipt)
	m.state = registerStateReceipt
	m.setStatus(fmt.Sprintf("Transaction %s completed at %s", tx.ID, FormatTime(tx.Timestamp)), false)
	m.refresh()

	return m, nil
}

func (m RegisterModel) leaveConfirm() RegisterModel {
	m.form = nil
	m.state = registerStateCart
	m.table.Focus()

	return m
}

func (m RegisterModel) updateReceipt(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.session.StartScanning()
		m.receiptText = ""
		m.status = ""
		m.state = registerStateScan
		m.input.Focus()

		return m, textinput.Blink
	}

	return m, nil
}

func (m *RegisterModel) selectedCode() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.cart.Lines) {
		return ""
	}

	return m.cart.Lines[idx].Code
}

func (m *RegisterModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *RegisterModel) refresh() {
	m.cart = m.session.View()

	rows := make([]table.Row, 0, len(m.cart.Lines))
	for _, l := range m.cart.Lines {
		rows = append(rows, table.Row{
			l.Code,
			l.Name,
			FormatAmount(l.Price),
			strconv.Itoa(l.Quantity),
			FormatAmount(l.Amount()),
		})
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m RegisterModel) View() string {
	if m.state == registerStateReceipt {
		receipt := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(m.receiptText)

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, okStyle.Render(m.status), "", receipt),
		)
	}

	totals := fmt.Sprintf(
		"Subtotal %s   Tax %s   Total %s",
		FormatAmount(m.cart.Subtotal),
		FormatAmount(m.cart.Tax),
		activeStyle(FormatAmount(m.cart.Total)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.input.View(),
		"",
		framed(m.table.View()),
		totals,
	)

	if m.state == registerStateConfirm && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		style := faintStyle
		if m.statusErr {
			style = errorStyle
		}

		content = style.Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
