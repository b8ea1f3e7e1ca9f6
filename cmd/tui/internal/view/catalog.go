package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/till/internal/barcode"
	"github.com/MrJamesThe3rd/till/internal/cart"
	"github.com/MrJamesThe3rd/till/internal/catalog"
	"github.com/MrJamesThe3rd/till/internal/register"
)

// CatalogModel lists products and lets the cashier add items that carry no
// readable barcode.
type CatalogModel struct {
	CommonModel
	session *register.Session

	filter  textinput.Model
	table   table.Model
	visible []catalog.Product
	status  string
}

func NewCatalogModel(session *register.Session) CatalogModel {
	ti := textinput.New()
	ti.Placeholder = "Filter by code or name"
	ti.Width = 40
	ti.Focus()

	m := CatalogModel{
		session: session,
		filter:  ti,
		table: newTable([]table.Column{
			{Title: "Code", Width: 15},
			{Title: "Name", Width: 30},
			{Title: "Price", Width: 10},
			{Title: "Format", Width: 9},
		}, 15),
	}
	m.applyFilter()

	return m
}

func (m CatalogModel) Title() string { return "Catalog" }

func (m CatalogModel) ShortHelp() string {
	return "Type to filter | ↑/↓: select | Enter: add to cart | Esc: back"
}

func (m CatalogModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "enter":
			m.addSelected()
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)

			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()

	return m, cmd
}

func (m *CatalogModel) addSelected() {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return
	}

	line, err := m.session.AddItem(m.visible[idx].Code)
	if err != nil {
		if errors.Is(err, cart.ErrProductNotFound) {
			m.status = errorStyle.Render("Product not found")
			return
		}

		m.status = errorStyle.Render(err.Error())

		return
	}

	m.status = okStyle.Render(fmt.Sprintf("Added %s (x%d)", line.Name, line.Quantity))
}

func (m *CatalogModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))

	m.visible = m.visible[:0]
	for _, p := range m.session.Catalog().Products() {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(p.Code, q) {
			m.visible = append(m.visible, p)
		}
	}

	rows := make([]table.Row, 0, len(m.visible))
	for _, p := range m.visible {
		rows = append(rows, table.Row{p.Code, p.Name, FormatAmount(p.Price), string(barcode.Detect(p.Code))})
	}

	m.table.SetRows(rows)

	if len(rows) > 0 && m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m CatalogModel) View() string {
	header := fmt.Sprintf("%d products", m.session.Catalog().Len())
	if dups := m.session.Catalog().Duplicates(); len(dups) > 0 {
		header += errorStyle.Render(fmt.Sprintf("  (%d duplicate codes ignored)", len(dups)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.filter.View(),
		"",
		framed(m.table.View()),
	)

	if m.status != "" {
		content += "\n" + m.status
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
