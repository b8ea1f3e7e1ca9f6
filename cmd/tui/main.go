package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/till/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/till/internal/checkout"
	"github.com/MrJamesThe3rd/till/internal/config"
	"github.com/MrJamesThe3rd/till/internal/register"
)

const startupTimeout = 10 * time.Second

type model struct {
	session *register.Session
	receipt checkout.ReceiptOptions
	name    string

	currentView View
	width       int
	height      int

	registerView view.RegisterModel
	catalogView  view.CatalogModel
	receiptView  view.ReceiptModel
}

type View int

const (
	ViewMenu     View = 0
	ViewRegister View = 1
	ViewCatalog  View = 2
	ViewReceipt  View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	products, err := register.OpenCatalog(ctx, cfg)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	session, err := register.NewSessionFromConfig(products, cfg)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		os.Exit(1)
	}

	receipt := register.ReceiptOptions(cfg)

	return model{
		session:      session,
		receipt:      receipt,
		name:         cfg.App.Name,
		currentView:  ViewMenu,
		registerView: view.NewRegisterModel(session, receipt),
		catalogView:  view.NewCatalogModel(session),
		receiptView:  view.NewReceiptModel(session, receipt),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewRegister
				m.registerView = view.NewRegisterModel(m.session, m.receipt)

				return m, tea.Batch(m.registerView.Init(), m.resize())
			case "2":
				m.currentView = ViewCatalog
				m.catalogView = view.NewCatalogModel(m.session)

				return m, tea.Batch(m.catalogView.Init(), m.resize())
			case "3":
				m.currentView = ViewReceipt
				m.receiptView = view.NewReceiptModel(m.session, m.receipt)

				return m, m.receiptView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRegister:
		var newModel tea.Model
		newModel, cmd = m.registerView.Update(msg)
		m.registerView = newModel.(view.RegisterModel)
	case ViewCatalog:
		var newModel tea.Model
		newModel, cmd = m.catalogView.Update(msg)
		m.catalogView = newModel.(view.CatalogModel)
	case ViewReceipt:
		var newModel tea.Model
		newModel, cmd = m.receiptView.Update(msg)
		m.receiptView = newModel.(view.ReceiptModel)
	}

	return m, cmd
}

// resize replays the last window size so a freshly built view lays out its table.
func (m model) resize() tea.Cmd {
	if m.width == 0 {
		return nil
	}

	size := tea.WindowSizeMsg{Width: m.width, Height: m.height}

	return func() tea.Msg { return size }
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		cart := m.session.View()

		return lipgloss.NewStyle().Padding(2).Render(
			m.name + " Register\n\n" +
				"1. Register\n" +
				"2. Catalog\n" +
				"3. Last Receipt\n\n" +
				"q. Quit\n\n" +
				lipgloss.NewStyle().Faint(true).Render(
					view.FormatAmount(cart.Total)+" in cart",
				),
		)
	case ViewRegister:
		current = m.registerView
	case ViewCatalog:
		current = m.catalogView
	case ViewReceipt:
		current = m.receiptView
	default:
		return "Unknown View"
	}

	title := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(current.Title())
	help := lipgloss.NewStyle().Faint(true).Padding(0, 1).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, current.View(), help)
}

func main() {
	m := initialModel()

	logFile, err := tea.LogToFile("till-tui.log", "till")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
