package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/moneywise/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/moneywise/internal/clock"
	"github.com/MrJamesThe3rd/moneywise/internal/config"
	"github.com/MrJamesThe3rd/moneywise/internal/database"
	"github.com/MrJamesThe3rd/moneywise/internal/export"
	"github.com/MrJamesThe3rd/moneywise/internal/finance"
	"github.com/MrJamesThe3rd/moneywise/internal/finance/store"
	"github.com/MrJamesThe3rd/moneywise/internal/importer"
	"github.com/MrJamesThe3rd/moneywise/internal/insight"
)

type model struct {
	cfg *config.Config

	financeService *finance.Service
	insightService *insight.Service
	exportService  *export.Service
	importService  *importer.Service

	currentView View

	dashboardView    view.DashboardModel
	transactionsView view.TransactionsModel
	categoriesView   view.CategoriesModel
	insightsView     view.InsightsModel
	backupView       view.BackupModel
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewTransactions View = 2
	ViewCategories   View = 3
	ViewInsights     View = 4
	ViewBackup       View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var storage finance.Storage

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := database.Open(cfg.Storage.Path)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}

		storage, err = store.NewSQLite(ctx, db)
		if err != nil {
			slog.Error("failed to initialize storage", "error", err)
			os.Exit(1)
		}
	default:
		storage = store.NewFile(cfg.Storage.Path)
	}

	sysClock := clock.SystemClock{}

	financeSvc := finance.NewService(ctx, storage)
	insightSvc := insight.NewService(sysClock)
	exportSvc := export.NewService(financeSvc, sysClock)
	importSvc := importer.NewService(financeSvc)

	symbol := cfg.Currency.Symbol

	return model{
		cfg:              cfg,
		financeService:   financeSvc,
		insightService:   insightSvc,
		exportService:    exportSvc,
		importService:    importSvc,
		currentView:      ViewMenu,
		dashboardView:    view.NewDashboardModel(financeSvc, symbol),
		transactionsView: view.NewTransactionsModel(financeSvc, symbol),
		categoriesView:   view.NewCategoriesModel(financeSvc, symbol),
		insightsView:     view.NewInsightsModel(financeSvc, insightSvc, symbol),
		backupView:       view.NewBackupModel(exportSvc, importSvc, cfg.Export.Dir),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			symbol := m.cfg.Currency.Symbol

			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.financeService, symbol)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.financeService, symbol)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewCategories
				m.categoriesView = view.NewCategoriesModel(m.financeService, symbol)

				return m, m.categoriesView.Init()
			case "4":
				m.currentView = ViewInsights
				m.insightsView = view.NewInsightsModel(m.financeService, m.insightService, symbol)

				return m, m.insightsView.Init()
			case "5":
				m.currentView = ViewBackup
				m.backupView = view.NewBackupModel(m.exportService, m.importService, m.cfg.Export.Dir)

				return m, m.backupView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewCategories:
		var newModel tea.Model
		newModel, cmd = m.categoriesView.Update(msg)
		m.categoriesView = newModel.(view.CategoriesModel)
	case ViewInsights:
		var newModel tea.Model
		newModel, cmd = m.insightsView.Update(msg)
		m.insightsView = newModel.(view.InsightsModel)
	case ViewBackup:
		var newModel tea.Model
		newModel, cmd = m.backupView.Update(msg)
		m.backupView = newModel.(view.BackupModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.cfg.App.Name + "\n\n" +
				"1. Dashboard\n" +
				"2. Transactions\n" +
				"3. Categories\n" +
				"4. Insights\n" +
				"5. Backup & Restore\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewCategories:
		return m.categoriesView.View()
	case ViewInsights:
		return m.insightsView.View()
	case ViewBackup:
		return m.backupView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
