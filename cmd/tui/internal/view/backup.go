package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/moneywise/internal/export"
	"github.com/MrJamesThe3rd/moneywise/internal/importer"
)

type backupState int

const (
	backupStateMenu backupState = iota
	backupStateFilePick
	backupStatePaste
	backupStateResult
)

type backupAction int

const (
	actionExportJSON backupAction = iota
	actionExportCSV
	actionRestoreFile
	actionRestoreText
	actionImportCSV
)

var backupActions = []struct {
	action backupAction
	label  string
}{
	{actionExportJSON, "Export backup (JSON)"},
	{actionExportCSV, "Export transactions (CSV)"},
	{actionRestoreFile, "Restore backup from file"},
	{actionRestoreText, "Restore backup from pasted text"},
	{actionImportCSV, "Import transactions from CSV"},
}

// BackupModel hosts export, restore and CSV import flows.
type BackupModel struct {
	CommonModel
	exportService *export.Service
	importService *importer.Service
	exportDir     string

	state  backupState
	cursor int
	action backupAction

	filePicker filepicker.Model

	form      *huh.Form
	pasteText string

	status string
	err    error
}

func NewBackupModel(expSvc *export.Service, impSvc *importer.Service, exportDir string) BackupModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return BackupModel{
		exportService: expSvc,
		importService: impSvc,
		exportDir:     exportDir,
		filePicker:    fp,
	}
}

func (m BackupModel) Title() string { return "Backup & Restore" }

func (m BackupModel) ShortHelp() string {
	switch m.state {
	case backupStateResult:
		return "Esc: back to menu"
	case backupStatePaste:
		return "Paste payload | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m BackupModel) Init() tea.Cmd {
	return nil
}

func (m BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == backupStateMenu {
			return m.updateMenu(msg)
		}

	case backupResultMsg:
		m.state = backupStateResult
		m.err = msg.err
		m.status = msg.status

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		return m, nil
	}

	switch m.state {
	case backupStateFilePick:
		return m.updateFilePick(msg)
	case backupStatePaste:
		return m.updatePaste(msg)
	}

	return m, nil
}

func (m BackupModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case backupStateFilePick, backupStatePaste, backupStateResult:
		m.state = backupStateMenu
		m.form = nil
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m BackupModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(backupActions)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		m.action = backupActions[m.cursor].action
		return m.startAction()
	}

	return m, nil
}

func (m BackupModel) startAction() (tea.Model, tea.Cmd) {
	switch m.action {
	case actionExportJSON, actionExportCSV:
		m.state = backupStateResult
		return m, m.exportCmd(m.action)

	case actionRestoreFile, actionImportCSV:
		m.state = backupStateFilePick
		return m, m.filePicker.Init()

	case actionRestoreText:
		m.pasteText = ""
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewText().
					Key("payload").
					Title("Backup JSON").
					Description("Paste the full backup document").
					Value(&m.pasteText).
					Validate(func(s string) error {
						if s == "" {
							return fmt.Errorf("payload cannot be empty")
						}

						return nil
					}),
			),
		).WithWidth(70).WithShowHelp(false)
		m.state = backupStatePaste

		return m, m.form.Init()
	}

	return m, nil
}

func (m BackupModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = backupStateResult
		return m, m.fileActionCmd(m.action, path)
	}

	return m, cmd
}

func (m BackupModel) updatePaste(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	// The payload must come from the form; the copy's bound field goes
	// stale across bubbletea updates.
	payload := m.form.GetString("payload")

	m.state = backupStateResult
	m.form = nil

	return m, m.restoreTextCmd(payload)
}

func (m BackupModel) View() string {
	switch m.state {
	case backupStateMenu:
		return m.viewMenu()
	case backupStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file:\n\n%s", m.filePicker.View()),
		)
	case backupStatePaste:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case backupStateResult:
		return m.viewResult()
	}

	return ""
}

func (m BackupModel) viewMenu() string {
	s := "Backup & Restore:\n\n"

	for i, a := range backupActions {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, a.label)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m BackupModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)

	if m.status == "" {
		return style.Render("Working...")
	}

	body := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status)
	if m.err != nil {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status)
	}

	return style.Render(body + "\n\n(Esc to go back)")
}

// Messages

type backupResultMsg struct {
	status string
	err    error
}

func (m BackupModel) exportCmd(action backupAction) tea.Cmd {
	return func() tea.Msg {
		var (
			path string
			err  error
		)

		if action == actionExportJSON {
			path, err = m.exportService.WriteBackup(m.exportDir)
		} else {
			path, err = m.exportService.WriteCSV(m.exportDir)
		}

		if err != nil {
			return backupResultMsg{err: err}
		}

		return backupResultMsg{status: fmt.Sprintf("Written to %s", path)}
	}
}

func (m BackupModel) fileActionCmd(action backupAction, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SaveCtx()
		defer cancel()

		if action == actionRestoreFile {
			if err := m.importService.RestoreFile(ctx, path); err != nil {
				return backupResultMsg{err: err}
			}

			return backupResultMsg{status: "Backup restored."}
		}

		f, err := os.Open(path)
		if err != nil {
			return backupResultMsg{err: err}
		}
		defer f.Close()

		count, err := m.importService.ImportCSV(ctx, f)
		if err != nil {
			return backupResultMsg{err: err}
		}

		return backupResultMsg{status: fmt.Sprintf("Imported %d transactions.", count)}
	}
}

func (m BackupModel) restoreTextCmd(payload string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SaveCtx()
		defer cancel()

		if err := m.importService.RestoreText(ctx, payload); err != nil {
			return backupResultMsg{err: err}
		}

		return backupResultMsg{status: "Backup restored."}
	}
}
