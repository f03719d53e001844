// Package tui is the interactive terminal front end of bookcat.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ukaji3/bookcat-go/internal/logging"
	"github.com/ukaji3/bookcat-go/pkg/bookcat"
	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeLogin
	modeOpen
	modeNew
	modeEdit
	modeCell
	modeAdd
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusWarn
	statusError
)

const (
	selectColumnTitle = "Select"
	minColumnWidth    = 8
	defaultGridHeight = 15
)

// Model is the bubbletea model. All catalog state lives in the Library.
type Model struct {
	lib  *bookcat.Library
	keys keyMap
	help help.Model
	log  *slog.Logger

	grid      table.Model
	search    textinput.Model
	prompt    textinput.Model
	cell      textarea.Model
	addInputs []textinput.Model
	addFocus  int

	mode     mode
	showHelp bool

	// searchColumn is the column searched, or -1 for the whole row.
	searchColumn int

	ws             *bookcat.WorkingSet
	editColumn     int
	confirmDiscard bool

	// confirmOverwrite is the existing path a new file would replace,
	// set until the user submits it a second time.
	confirmOverwrite string

	status     string
	statusKind statusKind

	width  int
	height int
}

// NewModel creates the model over lib. startupErr, if any, is shown in the
// status line (e.g. the resumed file failed to load).
func NewModel(lib *bookcat.Library, startupErr error) Model {
	search := textinput.New()
	search.Placeholder = bookcat.SearchPlaceholder
	search.Prompt = "🔍 "
	search.CharLimit = 200

	prompt := textinput.New()
	prompt.CharLimit = 1024

	cell := textarea.New()
	cell.ShowLineNumbers = false
	cell.SetHeight(6)

	grid := table.New(
		table.WithFocused(true),
		table.WithHeight(defaultGridHeight),
	)
	grid.SetStyles(gridStyles())

	m := Model{
		lib:          lib,
		keys:         keys,
		help:         help.New(),
		log:          logging.WithComponent("tui"),
		grid:         grid,
		search:       search,
		prompt:       prompt,
		cell:         cell,
		searchColumn: -1,
	}
	if startupErr != nil {
		m.setStatus(statusError, startupErr.Error())
	}
	m.refreshGrid()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeLogin, modeOpen, modeNew:
			return m.updatePrompt(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeCell:
			return m.updateCell(msg)
		case modeAdd:
			return m.updateAdd(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NextColumn):
		m.cycleSearchColumn()
		return m, nil

	case key.Matches(msg, m.keys.Login):
		cmd := m.openPrompt(modeLogin, "Enter Librarian Password: ", "", true)
		return m, cmd

	case key.Matches(msg, m.keys.Logout):
		m.lib.Logout()
		m.setStatus(statusInfo, "Logged out. Student access.")
		return m, nil

	case key.Matches(msg, m.keys.Open):
		cmd := m.openPrompt(modeOpen, "Open file: ", m.lib.Path(), false)
		return m, cmd

	case key.Matches(msg, m.keys.New):
		m.confirmOverwrite = ""
		cmd := m.openPrompt(modeNew, "New file: ", "", false)
		return m, cmd

	case key.Matches(msg, m.keys.Backup):
		m.takeBackup()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if err := m.lib.Reload(); err != nil {
			m.setStatus(statusError, err.Error())
		} else {
			m.setStatus(statusInfo, "File loaded")
		}
		m.refreshGrid()
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		m.beginEdit()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.search.Blur()
		m.mode = modeBrowse
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.search.Reset()
		m.search.Blur()
		m.mode = modeBrowse
		m.refreshGrid()
		return m, nil

	case key.Matches(msg, m.keys.NextColumn):
		m.cycleSearchColumn()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshGrid()
	return m, cmd
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		m.confirmOverwrite = ""
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		value := m.prompt.Value()
		current := m.mode
		m.closePrompt()
		var cmd tea.Cmd
		switch current {
		case modeLogin:
			m.login(value)
		case modeOpen:
			m.openFile(strings.TrimSpace(value))
		case modeNew:
			cmd = m.newFile(strings.TrimSpace(value))
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Cancel) {
		m.confirmDiscard = false
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.ws.Dirty() && !m.confirmDiscard {
			m.confirmDiscard = true
			m.setStatus(statusWarn, "Unsaved changes. Press esc again to discard, ctrl+s to save.")
			return m, nil
		}
		m.endEdit()
		m.setStatus(statusInfo, "Edit cancelled")
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.saveChanges()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if err := m.ws.ToggleSelection(m.grid.Cursor()); err != nil {
			m.setStatus(statusWarn, err.Error())
		}
		m.refreshGrid()
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.editColumn > 0 {
			m.editColumn--
			m.refreshGrid()
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.editColumn < len(m.ws.Columns())-1 {
			m.editColumn++
			m.refreshGrid()
		}
		return m, nil

	case key.Matches(msg, m.keys.EditCell):
		cmd := m.openCellEditor()
		return m, cmd

	case key.Matches(msg, m.keys.Add):
		cmd := m.openAddForm()
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		if n := m.ws.DeleteSelected(); n == 0 {
			m.setStatus(statusWarn, "Please select rows to delete.")
		} else {
			m.setStatus(statusInfo, fmt.Sprintf("%d row(s) deleted. Press ctrl+s to save.", n))
		}
		m.refreshGrid()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m Model) updateCell(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.cell.Blur()
		m.mode = modeEdit
		return m, nil

	case key.Matches(msg, m.keys.Save):
		column := m.ws.Columns()[m.editColumn]
		if err := m.ws.EditCell(m.grid.Cursor(), column, m.cell.Value()); err != nil {
			m.setStatus(statusError, err.Error())
		} else {
			m.setStatus(statusInfo, fmt.Sprintf("%s updated. Press ctrl+s to save.", column))
		}
		m.cell.Blur()
		m.mode = modeEdit
		m.refreshGrid()
		return m, nil
	}

	var cmd tea.Cmd
	m.cell, cmd = m.cell.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.addInputs = nil
		m.mode = modeEdit
		return m, nil

	case key.Matches(msg, m.keys.Save),
		key.Matches(msg, m.keys.Submit) && m.addFocus == len(m.addInputs)-1:
		values := make([]string, len(m.addInputs))
		for i, in := range m.addInputs {
			values[i] = in.Value()
		}
		if err := m.ws.AddRow(values); err != nil {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		m.addInputs = nil
		m.mode = modeEdit
		m.setStatus(statusInfo, "Book added. Press ctrl+s to save.")
		m.refreshGrid()
		m.grid.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.Submit):
		cmd := m.focusAddField(m.addFocus + 1)
		return m, cmd

	case key.Matches(msg, m.keys.PrevField):
		cmd := m.focusAddField(m.addFocus - 1)
		return m, cmd
	}

	var cmd tea.Cmd
	m.addInputs[m.addFocus], cmd = m.addInputs[m.addFocus].Update(msg)
	return m, cmd
}

func (m *Model) openPrompt(md mode, label, value string, secret bool) tea.Cmd {
	m.mode = md
	m.prompt.Reset()
	m.prompt.Prompt = label
	m.prompt.SetValue(value)
	if secret {
		m.prompt.EchoMode = textinput.EchoPassword
		m.prompt.EchoCharacter = '*'
	} else {
		m.prompt.EchoMode = textinput.EchoNormal
	}
	return m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.prompt.Blur()
	m.prompt.Reset()
	m.mode = modeBrowse
}

func (m *Model) login(secret string) {
	if m.lib.Authenticate(secret) == models.RoleAdmin {
		m.setStatus(statusInfo, "Logged In as Librarian")
	} else {
		m.setStatus(statusWarn, "Invalid password. Student access granted.")
	}
}

func (m *Model) openFile(path string) {
	if path == "" {
		return
	}
	if err := m.lib.Open(path); err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.search.Reset()
	m.searchColumn = -1
	m.setStatus(statusInfo, "File loaded")
	m.refreshGrid()
}

// newFile creates an empty catalog at path. An existing file is only
// replaced after the same path is submitted twice.
func (m *Model) newFile(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	if filepath.Ext(path) == "" {
		path += ".xlsx"
	}
	if _, err := os.Stat(path); err == nil && m.confirmOverwrite != path {
		m.confirmOverwrite = path
		m.setStatus(statusWarn, fmt.Sprintf("%s already exists. Press enter to overwrite it, esc to cancel.", path))
		return m.openPrompt(modeNew, "Overwrite file: ", path, false)
	}
	m.confirmOverwrite = ""
	if err := m.lib.Create(path, nil); err != nil {
		m.setStatus(statusError, err.Error())
		return nil
	}
	m.search.Reset()
	m.searchColumn = -1
	m.setStatus(statusInfo, "New file created")
	m.refreshGrid()
	return nil
}

func (m *Model) takeBackup() {
	backup, err := m.lib.Backup()
	if err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.setStatus(statusInfo, "Backup created: "+filepath.Base(backup))
}

func (m *Model) beginEdit() {
	ws, err := m.lib.BeginEdit()
	if err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.ws = ws
	m.editColumn = 0
	m.confirmDiscard = false
	m.mode = modeEdit
	m.setStatus(statusInfo, "Editing. space selects, enter edits a cell, a adds, D deletes, ctrl+s saves.")
	m.refreshGrid()
	m.grid.GotoTop()
}

func (m *Model) endEdit() {
	m.ws = nil
	m.addInputs = nil
	m.confirmDiscard = false
	m.mode = modeBrowse
	m.refreshGrid()
}

func (m *Model) saveChanges() {
	if err := m.lib.Commit(m.ws); err != nil {
		m.log.Error("save failed", "error", err)
		m.setStatus(statusError, err.Error())
		return
	}
	m.endEdit()
	m.setStatus(statusInfo, "Data Saved!")
}

func (m *Model) openCellEditor() tea.Cmd {
	if m.ws.Len() == 0 || len(m.ws.Columns()) == 0 {
		m.setStatus(statusWarn, "Nothing to edit.")
		return nil
	}
	row, err := m.ws.Row(m.grid.Cursor())
	if err != nil {
		m.setStatus(statusWarn, err.Error())
		return nil
	}
	m.cell.SetValue(row.Field(m.editColumn))
	m.mode = modeCell
	return m.cell.Focus()
}

func (m *Model) openAddForm() tea.Cmd {
	columns := m.ws.Columns()
	if len(columns) == 0 {
		m.setStatus(statusWarn, "The catalog has no columns.")
		return nil
	}
	m.addInputs = make([]textinput.Model, len(columns))
	for i, name := range columns {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-18s ", name+":")
		in.CharLimit = 1024
		m.addInputs[i] = in
	}
	m.mode = modeAdd
	m.addFocus = 0
	return m.addInputs[0].Focus()
}

func (m *Model) focusAddField(i int) tea.Cmd {
	if i < 0 || i >= len(m.addInputs) {
		return nil
	}
	m.addInputs[m.addFocus].Blur()
	m.addFocus = i
	return m.addInputs[i].Focus()
}

func (m *Model) cycleSearchColumn() {
	n := m.lib.Catalog().Width()
	if n == 0 {
		m.searchColumn = -1
		return
	}
	m.searchColumn++
	if m.searchColumn >= n {
		m.searchColumn = -1
	}
	m.refreshGrid()
}

func (m Model) searchColumnName() string {
	columns := m.lib.Catalog().Columns
	if m.searchColumn < 0 || m.searchColumn >= len(columns) {
		return ""
	}
	return columns[m.searchColumn]
}

// projection applies the current search to the active catalog.
func (m Model) projection() []models.Record {
	term := m.search.Value()
	column := m.searchColumnName()
	if column == "" {
		return m.lib.Search(term)
	}
	records, err := m.lib.SearchColumn(column, term)
	if err != nil {
		return m.lib.Search(term)
	}
	return records
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
	switch kind {
	case statusError:
		m.log.Warn("user error", "message", text)
	default:
		m.log.Debug("status", "message", text)
	}
}

// refreshGrid rebuilds the table from the catalog or the working set.
func (m *Model) refreshGrid() {
	var (
		columns []table.Column
		rows    []table.Row
	)
	if m.mode == modeEdit || m.mode == modeCell || m.mode == modeAdd {
		columns, rows = editGrid(m.ws, m.editColumn, m.columnWidth(m.ws.Columns(), true))
	} else {
		c := m.lib.Catalog()
		columns, rows = browseGrid(c.Columns, m.projection(), m.columnWidth(c.Columns, false))
	}

	// Clear rows first: the table renders rows against the current columns.
	cursor := m.grid.Cursor()
	m.grid.SetRows(nil)
	m.grid.SetColumns(columns)
	m.grid.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	m.grid.SetCursor(cursor)
}

func (m *Model) updateLayout() {
	height := m.height - 14
	if m.lib.Role().CanViewStats() {
		height -= 4
	}
	if height < 3 {
		height = 3
	}
	m.grid.SetHeight(height)
	m.grid.SetWidth(m.width - 2)
	m.search.Width = m.width - 12
	m.cell.SetWidth(m.width - 10)
	m.help.Width = m.width
	m.refreshGrid()
}

func (m Model) columnWidth(columns []string, withSelect bool) int {
	n := len(columns)
	if n == 0 {
		return minColumnWidth
	}
	available := m.width - 4
	if available <= 0 {
		available = 120
	}
	if withSelect {
		available -= len(selectColumnTitle) + 2
	}
	w := available/n - 2
	if w < minColumnWidth {
		w = minColumnWidth
	}
	return w
}

func browseGrid(names []string, records []models.Record, width int) ([]table.Column, []table.Row) {
	columns := make([]table.Column, len(names))
	for i, name := range names {
		columns[i] = table.Column{Title: name, Width: width}
	}
	rows := make([]table.Row, len(records))
	for i, r := range records {
		row := make(table.Row, len(names))
		for j := range names {
			row[j] = displayText(r.Field(j))
		}
		rows[i] = row
	}
	return columns, rows
}

func editGrid(ws *bookcat.WorkingSet, current, width int) ([]table.Column, []table.Row) {
	names := ws.Columns()
	columns := make([]table.Column, 0, len(names)+1)
	columns = append(columns, table.Column{Title: selectColumnTitle, Width: len(selectColumnTitle)})
	for i, name := range names {
		title := name
		if i == current {
			title = "▸" + name
		}
		columns = append(columns, table.Column{Title: title, Width: width})
	}

	rows := make([]table.Row, ws.Len())
	for i := range rows {
		r, _ := ws.Row(i)
		row := make(table.Row, 0, len(names)+1)
		row = append(row, checkbox(ws.Selected(i)))
		for j := range names {
			row = append(row, displayText(r.Field(j)))
		}
		rows[i] = row
	}
	return columns, rows
}

func checkbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

// displayText flattens multi-line cell text for the grid.
func displayText(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", " "), "\n", " ")
}

// Run starts the full-screen program.
func Run(lib *bookcat.Library, startupErr error) error {
	p := tea.NewProgram(NewModel(lib, startupErr), tea.WithAltScreen())
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
