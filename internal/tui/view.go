package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

func (m Model) View() string {
	sections := []string{m.renderHeader()}

	if dash := m.renderDashboard(); dash != "" {
		sections = append(sections, dash)
	}

	switch m.mode {
	case modeLogin, modeOpen, modeNew:
		sections = append(sections, modalStyle.Render(m.prompt.View()))
	case modeCell:
		sections = append(sections, m.renderCellEditor())
	case modeAdd:
		sections = append(sections, m.renderAddForm())
	}

	if m.mode != modeEdit && m.mode != modeCell && m.mode != modeAdd {
		sections = append(sections, m.renderSearch())
	}
	sections = append(sections, m.renderBody())

	if m.status != "" {
		sections = append(sections, m.renderStatus())
	}
	sections = append(sections, m.renderFooter())

	return appStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("📚 Library Catalog")
	role := "Student"
	if m.lib.Role() == models.RoleAdmin {
		role = "Librarian"
	}
	parts := []string{title, " ", roleBadgeStyle.Render(role)}
	if m.mode == modeEdit || m.mode == modeCell || m.mode == modeAdd {
		parts = append(parts, " ", warnStyle.Render("EDIT"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// renderDashboard shows aggregate statistics. Guests get nothing.
func (m Model) renderDashboard() string {
	stats, err := m.lib.Stats()
	if err != nil || stats.Total == 0 {
		return ""
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Admin Dashboard"),
		fmt.Sprintf("Total Books available: %d", stats.Total),
	}
	if stats.Column != "" {
		lines = append(lines, fmt.Sprintf("Books per %s: %s", stats.Column, formatCategories(stats.Categories)))
	}
	return dashboardStyle.Render(strings.Join(lines, "\n"))
}

func formatCategories(categories []models.CategoryCount) string {
	parts := make([]string, len(categories))
	for i, c := range categories {
		parts[i] = fmt.Sprintf("%s: %d", c.Name, c.Count)
	}
	return strings.Join(parts, ", ")
}

func (m Model) renderSearch() string {
	scope := "all columns"
	if name := m.searchColumnName(); name != "" {
		scope = name
	}
	style := searchStyle
	if m.mode == modeSearch {
		style = focusedSearchStyle
	}
	return style.Render(m.search.View()) + " " + labelStyle.Render("in "+scope+" (tab to change)")
}

func (m Model) renderBody() string {
	if m.lib.Path() == "" {
		return emptyStyle.Render("Please Load a File to Continue. (ctrl+o open, ctrl+n new)")
	}
	if m.mode == modeBrowse || m.mode == modeSearch || m.mode == modeLogin || m.mode == modeOpen || m.mode == modeNew {
		if m.lib.Catalog().Len() == 0 {
			return emptyStyle.Render("No Data Found, Please contact librarian to add data")
		}
	}
	return m.grid.View()
}

func (m Model) renderCellEditor() string {
	column := ""
	if cols := m.ws.Columns(); m.editColumn < len(cols) {
		column = cols[m.editColumn]
	}
	title := lipgloss.NewStyle().Bold(true).Render("Edit Cell: " + column)
	hint := labelStyle.Render("ctrl+s save • esc cancel")
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, m.cell.View(), hint))
}

func (m Model) renderAddForm() string {
	lines := []string{lipgloss.NewStyle().Bold(true).Render("Add New Book")}
	for _, in := range m.addInputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, labelStyle.Render("tab next • enter on last field or ctrl+s save • esc cancel"))
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	switch m.statusKind {
	case statusError:
		return errorStyle.Render("✗ " + m.status)
	case statusWarn:
		return warnStyle.Render("! " + m.status)
	default:
		return infoStyle.Render("✓ " + m.status)
	}
}

func (m Model) renderFooter() string {
	var lines []string
	if path := m.lib.Path(); path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		info := fmt.Sprintf("Current file: %s", path)
		if m.lib.Role().CanViewStats() {
			info += fmt.Sprintf("  •  Books available: %d", m.lib.Catalog().Len())
		}
		if m.mode == modeEdit && m.ws != nil {
			info += fmt.Sprintf("  •  %d row(s), %d selected", m.ws.Len(), m.ws.SelectedCount())
		}
		lines = append(lines, fileStyle.Render(info))
	}
	if m.showHelp {
		lines = append(lines, m.help.FullHelpView(m.helpGroups()))
	} else {
		lines = append(lines, m.help.ShortHelpView(m.shortHelp()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) shortHelp() []key.Binding {
	switch m.mode {
	case modeEdit:
		return []key.Binding{m.keys.Toggle, m.keys.EditCell, m.keys.Add, m.keys.Delete, m.keys.Save, m.keys.Cancel, m.keys.Help}
	case modeSearch:
		return []key.Binding{m.keys.NextColumn, m.keys.Submit, m.keys.Cancel}
	case modeBrowse:
		bindings := []key.Binding{m.keys.Search, m.keys.Open, m.keys.Login}
		if m.lib.Role().CanEdit() {
			bindings = append(bindings, m.keys.Edit)
		}
		return append(bindings, m.keys.Help, m.keys.Quit)
	default:
		return []key.Binding{m.keys.Cancel}
	}
}

func (m Model) helpGroups() [][]key.Binding {
	if m.mode == modeEdit {
		return [][]key.Binding{
			{m.keys.Toggle, m.keys.EditCell, m.keys.Left},
			{m.keys.Add, m.keys.Delete},
			{m.keys.Save, m.keys.Cancel, m.keys.Help},
		}
	}
	file := []key.Binding{m.keys.New, m.keys.Open, m.keys.Reload, m.keys.Backup}
	view := []key.Binding{m.keys.Search, m.keys.NextColumn}
	account := []key.Binding{m.keys.Login, m.keys.Logout}
	if m.lib.Role().CanEdit() {
		account = append(account, m.keys.Edit)
	}
	return [][]key.Binding{file, view, account, {m.keys.Help, m.keys.Quit}}
}
