package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/custdesk/internal/customer"
	"github.com/muurk/custdesk/internal/manager"
	"github.com/muurk/custdesk/internal/ui"
)

// View renders the screen
func (m Model) View() string {
	return RenderApplicationContainer(m.buildContent(), m.endpoint, m.Help.View(m.Keys), m.Width, m.Height)
}

func (m Model) buildContent() string {
	width := m.Width - 8
	if width < MinTerminalWidth-8 {
		width = MinTerminalWidth - 8
	}

	sections := []string{
		panel(m.formSection(), m.Focus == FocusForm, width),
	}
	if status := RenderStatus(m.mgr.Status()); status != "" {
		sections = append(sections, " "+status)
	}
	sections = append(sections,
		panel(m.tableSection(), m.Focus == FocusTable, width),
		panel(m.lookupSection(), m.Focus == FocusLookup, width),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) formSection() string {
	var title string
	action := "Add"
	if m.mgr.Mode() == manager.ModeEdit {
		title = SectionTitleStyle.Render("Edit customer")
		action = "Update"
	} else {
		title = SectionTitleStyle.Render("New customer")
	}

	footer := SubtitleStyle.Render(fmt.Sprintf("ctrl+s %s", action))
	if m.mgr.Editing() {
		footer += SubtitleStyle.Render("  ·  esc Cancel")
	}
	if m.mgr.Submitting() {
		footer = m.spinner.View() + " " + SubtitleStyle.Render("Saving...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.form.view(m.Focus == FocusForm),
		footer,
	)
}

func (m Model) tableSection() string {
	customers := m.mgr.Customers()
	title := SectionTitleStyle.Render(fmt.Sprintf("Customers (%d)", len(customers)))
	if m.mgr.Loading() {
		title += " " + m.spinner.View()
	}

	if len(customers) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(ui.EmptyCollectionText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, m.table.View())
}

func (m Model) lookupSection() string {
	lines := []string{
		SectionTitleStyle.Render("Find customer by ID"),
		m.lookup.View(),
	}
	if c := m.mgr.LookupResult(); c != nil {
		lines = append(lines, JSONStyle.Render(FormatLookup(*c)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// FormatLookup renders a customer as indented JSON
func FormatLookup(c customer.Customer) string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return c.FormatCompact()
	}
	return strings.TrimSpace(string(data))
}
