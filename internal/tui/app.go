package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/custdesk/internal/customer"
	"github.com/muurk/custdesk/internal/logging"
	"github.com/muurk/custdesk/internal/manager"
)

// Focus identifies the panel receiving key input
type Focus int

const (
	FocusForm Focus = iota
	FocusTable
	FocusLookup
	focusCount
)

// keyMap defines key bindings for the customer screen
type keyMap struct {
	NextPanel key.Binding
	PrevPanel key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Refresh   key.Binding
	Lookup    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPanel, k.Submit, k.Cancel, k.Edit, k.Delete, k.Refresh, k.Help}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPanel, k.PrevPanel, k.Up, k.Down},
		{k.Left, k.Right, k.Submit, k.Cancel},
		{k.Edit, k.Delete, k.Refresh, k.Lookup},
		{k.Help, k.Quit, k.ForceQuit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		NextPanel: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
		PrevPanel: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev panel")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "enter"), key.WithHelp("↓/enter", "down")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev gender")),
		Right:     key.NewBinding(key.WithKeys("right", " "), key.WithHelp("→/space", "next gender")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel edit")),
		Edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit row")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete row")),
		Refresh:   key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
		Lookup:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "look up")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
	}
}

// Model is the customer management screen: edit form, collection table,
// lookup panel and status line, all backed by a manager.Manager.
type Model struct {
	mgr      *manager.Manager
	endpoint string

	form    formModel
	table   table.Model
	lookup  textinput.Model
	spinner spinner.Model

	Focus  Focus
	Width  int
	Height int

	Help help.Model
	Keys keyMap
}

// New creates the screen around mgr. endpoint is shown in the header.
func New(mgr *manager.Manager, endpoint string) Model {
	columns := make([]table.Column, len(customer.Fields))
	for i, f := range customer.Fields {
		columns[i] = table.Column{Title: f.Label, Width: f.Width}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(8),
		table.WithFocused(false),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(SubtleColor).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(TextColor).
		Background(PrimaryColor)
	t.SetStyles(ts)

	lookup := textinput.New()
	lookup.Placeholder = "customer id"
	lookup.CharLimit = 19
	lookup.Width = 20

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return Model{
		mgr:      mgr,
		endpoint: endpoint,
		form:     newFormModel(),
		table:    t,
		lookup:   lookup,
		spinner:  s,
		Focus:    FocusForm,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Help:     help.New(),
		Keys:     newKeyMap(),
	}
}

// Manager returns the state object behind the screen
func (m Model) Manager() *manager.Manager {
	return m.mgr
}

// Init loads the collection and starts the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.mgr.Init(), m.spinner.Tick)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case manager.ListResultMsg, manager.LookupResultMsg:
		cmd := m.mgr.Update(msg)
		m.syncTable()
		return m, cmd

	case manager.MutationResultMsg:
		cmd := m.mgr.Update(msg)
		m.form.sync(m.mgr.Buffer())
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.NextPanel):
		m.setFocus((m.Focus + 1) % focusCount)
		return m, nil

	case key.Matches(msg, m.Keys.PrevPanel):
		m.setFocus((m.Focus + focusCount - 1) % focusCount)
		return m, nil

	case key.Matches(msg, m.Keys.Submit):
		return m, m.mgr.Submit()

	case key.Matches(msg, m.Keys.Cancel):
		m.mgr.Cancel()
		m.form.sync(m.mgr.Buffer())
		return m, nil
	}

	switch m.Focus {
	case FocusTable:
		return m.updateTable(msg)
	case FocusLookup:
		return m.updateLookup(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m *Model) setFocus(f Focus) {
	m.Focus = f
	m.form.blur()
	m.table.Blur()
	m.lookup.Blur()

	switch f {
	case FocusForm:
		m.form.focusCursor()
	case FocusTable:
		m.table.Focus()
	case FocusLookup:
		m.lookup.Focus()
	}
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Up):
		m.form.move(-1)
		return m, nil
	case key.Matches(msg, m.Keys.Down):
		m.form.move(1)
		return m, nil
	}

	if m.form.current().Key == customer.FieldGender {
		delta := 0
		switch {
		case key.Matches(msg, m.Keys.Left):
			delta = -1
		case key.Matches(msg, m.Keys.Right):
			delta = 1
		}
		if delta != 0 {
			g := m.form.cycleGender(delta)
			if err := m.mgr.Set(customer.FieldGender, string(g)); err != nil {
				logging.Warn("Gender rejected", zap.Error(err))
			}
		}
		return m, nil
	}

	field, value, cmd := m.form.updateInput(msg)
	if err := m.mgr.Set(field, value); err != nil {
		logging.Warn("Field rejected", zap.String("field", string(field)), zap.Error(err))
	}
	return m, cmd
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return m, nil

	case key.Matches(msg, m.Keys.Refresh):
		return m, m.mgr.Refresh()

	case key.Matches(msg, m.Keys.Edit):
		if id, ok := m.selectedID(); ok && m.mgr.EditByID(id) {
			m.form.sync(m.mgr.Buffer())
			m.setFocus(FocusForm)
		}
		return m, nil

	case key.Matches(msg, m.Keys.Delete):
		if id, ok := m.selectedID(); ok {
			return m, m.mgr.Delete(id)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateLookup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.Keys.Lookup) {
		return m, m.mgr.Lookup(m.lookup.Value())
	}

	var cmd tea.Cmd
	m.lookup, cmd = m.lookup.Update(msg)
	return m, cmd
}

func (m Model) selectedID() (int64, bool) {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (m *Model) syncTable() {
	customers := m.mgr.Customers()
	rows := make([]table.Row, len(customers))
	for i, c := range customers {
		rows[i] = customer.Row(c)
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// Run starts the interactive screen on the alternate screen buffer and blocks
// until the user quits.
func Run(mgr *manager.Manager, endpoint string) error {
	program := tea.NewProgram(New(mgr, endpoint), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
