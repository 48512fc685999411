package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/custdesk/internal/customer"
	"github.com/muurk/custdesk/internal/manager"
)

type fakeGateway struct {
	customers []customer.Customer
	created   []customer.Customer
	updated   []customer.Customer
	deleted   []int64
}

func (g *fakeGateway) ListAll(ctx context.Context) ([]customer.Customer, error) {
	return append([]customer.Customer(nil), g.customers...), nil
}

func (g *fakeGateway) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	for _, c := range g.customers {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, errors.New("not found")
}

func (g *fakeGateway) Create(ctx context.Context, c customer.Customer) error {
	g.created = append(g.created, c)
	g.customers = append(g.customers, c)
	return nil
}

func (g *fakeGateway) Update(ctx context.Context, c customer.Customer) error {
	g.updated = append(g.updated, c)
	return nil
}

func (g *fakeGateway) DeleteByID(ctx context.Context, id int64) (string, error) {
	g.deleted = append(g.deleted, id)
	return "Customer deleted.", nil
}

func sampleCustomers() []customer.Customer {
	return []customer.Customer{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Contact: "555-0001", Gender: customer.GenderFemale, Address: "1 Elm St"},
		{ID: 2, Name: "Bob", Email: "bob@example.com", Contact: "555-0002", Gender: customer.GenderMale, Address: "2 Oak St"},
	}
}

// run executes cmd and feeds every resulting message back into the model.
func run(m Model, cmd tea.Cmd) Model {
	for cmd != nil {
		updated, next := m.Update(cmd())
		m = updated.(Model)
		cmd = next
	}
	return m
}

// press sends a key and drops any command it returns.
func press(m Model, msg tea.KeyMsg) Model {
	updated, _ := m.Update(msg)
	return updated.(Model)
}

// pressRun sends a key and runs the command it returns.
func pressRun(m Model, msg tea.KeyMsg) Model {
	updated, cmd := m.Update(msg)
	return run(updated.(Model), cmd)
}

func typeText(m Model, s string) Model {
	return press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func newLoadedModel(t *testing.T, gw *fakeGateway) Model {
	t.Helper()
	m := New(manager.New(gw), "http://localhost:8080/customerapi")
	return run(m, m.Manager().Refresh())
}

func TestModel_LoadsCollection(t *testing.T) {
	m := newLoadedModel(t, &fakeGateway{customers: sampleCustomers()})

	if got := len(m.table.Rows()); got != 2 {
		t.Errorf("table rows = %d, want 2", got)
	}

	view := m.View()
	for _, want := range []string{"Customers (2)", "Alice", "Bob"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_EmptyCollectionPlaceholder(t *testing.T) {
	m := newLoadedModel(t, &fakeGateway{})

	if !strings.Contains(m.View(), "No customers found.") {
		t.Error("View() should show the empty-collection placeholder")
	}
}

func TestModel_SubmitEmptyForm(t *testing.T) {
	gw := &fakeGateway{}
	m := newLoadedModel(t, gw)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(Model)

	if cmd != nil {
		t.Error("Submit with an empty form should not return a command")
	}
	if got := m.Manager().Status(); got.Kind != manager.StatusError || got.Text != "Please fill out the id field." {
		t.Errorf("Status = %+v, want id validation error", got)
	}
	if len(gw.created) != 0 {
		t.Errorf("created = %v, want none", gw.created)
	}
}

func TestModel_AddCustomerFromForm(t *testing.T) {
	gw := &fakeGateway{}
	m := newLoadedModel(t, gw)

	values := []string{"7", "Carol", "carol@example.com", "555-0007"}
	for _, v := range values {
		m = typeText(m, v)
		m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	// gender selector
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = typeText(m, "7 Pine St")

	buf := m.Manager().Buffer()
	if buf.Gender != customer.GenderFemale {
		t.Errorf("buffer gender = %q, want FEMALE", buf.Gender)
	}

	m = pressRun(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if len(gw.created) != 1 {
		t.Fatalf("created = %d records, want 1", len(gw.created))
	}
	want := customer.Customer{ID: 7, Name: "Carol", Email: "carol@example.com", Contact: "555-0007", Gender: customer.GenderFemale, Address: "7 Pine St"}
	if gw.created[0] != want {
		t.Errorf("created = %+v, want %+v", gw.created[0], want)
	}

	if got := m.Manager().Status().Text; got != manager.MsgAdded {
		t.Errorf("Status = %q, want %q", got, manager.MsgAdded)
	}
	if got := m.form.inputs[customer.FieldName].Value(); got != "" {
		t.Errorf("name input = %q, want cleared", got)
	}
	if got := len(m.table.Rows()); got != 1 {
		t.Errorf("table rows = %d, want 1 after refresh", got)
	}
}

func TestModel_EditSelectedRow(t *testing.T) {
	gw := &fakeGateway{customers: sampleCustomers()}
	m := newLoadedModel(t, gw)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Focus != FocusTable {
		t.Fatalf("Focus = %v, want table", m.Focus)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})

	if !m.Manager().Editing() {
		t.Fatal("Manager should be in edit mode")
	}
	if m.Focus != FocusForm {
		t.Errorf("Focus = %v, want form", m.Focus)
	}
	if got := m.form.inputs[customer.FieldName].Value(); got != "Alice" {
		t.Errorf("name input = %q, want Alice", got)
	}
	if got := m.Manager().Status().Text; got != "Editing customer with ID 1" {
		t.Errorf("Status = %q", got)
	}

	m = pressRun(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if len(gw.updated) != 1 || gw.updated[0].ID != 1 {
		t.Errorf("updated = %+v, want customer 1", gw.updated)
	}
	if m.Manager().Editing() {
		t.Error("Manager should leave edit mode after a successful update")
	}
}

func TestModel_CancelEdit(t *testing.T) {
	m := newLoadedModel(t, &fakeGateway{customers: sampleCustomers()})

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.Manager().Editing() {
		t.Error("esc should leave edit mode")
	}
	if got := m.form.inputs[customer.FieldEmail].Value(); got != "" {
		t.Errorf("email input = %q, want cleared", got)
	}
}

func TestModel_DeleteSelectedRow(t *testing.T) {
	gw := &fakeGateway{customers: sampleCustomers()}
	m := newLoadedModel(t, gw)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = pressRun(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})

	if len(gw.deleted) != 1 || gw.deleted[0] != 2 {
		t.Errorf("deleted = %v, want [2]", gw.deleted)
	}
	if got := m.Manager().Status(); got.Kind != manager.StatusSuccess || got.Text != "Customer deleted." {
		t.Errorf("Status = %+v, want server message", got)
	}
}

func TestModel_Lookup(t *testing.T) {
	m := newLoadedModel(t, &fakeGateway{customers: sampleCustomers()})

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Focus != FocusLookup {
		t.Fatalf("Focus = %v, want lookup", m.Focus)
	}

	m = typeText(m, "2")
	m = pressRun(m, tea.KeyMsg{Type: tea.KeyEnter})

	if c := m.Manager().LookupResult(); c == nil || c.Name != "Bob" {
		t.Fatalf("LookupResult = %+v, want Bob", c)
	}
	if !strings.Contains(m.View(), `"name": "Bob"`) {
		t.Error("View() should render the lookup result as JSON")
	}

	m.lookup.SetValue("99")
	m = pressRun(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Manager().LookupResult() != nil {
		t.Error("LookupResult should be cleared for a missing id")
	}
	if got := m.Manager().Status().Text; got != manager.MsgNotFound {
		t.Errorf("Status = %q, want %q", got, manager.MsgNotFound)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newLoadedModel(t, &fakeGateway{})

	// q is text while the form has focus
	m = typeText(m, "q")
	if got := m.form.inputs[customer.FieldID].Value(); got != "q" {
		t.Errorf("id input = %q, want q", got)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q in the table should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q in the table should return tea.Quit")
	}
}

func TestFormatLookup(t *testing.T) {
	got := FormatLookup(customer.Customer{ID: 3, Name: "Dana", Gender: customer.GenderFemale})

	for _, want := range []string{`"id": 3`, `"name": "Dana"`, `"gender": "FEMALE"`, "\n  "} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatLookup() = %q, missing %q", got, want)
		}
	}
}
