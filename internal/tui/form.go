package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/custdesk/internal/customer"
)

// formModel renders the edit buffer. It holds one text input per text field
// and a selector for gender; the manager's buffer stays authoritative and the
// form is re-synced from it whenever the manager resets or loads it.
type formModel struct {
	inputs map[customer.FieldKey]*textinput.Model
	gender int // index into customer.Genders
	cursor int // index into customer.Fields
}

var placeholders = map[customer.FieldKey]string{
	customer.FieldID:      "1001",
	customer.FieldName:    "Jane Doe",
	customer.FieldEmail:   "jane@example.com",
	customer.FieldContact: "555-0100",
	customer.FieldAddress: "1 Main St",
}

func newFormModel() formModel {
	inputs := make(map[customer.FieldKey]*textinput.Model)
	for _, f := range customer.Fields {
		if f.Key == customer.FieldGender {
			continue
		}
		ti := textinput.New()
		ti.Placeholder = placeholders[f.Key]
		ti.CharLimit = 120
		ti.Width = 40
		if f.Key == customer.FieldID {
			ti.CharLimit = 19
		}
		inputs[f.Key] = &ti
	}

	fm := formModel{inputs: inputs}
	fm.focusCursor()
	return fm
}

func (f *formModel) current() customer.Field {
	return customer.Fields[f.cursor]
}

func (f *formModel) move(delta int) {
	n := len(customer.Fields)
	f.cursor = (f.cursor + delta + n) % n
	f.focusCursor()
}

func (f *formModel) focusCursor() {
	for key, in := range f.inputs {
		if key == f.current().Key {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (f *formModel) blur() {
	for _, in := range f.inputs {
		in.Blur()
	}
}

// cycleGender steps the gender selector and returns the new value.
func (f *formModel) cycleGender(delta int) customer.Gender {
	n := len(customer.Genders)
	f.gender = (f.gender + delta + n) % n
	return customer.Genders[f.gender]
}

// updateInput forwards msg to the focused text input and returns its value.
func (f *formModel) updateInput(msg tea.Msg) (customer.FieldKey, string, tea.Cmd) {
	key := f.current().Key
	in, ok := f.inputs[key]
	if !ok {
		return key, "", nil
	}
	updated, cmd := in.Update(msg)
	*in = updated
	return key, in.Value(), cmd
}

// sync copies the draft into the inputs.
func (f *formModel) sync(d customer.Draft) {
	for key, in := range f.inputs {
		in.SetValue(d.Get(key))
	}
	f.gender = 0
	for i, g := range customer.Genders {
		if g == d.Gender {
			f.gender = i
		}
	}
}

func (f formModel) view(focused bool) string {
	var b strings.Builder
	for i, field := range customer.Fields {
		label := LabelStyle.Render(field.Label)
		if focused && i == f.cursor {
			label = FocusedLabelStyle.Render(field.Label)
		}

		var value string
		if field.Key == customer.FieldGender {
			value = renderGender(customer.Genders[f.gender], focused && i == f.cursor)
		} else {
			value = f.inputs[field.Key].View()
		}

		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, " ", value))
		if i < len(customer.Fields)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderGender(g customer.Gender, focused bool) string {
	text := "Select gender"
	if g != customer.GenderUnset {
		text = g.Label()
	}
	if focused {
		return FocusedLabelStyle.UnsetWidth().Render("‹ " + text + " ›")
	}
	return SubtitleStyle.Render(text)
}
