package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/gobarber/internal/form"
	"github.com/naveenspark/gobarber/internal/toast"
	"github.com/naveenspark/gobarber/pkg/domain"
)

const msgFormUnchecked = "Não foi possível validar os dados, tente novamente."

// field is one labelled input of a form. name matches the JSON tag of the
// corresponding form struct field so validation errors can be routed back.
type field struct {
	name  string
	label string
	input textinput.Model
}

func newField(name, label, placeholder string, secret bool) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.PromptStyle = inputPromptStyle
	ti.PlaceholderStyle = inputPlaceholderStyle
	ti.CharLimit = 128
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return field{name: name, label: label, input: ti}
}

// fieldSet is a vertical list of fields with one focused input and the
// validation messages of the last submit.
type fieldSet struct {
	fields []field
	focus  int
	errors map[string]string
}

func newFieldSet(fields ...field) fieldSet {
	fs := fieldSet{fields: fields}
	fs.focusAt(0)
	return fs
}

func (fs *fieldSet) focusAt(i int) tea.Cmd {
	if len(fs.fields) == 0 {
		return nil
	}
	i = (i + len(fs.fields)) % len(fs.fields)
	fs.focus = i
	var cmd tea.Cmd
	for j := range fs.fields {
		if j == i {
			cmd = fs.fields[j].input.Focus()
		} else {
			fs.fields[j].input.Blur()
		}
	}
	return cmd
}

func (fs *fieldSet) blur() {
	for j := range fs.fields {
		fs.fields[j].input.Blur()
	}
}

func (fs fieldSet) index(name string) int {
	for i, f := range fs.fields {
		if f.name == name {
			return i
		}
	}
	return -1
}

func (fs fieldSet) value(name string) string {
	if i := fs.index(name); i >= 0 {
		return fs.fields[i].input.Value()
	}
	return ""
}

func (fs *fieldSet) setValue(name, v string) {
	if i := fs.index(name); i >= 0 {
		fs.fields[i].input.SetValue(v)
	}
}

func (fs *fieldSet) clear(names ...string) {
	for _, name := range names {
		fs.setValue(name, "")
	}
}

// setErrors replaces the field messages and moves focus to the first field
// in display order that has one.
func (fs *fieldSet) setErrors(errs map[string]string) tea.Cmd {
	fs.errors = errs
	for i, f := range fs.fields {
		if _, ok := errs[f.name]; ok {
			return fs.focusAt(i)
		}
	}
	return nil
}

// reject routes a Validate error back to the form. Field messages go next to
// their inputs; any other error becomes a generic toast under title.
func (fs *fieldSet) reject(err error, toasts *toast.Manager, title string) tea.Cmd {
	if errs, ok := form.FieldErrors(err); ok {
		return fs.setErrors(errs)
	}
	toasts.Add(toast.Message{Type: domain.ToastError, Title: title, Description: msgFormUnchecked})
	return nil
}

func (fs *fieldSet) clearErrors() {
	fs.errors = nil
}

func (fs fieldSet) errorFor(name string) string {
	return fs.errors[name]
}

// update moves focus on navigation keys and otherwise forwards msg to the
// focused input.
func (fs fieldSet) update(msg tea.Msg) (fieldSet, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Next):
			cmd := fs.focusAt(fs.focus + 1)
			return fs, cmd
		case key.Matches(msg, keys.Prev):
			cmd := fs.focusAt(fs.focus - 1)
			return fs, cmd
		}
	}
	if len(fs.fields) == 0 {
		return fs, nil
	}
	var cmd tea.Cmd
	fs.fields[fs.focus].input, cmd = fs.fields[fs.focus].input.Update(msg)
	return fs, cmd
}

func (fs fieldSet) view() string {
	var b strings.Builder
	for i, f := range fs.fields {
		label := dimStyle.Render(f.label)
		if i == fs.focus && f.input.Focused() {
			label = selectedStyle.Render(f.label)
		}
		if _, bad := fs.errors[f.name]; bad {
			label = fieldErrorStyle.Render(f.label)
		}
		b.WriteString("  " + label + "\n")
		b.WriteString("  " + f.input.View() + "\n")
		if msg := fs.errors[f.name]; msg != "" {
			b.WriteString("  " + fieldErrorStyle.Render("! "+msg) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
