package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/pumpswap-go/internal/ui/style"
)

// FieldType represents the type of form field
type FieldType int

const (
	FieldTypeText FieldType = iota
	FieldTypeNumber
	FieldTypeSelect
)

// FormField represents a single form field
type FormField struct {
	Name        string
	Label       string
	Type        FieldType
	Value       string
	Options     []string // For select fields
	Placeholder string

	// Internal state
	textInput   textinput.Model
	focused     bool
	selectedIdx int // For select fields
}

// Form represents a form component with multiple fields
type Form struct {
	fields     []FormField
	focusIndex int
	width      int

	// Styling
	labelStyle   lipgloss.Style
	inputStyle   lipgloss.Style
	focusedStyle lipgloss.Style
}

// NewForm creates a new form component
func NewForm() *Form {
	palette := style.DefaultPalette()

	return &Form{
		fields:     make([]FormField, 0),
		focusIndex: 0,

		labelStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true).
			MarginRight(1),

		inputStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Background(palette.BackgroundAlt).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		focusedStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Background(palette.BackgroundAlt).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary),
	}
}

// AddField adds a field to the form
func (f *Form) AddField(name string, fieldType FieldType, label, placeholder string) *Form {
	ti := textinput.New()
	ti.Width = 40
	ti.Placeholder = placeholder

	if fieldType == FieldTypeNumber && placeholder == "" {
		ti.Placeholder = "0"
	}

	field := FormField{
		Name:        name,
		Label:       label,
		Type:        fieldType,
		Value:       "",
		Options:     make([]string, 0),
		Placeholder: placeholder,
		textInput:   ti,
		focused:     false,
	}

	f.fields = append(f.fields, field)

	// Focus first field
	if len(f.fields) == 1 {
		f.fields[0].focused = true
		f.fields[0].textInput.Focus()
	}

	return f
}

// SetFieldValue sets the value of a field
func (f *Form) SetFieldValue(name, value string) *Form {
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.fields[i].Value = value
			f.fields[i].textInput.SetValue(value)
			break
		}
	}
	return f
}

// SetSelectOptions sets the options of a select field and picks the
// first one.
func (f *Form) SetSelectOptions(name string, options []string) *Form {
	for i := range f.fields {
		if f.fields[i].Name == name && f.fields[i].Type == FieldTypeSelect {
			f.fields[i].Options = options
			if len(options) > 0 {
				f.fields[i].Value = options[0]
			}
			break
		}
	}
	return f
}

// SetWidth sets the form width
func (f *Form) SetWidth(width int) *Form {
	f.width = width
	// Update input width
	inputWidth := width - 4 // Account for padding and borders
	if inputWidth > 10 {
		for i := range f.fields {
			f.fields[i].textInput.Width = inputWidth
		}
	}
	return f
}

// Update handles form input and updates
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			f.nextField()
		case "shift+tab":
			f.prevField()
		case "enter":
			if f.fields[f.focusIndex].Type == FieldTypeSelect {
				// For select fields, Enter cycles through options
				f.nextSelectOption()
			} else {
				f.nextField()
			}
		case "up":
			if f.fields[f.focusIndex].Type == FieldTypeSelect {
				f.prevSelectOption()
			}
		case "down":
			if f.fields[f.focusIndex].Type == FieldTypeSelect {
				f.nextSelectOption()
			}
		}
	}

	// Update the focused field
	if f.focusIndex < len(f.fields) {
		field := &f.fields[f.focusIndex]

		switch field.Type {
		case FieldTypeText, FieldTypeNumber:
			var cmd tea.Cmd
			field.textInput, cmd = field.textInput.Update(msg)
			field.Value = field.textInput.Value()
			cmds = append(cmds, cmd)
		}
	}

	return f, tea.Batch(cmds...)
}

// View renders the form
func (f *Form) View() string {
	if len(f.fields) == 0 {
		return "No fields defined"
	}

	var content strings.Builder

	for i, field := range f.fields {
		// Field label
		content.WriteString(f.labelStyle.Render(field.Label))
		content.WriteString("\n")

		// Field input
		var fieldView string
		fieldStyle := f.inputStyle
		if i == f.focusIndex {
			fieldStyle = f.focusedStyle
		}

		switch field.Type {
		case FieldTypeText, FieldTypeNumber:
			fieldView = fieldStyle.Render(field.textInput.View())

		case FieldTypeSelect:
			selectedValue := ""
			if len(field.Options) > 0 && field.selectedIdx < len(field.Options) {
				selectedValue = field.Options[field.selectedIdx]
			}

			selectText := selectedValue
			if i == f.focusIndex {
				selectText += " ▼"
			}
			fieldView = fieldStyle.Render(selectText)
		}

		content.WriteString(fieldView)
		content.WriteString("\n")

		// Add spacing between fields
		if i < len(f.fields)-1 {
			content.WriteString("\n")
		}
	}

	return content.String()
}

// nextField moves focus to the next field
func (f *Form) nextField() {
	if len(f.fields) == 0 {
		return
	}

	// Blur current field
	f.fields[f.focusIndex].focused = false
	f.fields[f.focusIndex].textInput.Blur()

	// Move to next field
	f.focusIndex = (f.focusIndex + 1) % len(f.fields)

	// Focus new field
	f.fields[f.focusIndex].focused = true
	if f.fields[f.focusIndex].Type != FieldTypeSelect {
		f.fields[f.focusIndex].textInput.Focus()
	}
}

// prevField moves focus to the previous field
func (f *Form) prevField() {
	if len(f.fields) == 0 {
		return
	}

	// Blur current field
	f.fields[f.focusIndex].focused = false
	f.fields[f.focusIndex].textInput.Blur()

	// Move to previous field
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = len(f.fields) - 1
	}

	// Focus new field
	f.fields[f.focusIndex].focused = true
	if f.fields[f.focusIndex].Type != FieldTypeSelect {
		f.fields[f.focusIndex].textInput.Focus()
	}
}

// nextSelectOption moves to the next option in a select field
func (f *Form) nextSelectOption() {
	field := &f.fields[f.focusIndex]
	if field.Type != FieldTypeSelect || len(field.Options) == 0 {
		return
	}

	field.selectedIdx = (field.selectedIdx + 1) % len(field.Options)
	field.Value = field.Options[field.selectedIdx]
}

// prevSelectOption moves to the previous option in a select field
func (f *Form) prevSelectOption() {
	field := &f.fields[f.focusIndex]
	if field.Type != FieldTypeSelect || len(field.Options) == 0 {
		return
	}

	field.selectedIdx--
	if field.selectedIdx < 0 {
		field.selectedIdx = len(field.Options) - 1
	}
	field.Value = field.Options[field.selectedIdx]
}

// GetValue returns the value of a specific field
func (f *Form) GetValue(name string) string {
	for _, field := range f.fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}
