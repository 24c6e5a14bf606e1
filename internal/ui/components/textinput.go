package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput for answers and player names.
type TextInput struct {
	Model    textinput.Model
	MaxWidth int
	disabled bool
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:    ti,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. A disabled input ignores them.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.disabled {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset clears the typed text.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
}

// SetEnabled toggles whether the input accepts typing.
func (t *TextInput) SetEnabled(enabled bool) tea.Cmd {
	t.disabled = !enabled
	if enabled {
		return t.Model.Focus()
	}
	t.Model.Blur()
	return nil
}

// Enabled reports whether the input accepts typing.
func (t TextInput) Enabled() bool {
	return !t.disabled
}
