package components

import (
	"image/color"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chance/internal/catalog"
	"github.com/abhisek/chance/internal/ui/layout"
	"github.com/abhisek/chance/internal/ui/theme"
)

// OptionChosenMsg is sent when the player picks a classification.
type OptionChosenMsg struct {
	Choice catalog.Classification
}

// OptionKeyMap holds the bindings for the classification buttons.
type OptionKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Choose     key.Binding
	Impossible key.Binding
	Possible   key.Binding
	Certain    key.Binding
}

// DefaultOptionKeys returns the standard bindings.
func DefaultOptionKeys() OptionKeyMap {
	return OptionKeyMap{
		Left:       key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←→", "Move")),
		Right:      key.NewBinding(key.WithKeys("right", "l", "tab")),
		Choose:     key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Choose")),
		Impossible: key.NewBinding(key.WithKeys("1", "i"), key.WithHelp("1/i", "Impossible")),
		Possible:   key.NewBinding(key.WithKeys("2", "p"), key.WithHelp("2/p", "Possible")),
		Certain:    key.NewBinding(key.WithKeys("3", "c"), key.WithHelp("3/c", "Certain")),
	}
}

// Options is the row of three classification buttons. Once Locked it
// ignores input and highlights the chosen and expected answers.
type Options struct {
	Keys     OptionKeyMap
	Focused  int
	Locked   bool
	Chosen   catalog.Classification
	Expected catalog.Classification
}

// NewOptions returns an unlocked row with the first button focused.
func NewOptions() Options {
	return Options{Keys: DefaultOptionKeys()}
}

// Lock freezes the row with the evaluated answer.
func (o Options) Lock(chosen, expected catalog.Classification) Options {
	o.Locked = true
	o.Chosen = chosen
	o.Expected = expected
	return o
}

// Update moves focus or emits OptionChosenMsg.
func (o Options) Update(msg tea.Msg) (Options, tea.Cmd) {
	if o.Locked {
		return o, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return o, nil
	}

	all := catalog.AllClassifications()
	switch {
	case key.Matches(kmsg, o.Keys.Left):
		if o.Focused > 0 {
			o.Focused--
		}
	case key.Matches(kmsg, o.Keys.Right):
		if o.Focused < len(all)-1 {
			o.Focused++
		}
	case key.Matches(kmsg, o.Keys.Choose):
		return o, choose(all[o.Focused])
	case key.Matches(kmsg, o.Keys.Impossible):
		o.Focused = 0
		return o, choose(catalog.Impossible)
	case key.Matches(kmsg, o.Keys.Possible):
		o.Focused = 1
		return o, choose(catalog.Possible)
	case key.Matches(kmsg, o.Keys.Certain):
		o.Focused = 2
		return o, choose(catalog.Certain)
	}
	return o, nil
}

func choose(c catalog.Classification) tea.Cmd {
	return func() tea.Msg { return OptionChosenMsg{Choice: c} }
}

// View renders the buttons side by side.
func (o Options) View() string {
	buttons := make([]string, 0, 3)
	for i, c := range catalog.AllClassifications() {
		buttons = append(buttons, o.renderButton(i, c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (o Options) renderButton(i int, c catalog.Classification) string {
	label := c.DisplayName()

	var style lipgloss.Style
	switch {
	case o.Locked && c == o.Expected:
		style = theme.OptionIdle.
			BorderForeground(theme.Success).
			Foreground(theme.Success).
			Bold(true)
		if c == o.Chosen {
			label = "✓ " + label
		}
	case o.Locked && c == o.Chosen:
		style = theme.OptionIdle.
			BorderForeground(theme.Error).
			Foreground(theme.Error).
			Bold(true)
		label = "✗ " + label
	case o.Locked:
		style = theme.OptionLocked
	case i == o.Focused:
		style = theme.OptionFocused.Foreground(ClassificationColor(c))
	default:
		style = theme.OptionIdle
	}
	return style.MarginRight(1).Render(label)
}

// ClassificationColor returns the display color for c.
func ClassificationColor(c catalog.Classification) color.Color {
	switch c {
	case catalog.Impossible:
		return theme.ImpossibleColor
	case catalog.Possible:
		return theme.PossibleColor
	case catalog.Certain:
		return theme.CertainColor
	}
	return theme.Text
}

// HelpHints returns footer hints for the bindings.
func (k OptionKeyMap) HelpHints() []layout.KeyHint {
	var out []layout.KeyHint
	for _, b := range []key.Binding{k.Impossible, k.Possible, k.Certain, k.Left, k.Choose} {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
