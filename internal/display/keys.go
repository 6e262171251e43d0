package display

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/lrcgen/internal/domain"
)

// keyMap holds the bindings for keys that do not map to a character.
type keyMap struct {
	Interrupt  key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Confirm    key.Binding
	Erase      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "save and quit (twice: force)"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "volume down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "erase"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.VolumeUp, k.VolumeDown, k.Interrupt}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.VolumeUp, k.VolumeDown},
		{k.Confirm, k.Erase, k.Interrupt},
	}
}

// translate turns a key press into the codes sent to the engine. Pasted
// text arrives as several runes and yields one code per rune. Keys the
// engine has no use for yield nothing.
func (k keyMap) translate(msg tea.KeyMsg) []domain.Key {
	switch {
	case key.Matches(msg, k.Interrupt):
		return []domain.Key{domain.KeyInterrupt}
	case key.Matches(msg, k.VolumeUp):
		return []domain.Key{domain.KeyUp}
	case key.Matches(msg, k.VolumeDown):
		return []domain.Key{domain.KeyDown}
	case key.Matches(msg, k.Confirm):
		return []domain.Key{domain.KeyEnter}
	case key.Matches(msg, k.Erase):
		return []domain.Key{domain.KeyBackspace}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []domain.Key{domain.KeySpace}
	case tea.KeyRunes:
		codes := make([]domain.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			codes = append(codes, domain.KeyOf(r))
		}
		return codes
	}
	return nil
}
