package domain

import (
	"fmt"
	"unicode"
)

// Key is a raw key code produced by the render side. Printable keys carry
// their rune value. Keys without a character use negative codes, which no
// rune can take.
type Key int

const (
	KeyInterrupt Key = 0x03 // Ctrl+C
	KeyEnter     Key = '\n'
	KeySpace     Key = ' '
)

const (
	KeyUp Key = -(iota + 1)
	KeyDown
	KeyBackspace
)

// KeyOf returns the key code for a rune.
func KeyOf(r rune) Key {
	return Key(r)
}

// Rune returns the key as a rune.
func (k Key) Rune() rune {
	return rune(k)
}

// IsSpecial reports whether the key has no character of its own.
func (k Key) IsSpecial() bool {
	return k < 0
}

// IsPrintable reports whether the key represents a printable character
// that can be appended to text.
func (k Key) IsPrintable() bool {
	return k >= ' ' && k <= unicode.MaxRune && unicode.IsPrint(rune(k))
}

// String returns a readable name for logging.
func (k Key) String() string {
	switch k {
	case KeyInterrupt:
		return "ctrl+c"
	case KeyEnter:
		return "enter"
	case KeySpace:
		return "space"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyBackspace:
		return "backspace"
	}
	if k.IsPrintable() {
		return string(rune(k))
	}
	return fmt.Sprintf("key(%d)", int(k))
}
