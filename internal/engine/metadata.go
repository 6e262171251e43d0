package engine

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/lrcgen/internal/domain"
)

// selectorTag maps a metadata menu key to the field it edits.
func selectorTag(key domain.Key) (domain.Tag, bool) {
	switch key {
	case '0':
		return domain.TagTitle, true
	case '1':
		return domain.TagAlbum, true
	case '2':
		return domain.TagArtist, true
	case '3':
		return domain.TagCreator, true
	default:
		return "", false
	}
}

// collectMetadata lets the user edit header fields until a key that is
// not a field selector is pressed.
func (g *Generator) collectMetadata() domain.State {
	for {
		g.ch.Menus.Produce(metadataMenu())
		g.ch.Content.Produce(g.metadataContent())

		key := g.ch.Keys.Consume()
		tag, ok := selectorTag(key)
		if !ok {
			if key == domain.KeyInterrupt {
				return domain.StateQuitting
			}
			return domain.StateMenu
		}

		value, ok := g.readField(tag)
		if !ok {
			return domain.StateQuitting
		}
		g.meta.Set(tag, value)
		g.log.Debug("metadata %s = %q", tag, value)
	}
}

// readField echoes typed characters until enter. It reports false when
// the user interrupts.
func (g *Generator) readField(tag domain.Tag) (string, bool) {
	var buf []rune
	for {
		g.ch.Content.Produce(domain.Content{
			Title: "Metadata",
			Lines: []string{
				fmt.Sprintf("Insert the %s:", tag.Label()),
				"> " + string(buf),
			},
			Hints: []string{"enter: confirm", "backspace: delete"},
		})

		switch key := g.ch.Keys.Consume(); {
		case key == domain.KeyEnter:
			return strings.TrimSpace(string(buf)), true
		case key == domain.KeyInterrupt:
			return "", false
		case key == domain.KeyBackspace:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case key.IsPrintable():
			buf = append(buf, key.Rune())
		}
	}
}

func (g *Generator) metadataContent() domain.Content {
	var lines []string
	for _, tag := range domain.HeaderOrder() {
		if tag == domain.TagLength {
			continue
		}
		value, ok := g.meta.Get(tag)
		if !ok {
			value = "-"
		}
		lines = append(lines, fmt.Sprintf("%-8s %s", tag.Label()+":", value))
	}
	return domain.Content{Title: "Metadata", Lines: lines}
}
