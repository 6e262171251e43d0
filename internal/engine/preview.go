package engine

import (
	"fmt"

	"github.com/hammamikhairi/lrcgen/internal/domain"
	"github.com/hammamikhairi/lrcgen/internal/lrc"
)

// preview replays the synchronized lines against the track. Each line is
// shown once the replay reaches its offset. Keys pressed during the replay
// stay queued until the closing prompt.
func (g *Generator) preview() domain.State {
	if len(g.lines) == 0 {
		return g.confirmSync()
	}

	g.ch.Menus.Produce(previewMenu())

	track, err := g.openTrack()
	var audioStatus string
	if err != nil {
		g.log.Warn("preview without audio: %v", err)
		audioStatus = fmt.Sprintf("No audio (%v)", err)
	}
	defer g.closeTrack(track)

	if err := track.Play(); err != nil {
		g.log.Warn("failed to start playback: %v", err)
	}
	start := g.clock.Now()

	for i, line := range g.lines {
		if wait := line.Offset - g.clock.Now().Sub(start); wait > 0 {
			g.clock.Sleep(wait)
		}
		g.ch.Content.Produce(g.previewContent(i, audioStatus))
	}

	g.ch.Content.Produce(domain.Content{
		Title: "Preview",
		Lines: []string{"Preview finished.", "(press any key to end)"},
	})
	if key := g.ch.Keys.Consume(); key == domain.KeyInterrupt {
		return domain.StateQuitting
	}
	return domain.StateMenu
}

// confirmSync asks whether to synchronize when there is nothing to replay.
func (g *Generator) confirmSync() domain.State {
	g.ch.Menus.Produce(confirmMenu())
	g.ch.Content.Produce(domain.Content{
		Title: "Preview",
		Lines: []string{"The lyrics are not synchronized yet.", "Synchronize now? [y/n]"},
	})

	switch g.ch.Keys.Consume() {
	case 'y', 'Y':
		return domain.StateSyncing
	case domain.KeyInterrupt:
		return domain.StateQuitting
	default:
		return domain.StateMenu
	}
}

func (g *Generator) previewContent(i int, status string) domain.Content {
	line := g.lines[i]
	next := "(none)"
	if i+1 < len(g.lines) {
		next = g.lines[i+1].Text
	}

	lines := []string{
		lrc.FormatTimestamp(line.Offset) + " " + line.Text,
		"",
		"Next: " + next,
	}
	if status != "" {
		lines = append(lines, "", status)
	}
	return domain.Content{Title: "Preview", Lines: lines}
}
