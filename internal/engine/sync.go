package engine

import (
	"fmt"
	"time"

	"github.com/hammamikhairi/lrcgen/internal/domain"
	"github.com/hammamikhairi/lrcgen/internal/lrc"
)

// timeline is the state of one synchronization pass.
type timeline struct {
	elapsed   time.Duration // playback time excluding pauses
	lineStart time.Time
	index     int
	lines     []domain.TimedLine
}

// commit records the current line at the accumulated time. The buffer
// always holds an entry for lines 0..index.
func (t *timeline) commit(text string) {
	line := domain.NewTimedLine(text, t.elapsed)
	if t.index < len(t.lines) {
		t.lines[t.index] = line
		return
	}
	t.lines = append(t.lines, line)
}

// accumulate adds the time since lineStart and moves lineStart to now.
func (t *timeline) accumulate(now time.Time) {
	t.elapsed += now.Sub(t.lineStart).Truncate(time.Millisecond)
	t.lineStart = now
}

func (t *timeline) reset(now time.Time) {
	t.elapsed = 0
	t.lineStart = now
	t.index = 0
	t.lines = t.lines[:0]
}

// sync runs one synchronization pass. Each key either adjusts the volume,
// pauses, restarts or stamps the current line with the accumulated
// playback time and moves to the next one.
func (g *Generator) sync() domain.State {
	g.ch.Menus.Produce(syncMenu(g.pauseKey, g.restartKey))

	track, err := g.openTrack()
	var audioStatus string
	if err != nil {
		g.log.Warn("failed to open audio track %s: %v", g.audioPath, err)
		if g.requireAudio {
			g.status = fmt.Sprintf("Synchronization aborted: %v", err)
			return domain.StateMenu
		}
		audioStatus = fmt.Sprintf("No audio (%v), timing from keys only", err)
	}
	defer g.closeTrack(track)

	if err := track.Play(); err != nil {
		g.log.Warn("failed to start playback: %v", err)
	}

	tl := &timeline{
		lineStart: g.clock.Now(),
		lines:     make([]domain.TimedLine, 0, len(g.lyrics)),
	}

	for tl.index < len(g.lyrics) {
		tl.commit(g.lyrics[tl.index])
		g.ch.Content.Produce(g.syncContent(tl, audioStatus))

		key := g.ch.Keys.Consume()
		switch key {
		case domain.KeyUp:
			g.adjustVolume(track, g.volumeStep)

		case domain.KeyDown:
			g.adjustVolume(track, -g.volumeStep)

		case g.pauseKey:
			tl.accumulate(g.clock.Now())
			if err := track.Pause(); err != nil {
				g.log.Warn("failed to pause: %v", err)
			}
			g.ch.Content.Produce(pausedContent())

			resume := g.ch.Keys.Consume()
			if resume == domain.KeyInterrupt {
				return g.interruptSync(tl)
			}
			tl.lineStart = g.clock.Now()
			if err := track.Play(); err != nil {
				g.log.Warn("failed to resume: %v", err)
			}
			g.log.Debug("resumed at %s", lrc.FormatClock(tl.elapsed))

		case g.restartKey:
			if err := track.Stop(); err != nil {
				g.log.Warn("failed to stop track: %v", err)
			}
			tl.reset(g.clock.Now())
			if err := track.Play(); err != nil {
				g.log.Warn("failed to restart playback: %v", err)
			}
			g.log.Debug("synchronization restarted")

		case domain.KeyInterrupt:
			return g.interruptSync(tl)

		default:
			tl.accumulate(g.clock.Now())
			tl.commit(g.lyrics[tl.index])
			g.log.Debug("line %d at %s", tl.index, lrc.FormatClock(tl.elapsed))
			tl.index++
		}
	}

	g.lines = tl.lines
	g.status = fmt.Sprintf("Synchronization done: %d lines", len(g.lines))
	g.log.Info("synchronized %d lines in %s of playback", len(g.lines), lrc.FormatClock(tl.elapsed))
	return domain.StateMenu
}

// interruptSync keeps the lines stamped so far and quits. The current
// line was only provisionally committed and is dropped.
func (g *Generator) interruptSync(tl *timeline) domain.State {
	g.lines = tl.lines[:tl.index]
	g.log.Info("synchronization interrupted after %d lines", tl.index)
	return domain.StateQuitting
}

// adjustVolume applies a volume change and keeps what the track reports,
// since a backend may clamp differently.
func (g *Generator) adjustVolume(track domain.AudioTrack, delta int) {
	v := clampVolume(g.volume + delta)
	if err := track.SetVolume(v); err != nil {
		g.log.Warn("failed to set volume: %v", err)
		return
	}
	g.volume = clampVolume(track.Volume())
}

func (g *Generator) syncContent(tl *timeline, status string) domain.Content {
	prev, next := "(none)", "(none)"
	if tl.index > 0 {
		prev = g.lyrics[tl.index-1]
	}
	if tl.index+1 < len(g.lyrics) {
		next = g.lyrics[tl.index+1]
	}

	lines := []string{
		"Prev: " + prev,
		"Curr: " + g.lyrics[tl.index],
		"Next: " + next,
		"",
		fmt.Sprintf("Line %d/%d", tl.index+1, len(g.lyrics)),
		"Last timestamp: " + lrc.FormatClock(tl.elapsed),
		fmt.Sprintf("Volume: %d%%", g.volume),
	}
	if status != "" {
		lines = append(lines, "", status)
	}

	return domain.Content{
		Title: "Synchronizing",
		Lines: lines,
		Hints: []string{
			g.pauseKey.String() + ": pause",
			g.restartKey.String() + ": restart synchronization",
			"up/down: volume",
			"any other key: next line",
		},
	}
}

func pausedContent() domain.Content {
	return domain.Content{
		Title:    "Synchronizing",
		Lines:    []string{"PAUSED", "(press any key to resume)"},
		Emphasis: true,
	}
}
