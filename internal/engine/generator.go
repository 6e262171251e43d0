// Package engine implements the lyrics synchronization state machine.
//
// The generator runs on its own goroutine. It never touches the terminal:
// it consumes key codes and publishes content and menu snapshots over the
// channels in Channels, and it is the only goroutine that calls into the
// audio backend.
package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/hammamikhairi/lrcgen/internal/channel"
	"github.com/hammamikhairi/lrcgen/internal/config"
	"github.com/hammamikhairi/lrcgen/internal/domain"
	"github.com/hammamikhairi/lrcgen/internal/logger"
	"github.com/hammamikhairi/lrcgen/internal/lrc"
)

// Channels are the three transports between the render and engine
// goroutines.
type Channels struct {
	Keys    *channel.Channel[domain.Key]     // render -> engine
	Content *channel.Channel[domain.Content] // engine -> render
	Menus   *channel.Channel[domain.Menu]    // engine -> render
}

// NewChannels creates the three channels with the same capacity.
func NewChannels(capacity int) Channels {
	return Channels{
		Keys:    channel.New[domain.Key](capacity),
		Content: channel.New[domain.Content](capacity),
		Menus:   channel.New[domain.Menu](capacity),
	}
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Option configures the generator.
type Option func(*Generator)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c domain.Clock) Option {
	return func(g *Generator) {
		g.clock = c
	}
}

// WithConfig applies the tunables of cfg.
func WithConfig(cfg config.Config) Option {
	return func(g *Generator) {
		g.volumeStep = cfg.VolumeStep
		g.volume = clampVolume(cfg.InitialVolume)
		g.requireAudio = cfg.RequireAudio
		g.pauseKey = domain.KeyOf(cfg.PauseRune())
		g.restartKey = domain.KeyOf(cfg.RestartRune())
	}
}

// WithMetadata seeds the header fields, e.g. from the audio file's tags.
func WithMetadata(meta domain.Metadata) Option {
	return func(g *Generator) {
		for tag, value := range meta {
			g.meta.Set(tag, value)
		}
	}
}

// Generator drives the menu, synchronization, preview and metadata
// routines and writes the LRC file when it quits.
type Generator struct {
	lyrics    []string
	audioPath string
	out       io.Writer
	backend   domain.AudioBackend
	ch        Channels
	clock     domain.Clock
	log       *logger.Logger

	volumeStep   int
	volume       int
	requireAudio bool
	pauseKey     domain.Key
	restartKey   domain.Key

	state     domain.State
	lines     []domain.TimedLine
	meta      domain.Metadata
	status    string
	finalized bool
}

// New creates a generator for the given lyrics. out receives the LRC file
// on finalization; it is opened by the caller and not closed here.
func New(lyrics []string, audioPath string, out io.Writer, backend domain.AudioBackend,
	ch Channels, log *logger.Logger, opts ...Option) *Generator {
	def := config.DefaultConfig()
	g := &Generator{
		lyrics:       lyrics,
		audioPath:    audioPath,
		out:          out,
		backend:      backend,
		ch:           ch,
		clock:        SystemClock{},
		log:          log,
		volumeStep:   def.VolumeStep,
		volume:       def.InitialVolume,
		requireAudio: def.RequireAudio,
		pauseKey:     domain.KeyOf(def.PauseRune()),
		restartKey:   domain.KeyOf(def.RestartRune()),
		state:        domain.StateMenu,
		meta:         domain.Metadata{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run executes the state machine until the user quits, then writes the
// output and publishes the final menu. It must be called once, from the
// engine goroutine.
func (g *Generator) Run() error {
	g.log.Info("generator started with %d lyric lines", len(g.lyrics))

	for g.state != domain.StateQuitting {
		prev := g.state
		switch g.state {
		case domain.StateMenu:
			g.state = g.menu()
		case domain.StateSyncing:
			g.state = g.sync()
		case domain.StatePreview:
			g.state = g.preview()
		case domain.StateMetadata:
			g.state = g.collectMetadata()
		default:
			g.state = domain.StateQuitting
		}
		g.log.Debug("state %s -> %s", prev, g.state)
	}

	err := g.finalize()
	if err != nil {
		g.log.Error("finalization failed: %v", err)
	}
	g.ch.Menus.Produce(finalMenu(err))
	return err
}

// Lines returns a copy of the synchronized lines.
func (g *Generator) Lines() []domain.TimedLine {
	return append([]domain.TimedLine(nil), g.lines...)
}

// Metadata returns a copy of the header fields.
func (g *Generator) Metadata() domain.Metadata {
	meta := domain.Metadata{}
	for tag, value := range g.meta {
		meta[tag] = value
	}
	return meta
}

func (g *Generator) menu() domain.State {
	g.ch.Menus.Produce(mainMenu())
	g.ch.Content.Produce(g.overview())

	switch key := g.ch.Keys.Consume(); key {
	case '0':
		return domain.StateSyncing
	case '1':
		return domain.StatePreview
	case '2':
		return domain.StateMetadata
	default:
		return domain.StateQuitting
	}
}

// overview is the content shown next to the main menu.
func (g *Generator) overview() domain.Content {
	lines := []string{
		fmt.Sprintf("Lyrics:       %d lines", len(g.lyrics)),
		fmt.Sprintf("Synchronized: %d lines", len(g.lines)),
	}
	for _, tag := range domain.HeaderOrder() {
		if value, ok := g.meta.Get(tag); ok {
			lines = append(lines, fmt.Sprintf("%-13s %s", tag.Label()+":", value))
		}
	}
	if g.status != "" {
		lines = append(lines, "", g.status)
	}
	return domain.Content{Title: "lrcgen", Lines: lines}
}

// finalize derives the length tag and writes the LRC file. Only the first
// call does any work.
func (g *Generator) finalize() error {
	if g.finalized {
		return nil
	}
	g.finalized = true

	if d, err := g.backend.Length(g.audioPath); err != nil {
		g.log.Warn("track length unavailable: %v", err)
	} else if d > 0 {
		g.meta.Set(domain.TagLength, lrc.FormatLength(d))
	}

	if err := lrc.Write(g.out, g.meta, g.lines); err != nil {
		return fmt.Errorf("failed to write lrc file: %w", err)
	}
	g.log.Info("wrote %d header fields and %d timed lines", len(g.meta), len(g.lines))
	return nil
}

// openTrack opens the audio file. When that fails a silent stand-in is
// returned together with the error so that callers can keep going on key
// timing alone.
func (g *Generator) openTrack() (domain.AudioTrack, error) {
	track, err := g.backend.Open(g.audioPath)
	if err != nil {
		return &silence{volume: g.volume}, err
	}
	if err := track.SetVolume(g.volume); err != nil {
		g.log.Warn("failed to set volume: %v", err)
	}
	return track, nil
}

func (g *Generator) closeTrack(track domain.AudioTrack) {
	if err := track.Stop(); err != nil {
		g.log.Debug("stopping track: %v", err)
	}
	if err := track.Close(); err != nil {
		g.log.Warn("failed to close track: %v", err)
	}
}

// silence stands in for a track that could not be opened.
type silence struct {
	volume int
}

func (s *silence) Play() error { return nil }
func (s *silence) Pause() error { return nil }
func (s *silence) Stop() error { return nil }
func (s *silence) Volume() int { return s.volume }
func (s *silence) SetVolume(v int) error { s.volume = clampVolume(v); return nil }
func (s *silence) Duration() time.Duration { return 0 }
func (s *silence) Close() error { return nil }

func clampVolume(v int) int {
	return min(max(v, 0), 100)
}
