// Package audio opens WAV and MP3 files and plays them through the
// system audio device.
package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/lrcgen/internal/domain"
	"github.com/hammamikhairi/lrcgen/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.AudioBackend = (*OtoBackend)(nil)
	_ domain.AudioTrack   = (*otoTrack)(nil)
)

// OtoBackend plays tracks through an oto context. oto allows a single
// context per process, so the context is created on the first Open with
// the format of that track and every later track must match it.
type OtoBackend struct {
	log *logger.Logger

	mu       sync.Mutex
	ctx      *oto.Context
	rate     int
	channels int
}

// NewOtoBackend creates a backend. The audio device is not touched until
// the first track is opened.
func NewOtoBackend(log *logger.Logger) *OtoBackend {
	return &OtoBackend{log: log}
}

// Open decodes the header of path and returns a paused track.
func (b *OtoBackend) Open(path string) (domain.AudioTrack, error) {
	src, err := openSource(path)
	if err != nil {
		return nil, err
	}

	ctx, err := b.context(src.sampleRate, src.channels)
	if err != nil {
		src.Close()
		return nil, err
	}

	player := ctx.NewPlayer(src.pcm)
	b.log.Debug("opened %s (rate=%d, channels=%d, duration=%s)",
		path, src.sampleRate, src.channels, src.duration())

	return &otoTrack{player: player, src: src, log: b.log}, nil
}

// Length reports the playing time of path. The output device is left
// alone, so this works on machines without one.
func (b *OtoBackend) Length(path string) (time.Duration, error) {
	return fileLength(path)
}

func (b *OtoBackend) context(rate, channels int) (*oto.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx != nil {
		if rate != b.rate || channels != b.channels {
			return nil, fmt.Errorf("%w: track is %d Hz/%d ch, device was opened at %d Hz/%d ch",
				domain.ErrAudioFormat, rate, channels, b.rate, b.channels)
		}
		return b.ctx, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAudioDevice, err)
	}
	<-readyChan

	b.ctx, b.rate, b.channels = ctx, rate, channels
	b.log.Debug("audio context initialized (rate=%d, channels=%d)", rate, channels)
	return ctx, nil
}

// otoTrack is one opened file bound to an oto player.
type otoTrack struct {
	player *oto.Player
	src    *source
	log    *logger.Logger
	closed bool
}

func (t *otoTrack) Play() error {
	if t.closed {
		return domain.ErrTrackClosed
	}
	t.player.Play()
	return nil
}

func (t *otoTrack) Pause() error {
	if t.closed {
		return domain.ErrTrackClosed
	}
	t.player.Pause()
	return nil
}

// Stop pauses and rewinds to the start of the stream.
func (t *otoTrack) Stop() error {
	if t.closed {
		return domain.ErrTrackClosed
	}
	t.player.Pause()
	if _, err := t.player.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind track: %w", err)
	}
	return nil
}

func (t *otoTrack) Volume() int {
	if t.closed {
		return 0
	}
	return int(math.Round(t.player.Volume() * 100))
}

func (t *otoTrack) SetVolume(v int) error {
	if t.closed {
		return domain.ErrTrackClosed
	}
	t.player.SetVolume(float64(clampVolume(v)) / 100)
	return nil
}

func (t *otoTrack) Duration() time.Duration {
	return t.src.duration()
}

func (t *otoTrack) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.player.Pause()
	err := t.player.Close()
	if cerr := t.src.Close(); err == nil {
		err = cerr
	}
	return err
}

func clampVolume(v int) int {
	return min(max(v, 0), 100)
}
