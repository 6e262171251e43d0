package audio

import (
	"time"

	"github.com/hammamikhairi/lrcgen/internal/domain"
	"github.com/hammamikhairi/lrcgen/internal/logger"
)

// Compile-time interface check.
var _ domain.AudioBackend = (*NoOp)(nil)

// NoOp is a backend that never touches the audio device. Tracks are still
// decoded far enough to report their duration. Used with --no-audio, e.g.
// when the song is played by an external player.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a silent backend.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Open validates the file and returns a silent track.
func (n *NoOp) Open(path string) (domain.AudioTrack, error) {
	d, err := fileLength(path)
	if err != nil {
		return nil, err
	}
	n.log.Debug("audio no-op: would play %s (%s)", path, d)
	return &silentTrack{duration: d, volume: 100}, nil
}

// Length reports the playing time of path.
func (n *NoOp) Length(path string) (time.Duration, error) {
	return fileLength(path)
}

// silentTrack remembers its volume and nothing else.
type silentTrack struct {
	duration time.Duration
	volume   int
	closed   bool
}

func (s *silentTrack) Play() error { return s.check() }
func (s *silentTrack) Pause() error { return s.check() }
func (s *silentTrack) Stop() error { return s.check() }
func (s *silentTrack) Volume() int { return s.volume }

func (s *silentTrack) SetVolume(v int) error {
	if err := s.check(); err != nil {
		return err
	}
	s.volume = clampVolume(v)
	return nil
}

func (s *silentTrack) Duration() time.Duration { return s.duration }

func (s *silentTrack) Close() error {
	s.closed = true
	return nil
}

func (s *silentTrack) check() error {
	if s.closed {
		return domain.ErrTrackClosed
	}
	return nil
}
