package domain

import "time"

// AudioBackend opens audio files for playback. Implementations can use a
// real output device or do nothing at all when no device is available.
type AudioBackend interface {
	Open(path string) (AudioTrack, error)
	// Length reports the playing time of path without touching the
	// output device.
	Length(path string) (time.Duration, error)
}

// AudioTrack is one opened audio file. It is owned by a single goroutine
// and must be closed by whoever opened it.
type AudioTrack interface {
	Play() error
	Pause() error
	// Stop halts playback and rewinds to the start of the track.
	Stop() error
	// Volume reports the current volume in the 0..100 range.
	Volume() int
	SetVolume(v int) error
	Duration() time.Duration
	Close() error
}

// Clock abstracts wall-clock time so the timeline arithmetic can be
// driven deterministically in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}
