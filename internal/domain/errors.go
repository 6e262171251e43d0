package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNoLyrics    = errors.New("lyrics contain no lines")
	ErrAudioFormat = errors.New("unsupported audio format")
	ErrAudioDevice = errors.New("audio device unavailable")
	ErrTrackClosed = errors.New("audio track is closed")
	ErrInterrupted = errors.New("interrupted")
)
