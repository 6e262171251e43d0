package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/lrcgen/internal/domain"
	"github.com/hammamikhairi/lrcgen/internal/logger"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestQuitFromMenu(t *testing.T) {
	h := newHarness(t, []string{"a", "b"}, nil)

	first := <-h.menus
	if first.Title != "Main menu" || first.Final {
		t.Fatalf("unexpected first menu %+v", first)
	}
	overview := h.press(0, 'q')
	if overview.Lines[0] != "Lyrics:       2 lines" {
		t.Fatalf("unexpected overview %v", overview.Lines)
	}

	out, err := h.wait()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "[length: 03:00]\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestMenuKeys(t *testing.T) {
	tests := []struct {
		key   domain.Key
		title string
	}{
		{'0', "Synchronizing"},
		{'1', "Preview"},
		{'2', "Metadata"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			h := newHarness(t, []string{"a"}, nil)

			h.press(0, tt.key)
			if c := h.next(); c.Title != tt.title {
				t.Fatalf("key %s led to %q, want %q", tt.key, c.Title, tt.title)
			}
			h.ch.Keys.Produce(domain.KeyInterrupt)
			if _, err := h.wait(); err != nil {
				t.Fatalf("Run: %v", err)
			}
		})
	}
}

func TestFinalizeRunsOnce(t *testing.T) {
	h := newHarness(t, []string{"a"}, nil)

	first, err := h.quit()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := h.gen.finalize(); err != nil {
		t.Fatalf("second finalize: %v", err)
	}
	if h.out.String() != first {
		t.Fatalf("second finalize wrote again: %q", h.out.String())
	}
	if n := h.backend.lengths(); n != 1 {
		t.Fatalf("measured length %d times, want 1", n)
	}
	if n := h.backend.opens(); n != 0 {
		t.Fatalf("opened %d tracks, want 0", n)
	}
}

func TestLengthWithoutAudioDevice(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
		want    string
	}{
		{"device missing", &fakeBackend{openErr: domain.ErrAudioDevice, duration: 2 * time.Minute}, "[length: 02:00]\n"},
		{"undecodable file", &fakeBackend{lengthErr: domain.ErrAudioFormat, duration: 2 * time.Minute}, ""},
		{"zero length", &fakeBackend{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, []string{"a"}, tt.backend)

			out, err := h.quit()
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if out != tt.want {
				t.Fatalf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRunReportsWriteFailure(t *testing.T) {
	ch := NewChannels(4)
	backend := &fakeBackend{duration: time.Minute}
	gen := New([]string{"a"}, "song.wav", failingWriter{}, backend, ch,
		logger.New(logger.LevelOff, nil), WithClock(newFakeClock()))

	// Everything fits in the buffers, so Run can be called inline.
	ch.Keys.Produce('q')
	err := gen.Run()
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected write error, got %v", err)
	}

	var last domain.Menu
	for ch.Menus.Len() > 0 {
		last = ch.Menus.Consume()
	}
	if !last.Final || last.Title != "Failed to save" {
		t.Fatalf("unexpected final menu %+v", last)
	}
}

func TestNewChannels(t *testing.T) {
	ch := NewChannels(0)
	if ch.Keys.Cap() != 1 || ch.Content.Cap() != 1 || ch.Menus.Cap() != 1 {
		t.Fatal("channels should have at least one slot")
	}
}
