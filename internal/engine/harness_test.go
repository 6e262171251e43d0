package engine

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/lrcgen/internal/config"
	"github.com/hammamikhairi/lrcgen/internal/domain"
	"github.com/hammamikhairi/lrcgen/internal/logger"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeClock only moves when told to. Sleep advances it instantly.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: epoch}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.slept = append(c.slept, d)
}

// set moves the clock to epoch+at.
func (c *fakeClock) set(at time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = epoch.Add(at)
}

func (c *fakeClock) sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.slept...)
}

// fakeBackend hands out fakeTracks and records what was done to them.
type fakeBackend struct {
	mu       sync.Mutex
	openErr   error
	lengthErr error
	duration  time.Duration
	maxVol    int
	opened    int
	measured  int
	tracks    []*fakeTrack
}

func (b *fakeBackend) Open(path string) (domain.AudioTrack, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opened++
	if b.openErr != nil {
		return nil, b.openErr
	}
	maxVol := b.maxVol
	if maxVol == 0 {
		maxVol = 100
	}
	t := &fakeTrack{duration: b.duration, maxVol: maxVol}
	b.tracks = append(b.tracks, t)
	return t, nil
}

func (b *fakeBackend) Length(path string) (time.Duration, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.measured++
	if b.lengthErr != nil {
		return 0, b.lengthErr
	}
	return b.duration, nil
}

func (b *fakeBackend) lengths() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.measured
}

func (b *fakeBackend) opens() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opened
}

type fakeTrack struct {
	mu       sync.Mutex
	calls    []string
	volume   int
	maxVol   int
	duration time.Duration
	closed   bool
}

func (t *fakeTrack) record(call string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return domain.ErrTrackClosed
	}
	t.calls = append(t.calls, call)
	return nil
}

func (t *fakeTrack) Play() error { return t.record("play") }
func (t *fakeTrack) Pause() error { return t.record("pause") }
func (t *fakeTrack) Stop() error { return t.record("stop") }

func (t *fakeTrack) Volume() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.volume
}

func (t *fakeTrack) SetVolume(v int) error {
	if err := t.record("volume"); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.volume = min(v, t.maxVol)
	return nil
}

func (t *fakeTrack) Duration() time.Duration { return t.duration }

func (t *fakeTrack) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *fakeTrack) history() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.calls...)
}

func (t *fakeTrack) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// harness plays the render side: it reads snapshots and presses keys.
// Every key the generator consumes is preceded by exactly one content
// snapshot (preview lines aside), so waiting for that snapshot before
// moving the clock keeps the two goroutines in lockstep.
type harness struct {
	t       *testing.T
	gen     *Generator
	ch      Channels
	clock   *fakeClock
	backend *fakeBackend
	out     *bytes.Buffer

	contents chan domain.Content
	menus    chan domain.Menu
	done     chan error
}

func newHarness(t *testing.T, lyrics []string, backend *fakeBackend, opts ...Option) *harness {
	t.Helper()

	if backend == nil {
		backend = &fakeBackend{duration: 3 * time.Minute}
	}
	h := &harness{
		t:        t,
		ch:       NewChannels(config.DefaultConfig().ChannelCapacity),
		clock:    newFakeClock(),
		backend:  backend,
		out:      &bytes.Buffer{},
		contents: make(chan domain.Content, 256),
		menus:    make(chan domain.Menu, 256),
		done:     make(chan error, 1),
	}
	opts = append([]Option{WithClock(h.clock)}, opts...)
	h.gen = New(lyrics, "song.wav", h.out, backend, h.ch, logger.New(logger.LevelOff, nil), opts...)

	go func() {
		for {
			h.contents <- h.ch.Content.Consume()
		}
	}()
	go func() {
		for {
			m := h.ch.Menus.Consume()
			h.menus <- m
			if m.Final {
				return
			}
		}
	}()
	go func() {
		h.done <- h.gen.Run()
	}()
	return h
}

// next returns the next content snapshot.
func (h *harness) next() domain.Content {
	h.t.Helper()
	select {
	case c := <-h.contents:
		return c
	case <-time.After(2 * time.Second):
		h.t.Fatal("timed out waiting for a content snapshot")
		return domain.Content{}
	}
}

// press waits for the snapshot prompting for a key, moves the clock to
// at and sends key.
func (h *harness) press(at time.Duration, key domain.Key) domain.Content {
	h.t.Helper()
	c := h.next()
	h.clock.set(at)
	h.ch.Keys.Produce(key)
	return c
}

// keys presses each key without moving the clock.
func (h *harness) keys(keys ...domain.Key) {
	h.t.Helper()
	for _, k := range keys {
		h.next()
		h.ch.Keys.Produce(k)
	}
}

// text types s followed by enter.
func (h *harness) text(s string) {
	h.t.Helper()
	for _, r := range s {
		h.keys(domain.KeyOf(r))
	}
	h.keys(domain.KeyEnter)
}

// quit leaves the main menu and waits for the generator to finish.
func (h *harness) quit() (string, error) {
	h.t.Helper()
	h.keys('q')
	return h.wait()
}

// wait blocks until Run returns and the final menu was published.
func (h *harness) wait() (string, error) {
	h.t.Helper()
	var err error
	select {
	case err = <-h.done:
	case <-time.After(2 * time.Second):
		h.t.Fatal("generator did not finish")
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case m := <-h.menus:
			if m.Final {
				return h.out.String(), err
			}
		case <-deadline:
			h.t.Fatal("final menu was not published")
		}
	}
}

func (h *harness) offsets() []time.Duration {
	var out []time.Duration
	for _, l := range h.gen.Lines() {
		out = append(out, l.Offset)
	}
	return out
}
