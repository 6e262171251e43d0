package domain

import "time"

// TimedLine is one committed lyric line and its offset from the start
// of playback. Offsets carry millisecond resolution.
type TimedLine struct {
	Text   string
	Offset time.Duration
}

// NewTimedLine creates a line, truncating the offset to whole milliseconds.
func NewTimedLine(text string, offset time.Duration) TimedLine {
	return TimedLine{Text: text, Offset: offset.Truncate(time.Millisecond)}
}

// OffsetMillis returns the offset in milliseconds.
func (l TimedLine) OffsetMillis() int64 {
	return l.Offset.Milliseconds()
}
