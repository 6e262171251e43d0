// Package lrc formats synchronized lyrics as LRC text.
//
// An LRC file starts with optional header lines of the form "[tag: value]"
// followed by one "[mm:ss.hh]text" line per lyric line.
package lrc

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/hammamikhairi/lrcgen/internal/domain"
)

// FormatTimestamp renders d as "[mm:ss.hh]". Minutes wrap modulo 60 to fit
// the two-digit field and hundredths are truncated, not rounded.
func FormatTimestamp(d time.Duration) string {
	return "[" + FormatClock(d) + "]"
}

// FormatClock renders d as "mm:ss.hh" without brackets.
func FormatClock(d time.Duration) string {
	return clock(d.Milliseconds())
}

func clock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d:%02d.%02d", (ms/60000)%60, (ms/1000)%60, (ms/10)%100)
}

// FormatLength renders a track duration as "mm:ss" for the length header.
func FormatLength(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Header renders one metadata header line without the newline.
func Header(tag domain.Tag, value string) string {
	return fmt.Sprintf("[%s: %s]", tag, value)
}

// Line renders one timed line without the newline.
func Line(l domain.TimedLine) string {
	return "[" + clock(l.OffsetMillis()) + "]" + l.Text
}

// Write writes the metadata headers in domain.HeaderOrder, then the timed
// lines in the order given.
func Write(w io.Writer, meta domain.Metadata, lines []domain.TimedLine) error {
	bw := bufio.NewWriter(w)

	for _, tag := range domain.HeaderOrder() {
		value, ok := meta.Get(tag)
		if !ok {
			continue
		}
		if _, err := bw.WriteString(Header(tag, value) + "\n"); err != nil {
			return fmt.Errorf("failed to write header %s: %w", tag, err)
		}
	}

	for i, l := range lines {
		if _, err := bw.WriteString(Line(l) + "\n"); err != nil {
			return fmt.Errorf("failed to write line %d: %w", i+1, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	return nil
}
