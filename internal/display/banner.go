package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

const tagline = "tap along, get an .lrc"

// RenderBanner returns the banner art horizontally centred for the
// current terminal width, followed by the tagline.
func RenderBanner() string {
	width := termWidth()

	lines := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")
	if len(lines) == 0 {
		return ""
	}

	// Find the widest line.
	maxW := 0
	for _, l := range lines {
		if len(l) > maxW {
			maxW = len(l)
		}
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(centre(BannerStyle.Render(l), maxW, width))
		b.WriteByte('\n')
	}
	b.WriteString(centre(secondaryStyle.Render(tagline), len(tagline), width))
	b.WriteByte('\n')
	return b.String()
}

// centre left-pads s, whose visible width is w, to the middle of width.
func centre(s string, w, width int) string {
	if width <= w {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
