// Package lyrics reads plain-text lyrics files.
package lyrics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hammamikhairi/lrcgen/internal/domain"
)

// Load reads the lyrics file at path. See Read.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lyrics: %w", err)
	}
	defer file.Close()

	lines, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

// Read returns the non-empty lines of r in order. Surrounding whitespace
// and a leading byte order mark are stripped; blank lines are skipped.
func Read(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading lyrics: %w", err)
	}

	if len(lines) == 0 {
		return nil, domain.ErrNoLyrics
	}

	return lines, nil
}
