package audio

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"

	"github.com/hammamikhairi/lrcgen/internal/domain"
)

// ReadTags reads title, artist and album from the embedded tags of an
// audio file (ID3, MP4, FLAC, OGG). Empty fields are left out.
func ReadTags(path string) (domain.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	meta := domain.Metadata{}
	meta.Set(domain.TagTitle, strings.TrimSpace(m.Title()))
	meta.Set(domain.TagArtist, strings.TrimSpace(m.Artist()))
	meta.Set(domain.TagAlbum, strings.TrimSpace(m.Album()))
	return meta, nil
}
