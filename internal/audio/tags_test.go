package audio

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/hammamikhairi/lrcgen/internal/domain"
)

// id3v23 builds a minimal ID3v2.3 tag holding ISO-8859-1 text frames.
func id3v23(frames map[string]string) []byte {
	var body bytes.Buffer
	for _, id := range []string{"TIT2", "TPE1", "TALB"} {
		text, ok := frames[id]
		if !ok {
			continue
		}
		body.WriteString(id)
		binary.Write(&body, binary.BigEndian, uint32(len(text)+1))
		body.Write([]byte{0, 0}) // flags
		body.WriteByte(0)        // encoding
		body.WriteString(text)
	}

	size := body.Len()
	var out bytes.Buffer
	out.WriteString("ID3")
	out.Write([]byte{3, 0, 0})
	// Syncsafe size.
	out.Write([]byte{
		byte(size >> 21 & 0x7F),
		byte(size >> 14 & 0x7F),
		byte(size >> 7 & 0x7F),
		byte(size & 0x7F),
	})
	out.Write(body.Bytes())
	return out.Bytes()
}

func TestReadTags(t *testing.T) {
	path := writeFile(t, "song.mp3", id3v23(map[string]string{
		"TIT2": "Better Song",
		"TPE1": "Someone",
	}))

	meta, err := ReadTags(path)
	if err != nil {
		t.Fatalf("ReadTags: %v", err)
	}

	if got, _ := meta.Get(domain.TagTitle); got != "Better Song" {
		t.Fatalf("title = %q", got)
	}
	if got, _ := meta.Get(domain.TagArtist); got != "Someone" {
		t.Fatalf("artist = %q", got)
	}
	if _, ok := meta.Get(domain.TagAlbum); ok {
		t.Fatal("album should be absent")
	}
}

func TestReadTagsWithoutTags(t *testing.T) {
	path := writeFile(t, "song.wav", buildWAV(t, 8000, 1, 16, make([]byte, 16), false))
	if _, err := ReadTags(path); err == nil {
		t.Fatal("expected error for untagged file")
	}
}
