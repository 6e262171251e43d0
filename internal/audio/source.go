package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/go-mp3"

	"github.com/hammamikhairi/lrcgen/internal/domain"
)

// BytesPerSample is the size of one sample of one channel. Only signed
// 16-bit little-endian PCM is fed to the output device.
const BytesPerSample = 2

// source is a seekable stream of decoded PCM plus its format.
type source struct {
	pcm        io.ReadSeeker
	file       *os.File
	sampleRate int
	channels   int
	size       int64 // PCM bytes
}

// duration returns the playing time of the whole stream.
func (s *source) duration() time.Duration {
	frame := int64(s.sampleRate * s.channels * BytesPerSample)
	if frame == 0 {
		return 0
	}
	return time.Duration(s.size * int64(time.Second) / frame)
}

func (s *source) Close() error {
	return s.file.Close()
}

// fileLength decodes just enough of path to report its playing time.
func fileLength(path string) (time.Duration, error) {
	src, err := openSource(path)
	if err != nil {
		return 0, err
	}
	d := src.duration()
	if err := src.Close(); err != nil {
		return 0, err
	}
	return d, nil
}

// openSource opens path and prepares a PCM stream for it. WAV files are
// read directly from their data chunk; MP3 files are decoded on the fly.
func openSource(path string) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}

	var src *source
	switch detectFormat(f, path) {
	case "wav":
		src, err = openWAV(f)
	case "mp3":
		src, err = openMP3(f)
	default:
		err = fmt.Errorf("%w: %s", domain.ErrAudioFormat, filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return src, nil
}

// detectFormat sniffs the container from the first bytes, falling back
// to the file extension. The file offset is rewound afterwards.
func detectFormat(f io.ReadSeeker, path string) string {
	head := make([]byte, 12)
	n, _ := io.ReadFull(f, head)
	_, _ = f.Seek(0, io.SeekStart)
	head = head[:n]

	switch {
	case len(head) >= 12 && string(head[0:4]) == "RIFF" && string(head[8:12]) == "WAVE":
		return "wav"
	case len(head) >= 3 && string(head[0:3]) == "ID3":
		return "mp3"
	case len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		return "mp3"
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return "wav"
	case ".mp3":
		return "mp3"
	}
	return ""
}

func openMP3(f *os.File) (*source, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %v", domain.ErrAudioFormat, err)
	}
	return &source{
		pcm:        dec,
		file:       f,
		sampleRate: dec.SampleRate(),
		channels:   2, // go-mp3 always decodes to stereo
		size:       dec.Length(),
	}, nil
}

// wavFormat is the subset of the "fmt " chunk we care about.
type wavFormat struct {
	audioFormat   uint16
	channels      uint16
	sampleRate    uint32
	bitsPerSample uint16
}

// openWAV walks the RIFF chunks, reads the format and returns a stream
// limited to the "data" chunk.
func openWAV(f *os.File) (*source, error) {
	header := make([]byte, 12)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, errors.New("wav data too short")
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return nil, errors.New("not a valid WAV file")
	}

	var format *wavFormat
	pos := int64(12)
	chunk := make([]byte, 8)
	for {
		if _, err := f.ReadAt(chunk, pos); err != nil {
			return nil, errors.New("data chunk not found in WAV")
		}
		chunkID := string(chunk[0:4])
		chunkSize := int64(binary.LittleEndian.Uint32(chunk[4:8]))
		body := pos + 8

		switch chunkID {
		case "fmt ":
			raw := make([]byte, 16)
			if _, err := f.ReadAt(raw, body); err != nil {
				return nil, errors.New("truncated fmt chunk in WAV")
			}
			format = &wavFormat{
				audioFormat:   binary.LittleEndian.Uint16(raw[0:2]),
				channels:      binary.LittleEndian.Uint16(raw[2:4]),
				sampleRate:    binary.LittleEndian.Uint32(raw[4:8]),
				bitsPerSample: binary.LittleEndian.Uint16(raw[14:16]),
			}
		case "data":
			if format == nil {
				return nil, errors.New("data chunk before fmt chunk in WAV")
			}
			if format.audioFormat != 1 || format.bitsPerSample != 16 {
				return nil, fmt.Errorf("%w: wav encoding %d with %d bits per sample",
					domain.ErrAudioFormat, format.audioFormat, format.bitsPerSample)
			}
			if format.channels == 0 || format.sampleRate == 0 {
				return nil, fmt.Errorf("%w: wav without channels or sample rate", domain.ErrAudioFormat)
			}

			// Files written by streaming encoders often carry a bogus size.
			if st, err := f.Stat(); err == nil && body+chunkSize > st.Size() {
				chunkSize = st.Size() - body
			}
			return &source{
				pcm:        io.NewSectionReader(f, body, chunkSize),
				file:       f,
				sampleRate: int(format.sampleRate),
				channels:   int(format.channels),
				size:       chunkSize,
			}, nil
		}

		pos = body + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}
}
