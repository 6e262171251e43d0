package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// paths are the absolute locations of the three files the generator uses.
type paths struct {
	Lyrics string
	Audio  string
	Output string
}

// resolvePaths checks that the inputs exist and works out the output
// path. Without an explicit output, the lyrics path with an .lrc
// extension is used.
func resolvePaths(lyricsFile, audioFile, output string) (paths, error) {
	lyricsAbs, err := filepath.Abs(lyricsFile)
	if err != nil {
		return paths{}, err
	}
	audioAbs, err := filepath.Abs(audioFile)
	if err != nil {
		return paths{}, err
	}

	if !exists(lyricsAbs) || !exists(audioAbs) {
		return paths{}, fmt.Errorf("one of the following files does not exist\n  Lyrics file: %s\n  Audio file:  %s",
			lyricsAbs, audioAbs)
	}

	if output == "" {
		output = lyricsFile
	}
	outputAbs, err := filepath.Abs(output)
	if err != nil {
		return paths{}, err
	}

	if outputAbs == lyricsAbs {
		outputAbs = withLRCExtension(outputAbs)
		if outputAbs == lyricsAbs {
			return paths{}, errors.New("the output file would overwrite the lyrics file, pass --output")
		}
	}

	return paths{Lyrics: lyricsAbs, Audio: audioAbs, Output: outputAbs}, nil
}

// withLRCExtension replaces the extension of path with .lrc, or appends
// one when there is none.
func withLRCExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return path + ".lrc"
	}
	return strings.TrimSuffix(path, ext) + ".lrc"
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// openOutput creates the output file, first moving an existing one to
// <path>.bak when backup is set.
func openOutput(path string, backup bool) (*os.File, error) {
	if backup {
		if _, err := os.Stat(path); err == nil {
			if err := os.Rename(path, path+".bak"); err != nil {
				return nil, fmt.Errorf("failed to create backup: %w", err)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}
