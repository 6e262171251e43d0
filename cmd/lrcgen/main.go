// lrcgen: tap along with a song to turn plain lyrics into an LRC file.
//
// Usage:
//
//	lrcgen -l lyrics.txt -a song.mp3 [-o song.lrc] [--verbose] [--quiet]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/lrcgen/internal/audio"
	"github.com/hammamikhairi/lrcgen/internal/config"
	"github.com/hammamikhairi/lrcgen/internal/display"
	"github.com/hammamikhairi/lrcgen/internal/domain"
	"github.com/hammamikhairi/lrcgen/internal/engine"
	"github.com/hammamikhairi/lrcgen/internal/logger"
	"github.com/hammamikhairi/lrcgen/internal/lyrics"
)

var (
	version = "v0.3.0"
	commit  = "dev"
)

// envLogLevel names an environment variable holding the log level
// ("off", "normal" or "verbose"). --verbose and --quiet take precedence.
const envLogLevel = "LRCGEN_LOG_LEVEL"

// shutdownTimeout bounds the wait for the generator once the UI is gone.
const shutdownTimeout = 5 * time.Second

// options holds the command line flags.
type options struct {
	LyricsFile string
	AudioFile  string
	Output     string
	ConfigPath string
	LogFile    string
	Verbose    bool
	Quiet      bool
	NoAudio    bool
}

func main() {
	_ = godotenv.Load()

	var opts options

	rootCmd := &cobra.Command{
		Use:   "lrcgen -l LYRICS -a AUDIO [-o OUTPUT]",
		Short: "A simple TUI to generate .lrc files",
		Long: `lrcgen plays a song and lets you tap a key at the start of every
lyric line. The taps become timestamps in an LRC file, with optional
title, artist, album and creator headers.`,
		Example: `  # Synchronize lyrics.txt against song.mp3, writing lyrics.lrc
  lrcgen -l lyrics.txt -a song.mp3

  # Choose the output file and log debug output to the console
  lrcgen -l lyrics.txt -a song.wav -o out.lrc --verbose --log-file stderr`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.LyricsFile, "lyrics-file", "l", "", "input lyrics file, one line per lyric line")
	rootCmd.Flags().StringVarP(&opts.AudioFile, "audio-file", "a", "", "input audio file (WAV or MP3)")
	rootCmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: the lyrics file with an .lrc extension)")
	rootCmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file (default: $"+config.EnvConfigPath+", ./lrcgen.toml or ~/.config/lrcgen/config.toml)")
	rootCmd.Flags().StringVar(&opts.LogFile, "log-file", ".lrcgen/lrcgen.log", "file to write logs to (use \"stderr\" to log to console)")
	rootCmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "enable verbose/debug logging")
	rootCmd.Flags().BoolVar(&opts.Quiet, "quiet", false, "disable all logging")
	rootCmd.Flags().BoolVar(&opts.NoAudio, "no-audio", false, "do not play the track, e.g. when it plays in another player")
	_ = rootCmd.MarkFlagRequired("lyrics-file")
	_ = rootCmd.MarkFlagRequired("audio-file")

	rootCmd.AddCommand(configCmd())

	if err := fang.Execute(context.Background(), rootCmd,
		fang.WithVersion(version),
		fang.WithCommit(commit),
	); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	log, closeLog := setupLogger(opts)
	defer closeLog()

	cfgPath := config.GetConfigPath(opts.ConfigPath)
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Warn("config %s: %v (using defaults)", cfgPath, err)
	}

	p, err := resolvePaths(opts.LyricsFile, opts.AudioFile, opts.Output)
	if err != nil {
		return err
	}

	text, err := lyrics.Load(p.Lyrics)
	if err != nil {
		return fmt.Errorf("failed to load lyrics: %w", err)
	}

	out, err := openOutput(p.Output, cfg.BackupOutput)
	if err != nil {
		return err
	}
	defer out.Close()

	var backend domain.AudioBackend = audio.NewOtoBackend(log.Named("audio"))
	if opts.NoAudio {
		backend = audio.NewNoOp(log.Named("audio"))
	}

	genOpts := []engine.Option{engine.WithConfig(cfg)}
	if cfg.MetadataFromTags {
		if meta, err := audio.ReadTags(p.Audio); err != nil {
			log.Debug("no tags in %s: %v", p.Audio, err)
		} else {
			genOpts = append(genOpts, engine.WithMetadata(meta))
		}
	}

	ch := engine.NewChannels(cfg.ChannelCapacity)
	gen := engine.New(text, p.Audio, out, backend, ch, log.Named("engine"), genOpts...)
	ui := display.NewUI(ch, log.Named("display"))

	fmt.Println("Parameters summary:")
	fmt.Printf("  Lyrics file: %s (%d lines)\n", p.Lyrics, len(text))
	fmt.Printf("  Audio file:  %s\n", p.Audio)
	fmt.Printf("  Output file: %s\n", p.Output)
	fmt.Println()
	fmt.Println(display.RenderBanner())

	// The generator owns the audio device and talks to the UI only
	// through the channels.
	done := make(chan error, 1)
	go func() {
		done <- gen.Run()
	}()

	// Bubble Tea owns the terminal and blocks until quit.
	finished, err := ui.Run()
	if err != nil {
		log.Error("display: %v", err)
		return fmt.Errorf("display: %w", err)
	}
	if !finished {
		return fmt.Errorf("%w: exited before the lyrics were saved", domain.ErrInterrupted)
	}

	select {
	case err := <-done:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(shutdownTimeout):
		return errors.New("timed out waiting for the lyrics to be saved")
	}

	if err := out.Sync(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}
	fmt.Printf("Saved %s\n", p.Output)
	return nil
}

// setupLogger directs logs to a file by default so the TUI stays clean.
func setupLogger(opts options) (*logger.Logger, func()) {
	logLevel, err := logger.ParseLevel(os.Getenv(envLogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", envLogLevel, err)
	}
	if opts.Verbose {
		logLevel = logger.LevelVerbose
	}
	if opts.Quiet {
		logLevel = logger.LevelOff
	}

	var logOut io.Writer = os.Stderr
	closeFn := func() {}
	if opts.LogFile != "" && opts.LogFile != "stderr" {
		dir := filepath.Dir(opts.LogFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", opts.LogFile, err)
		} else {
			logOut = f
			closeFn = func() { f.Close() }
		}
	}

	// Redirect Go's default log package (used by the audio driver) to the
	// same output so it doesn't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	return logger.New(logLevel, logOut), closeFn
}
