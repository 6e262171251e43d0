package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{"off", LevelOff, false, false},
		{"normal", LevelNormal, false, true},
		{"verbose", LevelVerbose, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, &buf)

			log.Debug("debug %d", 1)
			log.Info("info %d", 2)

			out := buf.String()
			if got := strings.Contains(out, "[DBG] debug 1"); got != tt.wantDebug {
				t.Fatalf("debug output = %v, want %v (out=%q)", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "[INF] info 2"); got != tt.wantInfo {
				t.Fatalf("info output = %v, want %v (out=%q)", got, tt.wantInfo, out)
			}
		})
	}
}

func TestNamedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelNormal, &buf)
	child := root.Named("engine").Named("sync")

	child.Debug("hidden")
	root.SetLevel(LevelVerbose)
	child.Debug("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line logged below verbose: %q", out)
	}
	if !strings.Contains(out, "engine.sync: visible") {
		t.Fatalf("expected prefixed child output, got %q", out)
	}
	if child.GetLevel() != LevelVerbose {
		t.Fatalf("expected child level verbose, got %d", child.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"Verbose", LevelVerbose, false},
		{"", LevelNormal, false},
		{"loud", LevelNormal, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
