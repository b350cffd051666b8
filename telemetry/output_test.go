package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/worms/config"
)

func TestOutputManagerNilIsNoop(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	if err := om.WriteTurn(TurnStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteEvents([]Event{{}}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for turn := 1; turn <= 3; turn++ {
		if err := om.WriteTurn(TurnStats{Turn: turn, Worm: "Alpha"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteEvents([]Event{NewGameOverEvent(3, "Annelida")}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "turns.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("turns.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "turn,worm,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if got := strings.Count(string(data), "turn,worm,"); got != 1 {
		t.Errorf("header written %d times", got)
	}

	events, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(events), "game_over") {
		t.Errorf("events.csv should name the event type, got %q", events)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}
