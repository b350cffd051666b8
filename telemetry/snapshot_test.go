package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveSnapshotNamesFileAfterBookmark(t *testing.T) {
	dir := t.TempDir()
	snap := &Snapshot{
		Version:  SnapshotVersion,
		Seed:     7,
		Turn:     12,
		Worms:    []WormState{{ID: 1, Name: "Boggy", X: 1.5, Y: 2, HP: 40, Weapon: "Rifle"}},
		Bookmark: &Bookmark{Type: BookmarkFirstBlood, Turn: 12},
	}

	path, err := SaveSnapshot(snap, dir)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if got := filepath.Base(path); got != "snapshot_12_first_blood.json" {
		t.Errorf("file name = %q", got)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(loaded.Worms) != 1 || loaded.Worms[0].Name != "Boggy" || loaded.Bookmark == nil {
		t.Errorf("loaded snapshot = %+v", loaded)
	}
}

func TestLoadSnapshotRejectsOtherVersions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadSnapshot(path)
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Errorf("err = %v, want version mismatch", err)
	}
}
