package rom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xxxsen/cubesync/internal/platform"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestListMissingDir(t *testing.T) {
	p, _ := platform.Lookup("GB")
	entries, err := List(filepath.Join(t.TempDir(), "nope"), p)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	assert.Empty(t, entries)
}

func TestListFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "zelda.gb", "Alpha.gb", "readme.txt", "cover.png", "mid.ZIP")
	if err := os.Mkdir(filepath.Join(dir, "images"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	p, _ := platform.Lookup("GB")
	entries, err := List(dir, p)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Filename)
	}
	assert.Equal(t, []string{"Alpha.gb", "mid.ZIP", "zelda.gb"}, got)
	assert.Equal(t, "mid", entries[1].BaseName)
	assert.Equal(t, "GB", entries[1].Platform)
}

func TestListCollapsesCueTracks(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"Title.cue",
		"Title (Track 1).bin",
		"Title (Track 2).bin",
		"Orphan.bin",
	)

	p, _ := platform.Lookup("PS")
	entries, err := List(dir, p)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Filename)
	}
	assert.Equal(t, []string{"Orphan.bin", "Title.cue"}, got)
}

func TestListCollapsesSingleBinCue(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Game.cue", "Game.bin")

	p, _ := platform.Lookup("PS")
	entries, err := List(dir, p)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Filename != "Game.cue" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestListNoCollapseOnCartridgePlatform(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Combat.bin")

	p, _ := platform.Lookup("ATARI")
	entries, err := List(dir, p)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	assert.Len(t, entries, 1)
}

func TestBaseNames(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.gb", "b.gb")
	p, _ := platform.Lookup("GB")
	entries, _ := List(dir, p)
	set := BaseNames(entries)
	_, okA := set["a"]
	_, okB := set["b"]
	assert.True(t, okA && okB)
	assert.Len(t, set, 2)
}
