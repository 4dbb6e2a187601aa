package rom

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xxxsen/cubesync/internal/model"
)

func entry(platformName, filename string) model.RomEntry {
	return model.RomEntry{
		Platform: platformName,
		Filename: filename,
		BaseName: filename[:len(filename)-len(filepath.Ext(filename))],
	}
}

func TestFindDuplicatesPrefersArchive(t *testing.T) {
	entries := []model.RomEntry{
		entry("GB", "Game.gb"),
		entry("GB", "Game.zip"),
		entry("GB", "Other.gb"),
	}
	dups := FindDuplicates(entries)
	if len(dups) != 1 {
		t.Fatalf("dups = %+v, want 1", dups)
	}
	assert.Equal(t, "Game.gb", dups[0].Entry.Filename)
	assert.Equal(t, "Game.zip", dups[0].ArchiveFile)
}

func TestFindDuplicatesCaseInsensitiveBase(t *testing.T) {
	entries := []model.RomEntry{
		entry("GB", "GAME.gb"),
		entry("GB", "game.7z"),
	}
	dups := FindDuplicates(entries)
	assert.Len(t, dups, 1)
	assert.Equal(t, "game.7z", dups[0].ArchiveFile)
}

func TestFindDuplicatesNeverRemovesArchives(t *testing.T) {
	entries := []model.RomEntry{
		entry("GB", "Game.zip"),
		entry("GB", "Game.7z"),
	}
	assert.Empty(t, FindDuplicates(entries))
}

func TestFindDuplicatesNoArchive(t *testing.T) {
	entries := []model.RomEntry{
		entry("GB", "Game.gb"),
		entry("GB", "Other.gb"),
	}
	assert.Empty(t, FindDuplicates(entries))
}

func TestInspectArchiveZip(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.zip")
	writeZip(t, good, map[string][]byte{"rom.gb": []byte("data")})
	if err := InspectArchive(good); err != nil {
		t.Fatalf("inspect good zip: %v", err)
	}

	empty := filepath.Join(dir, "empty.zip")
	writeZip(t, empty, nil)
	if err := InspectArchive(empty); err == nil {
		t.Fatalf("expected error for empty zip")
	}

	broken := filepath.Join(dir, "broken.zip")
	if err := os.WriteFile(broken, []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("write broken: %v", err)
	}
	if err := InspectArchive(broken); err == nil {
		t.Fatalf("expected error for broken zip")
	}
}

func TestInspectArchiveUnsupported(t *testing.T) {
	if err := InspectArchive("whatever.rar"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func writeZip(t *testing.T, path string, files map[string][]byte) {
	t.Helper()
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	defer out.Close()
	w := zip.NewWriter(out)
	for name, data := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}
}
