package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xxxsen/cubesync/internal/model"
)

func gbEntry(filename, base string) model.RomEntry {
	return model.RomEntry{Platform: "GB", Filename: filename, BaseName: base}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filelist.csv")
	content := "Game.zip,Mario Land,马力欧\n\nnocomma\nOther.gb,Other,Other\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, malformed, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	assert.Equal(t, 1, malformed)
	assert.Equal(t, "Mario Land,马力欧", records["Game.zip"])
	assert.Equal(t, "Other,Other", records["Other.gb"])
}

func TestLoadCatalogMissing(t *testing.T) {
	records, malformed, err := LoadCatalog(filepath.Join(t.TempDir(), "none.csv"))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	assert.Empty(t, records)
	assert.Zero(t, malformed)
}

func TestMergeCatalogPreservesAndSynthesizes(t *testing.T) {
	prior := map[string]string{
		"Known.gb": "My Name,私の名前",
		"Gone.gb":  "Deleted,Deleted",
	}
	entries := []model.RomEntry{
		gbEntry("Known.gb", "Known"),
		gbEntry("New.gb", "New"),
	}

	lines := MergeCatalog(entries, prior)
	assert.Equal(t, []string{
		"Known.gb,My Name,私の名前",
		"New.gb,New,New",
	}, lines)
}

func TestWriteLinesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filelist.csv")
	if err := WriteLines(path, []string{"a.gb,a,a", "b.gb,b,b"}); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	assert.Equal(t, "a.gb,a,a\nb.gb,b,b\n", string(data))

	n, err := CountLines(path)
	if err != nil {
		t.Fatalf("CountLines: %v", err)
	}
	assert.Equal(t, 2, n)
}

func TestWriteLinesEmptyClearsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filelist.csv")
	if err := os.WriteFile(path, []byte("stale.gb,stale,stale\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := WriteLines(path, nil); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}
	data, _ := os.ReadFile(path)
	assert.Empty(t, string(data))
}

func TestCountLinesMissing(t *testing.T) {
	n, err := CountLines(filepath.Join(t.TempDir(), "none"))
	if err != nil {
		t.Fatalf("CountLines: %v", err)
	}
	assert.Zero(t, n)
}
