package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xxxsen/cubesync/internal/model"
)

func TestLoadIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "allfiles.lst")
	content := "GB/Game.zip|Mario|MARIO|Mario|Mario\nbadline\nGBA/Other.gba|O|O|O|O\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, malformed, err := LoadIndex(path)
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	assert.Equal(t, 1, malformed)
	assert.Equal(t, "GB/Game.zip|Mario|MARIO|Mario|Mario", records["GB/Game.zip"])
	assert.Len(t, records, 2)
}

func TestMergeIndexLifecycle(t *testing.T) {
	prior := map[string]string{
		"GB/Known.gb":   "GB/Known.gb|Custom|CUSTOM|Localized|cu",
		"GB/Deleted.gb": "GB/Deleted.gb|Gone|GONE|Gone|Gone",
	}
	entries := []model.RomEntry{
		{Platform: "GB", Filename: "Known.gb", BaseName: "Known"},
		{Platform: "GB", Filename: "New.gb", BaseName: "New"},
	}

	lines := MergeIndex(entries, prior)
	assert.Equal(t, []string{
		"GB/Known.gb|Custom|CUSTOM|Localized|cu",
		"GB/New.gb|New|NEW|New|New",
	}, lines)
}

func TestMergeIndexSynthesizesUppercase(t *testing.T) {
	entries := []model.RomEntry{
		{Platform: "SFC", Filename: "Chrono Trigger.sfc", BaseName: "Chrono Trigger"},
	}
	lines := MergeIndex(entries, map[string]string{})
	assert.Equal(t,
		[]string{"SFC/Chrono Trigger.sfc|Chrono Trigger|CHRONO TRIGGER|Chrono Trigger|Chrono Trigger"},
		lines)
}

func TestAbbreviateASCIIPassthrough(t *testing.T) {
	assert.Equal(t, "Chrono Trigger", Abbreviate("Chrono Trigger"))
}

func TestAbbreviateHanInitials(t *testing.T) {
	// 马力欧 -> m l o
	assert.Equal(t, "mlo", Abbreviate("马力欧"))
	assert.Equal(t, "Mario mlo", Abbreviate("Mario 马力欧"))
}
