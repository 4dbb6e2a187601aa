package platform

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatalf("empty platform table")
	}
	assert.True(t, sort.StringsAreSorted(names))
}

func TestLookupCaseInsensitive(t *testing.T) {
	info, ok := Lookup("gba")
	if !ok {
		t.Fatalf("gba not found")
	}
	assert.Equal(t, "GBA", info.Name)
	assert.True(t, info.AcceptsExt(".GBA"))
	assert.False(t, info.AcceptsExt(".nes"))
}

func TestDiscBasedOnlyPS(t *testing.T) {
	for _, name := range Names() {
		info, _ := Lookup(name)
		if info.DiscBased && name != "PS" {
			t.Fatalf("unexpected disc platform %s", name)
		}
	}
}

func TestExtClassifiers(t *testing.T) {
	assert.True(t, IsArchiveExt(".ZIP"))
	assert.True(t, IsArchiveExt(".7z"))
	assert.False(t, IsArchiveExt(".gb"))
	assert.True(t, IsImageExt(".jpeg"))
	assert.False(t, IsImageExt(".cue"))
}
