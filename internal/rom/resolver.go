package rom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/xxxsen/cubesync/internal/model"
	"github.com/xxxsen/cubesync/internal/platform"
)

var trackSuffixRegexp = regexp.MustCompile(`(?i)\s*\(Track \d+\)$`)

// List resolves the authoritative ROM entries for one platform folder,
// ordered lexicographically by filename. A missing folder yields no entries
// and no error. For disc platforms the cue/bin track collapse is applied, so
// a multi-track title resolves to its cue sheet only.
func List(dir string, p platform.Info) ([]model.RomEntry, error) {
	dirents, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read platform dir %s: %w", dir, err)
	}

	entries := make([]model.RomEntry, 0, len(dirents))
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		name := d.Name()
		if !p.AcceptsExt(filepath.Ext(name)) {
			continue
		}
		entries = append(entries, model.RomEntry{
			Platform: p.Name,
			Filename: name,
			BaseName: strings.TrimSuffix(name, filepath.Ext(name)),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Filename < entries[j].Filename })

	if p.DiscBased {
		entries = collapseTracks(entries)
	}
	return entries, nil
}

// collapseTracks drops .bin files that are tracks of a cue sheet present in
// the same folder: the bin base name, with an optional "(Track <n>)" suffix
// stripped, equals a cue base name. Bins without a matching cue stay as
// standalone titles.
func collapseTracks(entries []model.RomEntry) []model.RomEntry {
	cueBases := make(map[string]struct{})
	for _, e := range entries {
		if strings.EqualFold(filepath.Ext(e.Filename), ".cue") {
			cueBases[strings.ToLower(e.BaseName)] = struct{}{}
		}
	}
	if len(cueBases) == 0 {
		return entries
	}

	kept := entries[:0]
	for _, e := range entries {
		if strings.EqualFold(filepath.Ext(e.Filename), ".bin") {
			stripped := strings.ToLower(trackSuffixRegexp.ReplaceAllString(e.BaseName, ""))
			if _, ok := cueBases[stripped]; ok {
				continue
			}
		}
		kept = append(kept, e)
	}
	return kept
}

// BaseNames returns the set of base names over the given entries.
func BaseNames(entries []model.RomEntry) map[string]struct{} {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		set[e.BaseName] = struct{}{}
	}
	return set
}
