package rom

import (
	"path/filepath"
	"strings"

	"github.com/xxxsen/cubesync/internal/model"
	"github.com/xxxsen/cubesync/internal/platform"
)

// Duplicate marks an uncompressed ROM shadowed by an archive with the same
// base name. The archive is always the survivor.
type Duplicate struct {
	Entry       model.RomEntry
	ArchiveFile string
}

// FindDuplicates returns, in input order, every non-archive entry whose base
// name also exists as a .zip/.7z entry in the same list.
func FindDuplicates(entries []model.RomEntry) []Duplicate {
	archives := make(map[string]string)
	for _, e := range entries {
		if platform.IsArchiveExt(filepath.Ext(e.Filename)) {
			key := strings.ToLower(e.BaseName)
			if _, ok := archives[key]; !ok {
				archives[key] = e.Filename
			}
		}
	}
	if len(archives) == 0 {
		return nil
	}

	var dups []Duplicate
	for _, e := range entries {
		if platform.IsArchiveExt(filepath.Ext(e.Filename)) {
			continue
		}
		if archive, ok := archives[strings.ToLower(e.BaseName)]; ok {
			dups = append(dups, Duplicate{Entry: e, ArchiveFile: archive})
		}
	}
	return dups
}
