package rom

import (
	"archive/zip"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// InspectArchive verifies that the archive at path opens and contains at
// least one file. Deleting an uncompressed ROM in favour of a broken archive
// would lose the title, so the collapser calls this before every removal.
func InspectArchive(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".zip":
		r, err := zip.OpenReader(path)
		if err != nil {
			return fmt.Errorf("open zip %s: %w", path, err)
		}
		defer r.Close()
		for _, f := range r.File {
			if !f.FileInfo().IsDir() {
				return nil
			}
		}
		return fmt.Errorf("zip %s contains no files", path)
	case ".7z":
		r, err := sevenzip.OpenReader(path)
		if err != nil {
			return fmt.Errorf("open 7z %s: %w", path, err)
		}
		defer r.Close()
		for _, f := range r.File {
			if !f.FileInfo().IsDir() {
				return nil
			}
		}
		return fmt.Errorf("7z %s contains no files", path)
	default:
		return fmt.Errorf("unsupported archive format: %s", path)
	}
}
