package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xxxsen/cubesync/internal/model"
)

// LoadCatalog reads a per-platform filelist.csv into a map of ROM filename to
// the preserved remainder of its line. Lines without a comma are counted as
// malformed and skipped; a missing file is an empty catalog.
func LoadCatalog(path string) (map[string]string, int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read catalog %s: %w", path, err)
	}

	records := make(map[string]string)
	malformed := 0
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		idx := strings.Index(line, ",")
		if idx <= 0 {
			malformed++
			continue
		}
		records[strings.TrimSpace(line[:idx])] = line[idx+1:]
	}
	return records, malformed, nil
}

// MergeCatalog rebuilds the catalog lines for the current ROM set. Known
// filenames keep their prior display fields verbatim; new ones are synthesized
// from the base name. Prior records without a surviving ROM simply never get
// re-emitted.
func MergeCatalog(entries []model.RomEntry, prior map[string]string) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if tail, ok := prior[e.Filename]; ok {
			lines = append(lines, e.Filename+","+tail)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s,%s,%s", e.Filename, e.BaseName, e.BaseName))
	}
	return lines
}

// WriteLines overwrites path with the given lines, one per line with a
// trailing newline. No lines clears the file rather than deleting it, which
// is what the firmware expects of an empty catalog.
func WriteLines(path string, lines []string) error {
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// CountLines returns the number of non-empty lines in a file, zero if the
// file does not exist.
func CountLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	count := 0
	for _, raw := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(raw) != "" {
			count++
		}
	}
	return count, nil
}
