package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xxxsen/cubesync/internal/model"
)

// LoadIndex reads allfiles.lst into a map of composite key to full line.
// Lines without a pipe separator are counted as malformed and skipped.
func LoadIndex(path string) (map[string]string, int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read index %s: %w", path, err)
	}

	records := make(map[string]string)
	malformed := 0
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		idx := strings.Index(line, "|")
		if idx <= 0 {
			malformed++
			continue
		}
		records[line[:idx]] = line
	}
	return records, malformed, nil
}

// MergeIndex rebuilds the master index lines for the given entries, which the
// caller supplies already ordered (platforms sorted, filenames sorted within
// each platform). Known keys keep their prior line verbatim; new keys get a
// synthesized record: display and localized names from the base name, the
// uppercase search field, and the pinyin-aware abbreviation.
func MergeIndex(entries []model.RomEntry, prior map[string]string) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		key := e.Key()
		if line, ok := prior[key]; ok {
			lines = append(lines, line)
			continue
		}
		dn := e.BaseName
		lines = append(lines, fmt.Sprintf("%s|%s|%s|%s|%s", key, dn, strings.ToUpper(dn), dn, Abbreviate(dn)))
	}
	return lines
}
