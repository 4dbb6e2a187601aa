package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// LoadLines reads the trimmed non-empty lines of a reference list. A missing
// file yields no lines and no error.
func LoadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read list %s: %w", path, err)
	}

	var lines []string
	for _, raw := range strings.Split(string(data), "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// CleanReferences keeps the lines whose leading platform/filename key is in
// the valid set, preserving any trailing fields verbatim, and reports how
// many were dropped. Entries are only ever removed here, never created.
func CleanReferences(lines []string, valid map[string]struct{}) ([]string, int) {
	kept := make([]string, 0, len(lines))
	removed := 0
	for _, line := range lines {
		key := line
		if idx := strings.Index(line, "|"); idx >= 0 {
			key = line[:idx]
		}
		if _, ok := valid[key]; ok {
			kept = append(kept, line)
			continue
		}
		removed++
	}
	return kept, removed
}
