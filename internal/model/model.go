package model

// RomEntry is one authoritative game file discovered on the card. Entries are
// recomputed from disk on every run and never persisted.
type RomEntry struct {
	Platform string `json:"platform"`
	Filename string `json:"filename"`
	BaseName string `json:"base_name"`
}

// Key returns the global composite key used by allfiles.lst and the
// reference lists.
func (e RomEntry) Key() string {
	return e.Platform + "/" + e.Filename
}

// Platform summary status after a full run.
const (
	StatusEmpty    = "EMPTY"
	StatusNoRoms   = "NO_ROMS"
	StatusOK       = "OK"
	StatusMismatch = "MISMATCH"
)

// Summary reports the per-platform reconciliation outcome.
type Summary struct {
	Platform     string `json:"platform"`
	RomCount     int    `json:"rom_count"`
	CatalogCount int    `json:"catalog_count"`
	ImageCount   int    `json:"image_count"`
	Status       string `json:"status"`
}

// SummaryStatus derives the status string from the three counts.
func SummaryStatus(roms, catalog, images int) string {
	switch {
	case roms == 0 && images == 0:
		return StatusEmpty
	case roms == 0:
		return StatusNoRoms
	case roms == catalog && catalog == images:
		return StatusOK
	default:
		return StatusMismatch
	}
}
