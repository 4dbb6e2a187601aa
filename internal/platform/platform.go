package platform

import (
	"sort"
	"strings"
)

// Info describes one emulated platform folder on the card. The table is fixed
// at build time; the firmware only understands this exact folder set.
type Info struct {
	Name       string
	Extensions map[string]struct{}
	DiscBased  bool
	ThumbRepo  string
}

// archiveExts are the container formats preferred over loose ROM files.
var archiveExts = map[string]struct{}{
	".zip": {},
	".7z":  {},
}

// imageExts are the loose cover formats picked up beside ROMs.
var imageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".bmp":  {},
	".gif":  {},
}

var table = map[string]Info{
	"ATARI": {Name: "ATARI", Extensions: exts(".a26", ".a78", ".bin", ".zip", ".7z"), ThumbRepo: "Atari - 2600"},
	"FC":    {Name: "FC", Extensions: exts(".nes", ".fds", ".zip", ".7z"), ThumbRepo: "Nintendo - Nintendo Entertainment System"},
	"GB":    {Name: "GB", Extensions: exts(".gb", ".zip", ".7z"), ThumbRepo: "Nintendo - Game Boy"},
	"GBA":   {Name: "GBA", Extensions: exts(".gba", ".zip", ".7z"), ThumbRepo: "Nintendo - Game Boy Advance"},
	"GBC":   {Name: "GBC", Extensions: exts(".gbc", ".zip", ".7z"), ThumbRepo: "Nintendo - Game Boy Color"},
	"GG":    {Name: "GG", Extensions: exts(".gg", ".sms", ".zip", ".7z"), ThumbRepo: "Sega - Game Gear"},
	"MAME":  {Name: "MAME", Extensions: exts(".fba", ".zip", ".7z"), ThumbRepo: "MAME"},
	"MD":    {Name: "MD", Extensions: exts(".md", ".gen", ".bin", ".zip", ".7z", ".smd"), ThumbRepo: "Sega - Mega Drive - Genesis"},
	"NGPC":  {Name: "NGPC", Extensions: exts(".ngp", ".ngc", ".zip", ".7z"), ThumbRepo: "SNK - Neo Geo Pocket Color"},
	"PCE":   {Name: "PCE", Extensions: exts(".pce", ".zip", ".7z"), ThumbRepo: "NEC - PC Engine - TurboGrafx 16"},
	"PS":    {Name: "PS", Extensions: exts(".img", ".iso", ".bin", ".cue", ".pbp", ".chd", ".zip", ".7z"), DiscBased: true, ThumbRepo: "Sony - PlayStation"},
	"SFC":   {Name: "SFC", Extensions: exts(".sfc", ".smc", ".zip", ".7z"), ThumbRepo: "Nintendo - Super Nintendo Entertainment System"},
}

func exts(list ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, e := range list {
		m[e] = struct{}{}
	}
	return m
}

// Names returns every platform folder name in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the platform info for a folder name.
func Lookup(name string) (Info, bool) {
	info, ok := table[strings.ToUpper(strings.TrimSpace(name))]
	return info, ok
}

// AcceptsExt reports whether ext (with leading dot, any case) belongs to the
// platform ROM set.
func (p Info) AcceptsExt(ext string) bool {
	_, ok := p.Extensions[strings.ToLower(ext)]
	return ok
}

// IsArchiveExt reports whether ext is a preferred container format.
func IsArchiveExt(ext string) bool {
	_, ok := archiveExts[strings.ToLower(ext)]
	return ok
}

// IsImageExt reports whether ext is an accepted loose cover format.
func IsImageExt(ext string) bool {
	_, ok := imageExts[strings.ToLower(ext)]
	return ok
}
