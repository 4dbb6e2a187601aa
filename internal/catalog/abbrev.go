package catalog

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

var abbrevArgs = func() pinyin.Args {
	a := pinyin.NewArgs()
	a.Style = pinyin.FirstLetter
	return a
}()

// Abbreviate builds the firmware search abbreviation for a display name.
// ASCII names pass through unchanged; han runes are replaced by their pinyin
// initial so Chinese titles can be searched on a latin keypad.
func Abbreviate(name string) string {
	var b strings.Builder
	for _, r := range name {
		if !unicode.Is(unicode.Han, r) {
			b.WriteRune(r)
			continue
		}
		if py := pinyin.SinglePinyin(r, abbrevArgs); len(py) > 0 {
			b.WriteString(py[0])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
