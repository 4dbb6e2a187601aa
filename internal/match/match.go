package match

import (
	"regexp"
	"sort"
	"strings"
)

var tokenRegexp = regexp.MustCompile(`[a-z0-9]{2,}`)

// Tokenize lowercases a name and splits it into alphanumeric runs of at least
// two characters. Short runs carry no signal for cover matching ("a", "of").
func Tokenize(name string) []string {
	seen := make(map[string]struct{})
	tokens := make([]string, 0, 8)
	for _, tok := range tokenRegexp.FindAllString(strings.ToLower(name), -1) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}

// Score counts ROM tokens that have a counterpart among the image tokens. A
// counterpart is an exact match or a substring in either direction, and each
// ROM token stops at its first hit. Either side empty scores zero.
func Score(romTokens, imgTokens []string) int {
	if len(romTokens) == 0 || len(imgTokens) == 0 {
		return 0
	}
	score := 0
	for _, rt := range romTokens {
		for _, it := range imgTokens {
			if rt == it || strings.Contains(it, rt) || strings.Contains(rt, it) {
				score++
				break
			}
		}
	}
	return score
}

// ScoreNames is the convenience form over raw base names.
func ScoreNames(romName, imgName string) int {
	return Score(Tokenize(romName), Tokenize(imgName))
}

// Candidate is a named token set prepared once per matching pass.
type Candidate struct {
	Name   string
	Tokens []string
}

// NewCandidate tokenizes a base name for repeated scoring.
func NewCandidate(name string) Candidate {
	return Candidate{Name: name, Tokens: Tokenize(name)}
}

// Best returns the candidate with the strictly highest score against name,
// together with that score. Ties keep the earliest candidate in slice order;
// callers pass candidates pre-sorted so the tie-break is deterministic. A
// score of zero means no usable match.
func Best(name string, candidates []Candidate) (Candidate, int) {
	tokens := Tokenize(name)
	var best Candidate
	bestScore := 0
	for _, cand := range candidates {
		if s := Score(cand.Tokens, tokens); s > bestScore {
			bestScore = s
			best = cand
		}
	}
	return best, bestScore
}
