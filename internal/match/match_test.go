package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"land", "mario", "super"}, Tokenize("Super Mario Land"))
	assert.Equal(t, []string{"land", "mario", "shot"}, Tokenize("mario_land_shot"))
	// runs shorter than two characters are dropped
	assert.Equal(t, []string{"legend", "of", "zelda"}, Tokenize("Legend of Zelda 2 A"))
	assert.Empty(t, Tokenize("!!!"))
}

func TestScoreOverlap(t *testing.T) {
	rom := Tokenize("Super Mario Land")
	img := Tokenize("mario_land_shot")
	if got := Score(rom, img); got != 2 {
		t.Fatalf("score = %d, want 2", got)
	}
}

func TestScoreSubstringBothDirections(t *testing.T) {
	assert.Equal(t, 1, Score([]string{"mario"}, []string{"marioland"}))
	assert.Equal(t, 1, Score([]string{"marioland"}, []string{"mario"}))
	assert.Equal(t, 0, Score([]string{"zelda"}, []string{"metroid"}))
}

func TestScoreEmptySides(t *testing.T) {
	assert.Equal(t, 0, Score(nil, []string{"mario"}))
	assert.Equal(t, 0, Score([]string{"mario"}, nil))
}

func TestScoreCountsEachRomTokenOnce(t *testing.T) {
	// one rom token matching several image tokens still counts once
	rom := []string{"mario"}
	img := []string{"mario", "marioland", "supermario"}
	assert.Equal(t, 1, Score(rom, img))
}

func TestBestPrefersHighestScore(t *testing.T) {
	candidates := []Candidate{
		NewCandidate("Alien Storm"),
		NewCandidate("Super Mario Land"),
		NewCandidate("Mario Picross"),
	}
	best, score := Best("mario_land_shot", candidates)
	assert.Equal(t, "Super Mario Land", best.Name)
	assert.Equal(t, 2, score)
}

func TestBestTieKeepsEarliest(t *testing.T) {
	candidates := []Candidate{
		NewCandidate("Mario Golf"),
		NewCandidate("Mario Tennis"),
	}
	best, score := Best("mario cover", candidates)
	assert.Equal(t, "Mario Golf", best.Name)
	assert.Equal(t, 1, score)
}

func TestBestNoMatch(t *testing.T) {
	_, score := Best("unrelated_cover", []Candidate{NewCandidate("Super Mario Land")})
	assert.Equal(t, 0, score)
}
