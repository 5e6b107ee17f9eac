// Package hangul provides Korean text normalization and jamo-level
// similarity for fuzzy diner-name matching.
//
// Korean restaurant names carry a lot of spelling and spacing drift
// ("김밥천국" vs "김 밥 천국" vs "김빱천국"). Comparing decomposed jamo
// sequences instead of whole syllables recovers near-misses that differ
// by a single consonant or vowel.
package hangul

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

const (
	syllableBase = 0xAC00 // 가
	syllableLast = 0xD7A3 // 힣

	jungseongCount = 21
	jongseongCount = 28
)

var (
	choseong  = []rune("ㄱㄲㄴㄷㄸㄹㅁㅂㅃㅅㅆㅇㅈㅉㅊㅋㅌㅍㅎ")
	jungseong = []rune("ㅏㅐㅑㅒㅓㅔㅕㅖㅗㅘㅙㅚㅛㅜㅝㅞㅟㅠㅡㅢㅣ")
	// Index 0 is the empty final consonant.
	jongseong = []rune("\x00ㄱㄲㄳㄴㄵㄶㄷㄹㄺㄻㄼㄽㄾㄿㅀㅁㅂㅄㅅㅆㅇㅈㅊㅋㅌㅍㅎ")
)

// IsSyllable reports whether r is a precomposed Hangul syllable.
func IsSyllable(r rune) bool {
	return r >= syllableBase && r <= syllableLast
}

// Normalize strips every character outside the Hangul syllable block, ASCII
// letters and digits, and lowercases the ASCII letters. The result is the
// canonical form used by all search tiers.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case IsSyllable(r):
			b.WriteRune(r)
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Decompose expands every Hangul syllable in s into its jamo components
// (initial consonant, vowel, optional final consonant). Non-syllable runes
// pass through unchanged.
func Decompose(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if !IsSyllable(r) {
			b.WriteRune(r)
			continue
		}
		idx := r - syllableBase
		b.WriteRune(choseong[idx/(jungseongCount*jongseongCount)])
		b.WriteRune(jungseong[idx%(jungseongCount*jongseongCount)/jongseongCount])
		if jong := idx % jongseongCount; jong != 0 {
			b.WriteRune(jongseong[jong])
		}
	}
	return b.String()
}

// Similarity returns an edit-distance ratio in [0,1] between the jamo
// decompositions of a and b. 1 means identical jamo sequences.
// Both inputs are expected to be normalized already.
func Similarity(a, b string) float64 {
	da := Decompose(a)
	db := Decompose(b)
	if da == "" && db == "" {
		return 1
	}

	la := len([]rune(da))
	lb := len([]rune(db))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}

	dist := levenshtein.ComputeDistance(da, db)
	return 1 - float64(dist)/float64(longest)
}
