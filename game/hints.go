package game

import (
	"math/rand"
	"sort"
	"strings"
	"unicode"
)

// NextHintIndex picks the next letter position to reveal, or -1 when every
// non-space position is already revealed. Rarer letters surface first
// (frequency over the not-yet-revealed positions, case-insensitive), ties
// prefer consonants over vowels, and the final pick is uniform among the up
// to three rarest-ranked candidates so two plays of the same word differ.
func NextHintIndex(word string, revealed map[int]bool, rng *rand.Rand) int {
	runes := []rune(word)

	available := make([]int, 0, len(runes))
	frequency := make(map[rune]int)
	for i, r := range runes {
		if unicode.IsSpace(r) || revealed[i] {
			continue
		}
		available = append(available, i)
		frequency[unicode.ToLower(r)]++
	}
	if len(available) == 0 {
		return -1
	}

	sort.SliceStable(available, func(a, b int) bool {
		ra := unicode.ToLower(runes[available[a]])
		rb := unicode.ToLower(runes[available[b]])
		if frequency[ra] != frequency[rb] {
			return frequency[ra] < frequency[rb]
		}
		return !isVowel(ra) && isVowel(rb)
	})

	limit := len(available)
	if limit > 3 {
		limit = 3
	}
	return available[rng.Intn(limit)]
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiou", r)
}

// RevealedWord renders the hint view sent to guessers: revealed letters and
// spaces literal, everything else a placeholder, with a separator injected
// after each space boundary so word-count structure stays visible.
func RevealedWord(word string, revealed map[int]bool) string {
	runes := []rune(word)
	var b strings.Builder
	for i, r := range runes {
		switch {
		case revealed[i]:
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune(' ')
		case i > 0 && runes[i-1] == ' ':
			b.WriteString("‖_")
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// MaskedWord renders the space-joined mask used at drawing start and for
// players joining mid-turn: one underscore per hidden character, spaces
// preserved.
func MaskedWord(word string, revealed map[int]bool) string {
	runes := []rune(word)
	parts := make([]string, len(runes))
	for i, r := range runes {
		switch {
		case revealed[i]:
			parts[i] = string(r)
		case r == ' ':
			parts[i] = " "
		default:
			parts[i] = "_"
		}
	}
	return strings.Join(parts, " ")
}
