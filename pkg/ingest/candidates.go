package ingest

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minCandidateRunes filters out particles and other very short tokens that
// make poor flashcards.
const minCandidateRunes = 3

// Candidate is a term seen in a text, ranked by occurrence count.
type Candidate struct {
	Term  string
	Count int
}

// ExtractCandidates tokenizes the text with Turkish casing rules and returns
// the most frequent terms not already in the known set, ordered by count
// descending and then alphabetically. Candidates carry no translations, so
// they are meant for review before being imported as studyable words.
func ExtractCandidates(text string, known map[string]bool, limit int) []Candidate {
	counts := make(map[string]int)
	for _, tok := range tokenize(text) {
		if known[tok] {
			continue
		}
		counts[tok]++
	}

	out := make([]Candidate, 0, len(counts))
	for term, count := range counts {
		out = append(out, Candidate{Term: term, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// tokenize splits on any non-letter rune and lowercases with Turkish casing,
// so dotted and dotless i fold correctly. Tokens shorter than
// minCandidateRunes are dropped.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	var toks []string
	for _, f := range fields {
		f = strings.ToLowerSpecial(unicode.TurkishCase, f)
		if utf8.RuneCountInString(f) < minCandidateRunes {
			continue
		}
		toks = append(toks, f)
	}
	return toks
}
