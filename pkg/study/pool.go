package study

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/avodyanin-ux/turkish-cards/pkg/words"
)

// IsInfinitiveVerb reports whether the term is a single-word Turkish
// infinitive: no internal spaces and a "mek"/"mak" suffix, case-insensitive.
func IsInfinitiveVerb(sourceText string) bool {
	t := strings.ToLower(strings.TrimSpace(sourceText))
	if strings.Contains(t, " ") {
		return false
	}
	return strings.HasSuffix(t, "mek") || strings.HasSuffix(t, "mak")
}

// complexityScore ranks terms within a stage: multi-word phrases and longer
// terms score higher, single-word infinitives get a flat discount. Lower
// score means simpler.
func complexityScore(sourceText string) float64 {
	spaces := strings.Count(sourceText, " ")
	score := float64(spaces)*10.0 + float64(utf8.RuneCountInString(sourceText))/10.0
	if IsInfinitiveVerb(sourceText) {
		score -= 3.0
	}
	return score
}

// refreshPool rebuilds the candidate pool from the eligible words: sorted by
// (stage, complexity), verbs reserved up to MinVerbShare of the pool, the
// rest filled from non-verbs and finally any remaining eligible words, in
// sorted order, capped at PoolSize.
func (e *Engine) refreshPool() {
	now := e.now()

	var available []int
	for i := range e.words {
		if e.available(e.words[i], now) {
			available = append(available, i)
		}
	}
	sort.SliceStable(available, func(i, j int) bool {
		a, b := e.words[available[i]], e.words[available[j]]
		if a.Stage != b.Stage {
			return a.Stage < b.Stage
		}
		return complexityScore(a.SourceText) < complexityScore(b.SourceText)
	})

	var verbs, others []int
	for _, i := range available {
		if IsInfinitiveVerb(e.words[i].SourceText) {
			verbs = append(verbs, i)
		} else {
			others = append(others, i)
		}
	}

	targetVerbs := int(math.Round(float64(e.cfg.PoolSize) * e.cfg.MinVerbShare))
	targetVerbs = max(0, min(targetVerbs, e.cfg.PoolSize))

	pool := make([]int, 0, e.cfg.PoolSize)
	pool = append(pool, verbs[:min(targetVerbs, len(verbs))]...)
	need := e.cfg.PoolSize - len(pool)
	pool = append(pool, others[:min(need, len(others))]...)

	if len(pool) < e.cfg.PoolSize {
		in := make(map[int]bool, len(pool))
		for _, i := range pool {
			in[i] = true
		}
		for _, i := range available {
			if len(pool) >= e.cfg.PoolSize {
				break
			}
			if !in[i] {
				pool = append(pool, i)
			}
		}
	}

	e.pool = pool
}

// selectionWeight favors less-mastered words: lower stage, a positive
// again-penalty, and a zero streak all raise the draw probability.
func selectionWeight(w words.WordRecord) float64 {
	weight := 1.0 / (1.0 + float64(w.Stage)*1.2)
	if w.AgainPenalty > 0 {
		weight *= 1.0 + float64(w.AgainPenalty)*2.5
	}
	if w.Streak == 0 {
		weight *= 1.2
	}
	return weight
}

// pickFromPool draws one word index by weighted random selection, or -1 when
// the pool is empty.
func (e *Engine) pickFromPool() int {
	if len(e.pool) == 0 {
		return -1
	}

	weights := make([]float64, len(e.pool))
	var total float64
	for k, i := range e.pool {
		weights[k] = selectionWeight(e.words[i])
		total += weights[k]
	}

	r := e.rng.Float64() * total
	for k, w := range weights {
		r -= w
		if r < 0 {
			return e.pool[k]
		}
	}
	return e.pool[len(e.pool)-1]
}
