// Package words owns the durable collection of vocabulary records: the JSON
// wire format, normalization of legacy data, and the file-backed store.
package words

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// MaxStage is the mastery level at which a word counts as learned and stops
// being scheduled.
const MaxStage = 6

// maxAgainPenalty caps the re-selection boost a word can accumulate from
// wrong answers.
const maxAgainPenalty = 10

// WordRecord is one vocabulary entry with its scheduling state.
type WordRecord struct {
	SourceText   string   // Turkish term.
	Translations []string // Russian equivalents, order preserved.
	Stage        int      // Mastery level, 0 (new) through MaxStage (learned).
	Streak       int      // Consecutive correct answers at the current stage.
	Due          int64    // Unix seconds the word becomes eligible again; 0 means now.
	AgainPenalty int      // Selection boost from wrong answers, decays per draw.
	CorrectCount int      // Lifetime correct answers, statistics only.
}

// wireWord is the persisted form of a WordRecord.
type wireWord struct {
	TR      string   `json:"tr"`
	RU      []string `json:"ru"`
	Stage   int      `json:"stage"`
	Streak  int      `json:"streak"`
	Due     int64    `json:"due"`
	Again   int      `json:"again"`
	Correct int      `json:"correct"`
}

// rawWord tolerates malformed persisted records: every field is decoded
// leniently and coerced in normalize. The legacy interval field predates the
// stage field and is only consulted when stage is absent.
type rawWord struct {
	TR       json.RawMessage `json:"tr"`
	RU       json.RawMessage `json:"ru"`
	Stage    json.RawMessage `json:"stage"`
	Interval json.RawMessage `json:"interval"`
	Streak   json.RawMessage `json:"streak"`
	Due      json.RawMessage `json:"due"`
	Again    json.RawMessage `json:"again"`
	Correct  json.RawMessage `json:"correct"`
}

// MarshalJSON implements json.Marshaler using the wire field names.
func (w WordRecord) MarshalJSON() ([]byte, error) {
	ru := w.Translations
	if ru == nil {
		ru = []string{}
	}
	return json.Marshal(wireWord{
		TR:      w.SourceText,
		RU:      ru,
		Stage:   w.Stage,
		Streak:  w.Streak,
		Due:     w.Due,
		Again:   w.AgainPenalty,
		Correct: w.CorrectCount,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Every decoded record is
// normalized: missing or unparsable fields fall back to defaults, a scalar
// translation is wrapped into a one-element list, a legacy interval is
// migrated to a stage, and stage and again are clamped to their valid ranges.
func (w *WordRecord) UnmarshalJSON(data []byte) error {
	var raw rawWord
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*w = normalize(raw)
	return nil
}

func normalize(raw rawWord) WordRecord {
	w := WordRecord{
		SourceText:   coerceString(raw.TR),
		Translations: coerceStringList(raw.RU),
		Streak:       coerceInt(raw.Streak, 0),
		Due:          coerceInt64(raw.Due, 0),
		AgainPenalty: coerceInt(raw.Again, 0),
		CorrectCount: coerceInt(raw.Correct, 0),
	}
	if raw.Stage != nil {
		w.Stage = coerceInt(raw.Stage, 0)
	} else {
		// Legacy records carried a 1-based interval instead of a stage.
		w.Stage = coerceInt(raw.Interval, 1) - 1
	}
	w.Stage = clamp(w.Stage, 0, MaxStage)
	w.AgainPenalty = clamp(w.AgainPenalty, 0, maxAgainPenalty)
	return w
}

func coerceString(m json.RawMessage) string {
	var s string
	if m != nil && json.Unmarshal(m, &s) == nil {
		return s
	}
	return ""
}

func coerceStringList(m json.RawMessage) []string {
	// Unmarshaling the literal null is a no-op success for any target, so it
	// must be rejected before the scalar fallback wraps an empty string.
	if m != nil && string(m) != "null" {
		var list []string
		if err := json.Unmarshal(m, &list); err == nil && list != nil {
			return list
		}
		var s string
		if json.Unmarshal(m, &s) == nil {
			return []string{s}
		}
	}
	return []string{}
}

func coerceInt64(m json.RawMessage, def int64) int64 {
	if m == nil {
		return def
	}
	var f float64
	if json.Unmarshal(m, &f) == nil {
		return int64(f)
	}
	var s string
	if json.Unmarshal(m, &s) == nil {
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return n
		}
	}
	return def
}

func coerceInt(m json.RawMessage, def int) int {
	return int(coerceInt64(m, int64(def)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DefaultWords returns the bootstrap set used when no persisted word list
// exists and no bundled seed can be copied.
func DefaultWords() []WordRecord {
	return []WordRecord{
		{SourceText: "ev", Translations: []string{"дом"}},
		{SourceText: "gitmek", Translations: []string{"идти", "ехать", "уезжать"}},
		{SourceText: "güzel", Translations: []string{"красивый", "хороший", "приятный"}},
		{SourceText: "almak", Translations: []string{"брать", "покупать", "получать"}},
		{SourceText: "zaman", Translations: []string{"время", "период"}},
	}
}

// MergeNew appends records whose source text is not already in the
// collection, comparing case-insensitively with Turkish casing rules.
// It returns the merged collection and the number of records added.
func MergeNew(existing, additions []WordRecord) ([]WordRecord, int) {
	seen := make(map[string]bool, len(existing))
	for _, w := range existing {
		seen[mergeKey(w.SourceText)] = true
	}
	added := 0
	for _, w := range additions {
		key := mergeKey(w.SourceText)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		existing = append(existing, w)
		added++
	}
	return existing, added
}

func mergeKey(sourceText string) string {
	return strings.ToLowerSpecial(unicode.TurkishCase, strings.TrimSpace(sourceText))
}
