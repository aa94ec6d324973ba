// Package study implements the card scheduling engine: eligibility,
// candidate pool construction, weighted selection, and the stage/streak
// state machine driven by answer feedback.
package study

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/avodyanin-ux/turkish-cards/pkg/words"
)

const daySeconds = 24 * 60 * 60

// Config holds the tuning parameters of the engine. Zero-value fields are
// filled with defaults by NewEngine; see field comments.
type Config struct {
	MaxStage            int         // zero → words.MaxStage
	PoolSize            int         // zero → 40
	MinVerbShare        float64     // zero → 0.35
	StreakToGraduate    int         // zero → 3
	CooldownDays        map[int]int // nil → {1:1, 2:2, 3:4, 4:7, 5:14, 6:30}
	DefaultCooldownDays int         // zero → 2, used for stages absent from CooldownDays
}

func (c Config) withDefaults() Config {
	if c.MaxStage == 0 {
		c.MaxStage = words.MaxStage
	}
	if c.PoolSize == 0 {
		c.PoolSize = 40
	}
	if c.MinVerbShare == 0 {
		c.MinVerbShare = 0.35
	}
	if c.StreakToGraduate == 0 {
		c.StreakToGraduate = 3
	}
	if c.CooldownDays == nil {
		c.CooldownDays = map[int]int{1: 1, 2: 2, 3: 4, 4: 7, 5: 14, 6: 30}
	}
	if c.DefaultCooldownDays == 0 {
		c.DefaultCooldownDays = 2
	}
	return c
}

func (c Config) validate() error {
	if c.MaxStage < 1 {
		return fmt.Errorf("study: max stage %d must be positive", c.MaxStage)
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("study: pool size %d must be positive", c.PoolSize)
	}
	if c.MinVerbShare < 0 || c.MinVerbShare > 1 {
		return fmt.Errorf("study: verb share %f out of range [0, 1]", c.MinVerbShare)
	}
	if c.StreakToGraduate < 1 {
		return fmt.Errorf("study: graduation streak %d must be positive", c.StreakToGraduate)
	}
	return nil
}

// WordStore supplies and persists the word collection.
type WordStore interface {
	Load() []words.WordRecord
	Save([]words.WordRecord) error
}

// ReviewSink receives a notification for every answered card. Sink errors
// never interrupt a study session.
type ReviewSink interface {
	RecordReview(word string, known bool, stage int) error
}

// Card is one presentation of a word: Front is shown first, Back revealed on
// request. Direction is chosen at random per draw.
type Card struct {
	Front string
	Back  string
}

// Stats summarizes the collection.
type Stats struct {
	Learned   int // stage reached MaxStage
	Cooldown  int // not learned, due in the future
	Total     int
	Remaining int // Total minus Learned
}

// Engine owns the word collection and drives card selection and answer
// feedback. It is not safe for concurrent use; all operations run on one
// goroutine. The current word is tracked as an index into the owned slice so
// it cannot dangle across mutations.
type Engine struct {
	// Sink, when non-nil, is told about every answer. Logger, when non-nil,
	// records swallowed persistence and sink failures.
	Sink   ReviewSink
	Logger *zap.Logger

	cfg     Config
	store   WordStore
	words   []words.WordRecord
	pool    []int
	current int // index into words, -1 when no card is up
	now     func() int64
	rng     *rand.Rand
}

// NewEngine loads the word collection from the store and returns an engine
// ready to deal cards. Zero-value config fields are filled with defaults;
// invalid values return an error.
func NewEngine(store WordStore, cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:     cfg,
		store:   store,
		words:   store.Load(),
		current: -1,
		now:     func() int64 { return time.Now().Unix() },
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// available reports whether the word can be drawn: not yet learned and past
// its due timestamp.
func (e *Engine) available(w words.WordRecord, now int64) bool {
	return w.Due <= now && w.Stage < e.cfg.MaxStage
}

// NextCard rebuilds the candidate pool, draws one word, and returns its
// presentation. A positive again-penalty decays by one on the draw and the
// decayed state is persisted immediately. Returns false when no word is
// available.
func (e *Engine) NextCard() (Card, bool) {
	e.refreshPool()
	e.current = e.pickFromPool()
	if e.current < 0 {
		return Card{}, false
	}

	w := &e.words[e.current]
	if w.AgainPenalty > 0 {
		w.AgainPenalty--
		e.persist()
	}

	front, back := w.SourceText, strings.Join(w.Translations, ", ")
	if e.rng.Intn(2) == 1 {
		front, back = back, front
	}
	return Card{Front: front, Back: back}, true
}

// AnswerKnow records a correct answer for the current word. Reaching the
// graduation streak promotes the word one stage and starts its cooldown;
// below the streak the word stays immediately eligible for reinforcement.
func (e *Engine) AnswerKnow() {
	if e.current < 0 {
		return
	}
	w := &e.words[e.current]

	w.CorrectCount++
	w.Streak++
	if w.Streak >= e.cfg.StreakToGraduate {
		w.Streak = 0
		w.Stage = min(e.cfg.MaxStage, w.Stage+1)
		if w.Stage < e.cfg.MaxStage {
			w.Due = e.now() + int64(e.cooldownDays(w.Stage))*daySeconds
		} else {
			// Graduated; no cooldown needed since the word is no longer drawn.
			w.Due = 0
		}
	} else {
		w.Due = 0
	}

	e.persist()
	e.record(w.SourceText, true, w.Stage)
}

// AnswerDontKnow records a wrong answer for the current word: the streak
// resets, the word demotes one stage (floor 0), comes due immediately, and
// its again-penalty grows by two, capped at ten.
func (e *Engine) AnswerDontKnow() {
	if e.current < 0 {
		return
	}
	w := &e.words[e.current]

	w.Streak = 0
	w.Due = 0
	if w.Stage > 0 {
		w.Stage--
	}
	w.AgainPenalty = min(10, w.AgainPenalty+2)

	e.persist()
	e.record(w.SourceText, false, w.Stage)
}

// Stats counts learned, cooling-down, total, and remaining words. Pure read.
func (e *Engine) Stats() Stats {
	now := e.now()
	s := Stats{Total: len(e.words)}
	for _, w := range e.words {
		if w.Stage >= e.cfg.MaxStage {
			s.Learned++
		} else if w.Due > now {
			s.Cooldown++
		}
	}
	s.Remaining = max(0, s.Total-s.Learned)
	return s
}

// NextDue returns the earliest due timestamp among cooling-down words, for
// the presentation layer's "nothing due yet" message. Returns false when no
// word is on cooldown.
func (e *Engine) NextDue() (int64, bool) {
	now := e.now()
	var next int64
	found := false
	for _, w := range e.words {
		if w.Stage < e.cfg.MaxStage && w.Due > now {
			if !found || w.Due < next {
				next = w.Due
				found = true
			}
		}
	}
	return next, found
}

func (e *Engine) cooldownDays(stage int) int {
	if d, ok := e.cfg.CooldownDays[stage]; ok {
		return d
	}
	return e.cfg.DefaultCooldownDays
}

// persist saves the full collection after a mutation. A failed save is
// logged and ignored: the in-memory state stays authoritative for the
// session and at most one answer's effect is lost on a crash.
func (e *Engine) persist() {
	if err := e.store.Save(e.words); err != nil && e.Logger != nil {
		e.Logger.Warn("saving words failed", zap.Error(err))
	}
}

func (e *Engine) record(word string, known bool, stage int) {
	if e.Sink == nil {
		return
	}
	if err := e.Sink.RecordReview(word, known, stage); err != nil && e.Logger != nil {
		e.Logger.Warn("recording review failed", zap.String("word", word), zap.Error(err))
	}
}
