package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Review is one logged answer.
type Review struct {
	ID         int64
	Word       string
	Known      bool
	Stage      int // stage after the answer was applied
	ReviewedAt time.Time
}

// RecordReview appends one answer to the log.
func RecordReview(db DBExecutor, word string, known bool, stage int) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return fmt.Errorf("word must be non-empty")
	}
	if stage < 0 {
		return fmt.Errorf("stage must be non-negative, got %d", stage)
	}
	_, err := db.Exec(`INSERT INTO reviews (word, known, stage) VALUES (?, ?, ?)`,
		word, known, stage)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// Counts returns the total number of logged answers and how many were known.
func Counts(db DBExecutor) (total, known int, err error) {
	err = db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(known), 0) FROM reviews`).Scan(&total, &known)
	return total, known, err
}

// WordCounts returns the total and known answer counts for one word.
func WordCounts(db DBExecutor, word string) (total, known int, err error) {
	err = db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(known), 0) FROM reviews WHERE word = ?`,
		strings.TrimSpace(word),
	).Scan(&total, &known)
	return total, known, err
}

// RecentReviews returns the newest entries, most recent first.
func RecentReviews(db DBExecutor, limit int) ([]Review, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(
		`SELECT id, word, known, stage, reviewed_at FROM reviews ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.Word, &r.Known, &r.Stage, &r.ReviewedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Sink adapts a database handle to the engine's review sink.
type Sink struct {
	DB *sql.DB
}

// RecordReview implements the study.ReviewSink contract.
func (s Sink) RecordReview(word string, known bool, stage int) error {
	return RecordReview(s.DB, word, known, stage)
}
