package scores

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SQLSink stores records in an exam_scores table (sqlite, postgres or mysql;
// schema managed by internal/db).
type SQLSink struct {
	db     *sql.DB
	driver string
}

func NewSQLSink(db *sql.DB, driver string) *SQLSink {
	return &SQLSink{db: db, driver: driver}
}

// rebind rewrites $N placeholders to ? for drivers that want them.
func (s *SQLSink) rebind(q string) string {
	if s.driver != "mysql" {
		return q
	}
	for i := 9; i >= 1; i-- {
		q = strings.ReplaceAll(q, fmt.Sprintf("$%d", i), "?")
	}
	return q
}

func (s *SQLSink) Insert(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
INSERT INTO exam_scores (id, name, candidate_id, score, submitted_at)
VALUES ($1, $2, $3, $4, $5)`),
		uuid.NewString(), rec.Name, rec.CandidateID, rec.Score, rec.SubmittedAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (s *SQLSink) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, candidate_id, score, submitted_at
FROM exam_scores
ORDER BY submitted_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var at int64
		if err := rows.Scan(&r.Name, &r.CandidateID, &r.Score, &at); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		r.SubmittedAt = time.Unix(at, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
