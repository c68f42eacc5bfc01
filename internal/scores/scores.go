package scores

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// Record is one submitted exam score, the row shape of the result sink.
type Record struct {
	Name        string    `json:"name"`
	CandidateID string    `json:"id"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"datetime"`
}

// Sink is the remote append-only score store. Insert is best-effort on
// submission; ListAll backs the admin view.
type Sink interface {
	Insert(ctx context.Context, rec Record) error
	ListAll(ctx context.Context) ([]Record, error)
}

// Summary aggregates all records for the admin panel.
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Max   int     `json:"max"`
	Min   int     `json:"min"`
}

// Summarize computes count/mean/max/min over the records.
func Summarize(recs []Record) Summary {
	s := Summary{Count: len(recs)}
	if len(recs) == 0 {
		return s
	}
	sum := 0
	s.Max = recs[0].Score
	s.Min = recs[0].Score
	for _, r := range recs {
		sum += r.Score
		if r.Score > s.Max {
			s.Max = r.Score
		}
		if r.Score < s.Min {
			s.Min = r.Score
		}
	}
	s.Mean = float64(sum) / float64(len(recs))
	return s
}

// WriteCSV writes the records as CSV with a header row.
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "id", "score", "datetime"}); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{r.Name, r.CandidateID, strconv.Itoa(r.Score), r.SubmittedAt.Format(time.RFC3339)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
