package http

import (
	"log"
	"net/http"

	"github.com/examstack/examstack/internal/scores"
)

// AdminGate checks the static shared secret in X-Admin-Password. Plaintext
// equality, no rate limiting: a known weak control, kept as such.
func AdminGate(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Admin-Password") != password {
				http.Error(w, "bad password", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminScoresHandler lists all submitted records newest-first, with summary
// aggregates. A sink read failure yields an empty view and a warning, never
// a 5xx.
func AdminScoresHandler(sink scores.Sink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := sink.ListAll(r.Context())
		if err != nil {
			log.Printf("admin scores: sink read failed: %v", err)
			writeJSON(w, map[string]interface{}{
				"records": []scores.Record{},
				"summary": scores.Summary{},
				"warning": "score store unavailable: " + err.Error(),
			})
			return
		}
		writeJSON(w, map[string]interface{}{
			"records": recs,
			"summary": scores.Summarize(recs),
		})
	}
}

// AdminScoresCSVHandler serves the same records as a CSV download.
func AdminScoresCSVHandler(sink scores.Sink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := sink.ListAll(r.Context())
		if err != nil {
			log.Printf("admin scores csv: sink read failed: %v", err)
			http.Error(w, "score store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="exam_scores.csv"`)
		if err := scores.WriteCSV(w, recs); err != nil {
			log.Printf("admin scores csv: write failed: %v", err)
		}
	}
}
