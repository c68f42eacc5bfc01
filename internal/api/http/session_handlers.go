package http

import (
	"encoding/json"
	"net/http"

	"github.com/examstack/examstack/internal/auth"
	"github.com/examstack/examstack/internal/session"
)

// CreateSessionHandler starts an attempt for a candidate. A request bearing a
// token for a still-live session gets that session back unchanged: candidate
// identity is immutable once set.
func CreateSessionHandler(mgr *session.Manager, tokens *auth.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id := tokens.SessionIDFromRequest(r); id != "" {
			if s, err := mgr.Get(id); err == nil {
				tok, err := tokens.Issue(s.ID)
				if err != nil {
					http.Error(w, "issue token", 500)
					return
				}
				writeJSON(w, map[string]interface{}{"token": tok, "session": newSessionView(s)})
				return
			}
		}

		var c session.Candidate
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		s, err := mgr.Create(c)
		if err != nil {
			writeErr(w, err)
			return
		}
		tok, err := tokens.Issue(s.ID)
		if err != nil {
			http.Error(w, "issue token", 500)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]interface{}{"token": tok, "session": newSessionView(s)})
	}
}

func GetSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := mgr.Get(auth.SessionIDFromContext(r.Context()))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, newSessionView(s))
	}
}

func DeleteSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mgr.Delete(auth.SessionIDFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}
}
