package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and parses the bearer tokens that re-attach a browser
// to its exam session on every request.
type TokenService struct {
	hmac []byte
	ttl  time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{hmac: []byte(secret), ttl: ttl}
}

type Claims struct {
	jwt.RegisteredClaims
}

// Issue signs a token whose subject is the session ID.
func (t *TokenService) Issue(sessionID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "examstack",
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.hmac)
}

// Parse validates a token and returns the session ID it carries.
func (t *TokenService) Parse(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return t.hmac, nil
	})
	if err != nil {
		return "", err
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	return c.Subject, nil
}

// SessionIDFromRequest extracts the session ID from a request's bearer
// token; empty when the request carries none or an invalid one.
func (t *TokenService) SessionIDFromRequest(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	id, err := t.Parse(strings.TrimPrefix(h, "Bearer "))
	if err != nil {
		return ""
	}
	return id
}

// Middleware rejects requests without a valid bearer token and puts the
// session ID into the request context.
func (t *TokenService) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "missing bearer", http.StatusUnauthorized)
			return
		}
		id, err := t.Parse(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			http.Error(w, "bad token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
	})
}
