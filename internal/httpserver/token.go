// internal/httpserver/token.go
//
// Player identity for the HTTP surface.
//
// Players are anonymous: the first request without a valid token is issued
// a fresh player ID inside an HS256 JWT, returned both as a cookie and in
// the X-Player-Token header (for clients that prefer a bearer token). Every
// later request carrying the token is routed to the same player's table.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cookieName  = "pairs_token"
	tokenHeader = "X-Player-Token"
)

var errBadToken = errors.New("invalid player token")

// tokens signs and verifies player tokens.
type tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// sign issues a token for playerID.
func (t tokens) sign(playerID string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   playerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := tok.SignedString(t.secret)
	return ss, exp, err
}

// parse returns the player ID carried by a valid token.
func (t tokens) parse(s string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(s, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !tok.Valid {
		return "", errBadToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errBadToken
	}
	return claims.Subject, nil
}

// bearerOrCookie extracts a bearer token from Authorization header or the token cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// ctxPlayerKey is the context key type for the player ID.
type ctxPlayerKey struct{}

func playerFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxPlayerKey{}).(string)
	return id
}

// withPlayer resolves the caller's player ID, issuing a new identity when
// the request carries no valid token.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.tokens.parse(bearerOrCookie(r))
		if err != nil {
			id = uuid.NewString()
			tok, exp, err := s.tokens.sign(id)
			if err != nil {
				log.Error().Err(err).Msg("sign player token")
				http.Error(w, `{"error":"token_failed"}`, http.StatusInternalServerError)
				return
			}
			s.setTokenCookie(w, tok, exp)
			w.Header().Set(tokenHeader, tok)
			log.Debug().Str("player", id).Msg("issued player token")
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// setTokenCookie writes the player token cookie with appropriate security attributes.
func (s *Server) setTokenCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteNoneMode // required for cross-site use when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}
