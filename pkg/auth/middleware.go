package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/inventory/pkg/httpx"
	"github.com/ghuser/inventory/pkg/logger"
)

// Gate resolves the acting user of a request. The Authorization bearer token
// is authoritative; the cookie session is consulted only when no
// Authorization header is present and a store is configured.
type Gate struct {
	tokens *TokenIssuer
	store  sessions.Store
	log    logger.Logger
}

// NewGate returns a Gate. store may be nil to disable the cookie fallback.
func NewGate(tokens *TokenIssuer, store sessions.Store, log logger.Logger) *Gate {
	return &Gate{tokens: tokens, store: store, log: log}
}

// Tokens returns the issuer used to sign login credentials.
func (g *Gate) Tokens() *TokenIssuer {
	return g.tokens
}

// Store returns the cookie session store, or nil.
func (g *Gate) Store() sessions.Store {
	return g.store
}

// RequireAuth is a chi middleware that rejects unauthenticated requests with
// 401 and injects the user ID into the context for everything downstream.
// After it, handlers can safely call auth.UserIDFromCtx(r.Context()).
func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := g.resolve(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func (g *Gate) resolve(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	header := r.Header.Get("Authorization")
	if header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			g.log.WarnContext(r.Context(), "malformed authorization header")
			httpx.Fail(w, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return uuid.Nil, false
		}
		userID, err := g.tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			g.log.WarnContext(r.Context(), "bearer token rejected", "error", err)
			httpx.Fail(w, http.StatusUnauthorized, "Not authorized, token failed")
			return uuid.Nil, false
		}
		return userID, true
	}

	if g.store != nil {
		userID, err := sessionUserID(g.store, r)
		if err == nil {
			return userID, true
		}
		g.log.DebugContext(r.Context(), "no usable session", "error", err)
	}

	httpx.Fail(w, http.StatusUnauthorized, "Not authorized, no token")
	return uuid.Nil, false
}
