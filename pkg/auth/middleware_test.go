package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/inventory/pkg/logger"
)

// newTestStore returns a gorilla CookieStore (no Redis required) for unit tests.
// In production the RedisStore is used; the sessions.Store interface is identical.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

func newTestGate(store sessions.Store) *Gate {
	return NewGate(NewTokenIssuer(testSecret, time.Hour, "inventory"), store, logger.Nop())
}

// requestWithSession builds an *http.Request that carries a valid session
// cookie bound to userID.
func requestWithSession(t *testing.T, store sessions.Store, userID uuid.UUID) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	if err := StartSession(store, w, r, userID); err != nil {
		t.Fatalf("start session: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func captureUser(dst *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*dst, _ = UserIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func mustNotRun(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	})
}

func assertUnauthorized(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success || body.Message == "" {
		t.Fatalf("expected failure envelope with message, got %+v", body)
	}
}

func TestRequireAuth_ValidBearer(t *testing.T) {
	gate := newTestGate(nil)
	userID := uuid.New()
	token, _, err := gate.Tokens().Issue(userID, "Ada")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var captured uuid.UUID
	r := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	gate.RequireAuth(captureUser(&captured)).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured != userID {
		t.Fatalf("expected user %v in context, got %v", userID, captured)
	}
}

func TestRequireAuth_BadBearer(t *testing.T) {
	gate := newTestGate(nil)

	r := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	r.Header.Set("Authorization", "Bearer nonsense")
	w := httptest.NewRecorder()
	gate.RequireAuth(mustNotRun(t)).ServeHTTP(w, r)

	assertUnauthorized(t, w)
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	gate := newTestGate(nil)

	r := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	gate.RequireAuth(mustNotRun(t)).ServeHTTP(w, r)

	assertUnauthorized(t, w)
}

func TestRequireAuth_BearerWinsOverSession(t *testing.T) {
	store := newTestStore()
	gate := newTestGate(store)
	sessionUser, tokenUser := uuid.New(), uuid.New()
	token, _, err := gate.Tokens().Issue(tokenUser, "Ada")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var captured uuid.UUID
	r := requestWithSession(t, store, sessionUser)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	gate.RequireAuth(captureUser(&captured)).ServeHTTP(w, r)

	if captured != tokenUser {
		t.Fatalf("expected bearer user %v, got %v", tokenUser, captured)
	}
}

func TestRequireAuth_ValidSession(t *testing.T) {
	store := newTestStore()
	gate := newTestGate(store)
	userID := uuid.New()

	var captured uuid.UUID
	r := requestWithSession(t, store, userID)
	w := httptest.NewRecorder()
	gate.RequireAuth(captureUser(&captured)).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured != userID {
		t.Fatalf("expected user %v in context, got %v", userID, captured)
	}
}

func TestRequireAuth_NoCredentials(t *testing.T) {
	gate := newTestGate(newTestStore())

	r := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	w := httptest.NewRecorder()
	gate.RequireAuth(mustNotRun(t)).ServeHTTP(w, r)

	assertUnauthorized(t, w)
}

func TestRequireAuth_SessionMissingUserID(t *testing.T) {
	store := newTestStore()
	gate := newTestGate(store)

	writeReq := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	w1 := httptest.NewRecorder()
	session, _ := store.Get(writeReq, sessionName)
	_ = session.Save(writeReq, w1)

	r := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	for _, c := range w1.Result().Cookies() {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	gate.RequireAuth(mustNotRun(t)).ServeHTTP(w, r)

	assertUnauthorized(t, w)
}

func TestRequireAuth_InvalidUserIDInSession(t *testing.T) {
	store := newTestStore()
	gate := newTestGate(store)

	writeReq := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	w1 := httptest.NewRecorder()
	session, _ := store.Get(writeReq, sessionName)
	session.Values[sessionUserIDKey] = "not-a-valid-uuid"
	_ = session.Save(writeReq, w1)

	r := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	for _, c := range w1.Result().Cookies() {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	gate.RequireAuth(mustNotRun(t)).ServeHTTP(w, r)

	assertUnauthorized(t, w)
}

func TestEndSession_ClearsCookie(t *testing.T) {
	store := newTestStore()
	gate := newTestGate(store)
	r := requestWithSession(t, store, uuid.New())

	w := httptest.NewRecorder()
	if err := EndSession(store, w, r); err != nil {
		t.Fatalf("end session: %v", err)
	}

	next := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	gate.RequireAuth(mustNotRun(t)).ServeHTTP(w2, next)

	assertUnauthorized(t, w2)
}
