package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCreatesCookie(t *testing.T) {
	var gotSID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSID = SessionIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	h := Session("session_id", 24*time.Hour, zerolog.Nop())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	require.NotEmpty(t, gotSID)
	_, err := uuid.Parse(gotSID)
	assert.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_id", cookies[0].Name)
	assert.Equal(t, gotSID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionReusesValidCookie(t *testing.T) {
	existing := uuid.New().String()

	var gotSID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSID = SessionIDFrom(r.Context())
	})

	h := Session("session_id", 24*time.Hour, zerolog.Nop())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: existing})
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(t, existing, gotSID)
	assert.Empty(t, w.Result().Cookies(), "no new cookie for a valid session")
}

func TestSessionReplacesMalformedCookie(t *testing.T) {
	var gotSID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSID = SessionIDFrom(r.Context())
	})

	h := Session("session_id", 24*time.Hour, zerolog.Nop())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "../../etc/passwd"})
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	_, err := uuid.Parse(gotSID)
	assert.NoError(t, err)
	assert.NotEqual(t, "../../etc/passwd", gotSID)
	require.Len(t, w.Result().Cookies(), 1)
}

func TestRecoveryHandlesPanic(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	h := Recovery(zerolog.Nop())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success": false, "error": "internal server error"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	})

	h := CORS(next)

	req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
