package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/composersite/catalog/internal/model"
	"github.com/composersite/catalog/internal/store"
	"github.com/composersite/catalog/internal/tester"
)

func newTestServer(t *testing.T, secure bool, docs ...model.Document) http.Handler {
	t.Helper()
	tester.Reset()
	s := store.NewGormStore(tester.TestDB())
	require.NoError(t, s.PutDocuments(context.Background(), docs))
	return NewServer("0", secure, s).Router()
}

func post(handler http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/verify-password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestVerifyPassword(t *testing.T) {
	locked := tester.Work("work-locked", "Crossfire", "crossfire")
	locked.PasswordOverride = "Override"
	handler := newTestServer(t, false, locked, tester.Settings("Default"))

	tests := []struct {
		name   string
		body   string
		status int
		error  string
	}{
		{"missing password", `{}`, http.StatusBadRequest, "Password is required"},
		{"wrong password", `{"password":"nope"}`, http.StatusUnauthorized, "Incorrect password"},
		{"default password", `{"password":"DEFAULT"}`, http.StatusOK, ""},
		{"override password", `{"password":"override","workId":"work-locked"}`, http.StatusOK, ""},
		{"default rejected for override", `{"password":"default","workId":"work-locked"}`, http.StatusUnauthorized, "Incorrect password"},
		{"malformed body", `{`, http.StatusInternalServerError, "An error occurred during verification"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(handler, tt.body)
			assert.Equal(t, tt.status, rec.Code)

			body := decode(t, rec)
			assert.Equal(t, tt.status == http.StatusOK, body["success"])
			if tt.error != "" {
				assert.Equal(t, tt.error, body["error"])
				assert.Empty(t, rec.Result().Cookies())
			}
		})
	}
}

func TestVerifyPassword_SetsCookie(t *testing.T) {
	handler := newTestServer(t, true, tester.Settings("Default"))

	rec := post(handler, `{"password":"default"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, AuthCookieName, cookie.Name)
	assert.Equal(t, "authenticated", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestVerifyPassword_NotConfigured(t *testing.T) {
	handler := newTestServer(t, false)

	rec := post(handler, `{"password":"anything"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Password protection is not configured", decode(t, rec)["error"])
}

func TestAuthStatus(t *testing.T) {
	handler := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/verify-password", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, false, decode(t, rec)["authenticated"])

	req = httptest.NewRequest(http.MethodGet, "/api/verify-password", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "authenticated"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, true, decode(t, rec)["authenticated"])
}

func TestCatalogRoutes(t *testing.T) {
	work := tester.Work("work-1", "Crossfire", "crossfire")
	work.IsCompleted = true
	work.CompletionDate = "2020-05-01"
	handler := newTestServer(t, false,
		work,
		tester.Review("review-1", "Loud", "<p>Crossfire</p>", "work-1"),
		&model.Recording{Base: model.Base{ID: "recording-1", Type: model.TypeRecording}, Title: "Coleccion"},
		&model.Performance{Base: model.Base{ID: "performance-1", Type: model.TypePerformance}, ProgramTitle: "Spring"},
	)

	tests := []struct {
		path   string
		status int
		check  string
	}{
		{"/api/works", http.StatusOK, `"year":"2020"`},
		{"/api/works/crossfire", http.StatusOK, `"title":"Crossfire"`},
		{"/api/works/missing", http.StatusNotFound, `"error":"Not found"`},
		{"/api/recordings", http.StatusOK, `"title":"Coleccion"`},
		{"/api/reviews", http.StatusOK, `"_ref":"work-1"`},
		{"/api/performances", http.StatusOK, `"programTitle":"Spring"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.check)
		})
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	handler := newTestServer(t, false)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/works", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func preflight(handler http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/verify-password", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_CORS(t *testing.T) {
	tester.Reset()
	s := store.NewGormStore(tester.TestDB())

	allowed := NewServer("0", false, s, "https://example.com", "*").Router()

	rec := preflight(allowed, "https://example.com")
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	rec = preflight(allowed, "https://evil.example.org")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	sameOrigin := NewServer("0", false, s).Router()
	rec = preflight(sameOrigin, "https://example.com")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_LogsUnmatchedRequests(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	handler := newTestServer(t, false)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var logged bool
	for _, entry := range hook.AllEntries() {
		if strings.Contains(entry.Message, "GET /nowhere 404") {
			logged = true
		}
	}
	assert.True(t, logged)
}
