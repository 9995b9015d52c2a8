// Package testutil holds HTTP helpers and in-memory repositories shared by
// handler and pipeline tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"bookcatalog/internal/auth"

	"github.com/golang-jwt/jwt/v5"
)

const TestSecret = "test-secret"

// GenerateTestToken signs a token valid for an hour. It panics on failure
// since every caller is a test that cannot proceed without it.
func GenerateTestToken(secret, subject, role string) string {
	token, _, err := auth.GenerateToken(secret, subject, role, time.Hour)
	if err != nil {
		panic(err)
	}
	return token
}

// GenerateExpiredToken signs a token whose expiry is an hour in the past.
func GenerateExpiredToken(secret, subject, role string) string {
	now := time.Now()
	claims := auth.Claims{
		Sub:  subject,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return token
}

// NewRequest builds a request whose body is body encoded as JSON. A nil body
// sends no payload and no Content-Type.
func NewRequest(method, path string, body any) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	r := httptest.NewRequest(method, path, bytes.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func NewRequestWithAuth(method, path string, body any, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// RecordResponse is a decoded JSON envelope.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	res := w.Result()
	defer res.Body.Close()

	rec := RecordResponse{Code: res.StatusCode, Header: res.Header}
	if raw, _ := io.ReadAll(res.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &rec.Body)
	}
	return rec
}

// Serve runs r through h and decodes the response.
func Serve(h http.Handler, r *http.Request) RecordResponse {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return RecordHTTPResponse(w)
}

// Data returns the "data" member of an envelope as an object, or nil.
func (r RecordResponse) Data() map[string]any {
	m, _ := r.Body["data"].(map[string]any)
	return m
}

// Items returns the "data" member of a list envelope.
func (r RecordResponse) Items() []any {
	items, _ := r.Body["data"].([]any)
	return items
}

func (r RecordResponse) Meta() map[string]any {
	m, _ := r.Body["meta"].(map[string]any)
	return m
}

// ErrorCode returns error.code of an error envelope.
func (r RecordResponse) ErrorCode() string {
	e, _ := r.Body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}
