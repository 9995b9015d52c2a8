package httpx

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookcatalog/internal/auth"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"

	editorToken, _, err := auth.GenerateToken(secret, "ed", auth.RoleEditor, time.Hour)
	require.NoError(t, err)
	viewerToken, _, err := auth.GenerateToken(secret, "vi", auth.RoleViewer, time.Hour)
	require.NoError(t, err)
	foreignToken, _, err := auth.GenerateToken("other", "ed", auth.RoleEditor, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + foreignToken, wantStatus: http.StatusUnauthorized},
		{name: "viewer role", header: "Bearer " + viewerToken, wantStatus: http.StatusForbidden},
		{name: "editor role", header: "Bearer " + editorToken, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var subject string
			handler := AuthMiddleware(secret, auth.RoleEditor)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				subject = SubjectFrom(r)
				assert.Equal(t, auth.RoleEditor, RoleFrom(r))
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/v1/books", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "ed", subject)
			}
		})
	}
}

func TestAccessLog_CarriesRequestIDAndSubject(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	token, _, err := auth.GenerateToken("s3cret", "librarian", auth.RoleEditor, time.Hour)
	require.NoError(t, err)

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}), RequestIDMiddleware, AccessLogMiddleware, AuthMiddleware("s3cret", auth.RoleEditor))

	req := httptest.NewRequest(http.MethodPost, "/v1/books", nil)
	req.Header.Set("X-Request-Id", "req-42")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	line := buf.String()
	assert.Contains(t, line, `"request_id":"req-42"`)
	assert.Contains(t, line, `"subject":"librarian"`)
	assert.Contains(t, line, `"status":201`)
	assert.Contains(t, line, `"level":"info"`)

	buf.Reset()
	req = httptest.NewRequest(http.MethodPost, "/v1/books", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.NotContains(t, buf.String(), "subject")
}
