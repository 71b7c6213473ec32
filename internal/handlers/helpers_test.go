package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blog/internal/utils"

	"github.com/stretchr/testify/require"
)

type httpResult struct{ *httptest.ResponseRecorder }

func newRecorder() *httptest.ResponseRecorder { return httptest.NewRecorder() }

func (r *httpResult) body() string { return r.Body.String() }

func (r *httpResult) envelope(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(r.Body.Bytes(), &out))
	return out
}

func get(path string) *http.Request { return httptest.NewRequest(http.MethodGet, path, nil) }

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonReq(t *testing.T, method, path, role string, body any) *http.Request {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		tok, err := utils.GenerateToken(jwtSecret, 5, role, time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req
}
