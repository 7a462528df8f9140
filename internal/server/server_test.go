package server_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symeq"
	"github.com/njchilds90/symeq/internal/config"
	"github.com/njchilds90/symeq/internal/server"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 8080, MaxBodyBytes: 1 << 16}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := server.New(cfg, symeq.NewGrader(symeq.WithLogger(logger)), logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestEvaluate(t *testing.T) {
	ts := newTestServer(t)
	resp, out := post(t, ts, "/evaluate", `{"response": "(x+1)**2", "answer": "x**2 + 2*x + 1"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, out["is_correct"])
	assert.Equal(t, "1", out["level"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestEvaluate_Latex(t *testing.T) {
	ts := newTestServer(t)
	resp, out := post(t, ts, "/evaluate",
		`{"response": "\\frac{1}{2}x", "answer": "x/2", "params": {"is_latex": true}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, out["is_correct"])
}

func TestEvaluate_ParseErrors(t *testing.T) {
	ts := newTestServer(t)

	resp, out := post(t, ts, "/evaluate", `{"response": "x +", "answer": "x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "expression_parse", out["kind"])

	resp, out = post(t, ts, "/evaluate", `{"response": "|a|+|b|", "answer": "x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "ambiguous_notation", out["kind"])
	assert.Equal(t, "tooMany|InResponse", out["code"])
}

func TestEvaluate_BadRequests(t *testing.T) {
	ts := newTestServer(t)
	for name, body := range map[string]string{
		"unknown field": `{"response": "x", "answer": "x", "extra": 1}`,
		"trailing data": `{"response": "x", "answer": "x"} {}`,
		"not json":      `response=x`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, out := post(t, ts, "/evaluate", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "bad_request", out["kind"])
		})
	}
}

func TestPreview(t *testing.T) {
	ts := newTestServer(t)
	resp, out := post(t, ts, "/preview", `{"response": "x ± 1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	preview := out["preview"].(map[string]interface{})
	assert.Equal(t, `\left\{x + 1,~x - 1\right\}`, preview["latex"])
	assert.Equal(t, "x ± 1", preview["sympy"])
}

func TestSchemaAndHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/schema")
	require.NoError(t, err)
	defer resp.Body.Close()
	var schema struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&schema))
	require.Len(t, schema.Tools, 2)
	assert.Equal(t, "evaluate", schema.Tools[0].Name)

	health, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	notAllowed, err := http.Get(ts.URL + "/evaluate")
	require.NoError(t, err)
	defer notAllowed.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, notAllowed.StatusCode)
}

func TestRequestID_Propagates(t *testing.T) {
	ts := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}
