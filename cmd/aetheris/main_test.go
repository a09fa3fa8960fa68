package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aetheris-dev/aetheris/config"
)

// result is the captured outcome of one command invocation.
type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command against baseURL with a config file in dir.
func execute(t *testing.T, dir, baseURL string, args ...string) result {
	t.Helper()
	cmd := newRootCmd(func(key string) string {
		if key == config.BaseURLEnv {
			return baseURL
		}
		return ""
	})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.yaml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// envelope writes data wrapped in the success envelope.
func envelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"code":      0,
		"message":   "success",
		"data":      data,
		"timestamp": 1,
	})
	assert.NoError(t, err)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// writeSSE writes each event as one data line and flushes.
func writeSSE(w http.ResponseWriter, events ...string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)
	for _, e := range events {
		fmt.Fprintf(w, "data: %s\n\n", e)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}

// newServer starts a test server with mux mounted under /api.
func newServer(t *testing.T, mux *http.ServeMux) string {
	t.Helper()
	srv := httptest.NewServer(http.StripPrefix("/api", mux))
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}
