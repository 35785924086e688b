package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRunner struct {
	running bool
	jobs    int
}

func (r fakeRunner) IsRunning() bool { return r.running }
func (r fakeRunner) Len() int        { return r.jobs }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		runner fakeRunner
		code   int
		body   string
	}{
		{name: "running", runner: fakeRunner{running: true, jobs: 11}, code: http.StatusOK, body: `{"status":"ok","jobs":11}`},
		{name: "stopped", runner: fakeRunner{jobs: 11}, code: http.StatusServiceUnavailable, body: `{"status":"stopped","jobs":11}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			newHealthHandler(tt.runner).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.code, recorder.Code)
			assert.JSONEq(t, tt.body, recorder.Body.String())
		})
	}
}
