package main

import (
	"encoding/json"
	"net/http"
)

type jobRunner interface {
	IsRunning() bool
	Len() int
}

type healthResponse struct {
	Status string `json:"status"`
	Jobs   int    `json:"jobs"`
}

func newHealthHandler(runner jobRunner) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response := healthResponse{Status: "ok", Jobs: runner.Len()}
		code := http.StatusOK
		if !runner.IsRunning() {
			response.Status = "stopped"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(response)
	})
	return mux
}
