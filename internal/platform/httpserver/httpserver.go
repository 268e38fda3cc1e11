package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with defaults sized for push delivery: envelopes
// are small, so slow headers or bodies indicate a stuck client.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
