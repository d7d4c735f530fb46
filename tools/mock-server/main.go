// Package main implements a mock server for local development. It stands in
// for the eBay, Graph, Reddit and X APIs so every social-post binary can run
// end to end without real credentials: point each base URL in the settings
// file at this server.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/donaldgifford/social-post/pkg/logger"
)

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	callback := flag.String("callback", "http://localhost:8888/callback", "where the mock consent page redirects")
	polls := flag.Int("ig-polls", 2, "container status polls before an Instagram container is FINISHED")
	flag.Parse()

	log := logger.NewWithWriter(os.Stdout, "debug", "text")

	s := newServer(log, *callback, *polls)

	addr := fmt.Sprintf(":%d", *port)
	log.Info("starting mock API server", "addr", addr, "callback", *callback)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(log, s.routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}
