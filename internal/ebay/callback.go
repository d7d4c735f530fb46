package ebay

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"sync"
	"time"
)

// ErrAuthorizationTimeout is returned when no redirect arrives in time.
var ErrAuthorizationTimeout = errors.New("authorization timed out waiting for the eBay redirect")

// CallbackError is returned when the redirect carries no authorization code.
type CallbackError struct {
	Reason string
}

func (e *CallbackError) Error() string {
	return "authorization failed: " + e.Reason
}

type callbackResult struct {
	code string
	err  error
}

// CallbackServer is a loopback HTTP listener that accepts exactly one
// OAuth redirect. The first request fulfils the result; the server then
// shuts itself down.
type CallbackServer struct {
	ln     net.Listener
	srv    *http.Server
	state  string
	once   sync.Once
	result chan callbackResult
}

// ListenForCallback binds addr and starts serving in the background. When
// state is non-empty the redirect must echo it back.
func ListenForCallback(addr, state string) (*CallbackServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening for OAuth callback on %s: %w", addr, err)
	}

	s := &CallbackServer{
		ln:     ln,
		state:  state,
		result: make(chan callbackResult, 1),
	}
	s.srv = &http.Server{
		Handler:           http.HandlerFunc(s.handle),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		_ = s.srv.Serve(ln) //nolint:errcheck // ErrServerClosed after the single request
	}()

	return s, nil
}

// Addr returns the bound address, useful when addr used port 0.
func (s *CallbackServer) Addr() string {
	return s.ln.Addr().String()
}

func (s *CallbackServer) handle(w http.ResponseWriter, r *http.Request) {
	fulfilled := false
	s.once.Do(func() {
		fulfilled = true
		res := parseCallback(r, s.state)
		s.result <- res

		w.Header().Set("Content-Type", "text/html")
		if res.err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = fmt.Fprintf(w, "<h1>Authorization failed: %s</h1>", html.EscapeString(errReason(res.err)))
		} else {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("<h1>Authorization successful!</h1><p>You can close this tab.</p>"))
		}

		go func() {
			_ = s.srv.Shutdown(context.Background()) //nolint:errcheck // best-effort stop
		}()
	})

	if !fulfilled {
		http.Error(w, "authorization already handled", http.StatusGone)
	}
}

func parseCallback(r *http.Request, state string) callbackResult {
	q := r.URL.Query()

	if state != "" && q.Get("state") != "" && q.Get("state") != state {
		return callbackResult{err: &CallbackError{Reason: "state mismatch"}}
	}

	if code := q.Get("code"); code != "" {
		return callbackResult{code: code}
	}

	reason := q.Get("error")
	if reason == "" {
		reason = "unknown"
	}
	return callbackResult{err: &CallbackError{Reason: reason}}
}

func errReason(err error) string {
	var cbErr *CallbackError
	if errors.As(err, &cbErr) {
		return cbErr.Reason
	}
	return err.Error()
}

// Wait blocks until the redirect arrives or ctx ends. A context deadline is
// reported as ErrAuthorizationTimeout.
func (s *CallbackServer) Wait(ctx context.Context) (string, error) {
	select {
	case res := <-s.result:
		return res.code, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrAuthorizationTimeout
		}
		return "", ctx.Err()
	}
}

// Close stops the listener if it is still running.
func (s *CallbackServer) Close() error {
	err := s.srv.Close()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
