// Package apierr holds the error type for non-success responses from remote
// platform APIs, plus the request helper every platform client sends through.
package apierr

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/donaldgifford/social-post/internal/metrics"
)

// StatusError reports a remote call that returned an unexpected HTTP status.
// Body is the server's raw response so it can be surfaced verbatim.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed (status %d): %s", e.Op, e.StatusCode, e.Body)
}

// Send executes req with client, records call metrics under platform/op and
// returns the response body. A status outside okCodes yields a *StatusError.
// With no okCodes, only 200 is accepted.
func Send(client *http.Client, req *http.Request, platform, op string, okCodes ...int) ([]byte, error) {
	if len(okCodes) == 0 {
		okCodes = []int{http.StatusOK}
	}

	start := time.Now()
	resp, err := client.Do(req)
	metrics.APICallDuration.WithLabelValues(platform, op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APICallsTotal.WithLabelValues(platform, op, metrics.StatusLabel(0)).Inc()
		return nil, fmt.Errorf("executing %s request: %w", op, err)
	}
	defer resp.Body.Close()

	metrics.APICallsTotal.WithLabelValues(platform, op, metrics.StatusLabel(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", op, err)
	}

	if !slices.Contains(okCodes, resp.StatusCode) {
		return nil, &StatusError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}
