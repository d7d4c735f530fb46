// Package instagram publishes images and reels to an Instagram Business or
// Creator account through the Graph API container flow: create a media
// container, poll until processing finishes, then publish it.
package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/social-post/internal/graph"
	"github.com/donaldgifford/social-post/internal/metrics"
	"github.com/donaldgifford/social-post/pkg/logger"
)

const platform = "instagram"

// Terminal container status codes. Anything else is still processing.
const (
	StatusFinished = "FINISHED"
	StatusError    = "ERROR"
)

var (
	// ErrProcessingFailed is returned when the container reports ERROR.
	ErrProcessingFailed = errors.New("media processing failed")

	// ErrPollExhausted is returned when the container is still not FINISHED
	// after the last poll. Nothing is published.
	ErrPollExhausted = errors.New("media container not ready")
)

// PollExhaustedError reports which container kind ran out of poll budget.
// It matches ErrPollExhausted under errors.Is.
type PollExhaustedError struct {
	Kind       Kind
	Attempts   int
	LastStatus string
}

func (e *PollExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d polls (last status %q)", ErrPollExhausted, e.Attempts, e.LastStatus)
}

func (e *PollExhaustedError) Unwrap() error { return ErrPollExhausted }

// Kind selects the container type.
type Kind string

// Media kinds.
const (
	KindImage Kind = "image"
	KindReel  Kind = "reel"
)

// PollPolicy bounds the status poll loop.
type PollPolicy struct {
	Interval    time.Duration
	MaxAttempts int
}

// Default poll budgets.
var (
	ImagePolicy = PollPolicy{Interval: 2 * time.Second, MaxAttempts: 30}
	ReelPolicy  = PollPolicy{Interval: 3 * time.Second, MaxAttempts: 60}
)

// PublishResult carries the container and the published media IDs.
type PublishResult struct {
	ContainerID string          `json:"containerId"`
	MediaID     string          `json:"mediaId"`
	Raw         json.RawMessage `json:"raw"`
}

type statusResponse struct {
	StatusCode string `json:"status_code"`
}

// Publisher runs the container pipeline for one Instagram user.
type Publisher struct {
	graph  *graph.Client
	userID string
	image  PollPolicy
	reel   PollPolicy
	logger *slog.Logger
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithPollPolicies overrides the image and reel poll budgets.
func WithPollPolicies(image, reel PollPolicy) Option {
	return func(p *Publisher) {
		p.image = image
		p.reel = reel
	}
}

// WithLogger sets the progress logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger.OrDiscard(l)
	}
}

// NewPublisher creates a Publisher for userID.
func NewPublisher(g *graph.Client, userID string, opts ...Option) *Publisher {
	p := &Publisher{
		graph:  g,
		userID: userID,
		image:  ImagePolicy,
		reel:   ReelPolicy,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PublishImage publishes a publicly reachable JPEG.
func (p *Publisher) PublishImage(ctx context.Context, imageURL, caption string) (*PublishResult, error) {
	form := url.Values{
		"image_url": {imageURL},
		"caption":   {caption},
	}
	return p.publish(ctx, KindImage, form, p.image)
}

// PublishReel publishes a publicly reachable video as a reel.
func (p *Publisher) PublishReel(ctx context.Context, videoURL, caption string) (*PublishResult, error) {
	form := url.Values{
		"video_url":  {videoURL},
		"media_type": {"REELS"},
		"caption":    {caption},
	}
	return p.publish(ctx, KindReel, form, p.reel)
}

func (p *Publisher) publish(
	ctx context.Context,
	kind Kind,
	form url.Values,
	policy PollPolicy,
) (*PublishResult, error) {
	if strings.TrimSpace(form.Get("image_url")+form.Get("video_url")) == "" {
		return nil, fmt.Errorf("%s URL is required", kind)
	}

	containerID, _, err := p.graph.PostForID(ctx, p.userID+"/media", form, "create container")
	if err != nil {
		return nil, err
	}
	p.logger.Info("media container created", "kind", kind, "container_id", containerID)

	if err := p.waitReady(ctx, kind, containerID, policy); err != nil {
		return nil, err
	}

	mediaID, raw, err := p.graph.PostForID(ctx, p.userID+"/media_publish",
		url.Values{"creation_id": {containerID}}, "publish media")
	if err != nil {
		return nil, err
	}
	metrics.PublishedTotal.WithLabelValues(platform).Inc()
	p.logger.Info("media published", "media_id", mediaID)

	return &PublishResult{ContainerID: containerID, MediaID: mediaID, Raw: raw}, nil
}

// waitReady polls the container until FINISHED. The first poll is
// immediate; later polls are spaced by policy.Interval.
func (p *Publisher) waitReady(ctx context.Context, kind Kind, containerID string, policy PollPolicy) error {
	limiter := rate.NewLimiter(rate.Every(policy.Interval), 1)
	query := url.Values{"fields": {"status_code"}}

	last := ""
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting to poll container %s: %w", containerID, err)
		}
		metrics.MediaPollAttemptsTotal.WithLabelValues(string(kind)).Inc()

		body, err := p.graph.Get(ctx, containerID, query, "container status")
		if err != nil {
			return err
		}

		var st statusResponse
		if err := json.Unmarshal(body, &st); err != nil {
			return fmt.Errorf("parsing container status: %w", err)
		}
		last = st.StatusCode

		switch st.StatusCode {
		case StatusFinished:
			p.logger.Debug("container ready", "container_id", containerID, "attempt", attempt)
			return nil
		case StatusError:
			return fmt.Errorf("%w: %s", ErrProcessingFailed, body)
		default:
			p.logger.Debug("container not ready", "status", st.StatusCode, "attempt", attempt)
		}
	}

	return &PollExhaustedError{Kind: kind, Attempts: policy.MaxAttempts, LastStatus: last}
}
