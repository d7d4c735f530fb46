package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
)

// server holds the little state the mocks need: issued IDs and how often
// each Instagram container has been polled.
type server struct {
	logger      *slog.Logger
	callbackURL string
	readyAfter  int

	seq atomic.Int64

	mu         sync.Mutex
	containers map[string]int
	offers     map[string]string // offer ID -> SKU
}

func newServer(logger *slog.Logger, callbackURL string, readyAfter int) *server {
	return &server{
		logger:      logger,
		callbackURL: callbackURL,
		readyAfter:  readyAfter,
		containers:  make(map[string]int),
		offers:      make(map[string]string),
	}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// eBay.
	mux.HandleFunc("GET /oauth2/authorize", s.consentHandler)
	mux.HandleFunc("POST /identity/v1/oauth2/token", s.ebayTokenHandler)
	mux.HandleFunc("PUT /sell/inventory/v1/inventory_item/{sku}", s.inventoryItemHandler)
	mux.HandleFunc("POST /sell/inventory/v1/offer", s.offerHandler)
	mux.HandleFunc("POST /sell/inventory/v1/offer/{offerId}/publish", s.publishHandler)

	// Graph API (Facebook Pages and Instagram).
	mux.HandleFunc("POST /{version}/{id}/feed", s.feedHandler)
	mux.HandleFunc("POST /{version}/{id}/media", s.containerHandler)
	mux.HandleFunc("GET /{version}/{id}", s.containerStatusHandler)
	mux.HandleFunc("POST /{version}/{id}/media_publish", s.mediaPublishHandler)

	// Reddit.
	mux.HandleFunc("POST /api/v1/access_token", s.redditTokenHandler)
	mux.HandleFunc("POST /api/submit", s.submitHandler)
	mux.HandleFunc("POST /api/comment", s.commentHandler)

	// X.
	mux.HandleFunc("POST /2/tweets", s.tweetHandler)

	return mux
}

func (s *server) nextID(prefix string) string {
	return prefix + strconv.FormatInt(s.seq.Add(1), 10)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

// graphError mirrors the Graph API error envelope.
func graphError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{"message": msg, "type": "OAuthException", "code": 100},
	})
}

func (s *server) consentHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("client_id") == "" || q.Get("response_type") != "code" {
		http.Error(w, "invalid consent request", http.StatusBadRequest)
		return
	}

	redirect := s.callbackURL + "?" + url.Values{
		"code":  {"mock-auth-code"},
		"state": {q.Get("state")},
	}.Encode()
	s.logger.Info("consent granted", "redirect", redirect)
	http.Redirect(w, r, redirect, http.StatusFound)
}

func (s *server) ebayTokenHandler(w http.ResponseWriter, r *http.Request) {
	// Validate Basic Auth header is present (don't verify creds).
	if _, _, ok := r.BasicAuth(); !ok {
		s.logger.Warn("token request missing Basic Auth header")
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":             "invalid_client",
			"error_description": "client authentication failed",
		})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := map[string]any{
		"access_token": s.nextID("mock-user-token-"),
		"expires_in":   7200,
		"token_type":   "User Access Token",
	}
	switch grant := r.PostForm.Get("grant_type"); grant {
	case "authorization_code":
		if r.PostForm.Get("code") == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
			return
		}
		resp["refresh_token"] = s.nextID("mock-refresh-")
		resp["refresh_token_expires_in"] = 47304000
	case "refresh_token":
		if r.PostForm.Get("refresh_token") == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
			return
		}
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type", "grant": grant})
		return
	}

	writeJSON(w, http.StatusOK, resp)
	s.logger.Info("issued mock user token", "grant", r.PostForm.Get("grant_type"))
}

func (s *server) inventoryItemHandler(w http.ResponseWriter, r *http.Request) {
	var item map[string]any
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []map[string]string{{"message": err.Error()}}})
		return
	}
	s.logger.Info("inventory item upserted", "sku", r.PathValue("sku"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) offerHandler(w http.ResponseWriter, r *http.Request) {
	var offer struct {
		SKU string `json:"sku"`
	}
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil || offer.SKU == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []map[string]string{{"message": "sku is required"}}})
		return
	}

	id := s.nextID("")
	s.mu.Lock()
	s.offers[id] = offer.SKU
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"offerId": id})
	s.logger.Info("offer created", "offer_id", id, "sku", offer.SKU)
}

func (s *server) publishHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("offerId")
	s.mu.Lock()
	_, ok := s.offers[id]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"errors": []map[string]string{{"message": "offer not found"}}})
		return
	}

	listingID := s.nextID("1100")
	writeJSON(w, http.StatusOK, map[string]string{"listingId": listingID})
	s.logger.Info("offer published", "offer_id", id, "listing_id", listingID)
}

func (s *server) feedHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || r.PostForm.Get("access_token") == "" {
		graphError(w, "An access token is required to request this resource.")
		return
	}
	if r.PostForm.Get("message") == "" {
		graphError(w, "(#100) The parameter message is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": r.PathValue("id") + "_" + s.nextID("")})
}

func (s *server) containerHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || r.PostForm.Get("access_token") == "" {
		graphError(w, "An access token is required to request this resource.")
		return
	}
	if r.PostForm.Get("image_url") == "" && r.PostForm.Get("video_url") == "" {
		graphError(w, "(#100) image_url or video_url is required")
		return
	}

	id := s.nextID("1790")
	s.mu.Lock()
	s.containers[id] = 0
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *server) containerStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	polls, ok := s.containers[id]
	if ok {
		polls++
		s.containers[id] = polls
	}
	s.mu.Unlock()

	if !ok {
		graphError(w, fmt.Sprintf("Unsupported get request. Object with ID '%s' does not exist", id))
		return
	}

	status := "IN_PROGRESS"
	if polls >= s.readyAfter {
		status = "FINISHED"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status_code": status, "id": id})
}

func (s *server) mediaPublishHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		graphError(w, err.Error())
		return
	}
	id := r.PostForm.Get("creation_id")

	s.mu.Lock()
	polls, ok := s.containers[id]
	s.mu.Unlock()

	if !ok || polls < s.readyAfter {
		graphError(w, "(#9007) Media ID is not available")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": s.nextID("1800")})
}

func (s *server) redditTokenHandler(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := r.BasicAuth(); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized", "error": "401"})
		return
	}
	if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "password" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": s.nextID("mock-reddit-"),
		"token_type":   "bearer",
		"expires_in":   86400,
		"scope":        "*",
	})
}

func (s *server) submitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sr, title := r.PostForm.Get("sr"), r.PostForm.Get("title")
	if sr == "" || title == "" {
		writeJSON(w, http.StatusOK, map[string]any{"json": map[string]any{
			"errors": [][]string{{"BAD_SR_NAME", "that subreddit doesn't exist", "sr"}},
		}})
		return
	}

	id := strconv.FormatInt(s.seq.Add(1), 36)
	writeJSON(w, http.StatusOK, map[string]any{"json": map[string]any{
		"errors": []any{},
		"data": map[string]string{
			"url":  "https://www.reddit.com/r/" + sr + "/comments/" + id + "/",
			"id":   id,
			"name": "t3_" + id,
		},
	}})
}

func (s *server) commentHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"json": map[string]any{
		"errors": []any{},
		"data": map[string]any{"things": []map[string]any{{
			"kind": "t1",
			"data": map[string]string{"parent_id": r.PostForm.Get("thing_id"), "body": r.PostForm.Get("text")},
		}}},
	}})
}

func (s *server) tweetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"title": "Unauthorized", "status": 401})
		return
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"title": "Invalid Request", "status": 400})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"data": map[string]string{"id": s.nextID("17"), "text": body.Text},
	})
}
