// Package backendtest provides an in-process fake of the Street Bites
// backend for tests. Every endpoint can be held open to simulate slow
// responses, and calls are counted per endpoint.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// Endpoint names used by Calls and Hold.
const (
	Seed       = "seed"
	Chat       = "chat"
	Restaurant = "restaurant"
	Reviews    = "reviews"
)

// RestaurantRecord mirrors the backend's restaurant record.
type RestaurantRecord struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	PhotoURL    string   `json:"photo_url,omitempty"`
	Cuisine     []string `json:"cuisine"`
	Tags        []string `json:"tags"`
	Takeaway    bool     `json:"takeaway"`
	PriceLevel  int      `json:"price_level"`
	RatingAvg   float64  `json:"rating_avg"`
	RatingCount int      `json:"rating_count"`
}

// ReviewRecord mirrors the backend's review record.
type ReviewRecord struct {
	ID       int    `json:"id"`
	UserName string `json:"user_name"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

// CreatedReview is a decoded POST /api/reviews body.
type CreatedReview struct {
	UserName     string          `json:"user_name"`
	Rating       int             `json:"rating"`
	Comment      string          `json:"comment"`
	RestaurantID json.RawMessage `json:"restaurant_id"`
}

// Server is a fake backend bound to an httptest.Server.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	chatStatus   int
	chatBody     string
	seedStatus   int
	reviewStatus string
	reviews      map[string][]ReviewRecord
	created      []CreatedReview
	queries      []string
	calls        map[string]int
	holds        map[string]chan struct{}
	nextReviewID int
}

// New starts a fake backend that is closed when t finishes. By default chat
// answers `{}`, seed succeeds, and review creation answers status "ok" and
// appends the review to the restaurant's list.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		chatStatus:   http.StatusOK,
		chatBody:     `{}`,
		seedStatus:   http.StatusOK,
		reviewStatus: "ok",
		reviews:      make(map[string][]ReviewRecord),
		calls:        make(map[string]int),
		holds:        make(map[string]chan struct{}),
		nextReviewID: 1000,
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(func() {
		s.ReleaseAll()
		s.Close()
	})
	return s
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/seed", s.handleSeed).Methods(http.MethodPost)
	api.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	api.HandleFunc("/restaurants/{id}", s.handleRestaurant).Methods(http.MethodGet)
	api.HandleFunc("/reviews", s.handleCreateReview).Methods(http.MethodPost)
	return r
}

// SetChat answers every chat with answer and results.
func (s *Server) SetChat(answer string, results ...RestaurantRecord) {
	body := map[string]any{"results": results}
	if answer != "" {
		body["answer"] = answer
	}
	if results == nil {
		delete(body, "results")
	}
	b, _ := json.Marshal(body)
	s.SetChatRaw(http.StatusOK, string(b))
}

// SetChatRaw answers every chat with a fixed status and body.
func (s *Server) SetChatRaw(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatStatus, s.chatBody = status, body
}

// SetSeedStatus fixes the seed endpoint's status code.
func (s *Server) SetSeedStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seedStatus = status
}

// SetReviews replaces the reviews served for restaurant id.
func (s *Server) SetReviews(id string, reviews ...ReviewRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[id] = append([]ReviewRecord(nil), reviews...)
}

// SetReviewStatus fixes the status returned by review creation. An empty
// status omits the field. Reviews are only stored when status is "ok".
func (s *Server) SetReviewStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviewStatus = status
}

// Hold makes the next requests to endpoint block until the returned
// release func (or ReleaseAll) is called. Restaurant holds may be narrowed
// to one id with key "restaurant:<id>".
func (s *Server) Hold(key string) (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{})
	s.holds[key] = ch
	return func() {
		s.mu.Lock()
		owned := s.holds[key] == ch
		if owned {
			delete(s.holds, key)
		}
		s.mu.Unlock()
		if owned {
			close(ch)
		}
	}
}

// ReleaseAll unblocks every held request.
func (s *Server) ReleaseAll() {
	s.mu.Lock()
	holds := s.holds
	s.holds = make(map[string]chan struct{})
	s.mu.Unlock()
	for _, ch := range holds {
		close(ch)
	}
}

// Calls returns how many requests endpoint has received (including held ones).
func (s *Server) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

// Queries returns chat queries in arrival order.
func (s *Server) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// Created returns decoded review creation bodies in arrival order.
func (s *Server) Created() []CreatedReview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CreatedReview(nil), s.created...)
}

func (s *Server) enter(keys ...string) {
	s.mu.Lock()
	s.calls[keys[0]]++
	var wait []chan struct{}
	for _, k := range keys {
		if ch, ok := s.holds[k]; ok {
			wait = append(wait, ch)
		}
	}
	s.mu.Unlock()
	for _, ch := range wait {
		<-ch
	}
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	s.enter(Seed)
	s.mu.Lock()
	status := s.seedStatus
	s.mu.Unlock()
	writeJSON(w, status, map[string]string{"status": "seeded"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	s.mu.Lock()
	s.queries = append(s.queries, req.Query)
	s.mu.Unlock()

	s.enter(Chat)
	s.mu.Lock()
	status, body := s.chatStatus, s.chatBody
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (s *Server) handleRestaurant(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.enter(Restaurant, Restaurant+":"+id)
	s.mu.Lock()
	reviews, ok := s.reviews[id]
	reviews = append([]ReviewRecord(nil), reviews...)
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "reviews": reviews})
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreatedReview
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	s.enter(Reviews)

	s.mu.Lock()
	s.created = append(s.created, req)
	status := s.reviewStatus
	if status == "ok" {
		id := unquote(req.RestaurantID)
		s.nextReviewID++
		s.reviews[id] = append(s.reviews[id], ReviewRecord{
			ID: s.nextReviewID, UserName: req.UserName, Rating: req.Rating, Comment: req.Comment,
		})
	}
	s.mu.Unlock()

	if status == "" {
		writeJSON(w, http.StatusOK, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func unquote(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
