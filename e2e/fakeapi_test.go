//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type fakeEvent struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Type   string `json:"type"`
}

// FakeListing serves the listing endpoints from an in-memory event list
type FakeListing struct {
	srv *httptest.Server

	mu       sync.Mutex
	events   []fakeEvent
	requests []string
	status   int // non-zero forces every response to this code
}

// NewFakeListing starts a server holding n published events.
// Every third event is a concert.
func NewFakeListing(n int) *FakeListing {
	f := &FakeListing{}
	for i := 1; i <= n; i++ {
		typ := "WORKSHOP"
		if i%3 == 0 {
			typ = "CONCERT"
		}
		f.events = append(f.events, fakeEvent{
			ID:     int64(i),
			Title:  fmt.Sprintf("Event %02d", i),
			Status: "PUBLISHED",
			Type:   typ,
		})
	}

	r := chi.NewRouter()
	r.Get("/api/events/", f.listEvents)
	r.Get("/api/events/recommendations", f.recommendations)
	r.Get("/api/bookings/my-bookings", f.requireSession(f.listEvents))
	r.Get("/api/events/my-events", f.requireSession(f.listEvents))
	f.srv = httptest.NewServer(r)
	return f
}

// URL is the base URL to pass as -api
func (f *FakeListing) URL() string { return f.srv.URL }

// Close stops the server
func (f *FakeListing) Close() { f.srv.Close() }

// FailWith makes every following request answer with code; 0 restores normal answers
func (f *FakeListing) FailWith(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = code
}

// Requests returns the raw query strings received so far
func (f *FakeListing) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *FakeListing) record(r *http.Request) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.URL.Path+"?"+r.URL.RawQuery)
	return f.status
}

func (f *FakeListing) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			http.Error(w, `{"detail":"not authenticated"}`, http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (f *FakeListing) listEvents(w http.ResponseWriter, r *http.Request) {
	if code := f.record(r); code != 0 {
		http.Error(w, `{"detail":"unavailable"}`, code)
		return
	}

	q := r.URL.Query()
	search := strings.ToLower(q.Get("search"))
	typ := q.Get("type")

	var matched []fakeEvent
	f.mu.Lock()
	for _, e := range f.events {
		if search != "" && !strings.Contains(strings.ToLower(e.Title), search) {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		matched = append(matched, e)
	}
	f.mu.Unlock()

	skip, _ := strconv.Atoi(q.Get("skip"))
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = len(matched)
	}
	if skip > len(matched) {
		skip = len(matched)
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	writeJSON(w, matched[skip:end])
}

func (f *FakeListing) recommendations(w http.ResponseWriter, r *http.Request) {
	if code := f.record(r); code != 0 {
		http.Error(w, `{"detail":"unavailable"}`, code)
		return
	}
	f.mu.Lock()
	out := append([]fakeEvent(nil), f.events[:min(3, len(f.events))]...)
	f.mu.Unlock()
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
