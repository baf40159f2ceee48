package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Page is a canned response of a fake judge.
type Page struct {
	Status int
	Body   string
}

// JudgeServer is an httptest server serving fixed pages by path and
// counting how often each path was requested.
type JudgeServer struct {
	URL string

	mu    sync.Mutex
	hits  map[string]int
	pages map[string]Page
}

func NewJudgeServer(t testing.TB, pages map[string]Page) *JudgeServer {
	s := &JudgeServer{
		hits:  map[string]int{},
		pages: pages,
	}
	server := httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(server.Close)
	s.URL = server.URL
	return s
}

func (s *JudgeServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	page, ok := s.pages[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	status := page.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(page.Body))
}

func (s *JudgeServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}
