// Package instagramtest provides an in-memory Instagram web API and a
// ScrapFly front for it, for tests that exercise the real clients.
package instagramtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"igfollowers/pkg/instagram"
)

// Server simulates the profile, followers and timeline endpoints
type Server struct {
	server *httptest.Server
	mux    *http.ServeMux

	mu             sync.RWMutex
	profiles       map[string]instagram.ProfileUser
	followers      map[string][]instagram.FollowerUser
	posts          map[string][]instagram.MediaNode
	failures       map[string]int
	requireSession bool
	requests       map[string]int
}

// NewServer starts an empty fake Instagram
func NewServer() *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		profiles:  make(map[string]instagram.ProfileUser),
		followers: make(map[string][]instagram.FollowerUser),
		posts:     make(map[string][]instagram.MediaNode),
		failures:  make(map[string]int),
		requests:  make(map[string]int),
	}

	s.mux.HandleFunc(instagram.ProfileEndpoint, s.handleProfile)
	s.mux.HandleFunc("/api/v1/friendships/", s.handleFollowers)
	s.mux.HandleFunc(instagram.MediaEndpoint, s.handleMedia)

	s.server = httptest.NewServer(s.mux)
	return s
}

// URL is the base URL to configure the client with
func (s *Server) URL() string { return s.server.URL }

func (s *Server) Close() { s.server.Close() }

// AddProfile registers a profile under its username
func (s *Server) AddProfile(p instagram.ProfileUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.Username] = p
}

// AddFollowers appends followers to userID's list
func (s *Server) AddFollowers(userID string, users ...instagram.FollowerUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followers[userID] = append(s.followers[userID], users...)
}

// AddPosts appends posts to userID's timeline
func (s *Server) AddPosts(userID string, nodes ...instagram.MediaNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[userID] = append(s.posts[userID], nodes...)
}

// FailWith makes requests for key (a username for the profile endpoint, a
// user id otherwise) on endpoint answer with status
func (s *Server) FailWith(endpoint, key string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[endpoint+key] = status
}

// RequireSession puts the followers endpoint behind a login wall unless a
// sessionid cookie is sent
func (s *Server) RequireSession(required bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requireSession = required
}

// Requests returns how many requests endpoint served
func (s *Server) Requests(endpoint string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests[endpoint]
}

// hit counts the request and reports a configured failure status
func (s *Server) hit(endpoint, key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[endpoint]++
	return s.failures[endpoint+key]
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if status := s.hit(instagram.ProfileEndpoint, username); status != 0 {
		writeFailure(w, status)
		return
	}

	s.mu.RLock()
	profile, ok := s.profiles[username]
	s.mu.RUnlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"message": "User not found",
			"status":  "fail",
		})
		return
	}

	var resp instagram.ProfileResponse
	resp.Data.User = &profile
	resp.Status = "ok"
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFollowers(w http.ResponseWriter, r *http.Request) {
	// /api/v1/friendships/{id}/followers/
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 5 || parts[4] != "followers" {
		http.NotFound(w, r)
		return
	}
	userID := parts[3]

	if status := s.hit(instagram.FollowersEndpoint, userID); status != 0 {
		writeFailure(w, status)
		return
	}

	s.mu.RLock()
	wall := s.requireSession
	all := s.followers[userID]
	s.mu.RUnlock()

	if wall {
		if c, err := r.Cookie("sessionid"); err != nil || c.Value == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"message":       "login_required",
				"require_login": true,
				"status":        "fail",
			})
			return
		}
	}

	q := r.URL.Query()
	count, _ := strconv.Atoi(q.Get("count"))
	offset, _ := strconv.Atoi(q.Get("max_id"))
	page, next := window(len(all), offset, count)

	resp := instagram.FollowersPage{
		Users:   append([]instagram.FollowerUser{}, all[page.start:page.end]...),
		BigList: next != "",
		Status:  "ok",
	}
	resp.NextMaxID = next
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("query_hash") != instagram.MediaQueryHash {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"status": "fail", "message": "bad query hash"})
		return
	}

	var vars struct {
		ID    string `json:"id"`
		First int    `json:"first"`
		After string `json:"after"`
	}
	if err := json.Unmarshal([]byte(q.Get("variables")), &vars); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"status": "fail", "message": "bad variables"})
		return
	}

	if status := s.hit(instagram.MediaEndpoint, vars.ID); status != 0 {
		writeFailure(w, status)
		return
	}

	s.mu.RLock()
	all := s.posts[vars.ID]
	s.mu.RUnlock()

	offset, _ := strconv.Atoi(vars.After)
	page, next := window(len(all), offset, vars.First)

	media := instagram.TimelineMedia{
		Count:    len(all),
		PageInfo: instagram.PageInfo{HasNextPage: next != "", EndCursor: next},
	}
	for _, n := range all[page.start:page.end] {
		media.Edges = append(media.Edges, instagram.MediaEdge{Node: n})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"user": map[string]interface{}{"edge_owner_to_timeline_media": media},
		},
		"status": "ok",
	})
}

type span struct{ start, end int }

// window slices total items from offset, returning the next cursor or ""
func window(total, offset, size int) (span, string) {
	if size <= 0 {
		size = total
	}
	if offset < 0 || offset > total {
		offset = total
	}
	end := offset + size
	if end >= total {
		return span{offset, total}, ""
	}
	return span{offset, end}, strconv.Itoa(end)
}

func writeFailure(w http.ResponseWriter, status int) {
	writeJSON(w, status, map[string]interface{}{
		"message": http.StatusText(status),
		"status":  "fail",
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ScrapFly fronts an Instagram Server the way the scrape API does: the
// target URL is fetched on the server side and wrapped in a result object
type ScrapFly struct {
	server *httptest.Server
	target *Server
	key    string

	mu   sync.Mutex
	last url.Values
}

// NewScrapFly starts a fake scrape API accepting key
func NewScrapFly(target *Server, key string) *ScrapFly {
	sf := &ScrapFly{target: target, key: key}
	sf.server = httptest.NewServer(http.HandlerFunc(sf.handleScrape))
	return sf
}

func (sf *ScrapFly) URL() string { return sf.server.URL }

func (sf *ScrapFly) Close() { sf.server.Close() }

// LastQuery returns the query parameters of the most recent scrape
func (sf *ScrapFly) LastQuery() url.Values {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.last
}

func (sf *ScrapFly) handleScrape(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sf.mu.Lock()
	sf.last = q
	sf.mu.Unlock()

	if r.URL.Path != "/scrape" {
		http.NotFound(w, r)
		return
	}
	if q.Get("key") != sf.key {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"message":   "Invalid API key",
			"code":      "ERR::SCRAPE::UNAUTHORIZED",
			"http_code": http.StatusUnauthorized,
		})
		return
	}

	target, err := url.Parse(q.Get("url"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": "invalid url", "http_code": 400})
		return
	}

	req := httptest.NewRequest(http.MethodGet, target.RequestURI(), nil)
	rec := httptest.NewRecorder()
	sf.target.mux.ServeHTTP(rec, req)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"result": map[string]interface{}{
			"status_code": rec.Code,
			"content":     rec.Body.String(),
			"success":     rec.Code < 400,
			"url":         target.String(),
		},
	})
}
