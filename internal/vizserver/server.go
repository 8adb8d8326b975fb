// Package vizserver serves step-by-step searches over HTTP for visualisation.
package vizserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/gridgen"
	"github.com/pdrpinto/gridastar/render"
	"github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrParamOutOfRange = errors.New("parameter out of range")
)

const (
	defaultWidth    = 40
	defaultHeight   = 24
	defaultClusters = 8
	defaultSteps    = 200
	defaultDensity  = 0.25
	defaultInterval = 50 * time.Millisecond

	maxDimension = 1000
	maxClusters  = 1000
	maxSteps     = 100000

	DefaultMaxSessions = 256
	DefaultSessionTTL  = 30 * time.Minute
)

type session struct {
	mu      sync.Mutex
	grid    *gridastar.Grid
	start   gridastar.Coordinate
	goal    gridastar.Coordinate
	stepper *gridastar.Stepper

	// lastUsed is guarded by Server.mu.
	lastUsed time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithMaxSessions bounds how many sessions are kept. Creating one more evicts the
// least recently used.
func WithMaxSessions(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithSessionTTL drops sessions idle for longer than ttl.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

func withClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// Server owns the visualisation sessions. Each session has its own grid and stepper.
type Server struct {
	router   *way.Router
	finder   *gridastar.PathFinder
	renderer render.Renderer
	logger   logrus.FieldLogger
	upgrader websocket.Upgrader

	maxSessions int
	sessionTTL  time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func New(finder *gridastar.PathFinder, renderer render.Renderer, logger logrus.FieldLogger, options ...Option) *Server {
	s := &Server{
		finder:      finder,
		renderer:    renderer,
		logger:      logger,
		maxSessions: DefaultMaxSessions,
		sessionTTL:  DefaultSessionTTL,
		now:         time.Now,
		sessions:    make(map[uuid.UUID]*session),
	}
	for _, option := range options {
		option(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("POST", "/sessions", s.handleCreate)
	s.router.HandleFunc("GET", "/sessions/:id/next", s.handleNext)
	s.router.HandleFunc("GET", "/sessions/:id/path", s.handlePath)
	s.router.HandleFunc("GET", "/sessions/:id/render", s.handleRender)
	s.router.HandleFunc("GET", "/sessions/:id/stream", s.handleStream)
	s.router.HandleFunc("DELETE", "/sessions/:id", s.handleDelete)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type sessionView struct {
	ID    string                 `json:"id"`
	W     int                    `json:"w"`
	H     int                    `json:"h"`
	Walls []gridastar.Coordinate `json:"walls"`
	Start gridastar.Coordinate   `json:"start"`
	Goal  gridastar.Coordinate   `json:"goal"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var params [4]int
	for i, p := range []struct {
		name                string
		def, floor, ceiling int
	}{
		{"w", defaultWidth, 4, maxDimension},
		{"h", defaultHeight, 4, maxDimension},
		{"clusters", defaultClusters, 0, maxClusters},
		{"steps", defaultSteps, 0, maxSteps},
	} {
		v, err := boundedParam(p.name, q.Get(p.name), p.def, p.floor, p.ceiling)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		params[i] = v
	}
	width, height := params[0], params[1]
	clusters := gridgen.Clusters{Count: params[2], Steps: params[3], Density: defaultDensity}
	if v, err := strconv.ParseFloat(q.Get("density"), 64); err == nil && v >= 0 && v <= 1 {
		clusters.Density = v
	}
	seed := time.Now().UnixNano()
	if v, err := strconv.ParseInt(q.Get("seed"), 10, 64); err == nil {
		seed = v
	}

	// random start/goal first, then walls around them
	rng := rand.New(rand.NewSource(seed))
	start := gridastar.Coordinate{X: rng.Intn(width), Y: rng.Intn(height)}
	goal := start
	for goal == start {
		goal = gridastar.Coordinate{X: rng.Intn(width), Y: rng.Intn(height)}
	}
	grid, err := gridgen.BuildClustered(height, width, clusters, rand.NewSource(rng.Int63()), start, goal)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	stepper, err := s.finder.NewStepper(grid, start, goal)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	id := uuid.New()
	s.mu.Lock()
	now := s.now()
	s.evictLocked(now)
	s.sessions[id] = &session{grid: grid, start: start, goal: goal, stepper: stepper, lastUsed: now}
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{"session": id, "w": width, "h": height, "seed": seed}).Info("session created")
	writeJSON(w, http.StatusCreated, sessionView{
		ID:    id.String(),
		W:     width,
		H:     height,
		Walls: grid.Walls(),
		Start: start,
		Goal:  goal,
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	sess.mu.Lock()
	snapshot := sess.stepper.Step()
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	result, err := s.finder.Find(r.Context(), sess.grid, sess.start, sess.goal)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	path, err := s.finder.Search(sess.grid, sess.start, sess.goal)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.renderer.Render(sess.grid, sess.start, sess.goal, path)))
}

// handleStream pushes one snapshot per interval (milliseconds) until the search is done.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	interval := defaultInterval
	if v, err := strconv.Atoi(r.URL.Query().Get("interval")); err == nil && v > 0 {
		interval = time.Duration(v) * time.Millisecond
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		sess.mu.Lock()
		snapshot := sess.stepper.Step()
		sess.mu.Unlock()

		if err := conn.WriteJSON(snapshot); err != nil {
			s.logger.WithError(err).Debug("stream closed by peer")
			return
		}
		if snapshot.Done {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "search done"))
			return
		}
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(way.Param(r.Context(), "id"))
	if err == nil {
		s.mu.Lock()
		_, ok := s.sessions[id]
		delete(s.sessions, id)
		s.mu.Unlock()
		if ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, ErrSessionNotFound)
}

func (s *Server) lookup(r *http.Request) (*session, error) {
	id, err := uuid.Parse(way.Param(r.Context(), "id"))
	if err != nil {
		return nil, ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	sess, ok := s.sessions[id]
	if !ok || now.Sub(sess.lastUsed) > s.sessionTTL {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	sess.lastUsed = now
	return sess, nil
}

// evictLocked drops idle sessions and, if the map is still full, the least recently
// used ones so that one more fits. s.mu must be held.
func (s *Server) evictLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed) > s.sessionTTL {
			delete(s.sessions, id)
			s.logger.WithField("session", id).Debug("session expired")
		}
	}
	for len(s.sessions) >= s.maxSessions {
		var (
			oldestID uuid.UUID
			oldest   *session
		)
		for id, sess := range s.sessions {
			if oldest == nil || sess.lastUsed.Before(oldest.lastUsed) {
				oldestID, oldest = id, sess
			}
		}
		delete(s.sessions, oldestID)
		s.logger.WithField("session", oldestID).Debug("session evicted")
	}
}

// boundedParam parses an optional integer query parameter. Values at or below floor
// fall back to the default; values above ceiling are rejected.
func boundedParam(name, raw string, defaultValue, floor, ceiling int) (int, error) {
	v, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) || (err == nil && v > ceiling) {
		return 0, fmt.Errorf("%w: %s=%s exceeds %d", ErrParamOutOfRange, name, raw, ceiling)
	}
	if err != nil || v <= floor {
		return defaultValue, nil
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
