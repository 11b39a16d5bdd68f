// Package http serves a deck over a REST surface so remote clients can
// open sessions, navigate, and edit with undo.
package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tiberius-s/fireside"
	"github.com/tiberius-s/fireside/pkg/command"
	"github.com/tiberius-s/fireside/pkg/domain"
	"github.com/tiberius-s/fireside/pkg/ports"
	"github.com/tiberius-s/fireside/pkg/traversal"
)

// Server owns the deck source and a set of live sessions. Each session
// gets its own graph, parsed fresh from the deck bytes, so edits in one
// session never leak into another.
type Server struct {
	deck      []byte
	logger    *slog.Logger
	bookmarks ports.BookmarkStore

	mu       sync.Mutex
	sessions map[string]*sessionEntry

	metrics *metrics
}

type sessionEntry struct {
	mu      sync.Mutex
	session *fireside.Session
}

type metrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	nodeVisits      *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "fireside_http_request_duration_seconds",
				Help: "Duration of HTTP requests",
			},
			[]string{"method", "route"},
		),
		nodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fireside_node_visits_total",
				Help: "Total number of node visits",
			},
			[]string{"node_id"},
		),
	}
	m.registry.MustRegister(m.requestDuration, m.nodeVisits)
	return m
}

// NewServer creates a server for the given deck document.
func NewServer(deck []byte, logger *slog.Logger, bookmarks ports.BookmarkStore) *Server {
	return &Server{
		deck:      deck,
		logger:    logger,
		bookmarks: bookmarks,
		sessions:  make(map[string]*sessionEntry),
		metrics:   newMetrics(),
	}
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/advance", s.withSession(s.postAdvance))
			r.Post("/back", s.withSession(s.postBack))
			r.Post("/choose", s.withSession(s.postChoose))
			r.Post("/jump", s.withSession(s.postJump))
			r.Post("/commands", s.withSession(s.postCommand))
			r.Post("/undo", s.withSession(s.postUndo))
			r.Post("/redo", s.withSession(s.postRedo))
			r.Get("/diagnostics", s.withSession(s.getDiagnostics))
			r.Get("/deck", s.withSession(s.getDeck))
			r.Post("/bookmark", s.withSession(s.postBookmark))
		})
	})

	return r
}

// observe records request durations against the matched chi route
// pattern rather than the raw path, keeping label cardinality bounded.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// -- Wire types --

// SessionResponse describes a session's traversal state.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Position  int       `json:"position"`
	Node      *NodeView `json:"node,omitempty"`
	CanUndo   bool      `json:"can_undo"`
	CanRedo   bool      `json:"can_redo"`
}

// NodeView is the read shape of a node.
type NodeView struct {
	Position     int          `json:"position"`
	ID           string       `json:"id,omitempty"`
	BlockKinds   []string     `json:"block_kinds"`
	SpeakerNotes string       `json:"speaker_notes,omitempty"`
	Prompt       string       `json:"prompt,omitempty"`
	Options      []OptionView `json:"options,omitempty"`
}

// OptionView is one branch option.
type OptionView struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Target string `json:"target"`
}

// MoveResponse reports the outcome of a navigation request.
type MoveResponse struct {
	Moved bool      `json:"moved"`
	From  int       `json:"from"`
	To    int       `json:"to"`
	Node  *NodeView `json:"node,omitempty"`
}

// CreateSessionRequest optionally resumes a bookmarked session.
type CreateSessionRequest struct {
	Resume string `json:"resume,omitempty"`
}

// ChooseRequest selects a branch option.
type ChooseRequest struct {
	Key string `json:"key"`
}

// JumpRequest targets an arbitrary position.
type JumpRequest struct {
	Position int `json:"position"`
}

// NodeRefDoc addresses a node by id or position in a command request.
type NodeRefDoc struct {
	ID       string `json:"id,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// CommandRequest is the wire form of an edit command. Name selects the
// command; the remaining fields are read per command.
type CommandRequest struct {
	Name   string     `json:"name"`
	Ref    NodeRefDoc `json:"ref"`
	To     int        `json:"to,omitempty"`
	Target string     `json:"target,omitempty"`
	Prompt string     `json:"prompt,omitempty"`
	At     int        `json:"at,omitempty"`
	Key    string     `json:"key,omitempty"`
	Label  string     `json:"label,omitempty"`
}

// -- Handlers --

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "fireside-http",
		"version": fireside.Version,
	})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if r.Body != nil {
		// An empty body means a fresh session.
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	id := uuid.NewString()
	sess, err := fireside.Load(s.deck,
		fireside.WithLogger(s.logger),
		fireside.WithLifecycleHooks(domain.LifecycleHooks{
			OnNodeEnter: func(e *domain.NodeEvent) {
				s.metrics.nodeVisits.WithLabelValues(e.NodeID).Inc()
			},
		}),
	)
	if err != nil {
		http.Error(w, fmt.Sprintf("Deck error: %v", err), http.StatusInternalServerError)
		return
	}

	if body.Resume != "" {
		if s.bookmarks == nil {
			http.Error(w, "Bookmarks not configured", http.StatusBadRequest)
			return
		}
		bm, err := s.bookmarks.Load(r.Context(), body.Resume)
		if err != nil {
			http.Error(w, fmt.Sprintf("Resume error: %v", err), http.StatusNotFound)
			return
		}
		sess.Restore(bm.Position, bm.History)
	}

	s.mu.Lock()
	s.sessions[id] = &sessionEntry{session: sess}
	s.mu.Unlock()

	s.logger.Info("session created", "session_id", id, "resumed_from", body.Resume)
	writeJSON(w, http.StatusCreated, s.sessionResponse(id, sess))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	entry := s.lookup(id)
	if entry == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	writeJSON(w, http.StatusOK, s.sessionResponse(id, entry.session))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, id string, sess *fireside.Session)

// withSession resolves the session and serializes access to it.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		entry := s.lookup(id)
		if entry == nil {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}

		entry.mu.Lock()
		defer entry.mu.Unlock()
		h(w, r, id, entry.session)
	}
}

func (s *Server) lookup(id string) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *Server) postAdvance(w http.ResponseWriter, r *http.Request, id string, sess *fireside.Session) {
	s.writeMove(w, sess, sess.Advance())
}

func (s *Server) postBack(w http.ResponseWriter, r *http.Request, id string, sess *fireside.Session) {
	s.writeMove(w, sess, sess.Back())
}

func (s *Server) postChoose(w http.ResponseWriter, r *http.Request, id string, sess *fireside.Session) {
	var body ChooseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	runes := []rune(body.Key)
	if len(runes) != 1 {
		http.Error(w, "Key must be a single character", http.StatusBadRequest)
		return
	}

	res, err := sess.Choose(runes[0])
	if err != nil {
		http.Error(w, fmt.Sprintf("Choose error: %v", err), http.StatusUnprocessableEntity)
		return
	}
	s.writeMove(w, sess, res)
}

func (s *Server) postJump(w http.ResponseWriter, r *http.Request, id string, sess *fireside.Session) {
	var body JumpRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := sess.Jump(body.Position)
	if err != nil {
		http.Error(w, fmt.Sprintf("Jump error: %v", err), http.StatusUnprocessableEntity)
		return
	}
	s.writeMove(w, sess, res)
}

func (s *Server) postCommand(w http.ResponseWriter, r *http.Request, id string, sess *fireside.Session) {
	var body CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cmd, err := body.toCommand()
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid command: %v", err), http.StatusBadRequest)
		return
	}

	if err := sess.Apply(cmd); err != nil {
		http.Error(w, fmt.Sprintf("Command error: %v", err), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponse(id, sess))
}

func (s *Server) postUndo(w http.ResponseWriter, r *http.Request, id string, sess *fireside.Session) {
	if err := sess.Undo(); err != nil {
		http.Error(w, fmt.Sprintf("Undo error: %v", err), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponse(id, sess))
}

func (s *Server) postRedo(w http.ResponseWriter, r *http.Request, id string, sess *fireside.Session) {
	if err := sess.Redo(); err != nil {
		http.Error(w, fmt.Sprintf("Redo error: %v", err), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponse(id, sess))
}

func (s *Server) getDiagnostics(w http.ResponseWriter, r *http.Request, id string, sess *fireside.Session) {
	diags := sess.Validate()
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = d.String()
	}
	writeJSON(w, http.StatusOK, map[string]any{"diagnostics": lines})
}

func (s *Server) getDeck(w http.ResponseWriter, r *http.Request, id string, sess *fireside.Session) {
	data, err := sess.Save()
	if err != nil {
		http.Error(w, fmt.Sprintf("Serialize error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}

func (s *Server) postBookmark(w http.ResponseWriter, r *http.Request, id string, sess *fireside.Session) {
	if s.bookmarks == nil {
		http.Error(w, "Bookmarks not configured", http.StatusBadRequest)
		return
	}

	bm := &ports.Bookmark{
		SessionID: id,
		Position:  sess.Position(),
		History:   sess.History(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.bookmarks.Save(r.Context(), bm); err != nil {
		http.Error(w, fmt.Sprintf("Bookmark error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, bm)
}

// -- Helpers --

func (c CommandRequest) ref() (command.NodeRef, error) {
	if c.Ref.ID != "" {
		return command.ByID(c.Ref.ID), nil
	}
	if c.Ref.Position != nil {
		return command.ByPosition(*c.Ref.Position), nil
	}
	return command.NodeRef{}, fmt.Errorf("ref requires id or position")
}

func (c CommandRequest) toCommand() (command.Command, error) {
	ref, err := c.ref()
	if err != nil {
		return nil, err
	}

	switch c.Name {
	case "remove-node":
		return command.RemoveNode{Ref: ref}, nil
	case "move-node":
		return command.MoveNode{Ref: ref, To: c.To}, nil
	case "set-traversal-next":
		return command.SetTraversalNext{Ref: ref, Target: c.Target}, nil
	case "clear-traversal-next":
		return command.ClearTraversalNext{Ref: ref}, nil
	case "add-branch-option":
		runes := []rune(c.Key)
		if len(runes) != 1 {
			return nil, fmt.Errorf("option key must be a single character")
		}
		return command.AddBranchOption{
			Ref:    ref,
			Option: domain.BranchOption{Key: runes[0], Label: c.Label, Target: c.Target},
			Prompt: c.Prompt,
			At:     c.At,
		}, nil
	case "remove-branch-option":
		runes := []rune(c.Key)
		if len(runes) != 1 {
			return nil, fmt.Errorf("option key must be a single character")
		}
		return command.RemoveBranchOption{Ref: ref, Key: runes[0]}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", c.Name)
	}
}

func (s *Server) sessionResponse(id string, sess *fireside.Session) SessionResponse {
	resp := SessionResponse{
		SessionID: id,
		Position:  sess.Position(),
		CanUndo:   sess.CanUndo(),
		CanRedo:   sess.CanRedo(),
	}
	if n := sess.Current(); n != nil {
		view := nodeView(sess.Position(), n)
		resp.Node = &view
	}
	return resp
}

func (s *Server) writeMove(w http.ResponseWriter, sess *fireside.Session, res traversal.Result) {
	resp := MoveResponse{Moved: res.Moved, From: res.From, To: res.To}
	if res.Moved {
		if n := sess.Current(); n != nil {
			view := nodeView(res.To, n)
			resp.Node = &view
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func nodeView(pos int, node *domain.Node) NodeView {
	view := NodeView{
		Position:     pos,
		ID:           node.ID,
		SpeakerNotes: node.SpeakerNotes,
	}
	view.BlockKinds = make([]string, len(node.Blocks))
	for i, b := range node.Blocks {
		view.BlockKinds[i] = string(b.Kind)
	}
	if node.Traversal != nil && node.Traversal.BranchPoint != nil {
		bp := node.Traversal.BranchPoint
		view.Prompt = bp.Prompt
		for _, opt := range bp.Options {
			view.Options = append(view.Options, OptionView{
				Key:    string(opt.Key),
				Label:  opt.Label,
				Target: opt.Target,
			})
		}
	}
	return view
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("encode response", "err", err)
	}
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(port int) error {
	addr := ":" + strconv.Itoa(port)
	s.logger.Info("HTTP server listening", "address", addr)
	return http.ListenAndServe(addr, s.Handler())
}
