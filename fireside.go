package fireside

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tiberius-s/fireside/pkg/command"
	"github.com/tiberius-s/fireside/pkg/domain"
	"github.com/tiberius-s/fireside/pkg/schema"
	"github.com/tiberius-s/fireside/pkg/traversal"
	"github.com/tiberius-s/fireside/pkg/validate"
)

// Version is the engine version reported by the CLI and the adapters.
const Version = "0.1.0"

// Session binds one deck graph to a traverser and a command history. It
// is the coordination point between editing and navigation: after any
// structural mutation it re-anchors the traversal position so that a
// deleted current node can never leave the session pointing into the
// void.
//
// A Session is not safe for concurrent use; hosts serialize access.
type Session struct {
	graph   *domain.Graph
	trav    *traversal.Engine
	history *command.History

	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	historyLimit int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets a structured logger for navigation and edit events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithHistoryLimit overrides the navigation history bound.
func WithHistoryLimit(n int) Option {
	return func(s *Session) {
		s.historyLimit = n
	}
}

// WithLifecycleHooks registers observability callbacks for node
// enter/leave.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// New wraps an existing graph in a session positioned at the first node.
func New(g *domain.Graph, opts ...Option) *Session {
	s := &Session{
		graph:        g,
		history:      command.NewHistory(),
		historyLimit: traversal.MaxHistory,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.trav = traversal.NewWithLimit(g, s.historyLimit)
	return s
}

// Load parses a deck document and opens a session on it.
func Load(data []byte, opts ...Option) (*Session, error) {
	g, err := schema.Parse(data)
	if err != nil {
		return nil, err
	}
	return New(g, opts...), nil
}

// LoadFile reads and parses a deck document from disk.
func LoadFile(path string, opts ...Option) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck: %w", err)
	}
	return Load(data, opts...)
}

// Graph exposes the underlying graph for read access.
func (s *Session) Graph() *domain.Graph {
	return s.graph
}

// Position returns the current traversal position.
func (s *Session) Position() int {
	return s.trav.Current()
}

// Current returns a borrowed view of the current node.
func (s *Session) Current() *domain.Node {
	return s.trav.CurrentNode()
}

// History returns a copy of the visit history, oldest first.
func (s *Session) History() []int {
	return s.trav.History()
}

// Restore overwrites position and history, clamping both to the graph.
// Used when resuming a bookmarked session.
func (s *Session) Restore(position int, history []int) {
	s.trav.Restore(position, history)
}

// Advance moves forward through the deck.
func (s *Session) Advance() traversal.Result {
	return s.moved("advance", s.trav.Advance())
}

// Choose follows a branch option on the current node.
func (s *Session) Choose(key rune) (traversal.Result, error) {
	res, err := s.trav.Choose(key)
	if err != nil {
		s.logger.Debug("choose rejected", "key", string(key), "err", err)
		return res, err
	}
	return s.moved("choose", res), nil
}

// Jump moves to an arbitrary position.
func (s *Session) Jump(pos int) (traversal.Result, error) {
	res, err := s.trav.Jump(pos)
	if err != nil {
		s.logger.Debug("jump rejected", "position", pos, "err", err)
		return res, err
	}
	return s.moved("jump", res), nil
}

// Back returns to the most recently visited node.
func (s *Session) Back() traversal.Result {
	return s.moved("back", s.trav.Back())
}

func (s *Session) moved(op string, res traversal.Result) traversal.Result {
	if !res.Moved {
		return res
	}
	s.logger.Debug("moved", "op", op, "from", res.From, "to", res.To)
	now := time.Now()
	if s.hooks.OnNodeLeave != nil {
		s.hooks.OnNodeLeave(s.nodeEvent(now, op, res.From))
	}
	if s.hooks.OnNodeEnter != nil {
		s.hooks.OnNodeEnter(s.nodeEvent(now, op, res.To))
	}
	return res
}

func (s *Session) nodeEvent(ts time.Time, op string, pos int) *domain.NodeEvent {
	ev := &domain.NodeEvent{Timestamp: ts, Position: pos, Op: op}
	if n := s.graph.NodeAt(pos); n != nil {
		ev.NodeID = n.ID
	}
	return ev
}

// Apply executes an edit command and records it for undo.
func (s *Session) Apply(cmd command.Command) error {
	if err := s.history.Apply(s.graph, cmd); err != nil {
		return err
	}
	s.logger.Debug("applied", "command", cmd.Name())
	s.reanchor()
	return nil
}

// Undo reverts the most recent edit.
func (s *Session) Undo() error {
	if err := s.history.Undo(s.graph); err != nil {
		return err
	}
	s.reanchor()
	return nil
}

// Redo re-applies the most recently undone edit.
func (s *Session) Redo() error {
	if err := s.history.Redo(s.graph); err != nil {
		return err
	}
	s.reanchor()
	return nil
}

// CanUndo reports whether an edit is available to undo.
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether an undone edit is available to redo.
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// reanchor clamps traversal state after a structural change. Positions in
// the history that fell off the end are dropped rather than remapped;
// exact tracking across arbitrary edits is not worth the bookkeeping.
func (s *Session) reanchor() {
	s.trav.Restore(s.trav.Current(), s.trav.History())
}

// Validate runs structural diagnostics over the deck.
func (s *Session) Validate() []validate.Diagnostic {
	return validate.Validate(s.graph)
}

// Save serializes the deck back to its wire document form.
func (s *Session) Save() ([]byte, error) {
	return schema.Marshal(s.graph)
}

// SaveFile writes the serialized deck to disk.
func (s *Session) SaveFile(path string) error {
	data, err := s.Save()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
