package command

import (
	"errors"

	"github.com/tiberius-s/fireside/pkg/domain"
)

// ErrNothingToUndo is returned by Undo on an empty applied stack.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNothingToRedo is returned by Redo on an empty undone stack.
var ErrNothingToRedo = errors.New("nothing to redo")

type entry struct {
	cmd Command
	inv Command
}

// History maintains the applied and undone stacks for one graph. A failed
// command is never recorded, and any fresh edit clears the undone stack:
// redo is only valid immediately after an undo.
//
// Undo/redo state lives in memory only and is lost with the process; the
// deck itself survives through an external save of the graph.
type History struct {
	applied []entry
	undone  []entry
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Apply executes cmd and records it together with its inverse.
func (h *History) Apply(g *domain.Graph, cmd Command) error {
	inv, err := Apply(g, cmd)
	if err != nil {
		return err
	}
	h.applied = append(h.applied, entry{cmd: cmd, inv: inv})
	h.undone = h.undone[:0]
	return nil
}

// Undo re-applies the most recent command's stored inverse and moves the
// pair onto the undone stack.
func (h *History) Undo(g *domain.Graph) error {
	if len(h.applied) == 0 {
		return ErrNothingToUndo
	}
	e := h.applied[len(h.applied)-1]
	if _, err := Apply(g, e.inv); err != nil {
		return err
	}
	h.applied = h.applied[:len(h.applied)-1]
	h.undone = append(h.undone, e)
	return nil
}

// Redo re-applies the most recently undone command and moves the pair
// back onto the applied stack.
func (h *History) Redo(g *domain.Graph) error {
	if len(h.undone) == 0 {
		return ErrNothingToRedo
	}
	e := h.undone[len(h.undone)-1]
	if _, err := Apply(g, e.cmd); err != nil {
		return err
	}
	h.undone = h.undone[:len(h.undone)-1]
	h.applied = append(h.applied, e)
	return nil
}

// CanUndo reports whether the applied stack is non-empty.
func (h *History) CanUndo() bool {
	return len(h.applied) > 0
}

// CanRedo reports whether the undone stack is non-empty.
func (h *History) CanRedo() bool {
	return len(h.undone) > 0
}

// LastApplied returns the most recent applied command, for UI affordances
// like "Undo remove-node".
func (h *History) LastApplied() (Command, bool) {
	if len(h.applied) == 0 {
		return nil, false
	}
	return h.applied[len(h.applied)-1].cmd, true
}
