// Package history provides the undo/redo stack. Each entry is a Command
// that knows how to apply and revert one user-visible change.
package history

import "fmt"

// DefaultLimit caps how many undo steps are retained.
const DefaultLimit = 100

// Command is one undoable change.
type Command interface {
	Label() string
	Apply() error
	Revert() error
}

// Stack is a bounded undo/redo stack. Pushing a new command discards the
// redo tail, matching the usual editor convention. Not safe for
// concurrent use; callers serialize access.
type Stack struct {
	limit int
	undo  []Command
	redo  []Command
}

// NewStack returns a stack retaining at most limit entries. A limit of
// zero or less falls back to DefaultLimit.
func NewStack(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit}
}

// Do applies the command and records it for undo.
func (s *Stack) Do(cmd Command) error {
	if err := cmd.Apply(); err != nil {
		return fmt.Errorf("apply %q: %w", cmd.Label(), err)
	}
	s.Push(cmd)
	return nil
}

// Push records an already-applied command for undo.
func (s *Stack) Push(cmd Command) {
	s.undo = append(s.undo, cmd)
	if len(s.undo) > s.limit {
		s.undo = s.undo[1:]
	}
	s.redo = s.redo[:0]
}

// Undo reverts the most recent command. Returns false if there was
// nothing to undo.
func (s *Stack) Undo() (bool, error) {
	if len(s.undo) == 0 {
		return false, nil
	}
	cmd := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	if err := cmd.Revert(); err != nil {
		return false, fmt.Errorf("undo %q: %w", cmd.Label(), err)
	}
	s.redo = append(s.redo, cmd)
	return true, nil
}

// Redo re-applies the most recently undone command. Returns false if
// there was nothing to redo.
func (s *Stack) Redo() (bool, error) {
	if len(s.redo) == 0 {
		return false, nil
	}
	cmd := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	if err := cmd.Apply(); err != nil {
		return false, fmt.Errorf("redo %q: %w", cmd.Label(), err)
	}
	s.undo = append(s.undo, cmd)
	return true, nil
}

// CanUndo reports whether an undo step is available.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// UndoLabel returns the label of the next undo step, or "".
func (s *Stack) UndoLabel() string {
	if len(s.undo) == 0 {
		return ""
	}
	return s.undo[len(s.undo)-1].Label()
}

// RedoLabel returns the label of the next redo step, or "".
func (s *Stack) RedoLabel() string {
	if len(s.redo) == 0 {
		return ""
	}
	return s.redo[len(s.redo)-1].Label()
}

// Clear drops all history, for example after loading a new document.
func (s *Stack) Clear() {
	s.undo = s.undo[:0]
	s.redo = s.redo[:0]
}

// Func builds a Command from closures.
type Func struct {
	Name   string
	DoFn   func() error
	UndoFn func() error
}

// Label returns the command name.
func (f Func) Label() string { return f.Name }

// Apply runs the do closure.
func (f Func) Apply() error { return f.DoFn() }

// Revert runs the undo closure.
func (f Func) Revert() error { return f.UndoFn() }
