// Package canvas implements the document canvas interaction engine: it
// turns pointer and keyboard events into selection changes and document
// mutations, independent of any GUI toolkit.
package canvas

import (
	"time"

	"draftboard/pkg/geometry"
)

// Modifier is a bitmask of keyboard modifiers held during an event.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// HasShift returns true if Shift is held.
func (m Modifier) HasShift() bool { return m&ModShift != 0 }

// HasCtrl returns true if Ctrl is held.
func (m Modifier) HasCtrl() bool { return m&ModCtrl != 0 }

// HasAlt returns true if Alt is held.
func (m Modifier) HasAlt() bool { return m&ModAlt != 0 }

// HasMeta returns true if the platform command key is held.
func (m Modifier) HasMeta() bool { return m&ModMeta != 0 }

// Phase is the pointer event phase.
type Phase uint8

const (
	PhasePress Phase = iota
	PhaseMove
	PhaseRelease
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePress:
		return "press"
	case PhaseMove:
		return "move"
	case PhaseRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Event is a single input event fed to the interactor. Exactly one of
// PointerEvent or KeyEvent implements it.
type Event interface {
	isEvent()
}

// PointerEvent is a pointer press, move, or release in device
// coordinates (raw widget coordinates as reported by the toolkit).
type PointerEvent struct {
	Phase     Phase
	Pos       geometry.Point2D
	Modifiers Modifier
	Timestamp time.Time
}

func (PointerEvent) isEvent() {}

// Key identifies the keyboard keys the engine reacts to. Text input is
// out of scope; only command keys are modeled.
type Key uint8

const (
	KeyEscape Key = iota
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyA
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyDelete:
		return "delete"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyA:
		return "a"
	default:
		return "unknown"
	}
}

// KeyEvent is a key press.
type KeyEvent struct {
	Key       Key
	Modifiers Modifier
}

func (KeyEvent) isEvent() {}
