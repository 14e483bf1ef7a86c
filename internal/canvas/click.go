package canvas

import (
	"math"
	"time"

	"draftboard/pkg/geometry"
)

const (
	doubleClickTime     = 400 * time.Millisecond
	doubleClickDistance = 4.0 // device units
)

// clickTracker detects double clicks from successive press events using
// a time-and-distance window.
type clickTracker struct {
	lastPos   geometry.Point2D
	lastTime  time.Time
	lastCount int
}

// record registers a press in device coordinates and returns the click
// count. The count wraps back to 1 after 2.
func (t *clickTracker) record(pos geometry.Point2D, timestamp time.Time) int {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	if t.isPartOfSequence(pos, timestamp) {
		t.lastCount++
		if t.lastCount > 2 {
			t.lastCount = 1
		}
	} else {
		t.lastCount = 1
	}

	t.lastPos = pos
	t.lastTime = timestamp
	return t.lastCount
}

func (t *clickTracker) isPartOfSequence(pos geometry.Point2D, timestamp time.Time) bool {
	if t.lastCount == 0 || t.lastTime.IsZero() {
		return false
	}
	elapsed := timestamp.Sub(t.lastTime)
	if elapsed < 0 || elapsed > doubleClickTime {
		return false
	}
	// Manhattan distance is plenty for click proximity.
	dist := math.Abs(pos.X-t.lastPos.X) + math.Abs(pos.Y-t.lastPos.Y)
	return dist <= doubleClickDistance
}

// reset clears the tracking state.
func (t *clickTracker) reset() {
	t.lastCount = 0
	t.lastTime = time.Time{}
	t.lastPos = geometry.Point2D{}
}
