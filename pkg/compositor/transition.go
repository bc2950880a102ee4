package compositor

import "time"

// TransitionController owns the cross-fade state between the previously
// displayed scene and the current one. It is either idle or tracking
// exactly one previous scene; re-triggering a switch mid-fade restarts
// the snapshot against whatever is displayed at that instant.
//
// Owned by the render loop; not safe for concurrent use.
type TransitionController struct {
	duration  time.Duration
	displayed int

	active   bool
	previous int
	start    time.Time
}

// NewTransitionController creates a controller displaying the given
// scene index with no transition pending.
func NewTransitionController(displayed int, duration time.Duration) *TransitionController {
	if duration <= 0 {
		duration = TransitionDuration
	}
	return &TransitionController{duration: duration, displayed: displayed}
}

// Displayed returns the scene index currently adopted for display.
func (t *TransitionController) Displayed() int {
	return t.displayed
}

// SetTarget adopts the externally requested scene index. When it
// differs from the displayed index a cross-fade starts: the displayed
// index becomes the previous scene and the clock starts at now.
func (t *TransitionController) SetTarget(index int, now time.Time) {
	if index == t.displayed {
		return
	}
	t.active = true
	t.previous = t.displayed
	t.start = now
	t.displayed = index
}

// Progress converts elapsed wall-clock time into blend progress in
// [0,1]. While a transition runs it returns the previous scene index
// and transitioning=true; once progress reaches 1 the previous scene is
// dropped and subsequent calls report idle.
func (t *TransitionController) Progress(now time.Time) (progress float64, previous int, transitioning bool) {
	if !t.active {
		return 1, 0, false
	}

	elapsed := now.Sub(t.start)
	if elapsed >= t.duration {
		t.active = false
		return 1, 0, false
	}
	p := float64(elapsed) / float64(t.duration)
	if p < 0 {
		p = 0
	}
	return p, t.previous, true
}
