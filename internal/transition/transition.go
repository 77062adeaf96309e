package transition

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/nikbrunner/folio/internal/timer"
)

const (
	// DefaultTimeout finishes a transition whose animation never settles.
	DefaultTimeout = 450 * time.Millisecond
	// DefaultFPS is the animation frame rate.
	DefaultFPS = 60

	springFrequency = 8.0
	springDamping   = 1.0
	settleEpsilon   = 0.001
)

// Params holds parameters for starting a Transition.
type Params struct {
	From      Route
	To        Route
	Scheduler timer.Scheduler
	Timeout   time.Duration // optional, uses DefaultTimeout if zero
	FPS       int           // optional, uses DefaultFPS if zero
	OnFinish  func(to Route)
}

// Transition slides the current page out and the next page in. It finishes
// exactly once, either when the animation settles or when the timeout fires,
// whichever comes first.
type Transition struct {
	From      Route
	To        Route
	Direction Direction

	spring   harmonica.Spring
	progress float64
	velocity float64

	latch         *timer.Latch
	cancelTimeout func()
}

// Start begins a transition. Returns nil when from and to are the same route.
func Start(p Params) *Transition {
	if p.From == p.To {
		return nil
	}

	timeout := p.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	fps := p.FPS
	if fps == 0 {
		fps = DefaultFPS
	}

	t := &Transition{
		From:      p.From,
		To:        p.To,
		Direction: DirectionOf(p.From, p.To),
		spring:    harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
	}

	t.latch = timer.NewLatch(func() {
		if t.cancelTimeout != nil {
			t.cancelTimeout()
		}
		t.progress = 1
		t.velocity = 0
		if p.OnFinish != nil {
			p.OnFinish(t.To)
		}
	})

	if p.Scheduler != nil {
		t.cancelTimeout = p.Scheduler.AfterFunc(timeout, t.Finish)
	}

	return t
}

// Frame advances the animation by one frame. When the slide settles this
// counts as the transition-end event. Returns true once the transition has
// finished.
func (t *Transition) Frame() bool {
	if t == nil {
		return true
	}
	if t.latch.Done() {
		return true
	}

	t.progress, t.velocity = t.spring.Update(t.progress, t.velocity, 1)
	if math.Abs(1-t.progress) < settleEpsilon && math.Abs(t.velocity) < settleEpsilon {
		t.Finish()
	}
	return t.latch.Done()
}

// Finish completes the transition. Only the first call has any effect.
func (t *Transition) Finish() {
	if t == nil {
		return
	}
	t.latch.Fire()
}

// Finished reports whether the transition has completed.
func (t *Transition) Finished() bool {
	return t == nil || t.latch.Done()
}

// Progress returns the slide progress in [0, 1].
func (t *Transition) Progress() float64 {
	if t == nil {
		return 1
	}
	return math.Max(0, math.Min(1, t.progress))
}

// Offsets returns the horizontal offsets, in columns, of the outgoing and
// incoming panels for a viewport of the given width.
func (t *Transition) Offsets(width int) (current, next int) {
	p := t.Progress()
	dir := float64(Forward)
	if t != nil {
		dir = float64(t.Direction)
	}
	current = int(math.Round(-dir * p * float64(width)))
	next = int(math.Round(dir * (1 - p) * float64(width)))
	return current, next
}
