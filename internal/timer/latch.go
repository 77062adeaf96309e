package timer

// Latch runs its finalize function at most once, regardless of how many
// completion triggers fire.
type Latch struct {
	fn   func()
	done bool
}

// NewLatch creates a Latch around fn.
func NewLatch(fn func()) *Latch {
	return &Latch{fn: fn}
}

// Fire runs the finalize function if it has not run yet.
// Returns true if this call ran it.
func (l *Latch) Fire() bool {
	if l == nil || l.done {
		return false
	}
	l.done = true
	if l.fn != nil {
		l.fn()
	}
	return true
}

// Done reports whether the latch has fired.
func (l *Latch) Done() bool {
	return l != nil && l.done
}
