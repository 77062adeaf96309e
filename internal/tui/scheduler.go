package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg delivers a scheduled callback back to the event loop.
type tickMsg struct {
	id uint64
}

// cmdQueue collects commands produced outside of Update, such as from timer
// callbacks. Update flushes it after every message.
type cmdQueue struct {
	cmds []tea.Cmd
}

func (q *cmdQueue) push(cmd tea.Cmd) {
	if cmd != nil {
		q.cmds = append(q.cmds, cmd)
	}
}

func (q *cmdQueue) flush() tea.Cmd {
	if len(q.cmds) == 0 {
		return nil
	}
	cmds := q.cmds
	q.cmds = nil
	return tea.Batch(cmds...)
}

// TeaScheduler implements timer.Scheduler on top of tea.Tick. Every callback
// gets an id; cancelled ids are dropped when their tick arrives.
type TeaScheduler struct {
	nextID  uint64
	pending map[uint64]func()
	queue   *cmdQueue
}

func newTeaScheduler(queue *cmdQueue) *TeaScheduler {
	return &TeaScheduler{
		pending: make(map[uint64]func()),
		queue:   queue,
	}
}

// AfterFunc implements timer.Scheduler.
func (s *TeaScheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.nextID++
	id := s.nextID
	s.pending[id] = fn
	s.queue.push(tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	}))
	return func() { delete(s.pending, id) }
}

// deliver runs the callback for a tick if it is still pending.
func (s *TeaScheduler) deliver(msg tickMsg) {
	fn, ok := s.pending[msg.id]
	if !ok {
		return
	}
	delete(s.pending, msg.id)
	fn()
}

// Pending returns the number of callbacks waiting for their tick.
func (s *TeaScheduler) Pending() int {
	return len(s.pending)
}
