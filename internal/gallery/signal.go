package gallery

// Signal is a broadcast notification with no payload. The filter subsystem
// emits it after changing card visibility.
type Signal struct {
	nextID int
	subs   map[int]func()
	order  []int
}

// Subscribe registers fn and returns a func that removes it.
func (s *Signal) Subscribe(fn func()) (unsubscribe func()) {
	if s.subs == nil {
		s.subs = make(map[int]func())
	}
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	s.order = append(s.order, id)

	return func() {
		delete(s.subs, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Emit calls every subscriber in subscription order.
func (s *Signal) Emit() {
	ids := append([]int(nil), s.order...)
	for _, id := range ids {
		if fn, ok := s.subs[id]; ok {
			fn()
		}
	}
}

// Len returns the number of subscribers.
func (s *Signal) Len() int {
	return len(s.subs)
}
