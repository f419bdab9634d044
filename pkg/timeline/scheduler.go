package timeline

import (
	"sync"
	"time"
)

// Timer is a pending delivery that can be cancelled.
type Timer interface {
	// Stop cancels the delivery. It reports false if the message already went out.
	Stop() bool
}

// Scheduler delivers msg to the owning event loop once d has elapsed. The
// message is handled on the loop, never on the timer's goroutine.
type Scheduler interface {
	Schedule(d time.Duration, msg any) Timer
}

// LoopScheduler posts delayed messages through a send func such as
// tea.Program.Send, and tracks every live timer so a view can cancel them
// all when it is torn down.
type LoopScheduler struct {
	mu     sync.Mutex
	send   func(any)
	timers map[*loopTimer]struct{}
}

func NewLoopScheduler(send func(any)) *LoopScheduler {
	return &LoopScheduler{send: send, timers: make(map[*loopTimer]struct{})}
}

// Bind sets the send func. Programs are usually built after their model, so
// the scheduler is created unbound and bound once the program exists.
func (s *LoopScheduler) Bind(send func(any)) {
	s.mu.Lock()
	s.send = send
	s.mu.Unlock()
}

// Post delivers msg to the loop right away. Use it from goroutines that
// finished work the loop has to hear about.
func (s *LoopScheduler) Post(msg any) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

type loopTimer struct {
	owner *LoopScheduler
	t     *time.Timer
}

func (t *loopTimer) Stop() bool {
	stopped := t.t.Stop()
	t.owner.forget(t)
	return stopped
}

func (s *LoopScheduler) Schedule(d time.Duration, msg any) Timer {
	lt := &loopTimer{owner: s}
	s.mu.Lock()
	s.timers[lt] = struct{}{}
	lt.t = time.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.timers[lt]
		delete(s.timers, lt)
		send := s.send
		s.mu.Unlock()
		if live && send != nil {
			send(msg)
		}
	})
	s.mu.Unlock()
	return lt
}

func (s *LoopScheduler) forget(t *loopTimer) {
	s.mu.Lock()
	delete(s.timers, t)
	s.mu.Unlock()
}

// Pending is the number of timers that have neither fired nor been stopped.
func (s *LoopScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// StopAll cancels every outstanding timer.
func (s *LoopScheduler) StopAll() {
	s.mu.Lock()
	timers := s.timers
	s.timers = make(map[*loopTimer]struct{})
	s.mu.Unlock()
	for t := range timers {
		t.t.Stop()
	}
}
