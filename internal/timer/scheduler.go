// Package timer runs per-room countdowns. Each active countdown is one
// goroutine ticking at 1Hz; stopping a countdown takes effect at the next
// tick boundary, so a cancelled timer never fires its completion callback.
package timer

import (
	"sync"
	"time"
)

// TickFunc receives the seconds remaining after each tick.
type TickFunc func(remaining int)

// CompleteFunc fires exactly once when a countdown reaches zero.
type CompleteFunc func()

type countdown struct {
	mu        sync.Mutex
	remaining int
	paused    bool
	stopped   bool
	stop      chan struct{}
}

// Scheduler manages one countdown per key (room code).
type Scheduler struct {
	mu     sync.Mutex
	active map[string]*countdown
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{active: make(map[string]*countdown)}
}

// Start begins a countdown of the given seconds for the key, replacing any
// countdown already running for it. onTick fires after each elapsed second
// with the remaining time; onComplete fires once at zero. Both callbacks
// run on the countdown's goroutine.
func (s *Scheduler) Start(key string, seconds int, onTick TickFunc, onComplete CompleteFunc) {
	s.mu.Lock()
	if old, ok := s.active[key]; ok {
		old.cancel()
	}
	cd := &countdown{remaining: seconds, stop: make(chan struct{})}
	s.active[key] = cd
	s.mu.Unlock()

	go s.run(key, cd, onTick, onComplete)
}

func (s *Scheduler) run(key string, cd *countdown, onTick TickFunc, onComplete CompleteFunc) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-cd.stop:
			return
		case <-ticker.C:
			cd.mu.Lock()
			if cd.stopped {
				cd.mu.Unlock()
				return
			}
			if cd.paused {
				cd.mu.Unlock()
				continue
			}
			cd.remaining--
			remaining := cd.remaining
			cd.mu.Unlock()

			if onTick != nil {
				onTick(remaining)
			}
			if remaining <= 0 {
				s.remove(key, cd)
				if onComplete != nil {
					onComplete()
				}
				return
			}
		}
	}
}

// After runs fn once after the given seconds, replacing any countdown for
// the key. It is Start without a per-second callback, for one-shot delays
// like level transitions.
func (s *Scheduler) After(key string, seconds int, fn CompleteFunc) {
	s.Start(key, seconds, nil, fn)
}

// remove drops the countdown from the registry if it is still the current
// one for the key.
func (s *Scheduler) remove(key string, cd *countdown) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active[key] == cd {
		delete(s.active, key)
	}
}

func (cd *countdown) cancel() {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	if !cd.stopped {
		cd.stopped = true
		close(cd.stop)
	}
}

// Stop cancels the key's countdown, if any. Neither callback fires after
// Stop returns the tick boundary.
func (s *Scheduler) Stop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cd, ok := s.active[key]; ok {
		cd.cancel()
		delete(s.active, key)
	}
}

// StopAll cancels every countdown, for shutdown.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, cd := range s.active {
		cd.cancel()
		delete(s.active, key)
	}
}

// Pause freezes the key's countdown. Ticks keep arriving but the remaining
// time stops decreasing.
func (s *Scheduler) Pause(key string) {
	if cd := s.get(key); cd != nil {
		cd.mu.Lock()
		cd.paused = true
		cd.mu.Unlock()
	}
}

// Resume unfreezes the key's countdown.
func (s *Scheduler) Resume(key string) {
	if cd := s.get(key); cd != nil {
		cd.mu.Lock()
		cd.paused = false
		cd.mu.Unlock()
	}
}

// AddTime extends the key's countdown by the given seconds and returns the
// new remaining time, or 0 if no countdown is active.
func (s *Scheduler) AddTime(key string, seconds int) int {
	cd := s.get(key)
	if cd == nil {
		return 0
	}
	cd.mu.Lock()
	defer cd.mu.Unlock()
	cd.remaining += seconds
	return cd.remaining
}

// Remaining returns the seconds left on the key's countdown, 0 if none.
func (s *Scheduler) Remaining(key string) int {
	cd := s.get(key)
	if cd == nil {
		return 0
	}
	cd.mu.Lock()
	defer cd.mu.Unlock()
	return cd.remaining
}

// Active reports whether a countdown is running for the key.
func (s *Scheduler) Active(key string) bool {
	return s.get(key) != nil
}

// ActiveCount returns the number of running countdowns.
func (s *Scheduler) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

func (s *Scheduler) get(key string) *countdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[key]
}
