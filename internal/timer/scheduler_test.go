package timer_test

import (
	"sync/atomic"
	"testing"
	"time"

	"wordrush/internal/timer"
)

// TestCountdownCompletes verifies ticks arrive and completion fires once
func TestCountdownCompletes(t *testing.T) {
	s := timer.NewScheduler()

	var ticks int32
	var completions int32
	done := make(chan struct{})

	s.Start("room1", 2, func(remaining int) {
		atomic.AddInt32(&ticks, 1)
	}, func() {
		atomic.AddInt32(&completions, 1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(4 * time.Second):
		t.Fatal("countdown did not complete")
	}

	// Give a stray duplicate completion a moment to show up.
	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&completions); got != 1 {
		t.Errorf("completions = %d, want exactly 1", got)
	}
	if got := atomic.LoadInt32(&ticks); got != 2 {
		t.Errorf("ticks = %d, want 2", got)
	}
	if s.Active("room1") {
		t.Error("completed countdown should be inactive")
	}
}

// TestStopCancels verifies neither callback fires after Stop
func TestStopCancels(t *testing.T) {
	s := timer.NewScheduler()

	var fired int32
	s.Start("room1", 2, func(int) {
		atomic.AddInt32(&fired, 1)
	}, func() {
		atomic.AddInt32(&fired, 1)
	})

	s.Stop("room1")
	if s.Active("room1") {
		t.Error("stopped countdown should be inactive")
	}

	time.Sleep(1500 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 0 {
		t.Errorf("callbacks fired %d times after Stop, want 0", got)
	}
}

// TestStartReplacesExisting verifies one countdown per key
func TestStartReplacesExisting(t *testing.T) {
	s := timer.NewScheduler()

	var firstCompleted int32
	s.Start("room1", 1, nil, func() {
		atomic.AddInt32(&firstCompleted, 1)
	})

	done := make(chan struct{})
	s.Start("room1", 2, nil, func() {
		close(done)
	})

	if got := s.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount = %d, want 1", got)
	}

	select {
	case <-done:
	case <-time.After(4 * time.Second):
		t.Fatal("replacement countdown did not complete")
	}
	if atomic.LoadInt32(&firstCompleted) != 0 {
		t.Error("replaced countdown should never complete")
	}
}

// TestAddTime verifies extension of an active countdown
func TestAddTime(t *testing.T) {
	s := timer.NewScheduler()
	s.Start("room1", 10, nil, nil)
	defer s.Stop("room1")

	if got := s.AddTime("room1", 5); got != 15 {
		t.Errorf("AddTime = %d, want 15", got)
	}
	if got := s.Remaining("room1"); got != 15 {
		t.Errorf("Remaining = %d, want 15", got)
	}
	if got := s.AddTime("missing", 5); got != 0 {
		t.Errorf("AddTime on missing key = %d, want 0", got)
	}
}

// TestPauseResume verifies a paused countdown holds its remaining time
func TestPauseResume(t *testing.T) {
	s := timer.NewScheduler()
	s.Start("room1", 10, nil, nil)
	defer s.Stop("room1")

	s.Pause("room1")
	before := s.Remaining("room1")
	time.Sleep(1500 * time.Millisecond)
	if got := s.Remaining("room1"); got != before {
		t.Errorf("paused Remaining = %d, want %d", got, before)
	}

	s.Resume("room1")
	time.Sleep(1500 * time.Millisecond)
	if got := s.Remaining("room1"); got >= before {
		t.Errorf("resumed countdown should tick down, got %d (was %d)", got, before)
	}
}

// TestStopAll verifies shutdown cancels everything
func TestStopAll(t *testing.T) {
	s := timer.NewScheduler()
	s.Start("a", 10, nil, nil)
	s.Start("b", 10, nil, nil)

	s.StopAll()
	if got := s.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount = %d, want 0", got)
	}
}
