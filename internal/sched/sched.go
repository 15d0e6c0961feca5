// Package sched provides a tick-driven timer scheduler.
//
// Timers never fire on their own goroutine: the owner of the scheduler calls
// Advance once per frame, and due callbacks run inside that call, serially and
// in due-time order. This keeps timer callbacks and frame updates on the same
// goroutine, so game state needs no locking.
package sched

import (
	"sort"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer struct {
	id        uint64
	due       time.Duration
	delay     time.Duration
	repeating bool
	fn        func()
	cancelled bool
	fired     int
}

// Cancel stops the timer. Safe to call more than once, and from inside the
// timer's own callback.
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Active reports whether the timer will fire again.
func (t *Timer) Active() bool {
	if t == nil || t.cancelled {
		return false
	}
	return t.repeating || t.fired == 0
}

// Delay returns the current period (or one-shot delay).
func (t *Timer) Delay() time.Duration {
	return t.delay
}

// SetDelay changes the period of a repeating timer. The new delay applies
// from the next time the timer is rescheduled.
func (t *Timer) SetDelay(d time.Duration) {
	if d <= 0 {
		return
	}
	t.delay = d
}

// Fired returns how many times the callback has run.
func (t *Timer) Fired() int {
	return t.fired
}

// Scheduler owns a virtual clock and the set of pending timers.
type Scheduler struct {
	now    time.Duration
	nextID uint64
	timers []*Timer
}

// New creates an empty scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time elapsed since creation or the last Reset.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// AddRepeating schedules fn to run every delay. Non-positive delays are
// rejected by returning an already-cancelled timer.
func (s *Scheduler) AddRepeating(delay time.Duration, fn func()) *Timer {
	return s.add(delay, fn, true)
}

// AddOnce schedules fn to run once after delay.
func (s *Scheduler) AddOnce(delay time.Duration, fn func()) *Timer {
	return s.add(delay, fn, false)
}

func (s *Scheduler) add(delay time.Duration, fn func(), repeating bool) *Timer {
	s.nextID++
	t := &Timer{
		id:        s.nextID,
		due:       s.now + delay,
		delay:     delay,
		repeating: repeating,
		fn:        fn,
	}
	if delay <= 0 || fn == nil {
		t.cancelled = true
		return t
	}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by dt and runs every callback that becomes
// due, in due order. A repeating timer whose period is shorter than dt fires
// once per elapsed period.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := s.now + dt

	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.due
		t.fired++
		if t.repeating {
			t.due += t.delay
		} else {
			t.cancelled = true
		}
		t.fn()
	}

	s.now = target
	s.prune()
}

// nextDue returns the earliest live timer due at or before target.
// Ties are broken by creation order.
func (s *Scheduler) nextDue(target time.Duration) *Timer {
	var best *Timer
	for _, t := range s.timers {
		if t.cancelled || t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) prune() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}

// Pending returns the number of live timers.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// NextDue returns the virtual time of the earliest pending timer.
func (s *Scheduler) NextDue() (time.Duration, bool) {
	live := make([]*Timer, 0, len(s.timers))
	for _, t := range s.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return 0, false
	}
	sort.Slice(live, func(i, j int) bool { return live[i].due < live[j].due })
	return live[0].due, true
}

// Reset cancels all timers and rewinds the clock to zero.
func (s *Scheduler) Reset() {
	for _, t := range s.timers {
		t.cancelled = true
	}
	s.timers = s.timers[:0]
	s.now = 0
}
