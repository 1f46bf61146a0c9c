package breakout

import "time"

// TimerSlot names a deferred action. A slot holds at most one pending task.
type TimerSlot string

const (
	slotLaunch  TimerSlot = "launch"
	slotRestart TimerSlot = "restart"
)

type timerTask struct {
	gen uint64
	due time.Duration
	fn  func()
}

// Scheduler runs deferred callbacks against simulation time. Every After or
// Cancel on a slot bumps that slot's generation, so a callback armed earlier
// can never fire once it has been replaced or cancelled.
type Scheduler struct {
	now   time.Duration
	gens  map[TimerSlot]uint64
	tasks map[TimerSlot]timerTask
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{
		gens:  make(map[TimerSlot]uint64),
		tasks: make(map[TimerSlot]timerTask),
	}
}

// After arms fn to run once delay of simulation time has elapsed, replacing
// whatever was pending in slot.
func (s *Scheduler) After(slot TimerSlot, delay time.Duration, fn func()) {
	s.gens[slot]++
	s.tasks[slot] = timerTask{gen: s.gens[slot], due: s.now + delay, fn: fn}
}

// Cancel drops the task pending in slot, if any.
func (s *Scheduler) Cancel(slot TimerSlot) {
	s.gens[slot]++
	delete(s.tasks, slot)
}

// Pending reports whether slot has a task waiting to fire.
func (s *Scheduler) Pending(slot TimerSlot) bool {
	_, ok := s.tasks[slot]
	return ok
}

// Remaining returns the time left before the task in slot fires.
func (s *Scheduler) Remaining(slot TimerSlot) (time.Duration, bool) {
	t, ok := s.tasks[slot]
	if !ok {
		return 0, false
	}
	return max(t.due-s.now, 0), true
}

// Now returns the accumulated simulation time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Advance moves simulation time forward and fires due tasks in due order.
// A callback may arm or cancel slots; a task it arms with no delay fires
// within the same call.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}

	for {
		slot, task, ok := s.nextDue()
		if !ok {
			return
		}
		delete(s.tasks, slot)
		if s.gens[slot] != task.gen {
			continue
		}
		task.fn()
	}
}

// nextDue returns the earliest due task armed before the current time.
func (s *Scheduler) nextDue() (TimerSlot, timerTask, bool) {
	var (
		bestSlot TimerSlot
		best     timerTask
		found    bool
	)
	for slot, t := range s.tasks {
		if t.due > s.now {
			continue
		}
		if !found || t.due < best.due || (t.due == best.due && slot < bestSlot) {
			bestSlot, best, found = slot, t, true
		}
	}
	return bestSlot, best, found
}
