// Package scheduler provides deferred one-shot tasks driven by simulation
// time. The host advances the clock once per tick; nothing here owns a
// goroutine or a wall-clock timer.
package scheduler

import (
	"sort"
)

type task struct {
	due float64
	seq uint64
	fn  func()
}

// Timers is a queue of one-shot callbacks keyed by simulation time.
// Scheduled tasks cannot be cancelled. Timers is not safe for concurrent use.
type Timers struct {
	now     float64
	nextSeq uint64
	tasks   []task
}

// NewTimers creates an empty queue at time 0.
func NewTimers() *Timers {
	return &Timers{}
}

// After schedules fn to run once delay units after the current time.
// Negative delays are treated as zero.
func (t *Timers) After(delay float64, fn func()) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	t.nextSeq++
	t.tasks = append(t.tasks, task{due: t.now + delay, seq: t.nextSeq, fn: fn})
}

// Advance moves the clock forward by dt and runs every task that has come
// due, earliest first and in scheduling order for equal due times. A task
// scheduled from inside a callback runs in this call only if it is already
// due.
func (t *Timers) Advance(dt float64) int {
	if dt > 0 {
		t.now += dt
	}

	ran := 0
	for {
		due := t.popDue()
		if due == nil {
			return ran
		}
		due.fn()
		ran++
	}
}

// popDue removes and returns the earliest due task, or nil.
func (t *Timers) popDue() *task {
	if len(t.tasks) == 0 {
		return nil
	}
	sort.SliceStable(t.tasks, func(i, j int) bool {
		if t.tasks[i].due != t.tasks[j].due {
			return t.tasks[i].due < t.tasks[j].due
		}
		return t.tasks[i].seq < t.tasks[j].seq
	})
	if t.tasks[0].due > t.now {
		return nil
	}
	next := t.tasks[0]
	t.tasks = t.tasks[1:]
	return &next
}

// Now returns the current simulation time.
func (t *Timers) Now() float64 {
	return t.now
}

// Len returns the number of tasks still waiting.
func (t *Timers) Len() int {
	return len(t.tasks)
}
