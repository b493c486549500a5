package turn

import (
	"sync"
	"time"
)

type Timer interface {
	Stop() bool
}

// Scheduler defers the AI move. Clock is the real one.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Clock struct{}

func (Clock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler runs tasks only when told to. It lets tests step through AI
// turns without waiting on real timers.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTimer
}

type manualTimer struct {
	scheduler *ManualScheduler
	delay     time.Duration
	task      func()
	done      bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (that *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	that.mu.Lock()
	defer that.mu.Unlock()

	timer := &manualTimer{scheduler: that, delay: d, task: f}
	that.tasks = append(that.tasks, timer)

	return timer
}

func (that *manualTimer) Stop() bool {
	that.scheduler.mu.Lock()
	defer that.scheduler.mu.Unlock()

	if that.done {
		return false
	}

	that.done = true

	return true
}

// Pending counts tasks neither fired nor stopped.
func (that *ManualScheduler) Pending() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	n := 0
	for _, task := range that.tasks {
		if !task.done {
			n++
		}
	}

	return n
}

// Delays returns the delay of every task ever scheduled, in order.
func (that *ManualScheduler) Delays() []time.Duration {
	that.mu.Lock()
	defer that.mu.Unlock()

	delays := make([]time.Duration, 0, len(that.tasks))
	for _, task := range that.tasks {
		delays = append(delays, task.delay)
	}

	return delays
}

// FireNext runs the oldest pending task and reports whether there was one.
func (that *ManualScheduler) FireNext() bool {
	that.mu.Lock()

	var next *manualTimer
	for _, task := range that.tasks {
		if !task.done {
			next = task
			break
		}
	}

	if next == nil {
		that.mu.Unlock()
		return false
	}

	next.done = true
	that.mu.Unlock()

	next.task()

	return true
}

// RunUntilIdle fires tasks, including the ones they schedule, up to limit.
func (that *ManualScheduler) RunUntilIdle(limit int) int {
	fired := 0
	for fired < limit && that.FireNext() {
		fired++
	}

	return fired
}
