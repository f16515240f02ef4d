package dom

import (
	"sort"
	"time"
)

// Clock is a deterministic timer queue. Timers never fire on their own; the
// host advances the clock and due callbacks run synchronously in deadline order.
type Clock struct {
	now    time.Time
	nextID int
	timers map[int]*timer
}

type timer struct {
	id       int
	deadline time.Time
	interval time.Duration
	fn       func()
}

// NewClock returns a clock starting at the Unix epoch.
func NewClock() *Clock {
	return NewClockAt(time.Unix(0, 0).UTC())
}

// NewClockAt returns a clock starting at start.
func NewClockAt(start time.Time) *Clock {
	return &Clock{now: start, timers: make(map[int]*timer)}
}

// Now returns the current clock time.
func (c *Clock) Now() time.Time {
	return c.now
}

// SetTimeout schedules fn once after d and returns the timer id.
func (c *Clock) SetTimeout(d time.Duration, fn func()) int {
	return c.schedule(d, 0, fn)
}

// SetInterval schedules fn every d and returns the timer id.
func (c *Clock) SetInterval(d time.Duration, fn func()) int {
	if d <= 0 {
		d = time.Millisecond
	}
	return c.schedule(d, d, fn)
}

func (c *Clock) schedule(d, interval time.Duration, fn func()) int {
	if d < 0 {
		d = 0
	}
	c.nextID++
	c.timers[c.nextID] = &timer{
		id:       c.nextID,
		deadline: c.now.Add(d),
		interval: interval,
		fn:       fn,
	}
	return c.nextID
}

// Clear cancels a timeout or interval. Unknown ids are ignored.
func (c *Clock) Clear(id int) {
	delete(c.timers, id)
}

// Pending returns the number of scheduled timers.
func (c *Clock) Pending() int {
	return len(c.timers)
}

// Advance moves the clock forward by d, running every timer that becomes due.
func (c *Clock) Advance(d time.Duration) {
	target := c.now.Add(d)
	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		c.now = next.deadline
		if next.interval > 0 {
			next.deadline = next.deadline.Add(next.interval)
		} else {
			delete(c.timers, next.id)
		}
		if next.fn != nil {
			next.fn()
		}
	}
	c.now = target
}

func (c *Clock) nextDue(limit time.Time) *timer {
	due := make([]*timer, 0, len(c.timers))
	for _, t := range c.timers {
		if !t.deadline.After(limit) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].id < due[j].id
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	return due[0]
}
