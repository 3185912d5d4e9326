// Package clock converts wall-clock time into whole simulation steps.
package clock

import "time"

const (
	DefaultStepInterval = time.Second / 60 / time.Millisecond * time.Millisecond // 16ms, as 1000/fps truncates
	DefaultMaxCatchUp   = 10
)

// Accumulator hands out a step count per displayed frame. At least one step
// is always granted so a short frame still shows progress; at most maxCatchUp
// are granted so a stall does not trigger a burst of catch-up work.
type Accumulator struct {
	interval   time.Duration
	maxCatchUp int
	last       time.Time
	simTime    int64
}

// New returns an accumulator whose first poll measures from start. An interval
// of 0 means uncapped: one step per poll. maxCatchUp below 1 is raised to 1.
func New(interval time.Duration, maxCatchUp int, start time.Time) *Accumulator {
	if interval < 0 {
		interval = 0
	}
	if maxCatchUp < 1 {
		maxCatchUp = 1
	}
	return &Accumulator{interval: interval, maxCatchUp: maxCatchUp, last: start}
}

// Poll returns how many steps to run before rendering the frame at now.
//
// When uncapped, or when the clamp hit its maximum, the reference time snaps
// to now and any backlog is dropped. Otherwise it advances by exactly
// steps*interval so the fractional remainder carries into the next poll.
func (a *Accumulator) Poll(now time.Time) int {
	steps := 1
	if a.interval > 0 {
		elapsed := now.Sub(a.last)
		if n := int64(elapsed / a.interval); n > 1 {
			steps = int(min(n, int64(a.maxCatchUp)))
		}
	}
	steps = min(steps, a.maxCatchUp)

	a.simTime += int64(steps)

	if a.interval == 0 || steps == a.maxCatchUp {
		a.last = now
	} else {
		a.last = a.last.Add(time.Duration(steps) * a.interval)
	}
	return steps
}

// SimulationTime is the total number of steps handed out so far.
func (a *Accumulator) SimulationTime() int64 { return a.simTime }

// LastTimestamp is the reference time the next poll measures from.
func (a *Accumulator) LastTimestamp() time.Time { return a.last }

func (a *Accumulator) Interval() time.Duration { return a.interval }
func (a *Accumulator) MaxCatchUp() int         { return a.maxCatchUp }

// Restart drops any accumulated backlog and measures from now.
func (a *Accumulator) Restart(now time.Time) {
	a.last = now
}
