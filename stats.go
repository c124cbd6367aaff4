package glome

import (
	"time"
)

// Timings aggregates durations of one step phase.
type Timings struct {
	Count         int
	Latest        time.Duration
	MovingAverage time.Duration
	Min, Max      time.Duration
}

func (t Timings) Add(d time.Duration) Timings {
	t.Latest = d

	if t.Count == 0 {
		t.Min = d
		t.Max = d
	} else {
		t.Min = min(t.Min, d)
		t.Max = max(t.Max, d)
	}

	t.MovingAverage = (95*t.MovingAverage + 5*d) / 100

	t.Count += 1

	return t
}

// StepStats holds the per phase timings of the fixed step. Pure
// instrumentation, reading it never changes simulation behavior.
type StepStats struct {
	Integrate Timings
	Collide   Timings
	Triggers  Timings
	Total     Timings
}

func (s *StepStats) measure(t *Timings) timingStopwatch {
	startTime := time.Now()

	return timingStopwatch{
		stop: func() {
			*t = t.Add(time.Since(startTime))
		},
	}
}

type timingStopwatch struct {
	stop func()
}
