package tetris

import "time"

// SpeedRules is the step function that shortens the gravity interval as the
// score grows.
type SpeedRules struct {
	Enabled       bool
	Base          time.Duration
	Decrement     time.Duration
	Floor         time.Duration
	Threshold     int // first score threshold
	ThresholdStep int // added to the threshold each time it is crossed
}

// Speed is the current gravity interval and the score that triggers the next step.
type Speed struct {
	Interval  time.Duration
	Threshold int
}

// Initial returns the speed at the start of a game.
func (r SpeedRules) Initial() Speed {
	return Speed{Interval: max(r.Base, r.Floor), Threshold: r.Threshold}
}

// Advance applies every threshold crossed by score. The interval never grows
// and never drops below the floor.
func (r SpeedRules) Advance(sp Speed, score int) Speed {
	if !r.Enabled || r.ThresholdStep <= 0 {
		return sp
	}
	for score >= sp.Threshold {
		sp.Interval = max(sp.Interval-r.Decrement, r.Floor)
		sp.Threshold += r.ThresholdStep
	}
	return sp
}

// LineScore returns the points for clearing lines rows in one lock.
// Every row is worth the same; there is no multi-line bonus.
func LineScore(lines, pointsPerLine int) int {
	return lines * pointsPerLine
}
