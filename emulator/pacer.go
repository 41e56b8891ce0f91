// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"time"
)

const (
	PACER_MIN_SLEEP = time.Millisecond // Smallest sleep the pacer will request.
)

// Pacer limits the rate of instruction steps.
//
// Each step is allotted Period of wall-clock time. The difference between
// the allotment and the time actually spent is banked, and the pacer
// sleeps only once the bank holds at least PACER_MIN_SLEEP. Slow steps
// draw the bank negative, and are repaid by later fast steps, so the
// long-run rate matches the requested rate. Setting MaxDebt forgives any
// backlog beyond it, trading the long-run rate for no catch-up burst after
// a long stall.
type Pacer struct {
	Period  time.Duration // Target time per step. Zero disables pacing.
	MaxDebt time.Duration // Largest backlog that will be repaid. Zero is unbounded.

	carry time.Duration
	last  time.Time
	late  bool

	// measurement
	measureCt   int
	measureTime time.Time
	actual      float64

	now   func() time.Time
	sleep func(time.Duration)
}

// NewPacer returns a pacer for the requested steps per second.
// A rate of zero or less disables pacing.
func NewPacer(hz int) (pacer *Pacer) {
	pacer = &Pacer{
		now:   time.Now,
		sleep: time.Sleep,
	}

	if hz > 0 {
		pacer.Period = time.Second / time.Duration(hz)
		if pacer.Period == 0 {
			pacer.Period = time.Nanosecond
		}
	}

	pacer.Restart()

	return
}

// Restart discards any banked time and measurement.
func (pacer *Pacer) Restart() {
	pacer.carry = 0
	pacer.late = false
	pacer.last = pacer.now()
	pacer.measureTime = pacer.last
	pacer.measureCt = 0
}

// Pace should be called once after every step.
func (pacer *Pacer) Pace() {
	pacer.measureCt++

	now := pacer.now()
	if pacer.Period == 0 {
		pacer.last = now
	} else {
		pacer.carry += pacer.Period - now.Sub(pacer.last)
		pacer.last = now

		pacer.late = pacer.carry < 0
		if pacer.MaxDebt > 0 && pacer.carry < -pacer.MaxDebt {
			pacer.carry = -pacer.MaxDebt
		}

		if pacer.carry >= PACER_MIN_SLEEP {
			pacer.sleep(pacer.carry)
			after := pacer.now()
			// Oversleep is charged against the next step.
			pacer.carry -= after.Sub(now)
			pacer.last = after
		}
	}

	if elapsed := pacer.last.Sub(pacer.measureTime); elapsed >= time.Second {
		pacer.actual = float64(pacer.measureCt) / elapsed.Seconds()
		pacer.measureTime = pacer.last
		pacer.measureCt = 0
	}
}

// Late returns true if the steps are taking longer than their allotment.
func (pacer *Pacer) Late() bool {
	return pacer.late
}

// Actual returns the measured steps per second, updated about once a second.
func (pacer *Pacer) Actual() float64 {
	return pacer.actual
}
