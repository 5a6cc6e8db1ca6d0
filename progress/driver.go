package progress

import (
	"sync"
	"time"
)

// Listener receives the events of a single driver run.
// Any field may be nil.
type Listener struct {
	OnStart  func()
	OnTick   func(value float64)
	OnCancel func()
	OnEnd    func()
}

// Driver advances a value linearly from one bound to another over a duration.
//
// Start replaces any run in flight without notifying the replaced listener.
// OnStart fires once per Start. Ticks are non-decreasing and the last tick
// carries exactly the target value, immediately followed by OnEnd.
// Cancel on an active run calls OnCancel before returning. Nothing fires
// after a run was cancelled or ended.
type Driver interface {
	Start(from, to float64, duration time.Duration, l Listener)
	Pause()
	Resume()
	Cancel()
}

// ManualDriver is a Driver whose clock is advanced by the caller.
// Headless hosts step it from their own frame loop; tests step it directly.
type ManualDriver struct {
	mu       sync.Mutex
	from, to float64
	duration time.Duration
	elapsed  time.Duration
	running  bool
	paused   bool
	run      uint64
	listener Listener
}

// NewManualDriver returns an idle driver.
func NewManualDriver() *ManualDriver {
	return &ManualDriver{}
}

func (d *ManualDriver) Start(from, to float64, duration time.Duration, l Listener) {
	d.mu.Lock()
	d.from, d.to = from, to
	d.duration = duration
	d.elapsed = 0
	d.running = true
	d.paused = false
	d.listener = l
	d.run++
	run := d.run
	d.mu.Unlock()

	if l.OnStart != nil {
		l.OnStart()
	}

	// OnStart may have cancelled or replaced the run.
	d.mu.Lock()
	current := d.running && d.run == run
	d.mu.Unlock()
	if current && l.OnTick != nil {
		l.OnTick(from)
	}
}

func (d *ManualDriver) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		d.paused = true
	}
}

func (d *ManualDriver) Resume() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		d.paused = false
	}
}

func (d *ManualDriver) Cancel() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.paused = false
	l := d.listener
	d.listener = Listener{}
	d.mu.Unlock()

	if l.OnCancel != nil {
		l.OnCancel()
	}
}

// Advance moves the clock forward by step and emits one tick.
// It does nothing while idle or paused.
func (d *ManualDriver) Advance(step time.Duration) {
	d.mu.Lock()
	if !d.running || d.paused {
		d.mu.Unlock()
		return
	}
	d.elapsed += step
	done := d.elapsed >= d.duration
	value := d.to
	if done {
		d.elapsed = d.duration
		d.running = false
	} else {
		frac := float64(d.elapsed) / float64(d.duration)
		value = d.from + (d.to-d.from)*frac
	}
	l := d.listener
	if done {
		d.listener = Listener{}
	}
	d.mu.Unlock()

	if l.OnTick != nil {
		l.OnTick(value)
	}
	if done && l.OnEnd != nil {
		l.OnEnd()
	}
}

// Finish advances straight to the end of the current run.
func (d *ManualDriver) Finish() {
	d.mu.Lock()
	remaining := d.duration - d.elapsed
	d.mu.Unlock()
	d.Advance(remaining)
}

// Elapsed returns the time accumulated by the current or last run.
func (d *ManualDriver) Elapsed() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elapsed
}

// Duration returns the duration the current or last run was started with.
func (d *ManualDriver) Duration() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.duration
}

// Running reports whether a run is in flight, paused or not.
func (d *ManualDriver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}
