package storyview

import (
	"sync"
	"time"

	"storyprogress/progress"

	"fyne.io/fyne/v2"
)

// AnimationDriver is a progress.Driver backed by fyne.Animation.
//
// fyne.Animation cannot be suspended, so Pause stops the animation and keeps
// the last value; Resume starts a fresh animation over the remaining span with
// a duration scaled to it.
type AnimationDriver struct {
	mu sync.Mutex

	anim     *fyne.Animation
	from, to float64
	duration time.Duration
	current  float64
	running  bool
	paused   bool
	run      uint64
	segment  uint64
	listener progress.Listener
}

var _ progress.Driver = (*AnimationDriver)(nil)

// NewAnimationDriver returns an idle driver.
func NewAnimationDriver() *AnimationDriver {
	return &AnimationDriver{}
}

func (d *AnimationDriver) Start(from, to float64, duration time.Duration, l progress.Listener) {
	d.mu.Lock()
	d.stopLocked()
	d.from, d.to = from, to
	d.duration = duration
	d.current = from
	d.running = true
	d.paused = false
	d.listener = l
	d.run++
	run := d.run
	d.mu.Unlock()

	// Listener callbacks may cancel or restart the run.
	if l.OnStart != nil {
		l.OnStart()
	}
	if l.OnTick != nil && d.isCurrent(run) {
		l.OnTick(from)
	}

	d.mu.Lock()
	var anim *fyne.Animation
	if d.run == run && d.running && !d.paused && d.anim == nil {
		anim = d.prepareLocked(from, duration)
	}
	d.mu.Unlock()

	if anim != nil {
		anim.Start()
	}
}

func (d *AnimationDriver) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running || d.paused {
		return
	}
	d.paused = true
	d.stopLocked()
}

func (d *AnimationDriver) Resume() {
	d.mu.Lock()
	if !d.running || !d.paused {
		d.mu.Unlock()
		return
	}
	d.paused = false
	anim := d.prepareLocked(d.current, d.remainingLocked())
	d.mu.Unlock()

	anim.Start()
}

func (d *AnimationDriver) Cancel() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.stopLocked()
	d.running = false
	d.paused = false
	l := d.listener
	d.listener = progress.Listener{}
	d.mu.Unlock()

	if l.OnCancel != nil {
		l.OnCancel()
	}
}

func (d *AnimationDriver) isCurrent(run uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.run == run && d.running
}

// Value returns the last value emitted by the current or last run.
func (d *AnimationDriver) Value() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *AnimationDriver) remainingLocked() time.Duration {
	span := d.to - d.from
	if span == 0 {
		return 0
	}
	return time.Duration(float64(d.duration) * (d.to - d.current) / span)
}

// prepareLocked builds the animation from start to d.to over duration. Every
// animation gets its own segment number so ticks of a stopped one are dropped.
// The caller starts it after unlocking: a driver may tick synchronously.
func (d *AnimationDriver) prepareLocked(start float64, duration time.Duration) *fyne.Animation {
	d.segment++
	segment := d.segment
	to := d.to

	if duration <= 0 {
		duration = time.Millisecond
	}
	anim := fyne.NewAnimation(duration, func(done float32) {
		d.tick(segment, start+(to-start)*float64(done), done >= 1)
	})
	anim.Curve = fyne.AnimationLinear
	d.anim = anim
	return anim
}

func (d *AnimationDriver) stopLocked() {
	d.segment++
	if d.anim != nil {
		d.anim.Stop()
		d.anim = nil
	}
}

func (d *AnimationDriver) tick(segment uint64, value float64, done bool) {
	d.mu.Lock()
	if segment != d.segment || !d.running || d.paused {
		d.mu.Unlock()
		return
	}
	if done {
		value = d.to
		d.running = false
		d.anim = nil
	}
	if value < d.current {
		value = d.current
	}
	d.current = value
	l := d.listener
	if done {
		d.listener = progress.Listener{}
	}
	d.mu.Unlock()

	if l.OnTick != nil {
		l.OnTick(value)
	}
	if done && l.OnEnd != nil {
		l.OnEnd()
	}
}
