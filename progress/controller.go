// Package progress implements the story progress bar independently of any UI toolkit:
// the track/fill geometry, the lifecycle state machine and the driver that animates it.
package progress

import (
	"image/color"
	"math"
	"sync"
	"time"
)

const (
	startValue = 0.0
	endValue   = 1.0

	// DefaultDuration is the run length of a freshly created controller.
	DefaultDuration = 10 * time.Second
	// MinDuration is the shortest accepted run length; shorter values are clamped.
	MinDuration = time.Millisecond
)

var (
	// DefaultBackColor is the dark gray of an empty track.
	DefaultBackColor  color.Color = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	// DefaultFrontColor is the fill color.
	DefaultFrontColor color.Color = color.White
)

// StoryProgress is the operation set of a story progress bar.
// Lifecycle callbacks receive the StoryProgress they were registered on,
// so a caller driving several bars can chain from one to the next.
type StoryProgress interface {
	SetFrontColor(c color.Color)
	SetBackColor(c color.Color)
	SetDuration(d time.Duration)
	Start()
	Pause()
	Resume()
	Cancel()
	End()
	ClearProgress()
	FillInProgress()
	CurrentProgress() int
	DoOnStart(fn func(StoryProgress))
	DoOnEnd(fn func(StoryProgress))
	DoOnCancel(fn func(StoryProgress))
}

var _ StoryProgress = (*Controller)(nil)

// Controller owns the state machine, the progress value and the geometry of one bar.
//
// Its lock is never held while calling the driver, the invalidator or a
// lifecycle callback, so callbacks may call back into the controller.
type Controller struct {
	mu sync.Mutex

	driver   Driver
	duration time.Duration
	state    State
	progress float64
	run      uint64
	mounted  bool

	geometry Geometry

	frontColor color.Color
	backColor  color.Color

	onStart  func(StoryProgress)
	onEnd    func(StoryProgress)
	onCancel func(StoryProgress)

	owner      StoryProgress
	invalidate func()
}

// NewController returns an idle controller animated by driver.
// A nil driver falls back to a ManualDriver.
func NewController(driver Driver) *Controller {
	if driver == nil {
		driver = NewManualDriver()
	}
	c := &Controller{
		driver:     driver,
		duration:   DefaultDuration,
		state:      StateNone,
		mounted:    true,
		frontColor: DefaultFrontColor,
		backColor:  DefaultBackColor,
	}
	c.owner = c
	return c
}

// SetOwner sets the reference passed to lifecycle callbacks.
// Widgets embedding the controller register themselves here.
func (c *Controller) SetOwner(owner StoryProgress) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if owner == nil {
		owner = c
	}
	c.owner = owner
}

// SetInvalidator sets the hook used to ask the host for a repaint.
func (c *Controller) SetInvalidator(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidate = fn
}

func (c *Controller) SetFrontColor(col color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frontColor = col
}

func (c *Controller) SetBackColor(col color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backColor = col
}

// FrontColor returns the fill color.
func (c *Controller) FrontColor() color.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frontColor
}

// BackColor returns the track color.
func (c *Controller) BackColor() color.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.backColor
}

// SetDuration cancels any run in flight, clears the fill and makes d the
// length of the next run. A cancelled run stays in StateCancel; call Start
// to play again with the new duration.
func (c *Controller) SetDuration(d time.Duration) {
	if d < MinDuration {
		d = MinDuration
	}
	c.mu.Lock()
	c.duration = d
	running := c.state.Running()
	c.mu.Unlock()

	if running {
		c.Cancel()
		return
	}
	c.resetProgress(startValue)
}

// Duration returns the configured run length.
func (c *Controller) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// Start begins a run from zero. Calling it during a run restarts it;
// the abandoned run fires neither its cancel nor its end callback.
// Starting an unmounted bar mounts it again.
func (c *Controller) Start() {
	c.mu.Lock()
	c.run++
	run := c.run
	c.mounted = true
	c.state = StatePlay
	c.setProgressLocked(startValue)
	d := c.duration
	c.mu.Unlock()

	c.requestRepaint()
	c.driver.Start(startValue, endValue, d, c.listener(run))
}

// Pause freezes a playing run. It is a no-op in any other state.
func (c *Controller) Pause() {
	c.mu.Lock()
	if c.state != StatePlay {
		c.mu.Unlock()
		return
	}
	c.state = StatePause
	c.mu.Unlock()

	c.driver.Pause()
}

// Resume continues a paused run from its frozen value. It is a no-op in any other state.
func (c *Controller) Resume() {
	c.mu.Lock()
	if c.state != StatePause {
		c.mu.Unlock()
		return
	}
	c.state = StatePlay
	c.mu.Unlock()

	c.driver.Resume()
}

// Cancel stops the current run and resets the progress to zero.
// The cancel callback fires before Cancel returns if a run was in flight;
// the end callback of that run never fires.
func (c *Controller) Cancel() {
	c.mu.Lock()
	wasRunning := c.state.Running()
	c.state = StateCancel
	c.mu.Unlock()

	if wasRunning {
		// The driver reports back through the run's OnCancel.
		c.driver.Cancel()
	}
	c.resetProgress(startValue)
}

// End is an extension point invoked by nothing in this package.
func (c *Controller) End() {}

// ClearProgress empties the fill without changing the state.
func (c *Controller) ClearProgress() {
	c.resetProgress(startValue)
}

// FillInProgress fills the bar completely without changing the state.
func (c *Controller) FillInProgress() {
	c.resetProgress(endValue)
}

// CurrentProgress returns the progress as a rounded percentage.
func (c *Controller) CurrentProgress() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(math.Round(c.progress * 100))
}

// Progress returns the raw progress fraction in [0,1].
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// DoOnStart registers the start callback, replacing any previous one.
func (c *Controller) DoOnStart(fn func(StoryProgress)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStart = fn
}

// DoOnEnd registers the end callback, replacing any previous one.
func (c *Controller) DoOnEnd(fn func(StoryProgress)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEnd = fn
}

// DoOnCancel registers the cancel callback, replacing any previous one.
func (c *Controller) DoOnCancel(fn func(StoryProgress)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCancel = fn
}

// Measure recomputes the track and fill from the host bounds.
func (c *Controller) Measure(width, height float32, pad Padding) {
	c.mu.Lock()
	c.geometry.RecomputeTrack(width, height, pad)
	c.geometry.RecomputeFill(c.progress)
	c.mu.Unlock()
}

// Geometry returns copies of the track and fill regions.
func (c *Controller) Geometry() (track, fill RoundRect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.geometry.Track(), c.geometry.Fill()
}

// OnMount is called by the host when the bar is attached to a live view.
func (c *Controller) OnMount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mounted = true
}

// OnUnmount is called by the host when the bar is torn down.
// It cancels the run in flight and drops every listener of that run.
func (c *Controller) OnUnmount() {
	c.Cancel()

	c.mu.Lock()
	c.mounted = false
	c.run++
	c.mu.Unlock()
}

// listener binds driver events to run so that events of an abandoned run are ignored.
func (c *Controller) listener(run uint64) Listener {
	return Listener{
		OnStart: func() {
			c.mu.Lock()
			if c.run != run {
				c.mu.Unlock()
				return
			}
			fn, owner := c.onStart, c.owner
			c.mu.Unlock()
			if fn != nil {
				fn(owner)
			}
		},
		OnTick: func(value float64) {
			c.mu.Lock()
			if c.run != run || !c.mounted || c.state != StatePlay {
				c.mu.Unlock()
				return
			}
			c.setProgressLocked(value)
			c.mu.Unlock()
			c.requestRepaint()
		},
		OnCancel: func() {
			c.mu.Lock()
			if c.run != run {
				c.mu.Unlock()
				return
			}
			c.setProgressLocked(startValue)
			fn, owner := c.onCancel, c.owner
			c.mu.Unlock()
			c.requestRepaint()
			if fn != nil {
				fn(owner)
			}
		},
		OnEnd: func() {
			c.mu.Lock()
			if c.run != run || !c.state.Running() {
				c.mu.Unlock()
				return
			}
			c.state = StateEnd
			c.setProgressLocked(endValue)
			fn, owner := c.onEnd, c.owner
			c.mu.Unlock()
			if fn != nil {
				fn(owner)
			}
		},
	}
}

func (c *Controller) resetProgress(value float64) {
	c.mu.Lock()
	c.setProgressLocked(value)
	c.mu.Unlock()
	c.requestRepaint()
}

func (c *Controller) setProgressLocked(value float64) {
	c.progress = clamp01(value)
	c.geometry.RecomputeFill(c.progress)
}

func (c *Controller) requestRepaint() {
	c.mu.Lock()
	fn := c.invalidate
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
