// Package storyview provides the story progress bar as a Fyne widget.
package storyview

import (
	"image/color"
	"sync"
	"time"

	"storyprogress/progress"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// StoryProgressView is a pill shaped track with a fill growing linearly from
// empty to full, like the segment indicators of a story viewer.
// All progress operations come from the embedded controller.
type StoryProgressView struct {
	widget.BaseWidget
	*progress.Controller

	padMu   sync.RWMutex
	padding progress.Padding
}

var _ progress.StoryProgress = (*StoryProgressView)(nil)

// Option configures a StoryProgressView at construction.
type Option func(*viewConfig)

type viewConfig struct {
	driver   progress.Driver
	duration time.Duration
	front    color.Color
	back     color.Color
	padding  progress.Padding
}

// WithDriver replaces the default fyne.Animation based driver.
func WithDriver(d progress.Driver) Option {
	return func(c *viewConfig) { c.driver = d }
}

// WithDuration sets the run length.
func WithDuration(d time.Duration) Option {
	return func(c *viewConfig) { c.duration = d }
}

// WithColors sets the fill (front) and track (back) colors.
func WithColors(front, back color.Color) Option {
	return func(c *viewConfig) {
		c.front = front
		c.back = back
	}
}

// WithPadding insets the track inside the widget bounds.
func WithPadding(p progress.Padding) Option {
	return func(c *viewConfig) { c.padding = p }
}

// NewStoryProgressView creates an idle bar.
func NewStoryProgressView(opts ...Option) *StoryProgressView {
	cfg := viewConfig{
		duration: progress.DefaultDuration,
		front:    progress.DefaultFrontColor,
		back:     progress.DefaultBackColor,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.driver == nil {
		cfg.driver = NewAnimationDriver()
	}

	v := &StoryProgressView{
		Controller: progress.NewController(cfg.driver),
		padding:    cfg.padding,
	}
	v.ExtendBaseWidget(v)
	v.SetOwner(v)
	v.SetFrontColor(cfg.front)
	v.SetBackColor(cfg.back)
	v.SetDuration(cfg.duration)
	v.SetInvalidator(v.Refresh)
	return v
}

// Padding returns the inset of the track.
func (v *StoryProgressView) Padding() progress.Padding {
	v.padMu.RLock()
	defer v.padMu.RUnlock()
	return v.padding
}

// SetPadding changes the inset of the track and relays out the bar.
func (v *StoryProgressView) SetPadding(p progress.Padding) {
	v.padMu.Lock()
	v.padding = p
	v.padMu.Unlock()

	size := v.Size()
	v.Measure(size.Width, size.Height, p)
	v.Refresh()
}

// CreateRenderer is a private method to Fyne which links this widget to its renderer.
// Creating the renderer is the point at which the bar becomes attached to a canvas.
func (v *StoryProgressView) CreateRenderer() fyne.WidgetRenderer {
	v.ExtendBaseWidget(v)
	v.OnMount()
	return newStoryProgressRenderer(v)
}
