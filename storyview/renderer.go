package storyview

import (
	"storyprogress/progress"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

const (
	minTrackWidth  = 20
	minTrackHeight = 4
)

type storyProgressRenderer struct {
	view    *StoryProgressView
	track   *canvas.Rectangle
	fill    *canvas.Rectangle
	objects []fyne.CanvasObject
}

func newStoryProgressRenderer(v *StoryProgressView) *storyProgressRenderer {
	r := &storyProgressRenderer{
		view:  v,
		track: canvas.NewRectangle(v.BackColor()),
		fill:  canvas.NewRectangle(v.FrontColor()),
	}
	// Track first so the fill is always drawn on top.
	r.objects = []fyne.CanvasObject{r.track, r.fill}
	return r
}

// Destroy runs when the widget leaves the canvas.
func (r *storyProgressRenderer) Destroy() {
	r.view.OnUnmount()
}

func (r *storyProgressRenderer) Layout(size fyne.Size) {
	r.view.Measure(size.Width, size.Height, r.view.Padding())
	r.apply()
}

func (r *storyProgressRenderer) MinSize() fyne.Size {
	p := r.view.Padding()
	return fyne.NewSize(minTrackWidth+p.Left+p.Right, minTrackHeight+p.Top+p.Bottom)
}

func (r *storyProgressRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *storyProgressRenderer) Refresh() {
	r.track.FillColor = r.view.BackColor()
	r.fill.FillColor = r.view.FrontColor()
	r.apply()
	canvas.Refresh(r.view)
}

// apply copies the controller geometry onto the two rectangles.
func (r *storyProgressRenderer) apply() {
	track, fill := r.view.Geometry()
	place(r.track, track)
	place(r.fill, fill)

	if fill.Width() <= 0 {
		r.fill.Hide()
	} else {
		r.fill.Show()
	}
}

func place(rect *canvas.Rectangle, rr progress.RoundRect) {
	rect.Move(fyne.NewPos(rr.Left, rr.Top))
	rect.Resize(fyne.NewSize(rr.Width(), rr.Height()))
	// Fyne draws a single radius; the bar is pill shaped so both axes agree.
	rect.CornerRadius = rr.RadiusY
}
