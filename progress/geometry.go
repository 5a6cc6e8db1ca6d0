package progress

// RoundRect is a rectangle with independent horizontal and vertical corner radii.
type RoundRect struct {
	Left, Top, Right, Bottom float32
	RadiusX, RadiusY         float32
}

// Width returns Right - Left.
func (r RoundRect) Width() float32 {
	return r.Right - r.Left
}

// Height returns Bottom - Top.
func (r RoundRect) Height() float32 {
	return r.Bottom - r.Top
}

// Padding is the inset applied to the widget bounds before the track is laid out.
type Padding struct {
	Left, Top, Right, Bottom float32
}

// NewPadding returns the same inset on all four sides.
func NewPadding(all float32) Padding {
	return Padding{Left: all, Top: all, Right: all, Bottom: all}
}

// Geometry holds the track (back bar) and the fill (front bar).
type Geometry struct {
	track RoundRect
	fill  RoundRect
}

// RecomputeTrack sets the track to the padded content box and makes it pill shaped.
// The fill is not touched; call RecomputeFill afterwards.
func (g *Geometry) RecomputeTrack(width, height float32, pad Padding) {
	left := pad.Left
	top := pad.Top
	right := width - pad.Right
	bottom := height - pad.Bottom

	// Oversized padding collapses the box instead of inverting it.
	if right < left {
		right = left
	}
	if bottom < top {
		bottom = top
	}

	g.track = RoundRect{Left: left, Top: top, Right: right, Bottom: bottom}
	radius := g.track.Height() / 2
	g.track.RadiusX = radius
	g.track.RadiusY = radius
}

// RecomputeFill derives the fill from the track and a progress fraction.
// The right edge is Left + p*Width for every p, with both endpoints pinned exactly.
func (g *Geometry) RecomputeFill(p float64) {
	p = clamp01(p)

	g.fill = g.track
	switch {
	case p == 0:
		g.fill.Right = g.track.Left
	case p == 1:
		g.fill.Right = g.track.Right
	default:
		g.fill.Right = g.track.Left + float32(p)*g.track.Width()
	}
}

// Track returns a copy of the track region.
func (g *Geometry) Track() RoundRect {
	return g.track
}

// Fill returns a copy of the fill region.
func (g *Geometry) Fill() RoundRect {
	return g.fill
}

func clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
