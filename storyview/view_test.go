package storyview

import (
	"image/color"
	"sync"
	"testing"
	"time"

	"storyprogress/progress"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T, opts ...Option) (*StoryProgressView, *storyProgressRenderer, *progress.ManualDriver) {
	t.Helper()
	test.NewTempApp(t)

	driver := progress.NewManualDriver()
	opts = append([]Option{WithDriver(driver), WithDuration(time.Second)}, opts...)
	v := NewStoryProgressView(opts...)
	r, ok := test.WidgetRenderer(v).(*storyProgressRenderer)
	require.True(t, ok)
	r.Layout(fyne.NewSize(200, 10))
	return v, r, driver
}

func TestNewStoryProgressViewDefaults(t *testing.T) {
	test.NewTempApp(t)
	v := NewStoryProgressView()

	assert.Equal(t, progress.StateNone, v.State())
	assert.Equal(t, progress.DefaultDuration, v.Duration())
	assert.Equal(t, progress.DefaultFrontColor, v.FrontColor())
	assert.Equal(t, progress.DefaultBackColor, v.BackColor())
	assert.Equal(t, progress.Padding{}, v.Padding())
}

func TestRendererDrawsTrackBeneathFill(t *testing.T) {
	_, r, _ := newTestView(t)

	objects := r.Objects()
	require.Len(t, objects, 2)
	assert.Same(t, r.track, objects[0])
	assert.Same(t, r.fill, objects[1])
}

func TestRendererLayoutAppliesPadding(t *testing.T) {
	_, r, _ := newTestView(t, WithPadding(progress.NewPadding(2)))

	assert.Equal(t, fyne.NewPos(2, 2), r.track.Position())
	assert.Equal(t, fyne.NewSize(196, 6), r.track.Size())
	assert.Equal(t, float32(3), r.track.CornerRadius)
	assert.False(t, r.fill.Visible())
}

func TestRendererFollowsTicks(t *testing.T) {
	v, r, driver := newTestView(t)

	v.Start()
	driver.Advance(500 * time.Millisecond)

	assert.True(t, r.fill.Visible())
	assert.Equal(t, r.track.Position(), r.fill.Position())
	assert.InDelta(t, 100, r.fill.Size().Width, 1e-3)
	assert.Equal(t, r.track.Size().Height, r.fill.Size().Height)
	assert.Equal(t, r.track.CornerRadius, r.fill.CornerRadius)
	assert.Equal(t, 50, v.CurrentProgress())

	driver.Finish()
	assert.Equal(t, r.track.Size(), r.fill.Size())
	assert.Equal(t, progress.StateEnd, v.State())
}

func TestRendererClearAndFill(t *testing.T) {
	v, r, _ := newTestView(t)

	v.FillInProgress()
	assert.True(t, r.fill.Visible())
	assert.Equal(t, r.track.Size(), r.fill.Size())

	v.ClearProgress()
	assert.False(t, r.fill.Visible())
}

func TestColorsApplyOnNextRefresh(t *testing.T) {
	v, r, _ := newTestView(t)
	red := color.NRGBA{R: 0xff, A: 0xff}
	gray := color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

	v.SetFrontColor(red)
	v.SetBackColor(gray)
	assert.NotEqual(t, red, r.fill.FillColor)

	v.Refresh()
	assert.Equal(t, red, r.fill.FillColor)
	assert.Equal(t, gray, r.track.FillColor)
}

func TestSetPaddingRelaysOut(t *testing.T) {
	v, r, _ := newTestView(t)
	v.Resize(fyne.NewSize(200, 10))

	v.SetPadding(progress.Padding{Left: 10, Right: 10, Top: 1, Bottom: 1})

	assert.Equal(t, fyne.NewPos(10, 1), r.track.Position())
	assert.Equal(t, fyne.NewSize(180, 8), r.track.Size())
}

func TestSetPaddingWhileReading(t *testing.T) {
	v, _, _ := newTestView(t)
	pads := []progress.Padding{{}, progress.NewPadding(1), progress.NewPadding(2)}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			v.SetPadding(pads[1+i%2])
		}
	}()
	for i := 0; i < 50; i++ {
		assert.Contains(t, pads, v.Padding())
	}
	wg.Wait()

	assert.Equal(t, progress.NewPadding(2), v.Padding())
}

func TestMinSizeIncludesPadding(t *testing.T) {
	_, r, _ := newTestView(t, WithPadding(progress.Padding{Left: 1, Right: 2, Top: 3, Bottom: 4}))

	assert.Equal(t, fyne.NewSize(minTrackWidth+3, minTrackHeight+7), r.MinSize())
}

func TestCallbacksReceiveTheView(t *testing.T) {
	v, _, driver := newTestView(t)

	var got []progress.StoryProgress
	v.DoOnStart(func(p progress.StoryProgress) { got = append(got, p) })
	v.DoOnEnd(func(p progress.StoryProgress) { got = append(got, p) })

	v.Start()
	driver.Finish()

	require.Len(t, got, 2)
	for _, p := range got {
		assert.Same(t, v, p)
	}
}

func TestDestroyCancelsRun(t *testing.T) {
	v, r, driver := newTestView(t)

	canceled := 0
	ended := 0
	v.DoOnCancel(func(progress.StoryProgress) { canceled++ })
	v.DoOnEnd(func(progress.StoryProgress) { ended++ })

	v.Start()
	driver.Advance(300 * time.Millisecond)
	r.Destroy()

	assert.Equal(t, progress.StateCancel, v.State())
	assert.Equal(t, 0, v.CurrentProgress())
	assert.Equal(t, 1, canceled)

	driver.Finish()
	assert.Equal(t, 0, ended)
}

func TestSetDurationOnView(t *testing.T) {
	v, _, driver := newTestView(t)

	v.Start()
	driver.Advance(400 * time.Millisecond)
	v.SetDuration(5 * time.Second)

	assert.Equal(t, progress.StateCancel, v.State())
	assert.Equal(t, 0, v.CurrentProgress())

	v.Start()
	assert.Equal(t, 5*time.Second, driver.Duration())
}
