package cmd

import (
	"fmt"
	"image/color"
	"time"

	"storyprogress/progress"
	"storyprogress/shared"
	"storyprogress/storyview"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const statusInterval = 100 * time.Millisecond

type storyTheme struct {
	fyne.Theme
}

func newStoryTheme() *storyTheme {
	return &storyTheme{Theme: theme.DarkTheme()}
}

func (m storyTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNameBackground {
		return color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff}
	}
	return m.Theme.Color(name, variant)
}

// newBars builds one story bar per segment from the settings.
func newBars(settings *shared.Settings, driver func() progress.Driver) []*storyview.StoryProgressView {
	bars := make([]*storyview.StoryProgressView, settings.Segments)
	for i := range bars {
		opts := []storyview.Option{
			storyview.WithDuration(settings.Duration),
			storyview.WithColors(settings.FrontColor, settings.BackColor),
			storyview.WithPadding(progress.NewPadding(settings.Padding)),
		}
		if driver != nil {
			opts = append(opts, storyview.WithDriver(driver()))
		}
		bars[i] = storyview.NewStoryProgressView(opts...)
	}
	return bars
}

func statusText(seq *storySequence) string {
	bar := seq.Bar()
	return fmt.Sprintf("Story %d/%d · %s · %d%%", seq.Active()+1, len(seq.bars), bar.State(), bar.CurrentProgress())
}

// newStatusLabel shows the status of seq. It is refreshed right away when
// another bar becomes active, and by the caller's ticker otherwise.
func newStatusLabel(seq *storySequence) *widget.Label {
	label := widget.NewLabel(statusText(seq))
	seq.mu.Lock()
	seq.onChange = func(int) { label.SetText(statusText(seq)) }
	seq.mu.Unlock()
	return label
}

func runWindow(settings *shared.Settings) {
	a := app.NewWithID("app.storyprogress.storyview")
	a.Settings().SetTheme(newStoryTheme())
	w := a.NewWindow(shared.WindowTitle("Story Progress"))

	views := newBars(settings, nil)
	bars := make([]storyBar, len(views))
	cells := make([]fyne.CanvasObject, len(views))
	for i, v := range views {
		bars[i] = v
		cells[i] = v
	}
	seq := newStorySequence(bars, settings.Loop)

	statusLabel := newStatusLabel(seq)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(statusInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				statusLabel.SetText(statusText(seq))
			}
		}
	}()

	controls := newMenuButton("Controls", controlItems(seq))
	content := container.NewBorder(
		container.NewGridWithColumns(len(cells), cells...),
		container.NewHBox(controls, statusLabel),
		nil, nil,
		widget.NewLabelWithStyle("Stories play one after another. Use Controls to pause or skip.", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
	)

	w.SetContent(container.NewPadded(content))
	w.Resize(fyne.NewSize(480, 320))
	w.SetCloseIntercept(func() {
		close(done)
		seq.Cancel()
		w.Close()
	})

	seq.Play()
	w.ShowAndRun()
}
