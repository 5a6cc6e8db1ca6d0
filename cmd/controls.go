package cmd

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// newMenuButton creates a button that shows a popup menu below itself when tapped.
func newMenuButton(label string, menuItems []*fyne.MenuItem) *widget.Button {
	btn := widget.NewButton(label+" ▼", nil)
	btn.OnTapped = func() {
		app := fyne.CurrentApp()
		if app == nil {
			return
		}
		c := app.Driver().CanvasForObject(btn)
		if c == nil {
			return
		}
		pos := app.Driver().AbsolutePositionForObject(btn)
		pos.Y += btn.Size().Height
		widget.ShowPopUpMenuAtPosition(fyne.NewMenu("", menuItems...), c, pos)
	}
	return btn
}

// controlItems maps the progress operations onto menu entries acting on the sequence.
func controlItems(seq *storySequence) []*fyne.MenuItem {
	return []*fyne.MenuItem{
		fyne.NewMenuItem("Start", seq.Play),
		fyne.NewMenuItem("Pause", seq.Pause),
		fyne.NewMenuItem("Resume", seq.Resume),
		fyne.NewMenuItem("Cancel", seq.Cancel),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear", func() { seq.Bar().ClearProgress() }),
		fyne.NewMenuItem("Fill", func() { seq.Bar().FillInProgress() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Previous story", seq.Previous),
		fyne.NewMenuItem("Next story", seq.Next),
	}
}
