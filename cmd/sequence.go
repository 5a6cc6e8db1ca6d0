package cmd

import (
	"log"
	"sync"

	"storyprogress/progress"
)

// storyBar is what the sequence needs from a single bar.
type storyBar interface {
	progress.StoryProgress
	State() progress.State
}

// storySequence plays bars one after another: when a bar ends the next one
// starts. The bars themselves know nothing about each other.
type storySequence struct {
	mu     sync.Mutex
	bars   []storyBar
	active int
	loop   bool

	// onChange is called whenever another bar becomes active.
	onChange func(index int)
}

func newStorySequence(bars []storyBar, loop bool) *storySequence {
	s := &storySequence{bars: bars, loop: loop}
	for i, bar := range bars {
		i := i
		bar.DoOnStart(func(progress.StoryProgress) {
			log.Printf("story %d/%d started", i+1, len(bars))
		})
		bar.DoOnCancel(func(progress.StoryProgress) {
			log.Printf("story %d/%d cancelled", i+1, len(bars))
		})
		bar.DoOnEnd(func(progress.StoryProgress) {
			log.Printf("story %d/%d ended", i+1, len(bars))
			s.advanceFrom(i)
		})
	}
	return s
}

// Active returns the index of the bar that is playing or would play next.
func (s *storySequence) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Bar returns the active bar.
func (s *storySequence) Bar() storyBar {
	return s.bars[s.Active()]
}

// Play starts the active bar from zero; earlier bars are shown full, later ones empty.
func (s *storySequence) Play() {
	s.playAt(s.Active())
}

// Next skips to the following bar, wrapping around only when looping.
func (s *storySequence) Next() {
	active := s.Active()
	if active+1 >= len(s.bars) && !s.loop {
		s.bars[active].Cancel()
		s.bars[active].FillInProgress()
		return
	}
	s.playAt((active + 1) % len(s.bars))
}

// Previous goes back one bar and plays it again.
func (s *storySequence) Previous() {
	active := s.Active()
	if active > 0 {
		active--
	}
	s.playAt(active)
}

func (s *storySequence) Pause()  { s.Bar().Pause() }
func (s *storySequence) Resume() { s.Bar().Resume() }

// Cancel stops the active bar; the sequence stays on it.
func (s *storySequence) Cancel() { s.Bar().Cancel() }

func (s *storySequence) advanceFrom(index int) {
	next := index + 1
	if next >= len(s.bars) {
		if !s.loop {
			return
		}
		next = 0
	}
	s.playAt(next)
}

func (s *storySequence) playAt(index int) {
	s.mu.Lock()
	previous := s.active
	s.active = index
	onChange := s.onChange
	s.mu.Unlock()

	if previous != index && s.bars[previous].State().Running() {
		s.bars[previous].Cancel()
	}
	for i, bar := range s.bars {
		switch {
		case i < index:
			bar.FillInProgress()
		case i > index:
			bar.ClearProgress()
		}
	}
	s.bars[index].Start()

	if onChange != nil && previous != index {
		onChange(index)
	}
}
