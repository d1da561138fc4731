package tui

import (
	"time"

	"github.com/briandowns/spinner"
)

var startupMessages = []string{
	"Waking up the brain",
	"Brewing digital coffee",
	"Untangling the wires",
	"Feeding the hamsters",
	"Polishing the gears",
	"Teaching it manners",
	"Rounding up the bits",
	"Asking nicely",
	"Charging the batteries",
	"Summoning the robots",
	"Warming up the neurons",
	"Loading awesomeness",
}

// Spinner wraps an animated terminal spinner. Stop erases the line.
type Spinner struct {
	s    *spinner.Spinner
	stop chan struct{}
}

// StartupSpinner shows a spinner with rotating startup messages.
func StartupSpinner() *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Prefix = "   "
	s.Suffix = "  " + startupMessages[0] + "..."
	_ = s.Color("cyan")
	s.Start()

	sp := &Spinner{s: s, stop: make(chan struct{})}
	go func() {
		tick := time.NewTicker(2 * time.Second)
		defer tick.Stop()
		i := 1
		for {
			select {
			case <-sp.stop:
				return
			case <-tick.C:
				s.Suffix = "  " + startupMessages[i%len(startupMessages)] + "..."
				i++
			}
		}
	}()
	return sp
}

// ThinkingSpinner shows a spinner while waiting on a model reply.
func ThinkingSpinner() *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Prefix = "   "
	s.Suffix = "  thinking..."
	_ = s.Color("cyan")
	s.Start()
	return &Spinner{s: s, stop: make(chan struct{})}
}

// Stop halts the spinner and clears its line. Safe to call twice.
func (sp *Spinner) Stop() {
	select {
	case <-sp.stop:
	default:
		close(sp.stop)
	}
	sp.s.Stop()
}
