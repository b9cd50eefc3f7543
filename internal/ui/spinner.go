package ui

import (
	"sync"

	"github.com/hance08/findash/internal/service"
	"github.com/pterm/pterm"
)

// LoadingSpinner follows the transaction store state: it spins while the
// store is Loading and stops on any other state.
type LoadingSpinner struct {
	mu      sync.Mutex
	text    string
	spinner *pterm.SpinnerPrinter
}

func NewLoadingSpinner(text string) *LoadingSpinner {
	return &LoadingSpinner{text: text}
}

// Attach registers the spinner as the state observer of ts.
func (l *LoadingSpinner) Attach(ts *service.TransactionService) *LoadingSpinner {
	ts.OnStateChange(l.Observe)
	return l
}

func (l *LoadingSpinner) Observe(state service.State) {
	if state == service.StateLoading {
		l.start()
		return
	}
	l.Stop()
}

func (l *LoadingSpinner) start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.spinner != nil {
		return
	}
	sp, err := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(l.text)
	if err != nil {
		return
	}
	l.spinner = sp
}

func (l *LoadingSpinner) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.spinner == nil {
		return
	}
	_ = l.spinner.Stop()
	l.spinner = nil
}
