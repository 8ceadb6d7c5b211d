package core

import (
	"context"
	"time"
)

// Submitter sends an analysis request to the classification backend.
// Every failure is returned as an *ErrorState.
type Submitter interface {
	Submit(ctx context.Context, req *AnalysisRequest) (*Submission, error)
}

// View is the display surface driven by the core
type View interface {
	// SetBusy enables or disables the analyze trigger
	SetBusy(busy bool)

	ShowFileName(label string)
	HideFileName()
	ShowCharCount(n int)

	// ShowSuccess and ShowError each replace whatever the other showed
	ShowSuccess(result ResultView)
	ShowError(message string)
	HideResults()
	ScrollToResults()

	ShowRateLimit(text string)
	HideRateLimit()
}

// Notifier reports problems outside the result area
type Notifier interface {
	Alert(message string)
}

// Clipboard receives exported results
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Scheduler runs deferred actions
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}
