package ports

import (
	"context"

	"github.com/mikey/email-classifier/internal/core"
)

// Analyzer defines the operations a user interface shell drives
type Analyzer interface {
	// SetMode switches between the upload and text inputs
	SetMode(mode core.InputMode)

	// SelectFile validates and stores a file for upload
	SelectFile(file *core.InputFile) bool

	// EditText replaces the pasted text and clears any selected file
	EditText(text string)

	// Analyze submits the active input; false means it was ignored
	Analyze(ctx context.Context) bool

	// Reset returns to the initial state
	Reset()

	// CopyResult exports the last result to the clipboard
	CopyResult(ctx context.Context) bool

	// State returns the current lifecycle state
	State() core.State
}
