package core

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Controller drives the analysis lifecycle. It owns the selected input and,
// through the renderer, the last successful result.
type Controller struct {
	validator *Validator
	submitter Submitter
	renderer  *Renderer
	tracker   *RateLimitTracker
	view      View
	notifier  Notifier
	clipboard Clipboard
	logger    *zap.Logger

	inFlight atomic.Bool

	mu    sync.Mutex
	mode  InputMode
	file  *InputFile
	text  string
	state State
}

// NewController creates a new controller
func NewController(
	validator *Validator,
	submitter Submitter,
	renderer *Renderer,
	tracker *RateLimitTracker,
	view View,
	notifier Notifier,
	clipboard Clipboard,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		validator: validator,
		submitter: submitter,
		renderer:  renderer,
		tracker:   tracker,
		view:      view,
		notifier:  notifier,
		clipboard: clipboard,
		logger:    logger,
	}
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns the active input mode
func (c *Controller) Mode() InputMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SelectedFile returns the accepted file, if any
func (c *Controller) SelectedFile() *InputFile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file
}

// LastResult returns the most recent successful result, if any
func (c *Controller) LastResult() *AnalysisResult {
	return c.renderer.LastResult()
}

// SetMode switches the input that Analyze submits
func (c *Controller) SetMode(mode InputMode) {
	c.mu.Lock()
	c.mode = mode
	c.mu.Unlock()
}

// SelectFile validates and stores a file. Previously typed text is kept.
func (c *Controller) SelectFile(file *InputFile) bool {
	if _, err := c.validator.ValidateFile(file); err != nil {
		c.fail(err)
		return false
	}

	c.mu.Lock()
	c.file = file
	c.mu.Unlock()

	c.view.ShowFileName(Confirmation(file))
	c.logger.Debug("File selected",
		zap.String("file", file.Name),
		zap.String("mime_type", file.MimeType),
		zap.Int64("size", file.Size))
	return true
}

// EditText replaces the pasted text and drops any selected file
func (c *Controller) EditText(text string) {
	c.mu.Lock()
	c.text = text
	c.file = nil
	if c.state != StateSubmitting && c.state != StateValidating {
		c.state = StateIdle
	}
	c.mu.Unlock()

	c.view.ShowCharCount(len([]rune(text)))
	c.view.HideFileName()
}

// Analyze validates the active input and submits it, blocking until the
// request settles. It returns false without doing anything while another
// submission is in flight.
func (c *Controller) Analyze(ctx context.Context) bool {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.logger.Debug("Analyze ignored, submission in flight")
		return false
	}
	defer c.inFlight.Store(false)

	c.mu.Lock()
	c.state = StateValidating
	mode, file, text := c.mode, c.file, c.text
	c.mu.Unlock()

	req, err := c.validator.Validate(mode, file, text)
	if err != nil {
		c.fail(err)
		return true
	}

	c.setState(StateSubmitting)
	c.view.SetBusy(true)
	defer c.view.SetBusy(false)

	c.logger.Info("Submitting email for analysis", zap.Stringer("mode", mode))
	startTime := time.Now()
	sub, err := c.submitter.Submit(ctx, req)
	duration := time.Since(startTime)
	if err != nil {
		c.logger.Warn("Analysis failed", zap.Error(err), zap.Duration("duration", duration))
		c.fail(err)
		return true
	}

	c.logger.Info("Analysis complete",
		zap.String("category", sub.Result.Category),
		zap.Float64("confidence", sub.Result.Confidence),
		zap.String("request_id", sub.Result.RequestID),
		zap.Duration("duration", duration))

	c.setState(StateSuccess)
	c.renderer.RenderSuccess(sub.Result)
	c.tracker.Track(sub.Headers)
	return true
}

// Reset clears inputs and results and returns to idle. The rate-limit
// banner is hidden too, but its pending timer keeps running.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.mode = ModeUpload
	c.file = nil
	c.text = ""
	c.state = StateIdle
	c.mu.Unlock()

	c.view.ShowCharCount(0)
	c.view.HideFileName()
	c.view.HideRateLimit()
	c.renderer.Clear()
}

// CopyResult exports the last result to the clipboard. Failures are
// reported through the notifier, not the result area.
func (c *Controller) CopyResult(ctx context.Context) bool {
	text, ok := c.renderer.Export()
	if !ok {
		return false
	}

	if err := c.clipboard.WriteText(ctx, text); err != nil {
		c.logger.Error("Failed to copy result", zap.Error(err))
		c.notifier.Alert(MsgCopyFailed)
		return false
	}
	return true
}

func (c *Controller) fail(err error) {
	es := AsErrorState(err)
	c.setState(StateError)
	c.logger.Debug("Showing error",
		zap.Stringer("kind", es.Kind()),
		zap.Int("status", es.StatusCode),
		zap.String("message", es.Message))
	c.renderer.RenderError(Describe(*es))
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
