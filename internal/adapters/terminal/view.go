package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mikey/email-classifier/internal/core"
	"github.com/mikey/email-classifier/internal/utils"
	"go.uber.org/zap"
)

const indicatorCells = 20

// View renders the analysis state as text. Timers call into it from their
// own goroutines, so writes are serialized.
type View struct {
	out           io.Writer
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	verbose       bool

	mu             sync.Mutex
	busy           bool
	rateLimitShown bool
}

// NewView creates a new terminal view
func NewView(out io.Writer, logger *zap.Logger, textProcessor *utils.TextProcessor, verbose bool) *View {
	return &View{
		out:           out,
		logger:        logger,
		textProcessor: textProcessor,
		verbose:       verbose,
	}
}

// Busy reports whether the analyze trigger is disabled
func (v *View) Busy() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.busy
}

// RateLimitVisible reports whether the quota banner is showing
func (v *View) RateLimitVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rateLimitShown
}

// SetBusy prints a progress line when the analyze trigger is disabled
func (v *View) SetBusy(busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busy = busy
	if busy {
		fmt.Fprintf(v.out, "Analisando...\n")
	}
}

// ShowFileName confirms the accepted file
func (v *View) ShowFileName(label string) {
	v.printf("✓ %s\n", label)
}

// HideFileName is a no-op; printed lines cannot be taken back
func (v *View) HideFileName() {}

// ShowCharCount prints the pasted text length when verbose
func (v *View) ShowCharCount(n int) {
	if v.verbose {
		v.printf("%d caracteres\n", n)
	}
}

// ShowSuccess prints the classification with a confidence bar
func (v *View) ShowSuccess(result core.ResultView) {
	filled := result.IndicatorWidth * indicatorCells / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", indicatorCells-filled)

	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "\n=== Resultado ===\n")
	fmt.Fprintf(v.out, "Categoria: %s\n", result.Label)
	fmt.Fprintf(v.out, "%s %d%% confiança\n", bar, result.Percent)
	fmt.Fprintf(v.out, "\nResposta Sugerida:\n%s\n", result.SuggestedReply)
	fmt.Fprintf(v.out, "\nAnálise:\n%s\n", result.Reasoning)
}

// ShowError prints an error block
func (v *View) ShowError(message string) {
	v.printf("\n=== Erro ===\n%s\n", message)
}

// HideResults only logs, the terminal has no result area to hide
func (v *View) HideResults() {
	v.logger.Debug("Result area hidden")
}

// ScrollToResults only logs, output already ends at the result
func (v *View) ScrollToResults() {
	v.logger.Debug("Scrolled to results")
}

// ShowRateLimit prints the remaining request quota
func (v *View) ShowRateLimit(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rateLimitShown = true
	fmt.Fprintf(v.out, "\nRequisições: %s\n", text)
}

// HideRateLimit marks the quota banner as no longer current
func (v *View) HideRateLimit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rateLimitShown = false
}

// Preview prints the start of pasted text when verbose
func (v *View) Preview(text string) {
	if !v.verbose {
		return
	}
	v.printf("\nPrévia:\n%s\n", v.textProcessor.TruncateText(text, 500))
}

func (v *View) printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format, args...)
}

// Notifier reports alerts on a separate stream, usually stderr
type Notifier struct {
	out    io.Writer
	logger *zap.Logger
	mu     sync.Mutex
}

// NewNotifier creates a new notifier
func NewNotifier(out io.Writer, logger *zap.Logger) *Notifier {
	return &Notifier{out: out, logger: logger}
}

// Alert shows a one-off message
func (n *Notifier) Alert(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.logger.Warn("Alert", zap.String("message", message))
	fmt.Fprintf(n.out, "! %s\n", message)
}
