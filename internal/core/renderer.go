package core

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ScrollDelay lets the layout settle before the result area is scrolled to
const ScrollDelay = 100 * time.Millisecond

const exportTemplate = `CLASSIFICAÇÃO DE EMAIL
======================

Categoria: %s
Confiança: %d%%

Resposta Sugerida:
%s

Análise:
%s`

// FormatCategory turns "meeting_request" into "Meeting Request". Only the
// first character of each underscore-separated word changes.
func FormatCategory(category string) string {
	upper := cases.Upper(language.Und)
	words := strings.Split(category, "_")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = upper.String(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// ConfidencePercent rounds a [0,1] confidence to a whole percentage
func ConfidencePercent(confidence float64) int {
	return int(math.Round(confidence * 100))
}

// NewResultView formats a result for display
func NewResultView(result *AnalysisResult) ResultView {
	pct := ConfidencePercent(result.Confidence)
	return ResultView{
		Label:          FormatCategory(result.Category),
		Percent:        pct,
		IndicatorWidth: min(max(pct, 0), 100),
		SuggestedReply: result.SuggestedReply,
		Reasoning:      result.Reasoning,
	}
}

// Renderer owns the success/error display and the last successful result
type Renderer struct {
	view      View
	scheduler Scheduler
	logger    *zap.Logger

	mu         sync.RWMutex
	lastResult *AnalysisResult
}

// NewRenderer creates a new renderer
func NewRenderer(view View, scheduler Scheduler, logger *zap.Logger) *Renderer {
	return &Renderer{
		view:      view,
		scheduler: scheduler,
		logger:    logger,
	}
}

// RenderSuccess shows a classification and remembers it for export
func (r *Renderer) RenderSuccess(result *AnalysisResult) {
	r.mu.Lock()
	r.lastResult = result
	r.mu.Unlock()

	r.view.ShowSuccess(NewResultView(result))
	r.scheduler.AfterFunc(ScrollDelay, r.view.ScrollToResults)
}

// RenderError shows a message in place of any previous result
func (r *Renderer) RenderError(message string) {
	r.view.ShowError(message)
	r.scheduler.AfterFunc(ScrollDelay, r.view.ScrollToResults)
}

// LastResult returns the most recent successful result, if any
func (r *Renderer) LastResult() *AnalysisResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastResult
}

// Export formats the last result for the clipboard
func (r *Renderer) Export() (string, bool) {
	result := r.LastResult()
	if result == nil {
		return "", false
	}

	text := fmt.Sprintf(exportTemplate,
		FormatCategory(result.Category),
		ConfidencePercent(result.Confidence),
		result.SuggestedReply,
		result.Reasoning)

	return strings.TrimSpace(text), true
}

// Clear forgets the last result and hides the result area
func (r *Renderer) Clear() {
	r.mu.Lock()
	r.lastResult = nil
	r.mu.Unlock()

	r.view.HideResults()
	r.logger.Debug("Cleared last result")
}
