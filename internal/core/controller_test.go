package core

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"
)

type controllerHarness struct {
	controller *Controller
	view       *fakeView
	scheduler  *fakeScheduler
	submitter  *fakeSubmitter
	notifier   *fakeNotifier
	clipboard  *fakeClipboard
}

func newHarness(t *testing.T, submitter *fakeSubmitter) *controllerHarness {
	t.Helper()
	logger := zaptest.NewLogger(t)
	h := &controllerHarness{
		view:      &fakeView{},
		scheduler: &fakeScheduler{},
		submitter: submitter,
		notifier:  &fakeNotifier{},
		clipboard: &fakeClipboard{},
	}
	h.controller = NewController(
		NewValidator(logger),
		submitter,
		NewRenderer(h.view, h.scheduler, logger),
		NewRateLimitTracker(h.view, h.scheduler, logger),
		h.view,
		h.notifier,
		h.clipboard,
		logger,
	)
	return h
}

func successSubmitter() *fakeSubmitter {
	return &fakeSubmitter{
		submission: &Submission{
			Result:  sampleResult(),
			Headers: rateLimitHeaders("10", "7", "100", "42"),
		},
	}
}

func TestAnalyzeTextSuccess(t *testing.T) {
	h := newHarness(t, successSubmitter())

	h.controller.SetMode(ModeText)
	h.controller.EditText("  Olá, podemos marcar uma reunião?  ")
	if !h.controller.Analyze(context.Background()) {
		t.Fatal("expected analysis to run")
	}

	calls := h.submitter.calls()
	if len(calls) != 1 || calls[0].Text != "Olá, podemos marcar uma reunião?" || calls[0].File != nil {
		t.Fatalf("unexpected submissions %+v", calls)
	}
	if h.controller.State() != StateSuccess {
		t.Fatalf("expected success, got %s", h.controller.State())
	}

	st := h.view.snapshot()
	if st.visible != "success" || st.success.Label != "Meeting Request" || st.success.Percent != 87 {
		t.Fatalf("unexpected view %+v", st)
	}
	if !st.rateShown || st.rateLimit != "7/10 (5 min) | 42/100 (24h)" {
		t.Fatalf("expected rate-limit banner, got %+v", st)
	}
	if len(st.busyHistory) != 2 || !st.busyHistory[0] || st.busyHistory[1] {
		t.Fatalf("expected trigger disabled then enabled, got %v", st.busyHistory)
	}
	if h.controller.LastResult() == nil {
		t.Fatal("expected last result to be kept")
	}
}

func TestAnalyzeValidationErrorSkipsNetwork(t *testing.T) {
	h := newHarness(t, successSubmitter())

	h.controller.SetMode(ModeText)
	h.controller.EditText("   ")
	h.controller.Analyze(context.Background())

	if len(h.submitter.calls()) != 0 {
		t.Fatal("validation errors must not reach the network")
	}
	st := h.view.snapshot()
	if st.visible != "error" || st.errorMsg != MsgEmptyText {
		t.Fatalf("unexpected view %+v", st)
	}
	if len(st.busyHistory) != 0 {
		t.Fatal("trigger must not be disabled for a local error")
	}
	if h.controller.State() != StateError {
		t.Fatalf("expected error state, got %s", h.controller.State())
	}
}

func TestAnalyzeUploadWithoutFile(t *testing.T) {
	h := newHarness(t, successSubmitter())

	h.controller.Analyze(context.Background())

	if st := h.view.snapshot(); st.errorMsg != MsgNoFile {
		t.Fatalf("expected missing file message, got %q", st.errorMsg)
	}
}

func TestAnalyzeProtocolErrorsAreDescribed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rate limited", NewProtocolError(http.StatusTooManyRequests, "slow down"), MsgRateLimited},
		{"bad request detail", NewProtocolError(http.StatusBadRequest, "Arquivo vazio ou sem conteúdo válido"), "Arquivo vazio ou sem conteúdo válido"},
		{"no response", NewTransportError(MsgNoResponse), MsgNoResponse},
		{"foreign error", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, &fakeSubmitter{err: tt.err})
			h.controller.SetMode(ModeText)
			h.controller.EditText("hello")
			h.controller.Analyze(context.Background())

			st := h.view.snapshot()
			if st.visible != "error" || st.errorMsg != tt.want {
				t.Fatalf("expected %q, got %+v", tt.want, st)
			}
			if st.rateShown {
				t.Fatal("failures carry no rate-limit banner")
			}
		})
	}
}

func TestAnalyzeIgnoredWhileInFlight(t *testing.T) {
	submitter := successSubmitter()
	submitter.entered = make(chan struct{})
	submitter.release = make(chan struct{})
	h := newHarness(t, submitter)

	h.controller.SetMode(ModeText)
	h.controller.EditText("hello")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.controller.Analyze(context.Background())
	}()
	<-submitter.entered

	if h.controller.State() != StateSubmitting {
		t.Fatalf("expected submitting, got %s", h.controller.State())
	}
	if h.controller.Analyze(context.Background()) {
		t.Fatal("expected second trigger to be ignored")
	}

	// Other input keeps working while the request is pending
	h.controller.SetMode(ModeUpload)
	h.controller.EditText("edited")

	close(submitter.release)
	wg.Wait()

	if n := len(submitter.calls()); n != 1 {
		t.Fatalf("expected one network call, got %d", n)
	}
	if h.controller.State() != StateSuccess {
		t.Fatalf("expected success, got %s", h.controller.State())
	}
}

func TestEditTextClearsSelectedFile(t *testing.T) {
	h := newHarness(t, successSubmitter())
	file := &InputFile{Name: "mail.txt", MimeType: MimeTypeText, Size: 5, Data: []byte("hello")}

	if !h.controller.SelectFile(file) {
		t.Fatal("expected file accepted")
	}
	if st := h.view.snapshot(); st.fileLabel != "mail.txt (0.00 MB)" {
		t.Fatalf("unexpected file label %q", st.fileLabel)
	}

	h.controller.EditText("typed")

	if h.controller.SelectedFile() != nil {
		t.Fatal("typing must clear the selected file")
	}
	st := h.view.snapshot()
	if st.fileLabel != "" || st.charCount != 5 {
		t.Fatalf("unexpected view %+v", st)
	}
}

func TestSelectFileKeepsTypedText(t *testing.T) {
	h := newHarness(t, successSubmitter())
	file := &InputFile{Name: "mail.pdf", MimeType: MimeTypePDF, Size: 4, Data: []byte("%PDF")}

	h.controller.EditText("typed first")
	h.controller.SelectFile(file)

	h.controller.SetMode(ModeText)
	h.controller.Analyze(context.Background())
	h.controller.SetMode(ModeUpload)
	h.controller.Analyze(context.Background())

	calls := h.submitter.calls()
	if len(calls) != 2 {
		t.Fatalf("expected two submissions, got %d", len(calls))
	}
	if calls[0].Text != "typed first" {
		t.Fatalf("expected text tab content, got %+v", calls[0])
	}
	if calls[1].File != file {
		t.Fatalf("expected upload tab content, got %+v", calls[1])
	}
}

func TestSelectFileRejected(t *testing.T) {
	h := newHarness(t, successSubmitter())

	if h.controller.SelectFile(&InputFile{Name: "photo.png", MimeType: "image/png", Size: 10}) {
		t.Fatal("expected rejection")
	}
	if h.controller.SelectedFile() != nil {
		t.Fatal("rejected file must not be stored")
	}
	if st := h.view.snapshot(); st.errorMsg != MsgInvalidType {
		t.Fatalf("unexpected error %q", st.errorMsg)
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	h := newHarness(t, successSubmitter())

	h.controller.SetMode(ModeText)
	h.controller.EditText("hello")
	h.controller.Analyze(context.Background())
	h.controller.Reset()

	if h.controller.State() != StateIdle || h.controller.Mode() != ModeUpload {
		t.Fatalf("expected idle upload mode, got %s/%s", h.controller.State(), h.controller.Mode())
	}
	if h.controller.LastResult() != nil {
		t.Fatal("reset must clear the last result")
	}
	st := h.view.snapshot()
	if st.visible != "" || st.rateShown || st.charCount != 0 {
		t.Fatalf("unexpected view after reset %+v", st)
	}
	if h.controller.CopyResult(context.Background()) {
		t.Fatal("nothing to copy after reset")
	}
}

func TestCopyResult(t *testing.T) {
	h := newHarness(t, successSubmitter())

	if h.controller.CopyResult(context.Background()) {
		t.Fatal("expected no copy before any result")
	}

	h.controller.SetMode(ModeText)
	h.controller.EditText("hello")
	h.controller.Analyze(context.Background())

	if !h.controller.CopyResult(context.Background()) {
		t.Fatal("expected copy to succeed")
	}
	want, _ := h.controller.renderer.Export()
	if h.clipboard.text != want {
		t.Fatalf("clipboard got %q", h.clipboard.text)
	}
}

func TestCopyFailureUsesNotifier(t *testing.T) {
	h := newHarness(t, successSubmitter())
	h.clipboard.err = errors.New("no display")

	h.controller.SetMode(ModeText)
	h.controller.EditText("hello")
	h.controller.Analyze(context.Background())
	errorsBefore := h.view.snapshot().errors

	if h.controller.CopyResult(context.Background()) {
		t.Fatal("expected copy to fail")
	}
	if len(h.notifier.alerts) != 1 || h.notifier.alerts[0] != MsgCopyFailed {
		t.Fatalf("unexpected alerts %v", h.notifier.alerts)
	}
	st := h.view.snapshot()
	if st.errors != errorsBefore || st.visible != "success" {
		t.Fatal("copy failures must not use the result area")
	}
}
