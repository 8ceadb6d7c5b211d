package core

import (
	"context"
	"sort"
	"sync"
	"time"
)

// fakeScheduler runs deferred actions only when simulated time advances
type fakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []fakeTimer
}

type fakeTimer struct {
	at time.Duration
	f  func()
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers = append(s.timers, fakeTimer{at: s.now + d, f: f})
}

func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	sort.SliceStable(s.timers, func(i, j int) bool { return s.timers[i].at < s.timers[j].at })
	var due []func()
	remaining := s.timers[:0]
	for _, t := range s.timers {
		if t.at <= s.now {
			due = append(due, t.f)
		} else {
			remaining = append(remaining, t)
		}
	}
	s.timers = remaining
	s.mu.Unlock()

	for _, f := range due {
		f()
	}
}

func (s *fakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// viewState is what a fakeView currently shows
type viewState struct {
	busyHistory []bool
	fileLabel   string
	charCount   int
	visible     string
	success     ResultView
	errorMsg    string
	errors      int
	rateLimit   string
	rateShown   bool
	scrolls     int
}

// fakeView records what the core asked it to show
type fakeView struct {
	mu sync.Mutex
	viewState
}

func (v *fakeView) SetBusy(busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busyHistory = append(v.busyHistory, busy)
}

func (v *fakeView) ShowFileName(label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fileLabel = label
}

func (v *fakeView) HideFileName() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fileLabel = ""
}

func (v *fakeView) ShowCharCount(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.charCount = n
}

func (v *fakeView) ShowSuccess(result ResultView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = "success"
	v.success = result
}

func (v *fakeView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = "error"
	v.errorMsg = message
	v.errors++
}

func (v *fakeView) HideResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = ""
}

func (v *fakeView) ScrollToResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrolls++
}

func (v *fakeView) ShowRateLimit(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rateLimit = text
	v.rateShown = true
}

func (v *fakeView) HideRateLimit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rateShown = false
}

func (v *fakeView) snapshot() viewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	st := v.viewState
	st.busyHistory = append([]bool(nil), v.busyHistory...)
	return st
}

// fakeSubmitter returns a canned outcome, optionally blocking until released
type fakeSubmitter struct {
	mu       sync.Mutex
	requests []*AnalysisRequest

	submission *Submission
	err        error

	entered chan struct{}
	release chan struct{}
}

func (s *fakeSubmitter) Submit(ctx context.Context, req *AnalysisRequest) (*Submission, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return s.submission, s.err
}

func (s *fakeSubmitter) calls() []*AnalysisRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*AnalysisRequest(nil), s.requests...)
}

type fakeNotifier struct {
	alerts []string
}

func (n *fakeNotifier) Alert(message string) {
	n.alerts = append(n.alerts, message)
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(ctx context.Context, text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}
