package core

import (
	"net/http"
	"time"
)

// Fixed input limits
const (
	MaxFileSizeMB  = 5
	MaxFileSize    = MaxFileSizeMB * 1024 * 1024
	MaxTextLength  = 1000000
	MimeTypePDF    = "application/pdf"
	MimeTypeText   = "text/plain"
	TextUploadName = "email.txt"
)

// InputMode selects which input is submitted
type InputMode int

const (
	ModeUpload InputMode = iota
	ModeText
)

func (m InputMode) String() string {
	if m == ModeText {
		return "text"
	}
	return "upload"
}

// InputFile is a file chosen by the user
type InputFile struct {
	Name     string
	MimeType string
	Size     int64
	Data     []byte
}

// SizeMB returns the file size in megabytes
func (f *InputFile) SizeMB() float64 {
	return float64(f.Size) / (1024 * 1024)
}

// AnalysisRequest holds exactly one of Text or File
type AnalysisRequest struct {
	Text string
	File *InputFile
}

// Upload returns the request as the file that goes on the wire. Text is
// wrapped in a synthetic plain-text file.
func (r *AnalysisRequest) Upload() *InputFile {
	if r.File != nil {
		return r.File
	}
	return &InputFile{
		Name:     TextUploadName,
		MimeType: MimeTypeText,
		Size:     int64(len(r.Text)),
		Data:     []byte(r.Text),
	}
}

// AnalysisResult is the classification returned by the backend
type AnalysisResult struct {
	Category       string    `json:"category"`
	Confidence     float64   `json:"confidence"`
	SuggestedReply string    `json:"suggested_reply"`
	Reasoning      string    `json:"reasoning"`
	RequestID      string    `json:"-"`
	AnalyzedAt     time.Time `json:"-"`
}

// Submission is a settled, successful analysis
type Submission struct {
	Result  *AnalysisResult
	Headers http.Header
}

// RateLimitStatus is the quota reported by the most recent response
type RateLimitStatus struct {
	Limit5Min     int
	Remaining5Min int
	Limit24h      int
	Remaining24h  int
}

// ResultView is a classification formatted for display
type ResultView struct {
	Label          string
	Percent        int
	IndicatorWidth int
	SuggestedReply string
	Reasoning      string
}

// State is the controller's position in the analysis lifecycle
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}
