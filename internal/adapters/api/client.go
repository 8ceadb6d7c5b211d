package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/email-classifier/internal/core"
	"go.uber.org/zap"
)

const (
	analyzePath     = "/analyze"
	fileField       = "file"
	maxResponseSize = 1 << 20
)

// Client is an implementation of the Submitter interface using the
// classification backend's HTTP API
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

type errorResponse struct {
	Detail string `json:"detail"`
}

// NewClient creates a new API client. The timeout bounds the whole
// request, including reading the response.
func NewClient(baseURL string, timeout time.Duration, userAgent string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		logger:     logger,
	}
}

// Submit uploads the request as a single multipart file and decodes the
// classification. It never retries.
func (c *Client) Submit(ctx context.Context, req *core.AnalysisRequest) (*core.Submission, error) {
	requestID := uuid.NewString()
	upload := req.Upload()

	httpReq, err := c.newRequest(ctx, upload, requestID)
	if err != nil {
		c.logger.Error("Failed to build analysis request",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, core.NewTransportError(err.Error())
	}

	c.logger.Debug("Sending analysis request",
		zap.String("request_id", requestID),
		zap.String("file", upload.Name),
		zap.String("mime_type", upload.MimeType),
		zap.Int64("size", upload.Size))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("No response from backend",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, core.NewTransportError(core.MsgNoResponse)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		c.logger.Warn("Failed to read response body",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, core.NewTransportError(core.MsgNoResponse)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		// Bodies without a detail fall back to the generic message
		_ = json.Unmarshal(body, &errResp)
		c.logger.Debug("Backend returned an error",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", errResp.Detail))
		return nil, core.NewProtocolError(resp.StatusCode, errResp.Detail)
	}

	result, err := decodeResult(body)
	if err != nil {
		c.logger.Error("Invalid analysis response",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		return nil, core.NewProtocolError(resp.StatusCode, "")
	}
	result.RequestID = requestID
	result.AnalyzedAt = time.Now()

	return &core.Submission{
		Result:  result,
		Headers: resp.Header,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, upload *core.InputFile, requestID string) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// CreateFormFile would force application/octet-stream; the backend
	// checks the part's content type
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fileField, quoteEscaper.Replace(upload.Name)))
	header.Set("Content-Type", upload.MimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart section: %w", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, fmt.Errorf("failed to write file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, &body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	return httpReq, nil
}

func decodeResult(body []byte) (*core.AnalysisResult, error) {
	var result core.AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Category == "" {
		return nil, fmt.Errorf("response has no category")
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return nil, fmt.Errorf("confidence %v outside [0,1]", result.Confidence)
	}
	return &result, nil
}
