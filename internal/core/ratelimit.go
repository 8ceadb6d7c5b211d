package core

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Rate-limit response headers
const (
	HeaderLimit5Min     = "X-Ratelimit-Limit-5min"
	HeaderRemaining5Min = "X-Ratelimit-Remaining-5min"
	HeaderLimit24h      = "X-Ratelimit-Limit-24h"
	HeaderRemaining24h  = "X-Ratelimit-Remaining-24h"
)

// RateLimitBannerDuration is how long the quota banner stays up
const RateLimitBannerDuration = 10 * time.Second

// ExtractRateLimit reads the quota headers. It returns nil unless all four
// are present and hold non-negative integers.
func ExtractRateLimit(headers http.Header) *RateLimitStatus {
	var values [4]int
	for i, name := range []string{HeaderLimit5Min, HeaderRemaining5Min, HeaderLimit24h, HeaderRemaining24h} {
		raw := headers.Get(name)
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil
		}
		values[i] = n
	}

	return &RateLimitStatus{
		Limit5Min:     values[0],
		Remaining5Min: values[1],
		Limit24h:      values[2],
		Remaining24h:  values[3],
	}
}

// BannerText formats the status for display
func (s *RateLimitStatus) BannerText() string {
	return fmt.Sprintf("%d/%d (5 min) | %d/%d (24h)",
		s.Remaining5Min, s.Limit5Min, s.Remaining24h, s.Limit24h)
}

// RateLimitTracker shows the quota reported by the latest response
type RateLimitTracker struct {
	view      View
	scheduler Scheduler
	logger    *zap.Logger
}

// NewRateLimitTracker creates a new rate-limit tracker
func NewRateLimitTracker(view View, scheduler Scheduler, logger *zap.Logger) *RateLimitTracker {
	return &RateLimitTracker{
		view:      view,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Track shows the banner when the headers carry a full quota. The hide
// timer is never cancelled, so an older timer may hide a newer banner.
func (t *RateLimitTracker) Track(headers http.Header) *RateLimitStatus {
	status := ExtractRateLimit(headers)
	if status == nil {
		return nil
	}

	t.logger.Debug("Rate limit reported",
		zap.Int("remaining_5min", status.Remaining5Min),
		zap.Int("limit_5min", status.Limit5Min),
		zap.Int("remaining_24h", status.Remaining24h),
		zap.Int("limit_24h", status.Limit24h))

	t.view.ShowRateLimit(status.BannerText())
	t.scheduler.AfterFunc(RateLimitBannerDuration, t.view.HideRateLimit)

	return status
}
