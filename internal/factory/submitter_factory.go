package factory

import (
	"github.com/mikey/email-classifier/internal/adapters/api"
	"github.com/mikey/email-classifier/internal/config"
	"github.com/mikey/email-classifier/internal/core"
	"go.uber.org/zap"
)

// SubmitterFactory creates request submitters
type SubmitterFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSubmitterFactory creates a new submitter factory
func NewSubmitterFactory(cfg *config.Config, logger *zap.Logger) *SubmitterFactory {
	return &SubmitterFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSubmitter creates an HTTP submitter for the configured backend
func (f *SubmitterFactory) CreateSubmitter() (core.Submitter, error) {
	apiCfg, err := f.cfg.GetAPI()
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Using classification backend",
		zap.String("base_url", apiCfg.BaseURL),
		zap.Duration("timeout", apiCfg.Timeout))

	return api.NewClient(apiCfg.BaseURL, apiCfg.Timeout, apiCfg.UserAgent, f.logger), nil
}
