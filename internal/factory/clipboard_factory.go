package factory

import (
	"github.com/mikey/email-classifier/internal/adapters/clipboard"
	"github.com/mikey/email-classifier/internal/config"
	"github.com/mikey/email-classifier/internal/core"
	"go.uber.org/zap"
)

// ClipboardFactory creates clipboard writers based on configuration
type ClipboardFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClipboardFactory creates a new clipboard factory
func NewClipboardFactory(cfg *config.Config, logger *zap.Logger) *ClipboardFactory {
	return &ClipboardFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClipboard uses the configured command when set, otherwise the
// system clipboard
func (f *ClipboardFactory) CreateClipboard() core.Clipboard {
	command := f.cfg.GetClipboard().Command
	if len(command) > 0 {
		f.logger.Debug("Using clipboard command", zap.Strings("command", command))
		return clipboard.NewCommandClipboard(command, f.logger)
	}
	return clipboard.NewSystemClipboard(f.logger)
}
