package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	sysclip "github.com/atotto/clipboard"
	"go.uber.org/zap"
)

var (
	// ErrNotConfigured is returned when a command clipboard has no command
	ErrNotConfigured = errors.New("no clipboard command configured")

	// ErrUnsupported is returned when no system clipboard utility was found
	ErrUnsupported = errors.New("system clipboard not available")
)

// SystemClipboard writes to the platform clipboard (pbcopy, clip, or one of
// xclip/xsel/wl-copy on Unix)
type SystemClipboard struct {
	write       func(string) error
	unsupported bool
	logger      *zap.Logger
}

// NewSystemClipboard creates a writer for the platform clipboard
func NewSystemClipboard(logger *zap.Logger) *SystemClipboard {
	return &SystemClipboard{
		write:       sysclip.WriteAll,
		unsupported: sysclip.Unsupported,
		logger:      logger,
	}
}

// WriteText replaces the clipboard contents with text
func (c *SystemClipboard) WriteText(ctx context.Context, text string) error {
	if c.unsupported {
		return ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := c.write(text); err != nil {
		return fmt.Errorf("failed to write system clipboard: %w", err)
	}

	c.logger.Debug("Copied result to clipboard", zap.Int("length", len(text)))
	return nil
}

// CommandClipboard copies text by piping it into a user-configured program
type CommandClipboard struct {
	command []string
	logger  *zap.Logger
}

// NewCommandClipboard creates a clipboard writer for the given command line
func NewCommandClipboard(command []string, logger *zap.Logger) *CommandClipboard {
	return &CommandClipboard{
		command: command,
		logger:  logger,
	}
}

// WriteText runs the command with text on its standard input
func (c *CommandClipboard) WriteText(ctx context.Context, text string) error {
	if len(c.command) == 0 {
		return ErrNotConfigured
	}

	cmd := exec.CommandContext(ctx, c.command[0], c.command[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard command %q failed: %w: %s",
			c.command[0], err, strings.TrimSpace(stderr.String()))
	}

	c.logger.Debug("Copied result to clipboard",
		zap.String("command", c.command[0]),
		zap.Int("length", len(text)))
	return nil
}
