package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/email-classifier/internal/adapters/terminal"
	"github.com/mikey/email-classifier/internal/core"
	"github.com/mikey/email-classifier/internal/di"
	"github.com/mikey/email-classifier/internal/ports"
	"github.com/mikey/email-classifier/internal/utils"
	"go.uber.org/zap"
)

// errAnalysisFailed signals an error already shown to the user
var errAnalysisFailed = errors.New("analysis failed")

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildContainer(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		if !errors.Is(err, errAnalysisFailed) {
			fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		}
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	controller *core.Controller,
	shell *terminal.Shell,
	view *terminal.View,
	files ports.FileSource,
	textProcessor *utils.TextProcessor,
) error {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if flags.Interactive {
		logger.Debug("Starting interactive shell")
		return shell.Run(ctx, os.Stdin)
	}

	if flags.InputFile != "" {
		file, err := files.Load(flags.InputFile)
		if err != nil {
			logger.Error("Failed to open input file", zap.Error(err), zap.String("file", flags.InputFile))
			return err
		}
		controller.SetMode(core.ModeUpload)
		if !controller.SelectFile(file) {
			return errAnalysisFailed
		}
	} else {
		text := flags.Text
		if text == "" {
			logger.Debug("Reading email from stdin")
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				logger.Error("Failed to read stdin", zap.Error(err))
				return err
			}
			text = string(data)
		}
		text = textProcessor.SanitizeUTF8(text)
		controller.SetMode(core.ModeText)
		controller.EditText(text)
		view.Preview(text)
	}

	controller.Analyze(ctx)
	if controller.State() != core.StateSuccess {
		return errAnalysisFailed
	}

	if flags.Copy && controller.CopyResult(ctx) {
		fmt.Println("✓ Copiado!")
	}

	return nil
}
