package di

import (
	"flag"
	"os"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/email-classifier/internal/adapters/clock"
	"github.com/mikey/email-classifier/internal/adapters/filesource"
	"github.com/mikey/email-classifier/internal/adapters/terminal"
	"github.com/mikey/email-classifier/internal/config"
	"github.com/mikey/email-classifier/internal/core"
	"github.com/mikey/email-classifier/internal/factory"
	"github.com/mikey/email-classifier/internal/logging"
	"github.com/mikey/email-classifier/internal/ports"
	"github.com/mikey/email-classifier/internal/utils"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Backend flags
	APIURL  string
	Timeout time.Duration

	// Input flags
	InputFile   string
	Text        string
	Copy        bool
	Interactive bool

	// Output flags
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	flag.StringVar(&flags.APIURL, "api-url", "", "Base URL of the classification API (overrides config)")
	flag.DurationVar(&flags.Timeout, "timeout", 0, "Request timeout (overrides config)")

	flag.StringVar(&flags.InputFile, "file", "", "PDF or TXT file to analyze")
	flag.StringVar(&flags.Text, "text", "", "Email text to analyze (stdin is used if neither -file nor -text is given)")
	flag.BoolVar(&flags.Copy, "copy", false, "Copy the result to the clipboard")
	flag.BoolVar(&flags.Interactive, "interactive", false, "Read commands from stdin")

	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file")

	flag.Parse()
	return flags
}

// BuildContainer creates and configures a dependency injection container
func BuildContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	providers := []any{
		func() *CLIFlags { return flags },

		// Configuration and logging
		newConfig,
		newLogger,

		// Factories
		factory.NewSubmitterFactory,
		factory.NewClipboardFactory,
		factory.NewTextProcessorFactory,

		// Adapters
		func(f *factory.SubmitterFactory) (core.Submitter, error) {
			return f.CreateSubmitter()
		},
		func(f *factory.ClipboardFactory) core.Clipboard {
			return f.CreateClipboard()
		},
		func(f *factory.TextProcessorFactory) *utils.TextProcessor {
			return f.CreateTextProcessor()
		},
		func(logger *zap.Logger, tp *utils.TextProcessor, cfg *config.Config) *terminal.View {
			return terminal.NewView(os.Stdout, logger, tp, cfg.GetBool("display.verbose"))
		},
		func(v *terminal.View) core.View { return v },
		func(logger *zap.Logger) core.Notifier {
			return terminal.NewNotifier(os.Stderr, logger)
		},
		func() core.Scheduler { return clock.NewSystem() },
		func(logger *zap.Logger) ports.FileSource {
			return filesource.NewLoader(logger)
		},

		// Core
		core.NewValidator,
		core.NewRateLimitTracker,
		core.NewRenderer,
		core.NewController,
		func(c *core.Controller) ports.Analyzer { return c },

		// Interactive front end
		func(a ports.Analyzer, files ports.FileSource, logger *zap.Logger) *terminal.Shell {
			return terminal.NewShell(a, files, os.Stdout, logger)
		},
	}

	for _, p := range providers {
		if err := container.Provide(p); err != nil {
			return nil, err
		}
	}

	return container, nil
}

// newConfig loads configuration and applies command line overrides
func newConfig(flags *CLIFlags) (*config.Config, error) {
	cfg, err := config.New(flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	v := cfg.GetViper()
	if flags.APIURL != "" {
		v.Set("api.base_url", flags.APIURL)
	}
	if flags.Timeout > 0 {
		v.Set("api.timeout", flags.Timeout.String())
	}
	if flags.Verbose {
		v.Set("display.verbose", true)
		v.Set("logging.level", "debug")
	}
	if flags.JSONLog {
		v.Set("logging.format", "json")
	}

	return cfg, nil
}

// newLogger follows the logging section when a config file was loaded,
// otherwise stays quiet on the console unless -verbose is given
func newLogger(flags *CLIFlags, cfg *config.Config) (*zap.Logger, error) {
	if cfg.GetViper().ConfigFileUsed() != "" {
		return logging.InitLogger(cfg)
	}
	return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
}
