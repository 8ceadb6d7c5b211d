package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mikey/email-classifier/internal/core"
	"github.com/mikey/email-classifier/internal/ports"
	"go.uber.org/zap"
)

const helpText = `Comandos:
  tab upload|text   alterna a entrada ativa
  file <caminho>    seleciona um arquivo PDF ou TXT
  text <conteúdo>   substitui o texto colado (\n para nova linha)
  analyze           envia a entrada ativa
  copy              copia o último resultado
  reset             limpa tudo
  status            mostra o estado atual
  help              mostra esta ajuda
  quit              sai
`

// Shell is an interactive line-based front end. Analyses run in the
// background so commands keep working while a request is in flight.
type Shell struct {
	analyzer ports.Analyzer
	files    ports.FileSource
	out      io.Writer
	logger   *zap.Logger

	wg sync.WaitGroup
}

// NewShell creates a new interactive shell
func NewShell(analyzer ports.Analyzer, files ports.FileSource, out io.Writer, logger *zap.Logger) *Shell {
	return &Shell{
		analyzer: analyzer,
		files:    files,
		out:      out,
		logger:   logger,
	}
}

// Run reads commands until quit or end of input, then waits for any
// analysis still in flight
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	defer s.wg.Wait()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 4*core.MaxTextLength)
	for scanner.Scan() {
		if !s.Execute(ctx, scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs one command line. It returns false on quit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch cmd {
	case "":
	case "tab":
		switch arg {
		case "upload":
			s.analyzer.SetMode(core.ModeUpload)
		case "text":
			s.analyzer.SetMode(core.ModeText)
		default:
			fmt.Fprintf(s.out, "aba desconhecida: %q\n", arg)
		}
	case "file":
		s.selectFile(arg)
	case "text":
		s.analyzer.SetMode(core.ModeText)
		s.analyzer.EditText(strings.ReplaceAll(arg, `\n`, "\n"))
	case "analyze":
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if !s.analyzer.Analyze(ctx) {
				s.logger.Debug("Analyze ignored while busy")
			}
		}()
	case "copy":
		if s.analyzer.CopyResult(ctx) {
			fmt.Fprintf(s.out, "✓ Copiado!\n")
		}
	case "reset":
		s.analyzer.Reset()
	case "status":
		fmt.Fprintf(s.out, "estado: %s\n", s.analyzer.State())
	case "help":
		fmt.Fprint(s.out, helpText)
	case "quit", "exit":
		return false
	default:
		fmt.Fprintf(s.out, "comando desconhecido: %q (use help)\n", cmd)
	}
	return true
}

func (s *Shell) selectFile(path string) {
	s.analyzer.SetMode(core.ModeUpload)
	file, err := s.files.Load(strings.TrimSpace(path))
	if err != nil {
		s.logger.Error("Failed to load file", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(s.out, "não foi possível abrir %q: %v\n", path, err)
		return
	}
	s.analyzer.SelectFile(file)
}
