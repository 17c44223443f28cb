package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"codeberg.org/snonux/codetranslator/internal/cli"
	"codeberg.org/snonux/codetranslator/internal/client"
	"codeberg.org/snonux/codetranslator/internal/controller"
	"codeberg.org/snonux/codetranslator/internal/gui"
	"codeberg.org/snonux/codetranslator/internal/languages"
	"codeberg.org/snonux/codetranslator/internal/models"
	"codeberg.org/snonux/codetranslator/internal/provider"
	"codeberg.org/snonux/codetranslator/internal/relay"
)

// Processor runs the command-line modes
type Processor struct {
	flags     *cli.Flags
	serverURL string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewProcessor creates a processor writing to the process streams
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{
		flags:     flags,
		serverURL: cli.ServerURL(),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// ListLanguages prints the supported languages, one per line
func (p *Processor) ListLanguages() error {
	for _, name := range languages.All() {
		fmt.Fprintln(p.stdout, name)
	}
	return nil
}

// ListModels prints the OpenAI chat models for the configured key
func (p *Processor) ListModels(ctx context.Context) error {
	lister := models.NewLister(cli.GetOpenAIKey(), cli.OpenAIBaseURL())
	return lister.ListAvailableModels(ctx, p.stdout)
}

// Serve runs the translation relay until ctx is cancelled
func (p *Processor) Serve(ctx context.Context) error {
	// A missing .env file is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(p.stderr, "Warning: failed to load .env: %v\n", err)
	}

	prov, err := provider.NewProvider(cli.ProviderConfig())
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	guarded := provider.NewBreakerProvider(prov, provider.DefaultBreakerSettings())
	return relay.NewServer(guarded, cli.RelayConfig()).Run(ctx)
}

// TranslateFile translates the file at path, or stdin when path is empty
// or "-", streaming the result to stdout as it arrives.
func (p *Processor) TranslateFile(ctx context.Context, path string) error {
	from, ok := languages.Normalize(p.flags.From)
	if !ok {
		return fmt.Errorf("unsupported input language: %s", p.flags.From)
	}
	to, ok := languages.Normalize(p.flags.To)
	if !ok {
		return fmt.Errorf("unsupported output language: %s", p.flags.To)
	}

	code, err := p.readInput(path)
	if err != nil {
		return err
	}

	view := &streamView{out: p.stdout, errOut: p.stderr}
	ctrl := controller.New(client.NewClient(p.serverURL, nil), view)
	defer ctrl.Close()

	ctrl.SetInputLanguage(from)
	ctrl.SetOutputLanguage(to)
	ctrl.SetInputCode(code)

	err = ctrl.Translate(ctx)
	if view.written > 0 && !view.endsWithNewline {
		fmt.Fprintln(p.stdout)
	}
	return err
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	app := gui.New(&gui.Config{ServerURL: p.serverURL})
	app.Run()
	return nil
}

func (p *Processor) readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(p.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// streamView writes each newly appended part of the output as it arrives
type streamView struct {
	out    io.Writer
	errOut io.Writer

	written         int
	endsWithNewline bool
}

// Render implements controller.View
func (v *streamView) Render(state controller.State) {
	if len(state.OutputCode) < v.written {
		// output was cleared for a new cycle
		v.written = 0
	}
	if len(state.OutputCode) == v.written {
		return
	}

	suffix := state.OutputCode[v.written:]
	fmt.Fprint(v.out, suffix)
	v.written = len(state.OutputCode)
	v.endsWithNewline = strings.HasSuffix(suffix, "\n")
}

// Alert implements controller.View
func (v *streamView) Alert(message string) {
	fmt.Fprintln(v.errOut, message)
}
