package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"trackthething/internal/config"
	"trackthething/internal/service"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// AppContext carries the process streams and clock so commands can be
// executed in tests with buffers
type AppContext struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time
	Config *config.Config
}

// Run executes the CLI and returns the process exit code
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand(AppContext{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	})
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitFailure
	}
	return ExitSuccess
}

// NewRootCommand constructs the Cobra command tree
func NewRootCommand(app AppContext) *cobra.Command {
	app = normalizeAppContext(app)

	root := &cobra.Command{
		Use:           "ttt",
		Short:         "Export Track the Thing entries as Jira markup, Markdown or text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(app.Stdin)
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)

	root.AddCommand(
		newExportCommand(app),
		newReportCommand(app),
		newProfilesCommand(app),
	)
	return root
}

func normalizeAppContext(app AppContext) AppContext {
	if app.Stdin == nil {
		app.Stdin = os.Stdin
	}
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.Now == nil {
		app.Now = time.Now
	}
	if app.Config == nil {
		app.Config = config.Load()
	}
	return app
}

// services builds the service graph; diagnostics go to stderr at warn level
func (app AppContext) services() (*service.Services, error) {
	logger := slog.New(slog.NewJSONHandler(app.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return service.SetupServices(app.Config, app.Now, logger)
}

// readInput reads the named file, or stdin for "-" or no argument
func (app AppContext) readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(app.Stdin)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeText writes s followed by exactly one newline
func writeText(w io.Writer, s string) error {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		_, err := io.WriteString(w, s)
		return err
	}
	_, err := io.WriteString(w, s+"\n")
	return err
}
