// Package cli implements the splot command-line interface.
//
// This package provides commands for laying out source sequences on a print
// chip, checking input files before a run, describing the supported print
// densities and serving the layout pipeline over HTTP. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - run: Lay out a sequence file and write the final sequence list
//   - validate: Check a sequence file, optionally against a partition mask
//   - info: Show chip capacity and grid size for each print density
//   - serve: Serve the layout pipeline as an HTTP API
//
// # Configuration
//
// Defaults come from an optional TOML file (see package config). Flags set
// on the command line override it.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/splotbio/splot/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// newLogger returns the CLI logger: timestamps as "HH:MM:SS.ms", messages
// below level dropped.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stage times one step of a command (load, layout, write) and logs its
// outcome with the stage name and elapsed time as fields.
type stage struct {
	logger *log.Logger
	name   string
	start  time.Time
}

// startStage logs the start of stage name at debug level.
func startStage(l *log.Logger, name string, keyvals ...any) *stage {
	l.Debug("stage started", append([]any{"stage", name}, keyvals...)...)
	return &stage{logger: l, name: name, start: time.Now()}
}

// elapsed is the time since the stage started, rounded to milliseconds.
func (s *stage) elapsed() time.Duration {
	return time.Since(s.start).Round(time.Millisecond)
}

// done logs msg at info level, e.g.
//
//	14:32:01.45 INFO laid out chip stage=layout positions=686880 dummies=12 elapsed=1.234s
func (s *stage) done(msg string, keyvals ...any) {
	s.logger.Info(msg, s.fields(keyvals)...)
}

// fail logs err at debug level and returns it unchanged. The command
// reports the error itself on exit.
func (s *stage) fail(err error) error {
	s.logger.Debug("stage failed", s.fields([]any{"err", err})...)
	return err
}

func (s *stage) fields(keyvals []any) []any {
	kv := make([]any, 0, len(keyvals)+4)
	kv = append(kv, "stage", s.name)
	kv = append(kv, keyvals...)
	return append(kv, "elapsed", s.elapsed())
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// commandLogger returns the context logger tagged with the running
// subcommand, so run, validate and serve lines can be told apart.
func commandLogger(cmd *cobra.Command) *log.Logger {
	return loggerFromContext(cmd.Context()).With("cmd", cmd.Name())
}
