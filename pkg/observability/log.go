package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline and HTTP events as debug-level log lines.
// Failures are logged at error level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger. A nil logger uses the
// package-level default logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnValidateStart(_ context.Context, density string, positions int) {
	h.logger.Debug("validate start", "density", density, "positions", positions)
}

func (h *LogHooks) OnValidateComplete(_ context.Context, problems int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("validate failed", "problems", problems, "duration", d)
		return
	}
	h.logger.Debug("validate done", "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, partitions int) {
	h.logger.Debug("layout start", "partitions", partitions)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, sequences int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("layout failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("layout done", "sequences", sequences, "duration", d)
}

func (h *LogHooks) OnPatternStart(_ context.Context, format string) {
	h.logger.Debug("pattern start", "format", format)
}

func (h *LogHooks) OnPatternComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("pattern failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("pattern done", "format", format, "bytes", size, "duration", d)
}

func (h *LogHooks) OnRequest(_ context.Context, id, method, path string) {
	h.logger.Debug("request", "id", id, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, id, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "id", id, "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, id, method, path string, err error) {
	h.logger.Error("request failed", "id", id, "method", method, "path", path, "err", err)
}
