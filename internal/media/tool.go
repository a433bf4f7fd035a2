// Package media wraps the external command-line tools that fetch and
// transcode source video. Tools are modeled as a small execution
// contract so tests can substitute fakes without spawning processes.
package media

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os/exec"
	"time"
)

const (
	maxStderrBytes = 8 * 1024 // 8 KB tail of stderr kept for diagnostics
)

// RunResult captures the outcome of one external tool invocation.
type RunResult struct {
	ExitCode   int
	StderrTail string
	Duration   time.Duration
}

// IsSuccess reports whether the tool exited cleanly.
func (r RunResult) IsSuccess() bool {
	return r.ExitCode == 0
}

// Tool executes an external command with the given arguments and reports
// its exit code plus a bounded tail of stderr. Implementations block
// until the command finishes or ctx is done.
type Tool interface {
	Run(ctx context.Context, args ...string) RunResult
}

// ExecTool runs a configured binary as a subprocess. It is the single
// production implementation of Tool.
type ExecTool struct {
	name   string // short label for logs, e.g. "yt-dlp"
	binary string // binary name or path, resolved against PATH at run time
	logger *slog.Logger
}

// NewExecTool creates an ExecTool for the given binary. The binary is
// not resolved here; a missing binary surfaces as a failed run so the
// service can start without it and report per-request errors.
func NewExecTool(name, binary string, logger *slog.Logger) *ExecTool {
	return &ExecTool{name: name, binary: binary, logger: logger}
}

func (t *ExecTool) Run(ctx context.Context, args ...string) RunResult {
	start := time.Now()

	cmd := exec.CommandContext(ctx, t.binary, args...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = io.Writer(&limitedWriter{w: &stderrBuf, limit: maxStderrBytes})
	cmd.Stdout = io.Discard // tools write their output file, not stdout

	t.logger.Info("executing tool", "tool", t.name, "args", args)

	err := cmd.Run()
	elapsed := time.Since(start)

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
		// A tool killed by the context deadline, or one that never
		// started, leaves no stderr; keep the cause instead.
		if stderrBuf.Len() == 0 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				stderrBuf.WriteString(ctxErr.Error())
			} else {
				stderrBuf.WriteString(err.Error())
			}
		}
	}

	stderrTail := stderrBuf.String()

	if exitCode != 0 {
		t.logger.Warn("tool failed",
			"tool", t.name,
			"exit_code", exitCode,
			"duration_ms", elapsed.Milliseconds(),
			"stderr_tail", truncate(stderrTail, 512),
		)
	} else {
		t.logger.Info("tool succeeded",
			"tool", t.name,
			"duration_ms", elapsed.Milliseconds(),
		)
	}

	return RunResult{
		ExitCode:   exitCode,
		StderrTail: stderrTail,
		Duration:   elapsed,
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return "..." + s[len(s)-maxLen:]
}

// limitedWriter is an io.Writer that keeps only the last `limit` bytes.
type limitedWriter struct {
	w     *bytes.Buffer
	limit int
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	lw.w.Write(p)
	if lw.w.Len() > lw.limit {
		// Keep only the tail
		b := lw.w.Bytes()
		lw.w.Reset()
		lw.w.Write(b[len(b)-lw.limit:])
	}
	return n, nil
}
