// Package pipeline sequences a clip request through validation,
// workspace allocation, fetch and transcode, and guarantees that every
// scratch artifact is deleted on every outcome.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/clipd/clipd-server/internal/clip"
	"github.com/clipd/clipd-server/internal/logging"
	"github.com/clipd/clipd-server/internal/workspace"
)

// Fetcher obtains source media for a validated request into dest.
type Fetcher interface {
	Fetch(ctx context.Context, req clip.ClipRequest, dest string) error
}

// Transcoder extracts the requested range from input into dest.
type Transcoder interface {
	Transcode(ctx context.Context, req clip.ClipRequest, input, dest string) error
}

// Result is a successful pipeline outcome. Release deletes every file
// the job created, including the deliverable; the caller must invoke it
// once the artifact's bytes have been consumed. Release is idempotent.
type Result struct {
	Artifact Artifact

	release func()
	once    sync.Once
}

// Release deletes the job's artifacts. Safe to call more than once.
func (r *Result) Release() {
	r.once.Do(r.release)
}

// Orchestrator runs the clip pipeline. Each request gets an independent
// Job; concurrent runs share only the workspace root, which is safe
// because all filenames are namespaced by job ID.
type Orchestrator struct {
	workspace  *workspace.Manager
	fetcher    Fetcher
	transcoder Transcoder
	logger     *slog.Logger
}

// NewOrchestrator wires the pipeline stages together.
func NewOrchestrator(ws *workspace.Manager, f Fetcher, t Transcoder, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		workspace:  ws,
		fetcher:    f,
		transcoder: t,
		logger:     logging.WithComponent(logger, "pipeline"),
	}
}

// Run validates body and drives the job to completion. On any stage
// failure it deletes everything recorded so far and returns a typed
// error; the remaining stages are not attempted.
func (o *Orchestrator) Run(ctx context.Context, body []byte) (*Result, error) {
	req, err := clip.Validate(body)
	if err != nil {
		return nil, err
	}

	job := newJob(req)
	job.State = StateValidated
	logger := logging.WithJobID(o.logger, job.ID)
	logger.Info("job accepted",
		"url", req.URL,
		"start_s", req.StartSeconds(),
		"duration_s", req.DurationSeconds(),
		"format", string(req.Format),
	)

	cleanup := func() {
		for _, path := range job.paths() {
			o.workspace.Remove(path)
		}
	}

	fail := func(err error) (*Result, error) {
		job.State = StateFailed
		logger.Error("job failed", "error", err)
		cleanup()
		return nil, err
	}

	// Once a tool has started it runs to its natural end: an aborted
	// client connection must not interrupt it. The per-stage timeouts
	// are the only bounds on the external tools.
	ctx = context.WithoutCancel(ctx)

	dir, err := o.workspace.Ensure()
	if err != nil {
		return fail(fmt.Errorf("cannot prepare workspace: %w", err))
	}
	job.State = StateWorkspaceReady

	// Record the fetch output path before the tool runs so a partial
	// download is still cleaned up.
	sourcePath := filepath.Join(dir, job.ID+"_source.mp4")
	job.Artifacts = append(job.Artifacts, sourcePath)

	logger.Info("fetching source")
	if err := o.fetcher.Fetch(ctx, req, sourcePath); err != nil {
		return fail(&FetchError{Err: err})
	}
	job.State = StateFetched

	ext := req.Extension()
	job.Final = &Artifact{
		Path:     filepath.Join(dir, job.ID+"_clip."+ext),
		Filename: fmt.Sprintf("clip_%d.%s", time.Now().UnixMilli(), ext),
		MimeType: req.MimeType(),
	}

	logger.Info("transcoding clip")
	if err := o.transcoder.Transcode(ctx, req, sourcePath, job.Final.Path); err != nil {
		return fail(&TranscodeError{Err: err})
	}
	job.State = StateTranscoded

	logger.Info("job complete", "filename", job.Final.Filename)
	return &Result{
		Artifact: *job.Final,
		release: func() {
			job.State = StateDelivered
			cleanup()
		},
	}, nil
}
