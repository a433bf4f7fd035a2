package pipeline

import (
	"github.com/google/uuid"

	"github.com/clipd/clipd-server/internal/clip"
)

// State tracks a job through the pipeline. Transitions only move
// forward; StateFailed is terminal from any state after StateReceived.
type State string

const (
	StateReceived       State = "received"
	StateValidated      State = "validated"
	StateWorkspaceReady State = "workspace_ready"
	StateFetched        State = "fetched"
	StateTranscoded     State = "transcoded"
	StateDelivered      State = "delivered"
	StateFailed         State = "failed"
)

// Artifact is the deliverable of a successful job.
type Artifact struct {
	Path     string // job-scoped path inside the workspace
	Filename string // caller-facing download name
	MimeType string
}

// Job is one in-flight clip request and the scratch files it owns. A Job
// never outlives its request: every recorded path is deleted on failure
// or after the deliverable has been handed to the caller.
type Job struct {
	ID      string
	Request clip.ClipRequest
	State   State

	// Artifacts lists every intermediate file created for this job, in
	// creation order. Paths are recorded before the stage that creates
	// them runs, so a crash mid-stage still leaves them cleanable.
	Artifacts []string

	// Final is the deliverable, set before the transcode stage runs.
	Final *Artifact
}

// newJob creates a Job with a collision-free ID that namespaces all of
// its filenames.
func newJob(req clip.ClipRequest) *Job {
	return &Job{
		ID:      uuid.New().String(),
		Request: req,
		State:   StateReceived,
	}
}

// paths returns every path the job has recorded, intermediates first.
func (j *Job) paths() []string {
	out := append([]string(nil), j.Artifacts...)
	if j.Final != nil {
		out = append(out, j.Final.Path)
	}
	return out
}
