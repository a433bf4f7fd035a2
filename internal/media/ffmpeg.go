package media

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/clipd/clipd-server/internal/clip"
)

// Transcoder trims and re-encodes fetched media using ffmpeg.
type Transcoder struct {
	tool    Tool
	timeout time.Duration
}

// NewTranscoder creates a Transcoder. A zero timeout leaves the encode unbounded.
func NewTranscoder(tool Tool, timeout time.Duration) *Transcoder {
	return &Transcoder{tool: tool, timeout: timeout}
}

// Transcode seeks to the request's start offset in input and encodes
// exactly the requested duration into dest. Both formats always
// re-encode; stream copy snaps cuts to keyframes.
func (t *Transcoder) Transcode(ctx context.Context, req clip.ClipRequest, input, dest string) error {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	args := []string{
		"-y",
		"-ss", strconv.Itoa(req.StartSeconds()),
		"-i", input,
		"-t", strconv.Itoa(req.DurationSeconds()),
	}
	if req.Format == clip.FormatMP3 {
		args = append(args, "-vn", "-acodec", "libmp3lame", "-b:a", "192k")
	} else {
		args = append(args, "-c:v", "libx264", "-c:a", "aac")
	}
	args = append(args, dest)

	result := t.tool.Run(ctx, args...)
	if !result.IsSuccess() {
		return fmt.Errorf("ffmpeg exited %d: %s", result.ExitCode, result.StderrTail)
	}
	return nil
}
