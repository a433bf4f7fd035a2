package media

import (
	"context"
	"fmt"
	"time"

	"github.com/clipd/clipd-server/internal/clip"
)

// Format selector expressions passed to yt-dlp. The default asks for the
// best mp4 video plus m4a audio with progressive fallbacks; the capped
// variants bound the vertical resolution when a quality hint is present.
const (
	selectorBest = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	selector720  = "bestvideo[height<=720][ext=mp4]+bestaudio[ext=m4a]/best[height<=720][ext=mp4]/best"
	selector1080 = "bestvideo[height<=1080][ext=mp4]+bestaudio[ext=m4a]/best[height<=1080][ext=mp4]/best"
)

// FormatSelector returns the yt-dlp format expression for a request.
// The quality hint only applies to video output; for audio output the
// source is fetched at best quality and the hint is ignored.
func FormatSelector(req clip.ClipRequest) string {
	if req.Format != clip.FormatMP4 {
		return selectorBest
	}
	switch req.Quality {
	case clip.Quality720p:
		return selector720
	case clip.Quality1080p:
		return selector1080
	default:
		return selectorBest
	}
}

// Fetcher obtains source media for a URL using yt-dlp.
type Fetcher struct {
	tool    Tool
	timeout time.Duration
}

// NewFetcher creates a Fetcher. A zero timeout leaves the fetch unbounded.
func NewFetcher(tool Tool, timeout time.Duration) *Fetcher {
	return &Fetcher{tool: tool, timeout: timeout}
}

// Fetch downloads the source for req into dest as a single merged mp4
// file. The returned error carries the tool's stderr tail.
func (f *Fetcher) Fetch(ctx context.Context, req clip.ClipRequest, dest string) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	result := f.tool.Run(ctx,
		"-f", FormatSelector(req),
		"--merge-output-format", "mp4",
		"-o", dest,
		"--no-playlist",
		req.URL,
	)
	if !result.IsSuccess() {
		return fmt.Errorf("yt-dlp exited %d: %s", result.ExitCode, result.StderrTail)
	}
	return nil
}
