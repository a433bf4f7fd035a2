// Package clip defines the clip request domain model and its validation.
package clip

import "fmt"

// OutputFormat selects the container/codec family of the deliverable.
type OutputFormat string

const (
	FormatMP4 OutputFormat = "mp4"
	FormatMP3 OutputFormat = "mp3"
)

// Quality is an optional cap on source vertical resolution.
// It only affects video output; for audio output it is accepted and ignored.
type Quality string

const (
	QualityNone  Quality = ""
	Quality720p  Quality = "720p"
	Quality1080p Quality = "1080p"
)

// ClipRequest is a validated, normalized clip request.
// Fields are trusted after Validate has returned it.
type ClipRequest struct {
	URL     string
	Start   string
	End     string
	Format  OutputFormat
	Quality Quality
}

// StartSeconds returns the clip start offset in whole seconds.
func (r ClipRequest) StartSeconds() int {
	return TimeToSeconds(r.Start)
}

// EndSeconds returns the clip end offset in whole seconds.
func (r ClipRequest) EndSeconds() int {
	return TimeToSeconds(r.End)
}

// DurationSeconds returns the length of the requested range in whole seconds.
func (r ClipRequest) DurationSeconds() int {
	return r.EndSeconds() - r.StartSeconds()
}

// Extension returns the output file extension for the requested format.
func (r ClipRequest) Extension() string {
	if r.Format == FormatMP3 {
		return "mp3"
	}
	return "mp4"
}

// MimeType returns the response content type for the requested format.
func (r ClipRequest) MimeType() string {
	if r.Format == FormatMP3 {
		return "audio/mpeg"
	}
	return "video/mp4"
}

func (r ClipRequest) String() string {
	return fmt.Sprintf("clip %s [%s - %s] as %s", r.URL, r.Start, r.End, r.Format)
}
