package clip

import (
	"encoding/json"
	"regexp"
)

// ValidationError reports the first request field that failed validation.
// Its message is client-facing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) (ClipRequest, error) {
	return ClipRequest{}, &ValidationError{Message: msg}
}

// youtubeURLRe recognizes youtube.com and youtu.be URLs, scheme optional.
var youtubeURLRe = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+$`)

// ValidYouTubeURL reports whether url points at a recognized video host.
func ValidYouTubeURL(url string) bool {
	return youtubeURLRe.MatchString(url)
}

// Validate parses a raw request body and applies the validation rules in
// order, short-circuiting on the first failure. On success it returns a
// normalized ClipRequest; on failure a *ValidationError with a
// client-facing message.
func Validate(body []byte) (ClipRequest, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return invalid("Invalid request body")
	}

	url, _ := raw["url"].(string)
	if url == "" {
		return invalid("URL is required")
	}
	if !ValidYouTubeURL(url) {
		return invalid("Invalid YouTube URL")
	}

	start, _ := raw["start"].(string)
	if start == "" {
		return invalid("Start time is required")
	}
	end, _ := raw["end"].(string)
	if end == "" {
		return invalid("End time is required")
	}

	if !ValidTimeFormat(start) {
		return invalid("Invalid start time format (use HH:MM:SS)")
	}
	if !ValidTimeFormat(end) {
		return invalid("Invalid end time format (use HH:MM:SS)")
	}
	if TimeToSeconds(start) >= TimeToSeconds(end) {
		return invalid("Start time must be before end time")
	}

	format, _ := raw["format"].(string)
	if format != string(FormatMP4) && format != string(FormatMP3) {
		return invalid("Format must be mp4 or mp3")
	}

	quality, _ := raw["quality"].(string)
	if format == string(FormatMP4) && quality != "" &&
		quality != string(Quality720p) && quality != string(Quality1080p) {
		return invalid("Quality must be 720p or 1080p")
	}

	// A quality hint accompanying mp3 output is accepted here and kept on
	// the request; the fetch stage only applies it for video output.
	return ClipRequest{
		URL:     url,
		Start:   start,
		End:     end,
		Format:  OutputFormat(format),
		Quality: Quality(quality),
	}, nil
}
