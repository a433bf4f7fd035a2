package clip

import (
	"errors"
	"testing"
)

func validBody() string {
	return `{"url":"https://youtube.com/watch?v=abc","start":"00:00:10","end":"00:00:40","format":"mp4","quality":"720p"}`
}

func TestValidate_Success(t *testing.T) {
	req, err := Validate([]byte(validBody()))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if req.URL != "https://youtube.com/watch?v=abc" {
		t.Errorf("URL = %q", req.URL)
	}
	if req.StartSeconds() != 10 || req.EndSeconds() != 40 {
		t.Errorf("range = [%d, %d], want [10, 40]", req.StartSeconds(), req.EndSeconds())
	}
	if req.Format != FormatMP4 {
		t.Errorf("Format = %q, want mp4", req.Format)
	}
	if req.Quality != Quality720p {
		t.Errorf("Quality = %q, want 720p", req.Quality)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"not json", "nope", "Invalid request body"},
		{"null body", "null", "Invalid request body"},
		{"array body", "[1,2]", "Invalid request body"},
		{"primitive body", `"hello"`, "Invalid request body"},
		{"missing url", `{"start":"00:00:00","end":"00:00:10","format":"mp4"}`, "URL is required"},
		{"url wrong type", `{"url":42,"start":"00:00:00","end":"00:00:10","format":"mp4"}`, "URL is required"},
		{"bad host", `{"url":"not-a-url","start":"00:00:00","end":"00:00:10","format":"mp3"}`, "Invalid YouTube URL"},
		{"vimeo host", `{"url":"https://vimeo.com/123","start":"00:00:00","end":"00:00:10","format":"mp4"}`, "Invalid YouTube URL"},
		{"missing start", `{"url":"https://youtu.be/abc","end":"00:00:10","format":"mp4"}`, "Start time is required"},
		{"missing end", `{"url":"https://youtu.be/abc","start":"00:00:00","format":"mp4"}`, "End time is required"},
		{"bad start format", `{"url":"https://youtu.be/abc","start":"0:0:0","end":"00:00:10","format":"mp4"}`, "Invalid start time format (use HH:MM:SS)"},
		{"bad end format", `{"url":"https://youtu.be/abc","start":"00:00:00","end":"99:00:00","format":"mp4"}`, "Invalid end time format (use HH:MM:SS)"},
		{"reversed range", `{"url":"https://youtu.be/abc","start":"00:01:00","end":"00:00:30","format":"mp4"}`, "Start time must be before end time"},
		{"equal range", `{"url":"https://youtu.be/abc","start":"00:00:30","end":"00:00:30","format":"mp4"}`, "Start time must be before end time"},
		{"missing format", `{"url":"https://youtu.be/abc","start":"00:00:00","end":"00:00:10"}`, "Format must be mp4 or mp3"},
		{"bad format", `{"url":"https://youtu.be/abc","start":"00:00:00","end":"00:00:10","format":"avi"}`, "Format must be mp4 or mp3"},
		{"bad quality", `{"url":"https://youtu.be/abc","start":"00:00:00","end":"00:00:10","format":"mp4","quality":"480p"}`, "Quality must be 720p or 1080p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate([]byte(tt.body))
			if err == nil {
				t.Fatal("Validate() error = nil, want validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if verr.Message != tt.want {
				t.Errorf("message = %q, want %q", verr.Message, tt.want)
			}
		})
	}
}

func TestValidate_QualityIgnoredForMP3(t *testing.T) {
	body := `{"url":"https://youtube.com/x","start":"00:00:00","end":"00:00:05","format":"mp3","quality":"480p"}`
	req, err := Validate([]byte(body))
	if err != nil {
		t.Fatalf("Validate() error = %v, quality must not be checked for mp3", err)
	}
	if req.Format != FormatMP3 {
		t.Errorf("Format = %q, want mp3", req.Format)
	}
}

func TestValidate_SchemeOptionalURL(t *testing.T) {
	body := `{"url":"www.youtube.com/watch?v=abc","start":"00:00:00","end":"00:00:05","format":"mp4"}`
	if _, err := Validate([]byte(body)); err != nil {
		t.Fatalf("Validate() error = %v, scheme should be optional", err)
	}
}

func TestMimeTypeAndExtension(t *testing.T) {
	mp4 := ClipRequest{Format: FormatMP4}
	mp3 := ClipRequest{Format: FormatMP3}
	if mp4.MimeType() != "video/mp4" || mp4.Extension() != "mp4" {
		t.Errorf("mp4 mapping = (%q, %q)", mp4.MimeType(), mp4.Extension())
	}
	if mp3.MimeType() != "audio/mpeg" || mp3.Extension() != "mp3" {
		t.Errorf("mp3 mapping = (%q, %q)", mp3.MimeType(), mp3.Extension())
	}
}
