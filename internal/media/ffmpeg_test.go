package media

import (
	"context"
	"strings"
	"testing"

	"github.com/clipd/clipd-server/internal/clip"
)

func TestTranscoder_MP4Args(t *testing.T) {
	tool := &fakeTool{result: RunResult{ExitCode: 0}}
	tr := NewTranscoder(tool, 0)

	req := clip.ClipRequest{Start: "00:00:10", End: "00:00:40", Format: clip.FormatMP4}
	if err := tr.Transcode(context.Background(), req, "/tmp/in.mp4", "/tmp/out.mp4"); err != nil {
		t.Fatalf("Transcode() error = %v", err)
	}

	if len(tool.calls) != 1 {
		t.Fatalf("tool invoked %d times, want 1", len(tool.calls))
	}
	args := strings.Join(tool.calls[0], " ")
	for _, fragment := range []string{
		"-ss 10",
		"-i /tmp/in.mp4",
		"-t 30",
		"-c:v libx264",
		"-c:a aac",
	} {
		if !strings.Contains(args, fragment) {
			t.Errorf("args %q missing %q", args, fragment)
		}
	}
	if strings.Contains(args, "-vn") {
		t.Errorf("mp4 transcode must keep the video stream, args %q", args)
	}
}

func TestTranscoder_MP3Args(t *testing.T) {
	tool := &fakeTool{result: RunResult{ExitCode: 0}}
	tr := NewTranscoder(tool, 0)

	req := clip.ClipRequest{Start: "00:00:00", End: "00:00:05", Format: clip.FormatMP3}
	if err := tr.Transcode(context.Background(), req, "/tmp/in.mp4", "/tmp/out.mp3"); err != nil {
		t.Fatalf("Transcode() error = %v", err)
	}

	args := strings.Join(tool.calls[0], " ")
	for _, fragment := range []string{
		"-ss 0",
		"-t 5",
		"-vn",
		"-acodec libmp3lame",
		"-b:a 192k",
	} {
		if !strings.Contains(args, fragment) {
			t.Errorf("args %q missing %q", args, fragment)
		}
	}
	if strings.Contains(args, "libx264") {
		t.Errorf("mp3 transcode must not encode video, args %q", args)
	}
}

func TestTranscoder_DurationMatchesRange(t *testing.T) {
	tests := []struct {
		start, end string
		wantStart  string
		wantDur    string
	}{
		{"00:00:10", "00:00:40", "10", "30"},
		{"00:01:00", "00:02:30", "60", "90"},
		{"1:00:00", "1:00:01", "3600", "1"},
	}
	for _, tt := range tests {
		tool := &fakeTool{result: RunResult{ExitCode: 0}}
		tr := NewTranscoder(tool, 0)
		req := clip.ClipRequest{Start: tt.start, End: tt.end, Format: clip.FormatMP4}
		if err := tr.Transcode(context.Background(), req, "in", "out"); err != nil {
			t.Fatalf("Transcode() error = %v", err)
		}
		args := strings.Join(tool.calls[0], " ")
		if !strings.Contains(args, "-ss "+tt.wantStart) || !strings.Contains(args, "-t "+tt.wantDur) {
			t.Errorf("range [%s, %s] produced args %q, want -ss %s -t %s",
				tt.start, tt.end, args, tt.wantStart, tt.wantDur)
		}
	}
}

func TestTranscoder_ToolFailure(t *testing.T) {
	tool := &fakeTool{result: RunResult{ExitCode: 1, StderrTail: "Unknown encoder 'libx264'"}}
	tr := NewTranscoder(tool, 0)

	req := clip.ClipRequest{Start: "00:00:00", End: "00:00:05", Format: clip.FormatMP4}
	err := tr.Transcode(context.Background(), req, "in", "out")
	if err == nil {
		t.Fatal("Transcode() error = nil, want tool failure")
	}
	if !strings.Contains(err.Error(), "Unknown encoder") {
		t.Errorf("error %q does not carry tool stderr", err)
	}
}
