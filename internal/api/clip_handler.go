package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/clipd/clipd-server/internal/clip"
)

// maxRequestBytes bounds the clip request body; real requests are a few
// hundred bytes of JSON.
const maxRequestBytes = 64 * 1024

func clipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		result, err := cfg.Orchestrator.Run(r.Context(), body)
		if err != nil {
			var verr *clip.ValidationError
			if errors.As(err, &verr) {
				WriteError(w, http.StatusBadRequest, verr.Message)
				return
			}
			cfg.Logger.Error("clip processing failed", "error", err)
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		// Artifacts are deleted after the response body has been written,
		// on every exit path. The deliverable is never served twice.
		defer result.Release()

		f, err := os.Open(result.Artifact.Path)
		if err != nil {
			cfg.Logger.Error("cannot open final artifact", "error", err)
			WriteError(w, http.StatusInternalServerError, "Processing failed")
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type", result.Artifact.MimeType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", result.Artifact.Filename))
		if info, err := f.Stat(); err == nil {
			w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
		}

		if _, err := io.Copy(w, f); err != nil {
			// Headers are already out; nothing to do but log.
			cfg.Logger.Warn("artifact transmission interrupted", "error", err)
		}
	}
}
