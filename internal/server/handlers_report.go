package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/match-test/internal/progress"
)

// handleReportProgress streams the preparing-report simulation as
// server-sent events. The run stops when the client disconnects.
func (s *Server) handleReportProgress(w http.ResponseWriter, r *http.Request) {
	jobID := urlParam(r, "jobId")
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, eris.New("server: streaming unsupported"))
		return
	}

	updates, err := progress.Stream(r.Context(), jobID, s.opts.Progress)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for u := range updates {
		data, err := json.Marshal(u)
		if err != nil {
			zap.L().Error("server: encode progress", zap.String("job_id", jobID), zap.Error(err))
			return
		}
		event := "progress"
		if u.Complete {
			event = "complete"
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
			return
		}
		flusher.Flush()
	}
	zap.L().Debug("server: progress stream closed",
		zap.String("job_id", jobID),
		zap.Bool("client_gone", r.Context().Err() != nil),
	)
}
