package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/match-test/internal/attribute"
	"github.com/sells-group/match-test/internal/fieldmap"
	"github.com/sells-group/match-test/internal/jobs"
	"github.com/sells-group/match-test/internal/matchrank"
	"github.com/sells-group/match-test/internal/sampledata"
	"github.com/sells-group/match-test/internal/session"
	"github.com/sells-group/match-test/internal/store"
	"github.com/sells-group/match-test/internal/upload"
)

var (
	errBadRequest = eris.New("invalid request")
	errNotFound   = eris.New("not found")
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, upload.ErrUnsupportedFileType),
		errors.Is(err, fieldmap.ErrUnknownMatchType),
		errors.Is(err, fieldmap.ErrUnknownColumn),
		errors.Is(err, fieldmap.ErrNoMatchType),
		errors.Is(err, fieldmap.ErrFieldIndex),
		errors.Is(err, matchrank.ErrUnknownMode),
		errors.Is(err, attribute.ErrInvalidConfig),
		errors.Is(err, sampledata.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, errNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrUnknownCategory),
		errors.Is(err, attribute.ErrUnknownAttribute),
		errors.Is(err, matchrank.ErrUnknownRank):
		return http.StatusNotFound
	case errors.Is(err, matchrank.ErrNoDraft),
		errors.Is(err, session.ErrNoFile),
		errors.Is(err, session.ErrNoEditor):
		return http.StatusConflict
	case errors.Is(err, fieldmap.ErrRequiredUnmapped):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, jobs.ErrFetchFailed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		zap.L().Error("server: request failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return eris.Wrapf(errBadRequest, "decode body: %v", err)
	}
	return nil
}

// urlParam returns a path parameter with percent-encoding removed.
func urlParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
