package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/match-test/internal/masking"
	"github.com/sells-group/match-test/internal/sampledata"
)

func maskedParam(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("masked")
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, eris.Wrapf(errBadRequest, "masked=%q", raw)
	}
	return b, nil
}

func (s *Server) handleSampleData(w http.ResponseWriter, r *http.Request) {
	masked, err := maskedParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"masked":  masked,
		"columns": sampledata.Columns,
		"rows":    sampledata.Preview(s.sample, sampledata.Columns, masked),
	})
}

func (s *Server) handleSampleExport(w http.ResponseWriter, r *http.Request) {
	masked, err := maskedParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	format, err := sampledata.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := sampledata.Write(&buf, format, s.sample, sampledata.Columns, masked); err != nil {
		writeError(w, eris.Wrap(err, "server: export sample data"))
		return
	}

	name := sampledata.FileName(masked, format, s.opts.Now())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

type maskRequest struct {
	Value any    `json:"value"`
	Field string `json:"field"`
}

func (s *Server) handleMask(w http.ResponseWriter, r *http.Request) {
	var req maskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"kind":   string(masking.Classify(req.Field)),
		"masked": masking.Value(req.Value, req.Field),
	})
}
