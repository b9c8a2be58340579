package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/match-test/internal/jobs"
	"github.com/sells-group/match-test/internal/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

// filterFromQuery reads ?search= and repeatable ?type= parameters.
func filterFromQuery(r *http.Request) (jobs.Filter, error) {
	q := r.URL.Query()
	f := jobs.Filter{Search: q.Get("search")}
	for _, raw := range q["type"] {
		t, ok := model.ParseJobMatchType(raw)
		if !ok {
			return jobs.Filter{}, eris.Wrapf(errBadRequest, "unknown match type %q", raw)
		}
		f.AddMatchType(t)
	}
	return f, nil
}

// listJobs runs a fetch and returns its settled snapshot filtered by f.
// A failed fetch is reported in the body with a 503, and a fetch still
// loading when Options.JobsWait runs out with a 504.
func (s *Server) listJobs(w http.ResponseWriter, r *http.Request, f jobs.Filter) {
	waitCtx := r.Context()
	if s.opts.JobsWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(waitCtx, s.opts.JobsWait)
		defer cancel()
	}
	snap := s.jobs.Start(r.Context()).Wait(waitCtx)
	switch snap.State {
	case jobs.StateSuccess:
		snap.Jobs = f.Apply(snap.Jobs)
		writeJSON(w, http.StatusOK, snap)
	case jobs.StateError:
		writeJSON(w, http.StatusServiceUnavailable, snap)
	default:
		writeJSON(w, http.StatusGatewayTimeout, snap)
	}
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.listJobs(w, r, f)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(urlParam(r, "id"))
	if err != nil {
		writeError(w, eris.Wrapf(errBadRequest, "job id %q", urlParam(r, "id")))
		return
	}
	job, err := s.jobs.Job(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := s.jobs.KPIs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kpis)
}

func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	conns, err := s.jobs.Connections(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conns)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.jobs.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
