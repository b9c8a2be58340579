package server

import (
	"net/http"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/match-test/internal/model"
	"github.com/sells-group/match-test/internal/session"
)

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *session.Session)

// withSession resolves {sid} before calling h.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Get(urlParam(r, "sid"))
		if err != nil {
			writeError(w, err)
			return
		}
		h(w, r, sess)
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":         sess.ID,
		"created_at": sess.CreatedAt,
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(urlParam(r, "sid")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Upload and mapping ---

type fileRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req fileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	f, err := sess.UploadFile(req.FileName, req.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

type matchTypeRequest struct {
	MatchType string `json:"match_type"`
}

func (s *Server) handleSelectMatchType(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req matchTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := sess.SelectMatchType(req.MatchType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleMappings(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.Mappings())
}

type mappingRequest struct {
	Column string `json:"column"`
}

func (s *Server) handleSetMapping(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	index, err := strconv.Atoi(urlParam(r, "index"))
	if err != nil {
		writeError(w, eris.Wrapf(errBadRequest, "field index %q", urlParam(r, "index")))
		return
	}
	var req mappingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := sess.SetMapping(index, req.Column)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	job, err := sess.Process(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"job_id": job.Ref,
		"job":    job,
	})
}

// --- Attributes ---

func (s *Server) handleAttributes(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, sess.Attributes(q.Get("category"), q.Get("q")))
}

func (s *Server) handleToggleAttribute(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := sess.ToggleAttribute(urlParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Attributes("", ""))
}

func (s *Server) handleToggleCategory(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := sess.ToggleCategory(urlParam(r, "category")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Attributes("", ""))
}

func (s *Server) handleSelectAllAttributes(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	sess.SelectAllAttributes()
	writeJSON(w, http.StatusOK, sess.Attributes("", ""))
}

func (s *Server) handleDeselectAllAttributes(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	sess.DeselectAllAttributes()
	writeJSON(w, http.StatusOK, sess.Attributes("", ""))
}

func (s *Server) handleAttributeConfigs(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.AttributeConfigs())
}

func (s *Server) handleGetAttributeConfig(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	cfg, err := sess.AttributeConfig(urlParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleSaveAttributeConfig(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var cfg model.AttributeConfig
	if err := decodeJSON(r, &cfg); err != nil {
		writeError(w, err)
		return
	}
	saved, err := sess.SaveAttributeConfig(urlParam(r, "name"), cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// --- Attribute config editor ---

// writeConfig returns a writer for a (config, error) result pair.
func writeConfig(w http.ResponseWriter) func(model.AttributeConfig, error) {
	return func(cfg model.AttributeConfig, err error) {
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

func (s *Server) handleOpenEditor(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	writeConfig(w)(sess.OpenAttributeEditor(urlParam(r, "name")))
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	writeConfig(w)(sess.AttributeEditor(urlParam(r, "name")))
}

func (s *Server) handleCloseEditor(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	writeConfig(w)(sess.CloseAttributeEditor(urlParam(r, "name")))
}

func (s *Server) handleEditorToggleOption(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	writeConfig(w)(sess.EditorToggleOption(urlParam(r, "name"), urlParam(r, "option")))
}

func (s *Server) handleEditorSelectAll(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	writeConfig(w)(sess.EditorSelectAll(urlParam(r, "name")))
}

func (s *Server) handleEditorDeselectAll(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	writeConfig(w)(sess.EditorDeselectAll(urlParam(r, "name")))
}

func (s *Server) handleEditorReset(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	writeConfig(w)(sess.EditorReset(urlParam(r, "name")))
}

func (s *Server) handleEditorSetRange(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var body model.RangeConfig
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	writeConfig(w)(sess.EditorSetRange(urlParam(r, "name"), body.Min, body.Max))
}

func (s *Server) handleEditorSave(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	writeConfig(w)(sess.SaveAttributeEditor(urlParam(r, "name")))
}

// --- Match ranks ---

func (s *Server) handleRanks(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.Ranks())
}

func (s *Server) handleOpenDraft(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.OpenDraft())
}

func (s *Server) handleDraft(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	view, err := sess.Draft()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDraftCategoryMode(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	view, err := sess.DraftCategoryMode(urlParam(r, "category"), urlParam(r, "mode"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDraftToggle(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id, err := strconv.Atoi(urlParam(r, "id"))
	if err != nil {
		writeError(w, eris.Wrapf(errBadRequest, "rank id %q", urlParam(r, "id")))
		return
	}
	view, err := sess.DraftToggle(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleApplyDraft(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	view, err := sess.ApplyDraft()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDiscardDraft(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.DiscardDraft())
}

// --- Overview filters ---

func (s *Server) handleFilters(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.Filter())
}

type searchRequest struct {
	Search string `json:"search"`
}

func (s *Server) handleSetSearch(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.SetSearch(req.Search))
}

func (s *Server) handleToggleMatchTypeFilter(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	t, ok := model.ParseJobMatchType(urlParam(r, "type"))
	if !ok {
		writeError(w, eris.Wrapf(errBadRequest, "unknown match type %q", urlParam(r, "type")))
		return
	}
	writeJSON(w, http.StatusOK, sess.ToggleMatchType(t))
}

func (s *Server) handleClearFilters(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, sess.ClearFilters())
}

func (s *Server) handleSessionJobs(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	s.listJobs(w, r, sess.Filter())
}
