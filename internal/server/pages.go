package server

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var shellPage = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Match Test</title>
<base href="{{.Base}}">
</head>
<body>
<div id="root" data-base-path="{{.Base}}" data-page="{{.Page}}"{{if .JobID}} data-job-id="{{.JobID}}"{{end}}></div>
</body>
</html>
`))

type shellData struct {
	Base  string
	Page  string
	JobID string
}

// basePrefix is the mount prefix with a trailing slash.
func (s *Server) basePrefix() string {
	return strings.TrimRight(s.opts.BasePath, "/") + "/"
}

func (s *Server) pageRoutes(r chi.Router) {
	for _, page := range []string{"/", "/run", "/connections", "/intelligence"} {
		r.Get(page, s.handlePage(strings.TrimPrefix(page, "/")))
	}
	r.Get("/preparing-report", s.handlePreparingReport)

	// Unknown page paths fall back to the overview.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.basePrefix(), http.StatusFound)
	})
}

func (s *Server) handlePage(page string) http.HandlerFunc {
	if page == "" {
		page = "overview"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderShell(w, shellData{Page: page, JobID: r.URL.Query().Get("jobId")})
	}
}

// handlePreparingReport requires a jobId; without one the user is sent back
// to the overview.
func (s *Server) handlePreparingReport(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("jobId")
	if jobID == "" {
		http.Redirect(w, r, s.basePrefix(), http.StatusFound)
		return
	}
	s.renderShell(w, shellData{Page: "preparing-report", JobID: jobID})
}

func (s *Server) renderShell(w http.ResponseWriter, data shellData) {
	data.Base = s.basePrefix()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := shellPage.Execute(w, data); err != nil {
		zap.L().Error("server: render shell", zap.Error(err))
	}
}
