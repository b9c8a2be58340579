// Package server exposes the match test workflow over HTTP.
package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/match-test/internal/catalog"
	"github.com/sells-group/match-test/internal/jobs"
	"github.com/sells-group/match-test/internal/model"
	"github.com/sells-group/match-test/internal/progress"
	"github.com/sells-group/match-test/internal/sampledata"
	"github.com/sells-group/match-test/internal/session"
)

// Options configures the HTTP surface.
type Options struct {
	BasePath       string
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
	Progress       progress.Options
	// JobsWait bounds how long a job list request waits for the fetch to
	// settle. Zero waits until the client goes away.
	JobsWait time.Duration
	// Now stamps export file names. Defaults to time.Now.
	Now func() time.Time
}

// Server routes requests to the job service and workflow sessions.
type Server struct {
	router   chi.Router
	jobs     *jobs.Service
	sessions *session.Manager
	catalog  *catalog.Catalog
	sample   []model.SampleDataRow
	opts     Options
}

// New builds the router.
func New(cat *catalog.Catalog, js *jobs.Service, sessions *session.Manager, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		jobs:     js,
		sessions: sessions,
		catalog:  cat,
		sample:   sampledata.Generate(),
		opts:     opts,
	}

	app := chi.NewRouter()
	app.Use(middleware.RequestID)
	app.Use(accessLog)
	app.Use(middleware.Recoverer)
	app.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		app.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimit), burst)))
	}
	s.routes(app)

	base := strings.TrimRight(opts.BasePath, "/")
	if base == "" {
		s.router = app
		return s
	}
	root := chi.NewRouter()
	root.Mount(base, app)
	root.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, base+"/", http.StatusFound)
	})
	s.router = root
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(r chi.Router) {
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/jobs", s.handleListJobs)
		r.Get("/jobs/{id}", s.handleGetJob)
		r.Get("/kpis", s.handleKPIs)
		r.Get("/connections", s.handleConnections)
		r.Get("/summary", s.handleSummary)

		r.Get("/sample-data", s.handleSampleData)
		r.Get("/sample-data/export", s.handleSampleExport)
		r.Post("/mask", s.handleMask)

		r.Get("/reports/{jobId}/progress", s.handleReportProgress)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{sid}", func(r chi.Router) {
			r.Delete("/", s.handleDeleteSession)

			r.Post("/file", s.withSession(s.handleUploadFile))
			r.Put("/match-type", s.withSession(s.handleSelectMatchType))
			r.Get("/mappings", s.withSession(s.handleMappings))
			r.Put("/mappings/{index}", s.withSession(s.handleSetMapping))
			r.Post("/process", s.withSession(s.handleProcess))

			r.Get("/attributes", s.withSession(s.handleAttributes))
			r.Post("/attributes/select-all", s.withSession(s.handleSelectAllAttributes))
			r.Post("/attributes/deselect-all", s.withSession(s.handleDeselectAllAttributes))
			r.Post("/attributes/{id}/toggle", s.withSession(s.handleToggleAttribute))
			r.Post("/attribute-categories/{category}/toggle", s.withSession(s.handleToggleCategory))
			r.Get("/attribute-configs", s.withSession(s.handleAttributeConfigs))
			r.Get("/attribute-configs/{name}", s.withSession(s.handleGetAttributeConfig))
			r.Put("/attribute-configs/{name}", s.withSession(s.handleSaveAttributeConfig))
			r.Route("/attribute-configs/{name}/editor", func(r chi.Router) {
				r.Post("/", s.withSession(s.handleOpenEditor))
				r.Get("/", s.withSession(s.handleEditor))
				r.Delete("/", s.withSession(s.handleCloseEditor))
				r.Post("/options/{option}/toggle", s.withSession(s.handleEditorToggleOption))
				r.Post("/select-all", s.withSession(s.handleEditorSelectAll))
				r.Post("/deselect-all", s.withSession(s.handleEditorDeselectAll))
				r.Post("/reset", s.withSession(s.handleEditorReset))
				r.Put("/range", s.withSession(s.handleEditorSetRange))
				r.Post("/save", s.withSession(s.handleEditorSave))
			})

			r.Get("/ranks", s.withSession(s.handleRanks))
			r.Post("/ranks/draft", s.withSession(s.handleOpenDraft))
			r.Get("/ranks/draft", s.withSession(s.handleDraft))
			r.Delete("/ranks/draft", s.withSession(s.handleDiscardDraft))
			r.Post("/ranks/draft/apply", s.withSession(s.handleApplyDraft))
			r.Post("/ranks/draft/categories/{category}/{mode}", s.withSession(s.handleDraftCategoryMode))
			r.Post("/ranks/draft/{id}/toggle", s.withSession(s.handleDraftToggle))

			r.Get("/filters", s.withSession(s.handleFilters))
			r.Put("/filters/search", s.withSession(s.handleSetSearch))
			r.Post("/filters/types/{type}/toggle", s.withSession(s.handleToggleMatchTypeFilter))
			r.Delete("/filters", s.withSession(s.handleClearFilters))
			r.Get("/jobs", s.withSession(s.handleSessionJobs))
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, eris.Wrapf(errNotFound, "%s %s", r.Method, r.URL.Path))
		})
	})

	s.pageRoutes(r)
}
