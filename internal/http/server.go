package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"carlog/internal/cache"
	"carlog/internal/core"
	"carlog/internal/storage"
	appweb "carlog/web"
)

// Ledger is the application surface the server renders and mutates.
type Ledger interface {
	CreateVehicle(ctx context.Context, v core.Vehicle) (core.Vehicle, error)
	CreateMaintenance(ctx context.Context, m core.MaintenanceRecord) (core.MaintenanceRecord, error)
	CreateFuel(ctx context.Context, f core.FuelRecord) (core.FuelRecord, error)
	Snapshot(ctx context.Context) (storage.Snapshot, error)
}

// Options tunes the dashboard caches and the default timeline window.
type Options struct {
	CacheTTL     time.Duration
	CacheEntries int
	WindowMonths int
}

func (o Options) withDefaults() Options {
	if o.CacheTTL <= 0 {
		o.CacheTTL = 30 * time.Second
	}
	if o.CacheEntries <= 0 {
		o.CacheEntries = 128
	}
	if o.WindowMonths <= 0 {
		o.WindowMonths = 3
	}
	return o
}

type Server struct {
	http.Server
	templates   *template.Template
	ledger      Ledger
	rateLimiter *rateLimiter

	// Rendered partials keyed by their query parameters. Flushed on
	// every write so derived views never serve stale data.
	statsCache    *cache.LRUCache[string]
	timelineCache *cache.LRUCache[string]
	caches        *cache.Manager

	windowMonths int
	now          func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, ledger Ledger, opts Options) *Server {
	opts = opts.withDefaults()
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:        ledger,
		rateLimiter:   newRateLimiter(),
		statsCache:    cache.NewLRUCache[string](opts.CacheEntries, opts.CacheTTL),
		timelineCache: cache.NewLRUCache[string](opts.CacheEntries, opts.CacheTTL),
		caches:        cache.NewManager(),
		windowMonths:  opts.WindowMonths,
		now:           time.Now,
	}
	s.caches.Register(s.statsCache)
	s.caches.Register(s.timelineCache)
	s.caches.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/vehicles", s.withSecurityHeaders(s.handleCreateVehicle))
	mux.HandleFunc("/maintenance", s.withSecurityHeaders(s.handleCreateMaintenance))
	mux.HandleFunc("/fuel", s.withSecurityHeaders(s.handleCreateFuel))
	// UI partials
	mux.HandleFunc("/ui/stats", s.withSecurityHeaders(s.handleStats))
	mux.HandleFunc("/ui/timeline", s.withSecurityHeaders(s.handleTimeline))
	mux.HandleFunc("/export", s.withSecurityHeaders(s.handleExport))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.caches != nil {
			s.caches.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
