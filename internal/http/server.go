package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"recycling/internal/cache"
	"recycling/internal/dataset"
	"recycling/internal/log"
	"recycling/internal/middleware/ratelimit"
	"recycling/internal/middleware/security"
	"recycling/internal/middleware/trace"
	"recycling/internal/paging"
	"recycling/internal/report"
	"recycling/internal/session"
)

// Deps are the collaborators the handlers read from and write to.
type Deps struct {
	Holder   *dataset.Holder
	Sessions *session.Store
	Engine   *report.Engine
	Logger   *log.Logger
}

type Options struct {
	PageSize           int
	ReloadOnSession    bool
	RateLimitPerMinute int
	// SessionTTL sets the cookie lifetime.
	SessionTTL           time.Duration
	CacheCleanupInterval time.Duration
	// Now anchors the recycler month window; defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	http.Server
	holder   *dataset.Holder
	sessions *session.Store
	engine   *report.Engine
	logger   *log.Logger
	audit    *log.StructuredLogger
	opts     Options

	limiter      *ratelimit.Limiter
	tracer       *trace.Middleware
	caches       *cache.Manager
	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Deps, opts Options) *Server {
	if opts.PageSize <= 0 {
		opts.PageSize = paging.DefaultPageSize
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = session.DefaultTTL
	}
	if opts.CacheCleanupInterval <= 0 {
		opts.CacheCleanupInterval = 10 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.Discard()
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      45 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 16,
		},
		holder:   deps.Holder,
		sessions: deps.Sessions,
		engine:   deps.Engine,
		logger:   logger.WithComponent(log.ComponentHTTP),
		audit:    log.NewStructuredLogger(logger),
		opts:     opts,
		limiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		tracer:   trace.NewMiddleware(logger, clientIP),
		caches:   cache.NewManager(logger),
	}

	s.caches.Register(deps.Sessions.Cleaner())
	s.caches.StartCleanup(opts.CacheCleanupInterval)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/dashboard", s.handleDashboard)
	mux.HandleFunc("/dashboard/next", s.handlePage(s.sessions.NextPage))
	mux.HandleFunc("/dashboard/prev", s.handlePage(s.sessions.PrevPage))
	mux.HandleFunc("/datasets/reload", s.handleReload)
	mux.HandleFunc("/", s.handleNotFound)

	s.Handler = s.chain(mux)
	return s
}

// chain applies middleware outermost first.
func (s *Server) chain(h http.Handler) http.Handler {
	h = s.limitPosts(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = log.RequestIDMiddleware(trace.RequestIDFromRequest)(h)
	h = log.Middleware(s.logger)(h)
	return s.tracer.Middleware(h)
}

// limitPosts rate-limits state-changing requests only.
func (s *Server) limitPosts(next http.Handler) http.Handler {
	limited := s.limiter.Middleware(clientIP, func(w http.ResponseWriter, r *http.Request) {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
			log.FieldClientIP, clientIP(r), log.FieldPath, r.URL.Path)
		writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
	})(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			limited.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops background work and the listener. Safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		s.caches.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// Metrics reports request counters.
func (s *Server) Metrics() trace.Metrics {
	return s.tracer.GetMetrics()
}
