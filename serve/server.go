package serve

import (
	"context"
	"errors"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"minic/config"
	"minic/report"
)

// Server is the JSON-over-HTTP analysis service.  Every request runs its own
// pipeline; the only state shared between requests is the result cache, which
// only ever holds immutable encoded responses.
type Server struct {
	cfg *config.Config
	rep *report.Reporter

	// cache maps the digest of a request to its encoded response.
	cache *lru.ARCCache

	handler http.Handler
}

// NewServer creates a new analysis service.
func NewServer(cfg *config.Config, rep *report.Reporter) (*Server, error) {
	cache, err := lru.NewARC(cfg.Server.CacheSize)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:   cfg,
		rep:   rep,
		cache: cache,
	}

	router := httprouter.New()
	router.GET("/healthz", s.handleHealth)
	router.POST("/v1/scan", s.handleAnalyze(stageScan))
	router.POST("/v1/parse", s.handleAnalyze(stageParse))
	router.POST("/v1/check", s.handleAnalyze(stageCheck))

	s.handler = cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	return s, nil
}

// Handler returns the service's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves requests on the configured address until the context
// is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.rep.ReportInfo("serve", "listening on http://%s", s.cfg.Server.Address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}
}
