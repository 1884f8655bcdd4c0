// Package server exposes the path and URI operations as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Addr string
	// Log defaults to the global zerolog logger.
	Log *zerolog.Logger
}

type Server struct {
	addr    string
	log     zerolog.Logger
	engine  *gin.Engine
	started time.Time
}

func New(opts Options) *Server {
	s := &Server{
		addr:    opts.Addr,
		log:     log.Logger,
		started: time.Now(),
	}
	if opts.Log != nil {
		s.log = *opts.Log
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestID())
	r.Use(s.accessLog())

	r.GET("/healthz", s.health)

	v1 := r.Group("/v1")
	v1.GET("/clean", s.clean)
	v1.GET("/join", s.join)
	v1.GET("/append", s.appendURI)
	v1.GET("/escape", s.escape)
	v1.GET("/parse", s.parse)

	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
