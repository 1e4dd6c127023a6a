package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"clob/internal/engine"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP front-end: it owns nothing but an *engine.Engine and a
// net/http.Server, the same shape internal/net.Server has for the TCP
// transport, adapted to a request/response protocol instead of a streaming
// one.
type Server struct {
	addr   string
	engine *engine.Engine
	cancel context.CancelFunc
}

func New(addr string, e *engine.Engine) *Server {
	return &Server{addr: addr, engine: e}
}

func (s *Server) Shutdown() {
	log.Info().Msg("server shutting down")
	s.cancel()
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to shutdownTimeout before returning.
func (s *Server) Run(ctx context.Context) error {
	defer s.Shutdown()

	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	httpServer := &http.Server{
		Addr:    s.addr,
		Handler: NewRouter(s.engine),
	}

	t.Go(func() error {
		log.Info().Str("addr", s.addr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	t.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return t.Wait()
}
