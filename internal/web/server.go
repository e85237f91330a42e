package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Fbari2002/side-quest/internal/model"
	"github.com/Fbari2002/side-quest/internal/quest"
	"github.com/Fbari2002/side-quest/internal/state"
)

// QuestGenerator produces quests for validated requests.
type QuestGenerator interface {
	Generate(ctx context.Context, req model.QuestRequest) (quest.Result, error)
}

// Server serves the quest generation API.
type Server struct {
	Quests QuestGenerator
	State  state.Store
	Logger *zap.Logger
	Addr   string

	// Online reports whether an upstream credential is configured.
	Online bool
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe starts the HTTP server and shuts it down when ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger().Info("serving", zap.String("addr", "http://"+s.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger().Info("server stopped")
	return nil
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
