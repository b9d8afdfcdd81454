package server

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	port     int
	static   embed.FS
}

func New(port int, static embed.FS, opts Options) *Server {
	return &Server{
		handlers: NewHandlers(port, opts),
		port:     port,
		static:   static,
	}
}

// Handler returns the full route table.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	// Static files from embedded FS
	sub, err := fs.Sub(s.static, "web/static")
	if err != nil {
		return nil, fmt.Errorf("static fs: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))
	s.handlers.Routes(mux)
	return mux, nil
}

// Start serves until ctx is cancelled, then waits for running games.
func (s *Server) Start(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{Addr: addr, Handler: handler}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Printf("Automation spectator server starting on http://localhost%s", addr)
	log.Printf(`POST {"seats":"Alice:bigmoney,Bob:random"} to http://localhost%s/api/run to start a game`, addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.handlers.Close()
	err = srv.Shutdown(shutdownCtx)
	s.handlers.Wait()
	return err
}
