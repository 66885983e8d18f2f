// Package web serves the live component preview over HTTP.
//
// The page is rebuilt on every request. Browsers keep a websocket open on
// ReloadPath and reload when a watched file changes.
package web

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/logger"
)

// ReloadPath is the websocket endpoint the preview page listens on.
const ReloadPath = "/ws"

const (
	reloadMessage   = "reload"
	writeTimeout    = 5 * time.Second
	debounce        = 150 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// PageFunc renders the current preview page.
type PageFunc func(ctx context.Context) (string, error)

// Config configures the preview server.
type Config struct {
	// Page renders the preview. Errors wrapping domain.ErrPreviewBlocked are
	// shown as a diagnostic page that still reloads.
	Page PageFunc

	// Watch lists files whose changes trigger a reload.
	Watch []string

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

// Server serves the preview page and the reload channel.
type Server struct {
	cfg      Config
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewServer creates a preview server.
func NewServer(cfg Config) *Server {
	return &Server{
		cfg: cfg,
		// The zero Upgrader rejects handshakes whose Origin host differs
		// from the request host, so other sites cannot subscribe.
		upgrader: websocket.Upgrader{},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc(ReloadPath, s.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.cfg.Metrics != nil {
		mux.Handle("/metrics", s.cfg.Metrics)
	}
	return mux
}

// Run serves on addr and watches files until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	if len(s.cfg.Watch) > 0 {
		go func() {
			if err := s.Watch(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		_ = server.Close()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.closeClients()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown preview server: %w", err)
	}
	return nil
}

// Watch broadcasts a reload whenever a watched file is written or replaced.
// Directories are watched rather than files because editors often save by
// renaming a temp file over the original.
func (s *Server) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	targets := make(map[string]bool, len(s.cfg.Watch))
	dirs := make(map[string]bool)
	for _, f := range s.cfg.Watch {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Debug("preview: %s changed", ev.Name)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() { s.Broadcast() })
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("preview watcher: %v", err)
		}
	}
}

// Broadcast tells every connected page to reload and returns how many
// were reached.
func (s *Server) Broadcast() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	sent := 0
	for conn := range s.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reloadMessage)); err != nil {
			logger.Debug("preview: dropping client: %v", err)
			conn.Close()
			delete(s.clients, conn)
			continue
		}
		sent++
	}
	return sent
}

// Clients returns the number of connected pages.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page, err := s.cfg.Page(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	switch {
	case err == nil:
		_, _ = w.Write([]byte(page))
	case errors.Is(err, domain.ErrPreviewBlocked):
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(messagePage("Preview blocked", err)))
	default:
		logger.Error("preview: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(messagePage("Preview failed", err)))
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug("preview: websocket upgrade: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	// Pages never send anything; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// messagePage shows err and keeps listening for reloads.
func messagePage(title string, err error) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>%[1]s</title></head>
<body style="font-family: monospace; background: #111; color: #f55; padding: 2rem;">
<h1>%[1]s</h1>
<pre>%[2]s</pre>
<script>
  const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '%[3]s');
  ws.onmessage = () => location.reload();
</script>
</body>
</html>
`, html.EscapeString(title), html.EscapeString(err.Error()), ReloadPath)
}
