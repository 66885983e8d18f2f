package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archie/internal/core/domain"
)

func staticPage(body string, err error) PageFunc {
	return func(context.Context) (string, error) { return body, err }
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + ReloadPath
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHandlePage(t *testing.T) {
	tests := []struct {
		name       string
		page       PageFunc
		wantStatus int
		wantBody   string
	}{
		{
			name:       "renders page",
			page:       staticPage("<html>card</html>", nil),
			wantStatus: http.StatusOK,
			wantBody:   "<html>card</html>",
		},
		{
			name:       "blocked preview",
			page:       staticPage("", fmt.Errorf("%w: 1:5: unclosed '{'", domain.ErrPreviewBlocked)),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "unclosed &#39;{&#39;",
		},
		{
			name:       "render failure",
			page:       staticPage("", errors.New("boom")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Preview failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(NewServer(Config{Page: tt.page}).Handler())
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/")
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, string(body), tt.wantBody)
			assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
		})
	}
}

func TestHandlePage_UnknownPath(t *testing.T) {
	srv := httptest.NewServer(NewServer(Config{Page: staticPage("x", nil)}).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("archie_llm_requests_total 0"))
	})

	t.Run("mounted when configured", func(t *testing.T) {
		srv := httptest.NewServer(NewServer(Config{Page: staticPage("x", nil), Metrics: metrics}).Handler())
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "archie_llm_requests_total")
	})

	t.Run("absent otherwise", func(t *testing.T) {
		srv := httptest.NewServer(NewServer(Config{Page: staticPage("x", nil)}).Handler())
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestBroadcast(t *testing.T) {
	s := NewServer(Config{Page: staticPage("x", nil)})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	assert.Equal(t, 0, s.Broadcast())

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return s.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, s.Broadcast())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, reloadMessage, string(msg))

	conn.Close()
	assert.Eventually(t, func() bool { return s.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestReloadSocket_Origin(t *testing.T) {
	s := NewServer(Config{Page: staticPage("x", nil)})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + ReloadPath

	tests := []struct {
		name   string
		origin string
		ok     bool
	}{
		{"no origin", "", true},
		{"same host", srv.URL, true},
		{"other site", "https://evil.example", false},
		{"other port", "http://127.0.0.1:1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}

			conn, resp, err := websocket.DefaultDialer.Dial(url, header)
			if resp != nil && resp.Body != nil {
				defer resp.Body.Close()
			}
			if !tt.ok {
				require.Error(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				return
			}
			require.NoError(t, err)
			conn.Close()
		})
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "Card.jsx")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(watched, []byte("export default 1"), 0o600))

	s := NewServer(Config{Page: staticPage("x", nil), Watch: []string{watched}})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return s.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o600))
	require.NoError(t, os.WriteFile(watched, []byte("export default 2"), 0o600))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, reloadMessage, string(msg))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	s := NewServer(Config{Watch: []string{filepath.Join(t.TempDir(), "gone", "Card.jsx")}})
	err := s.Watch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch")
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	s := NewServer(Config{Page: staticPage("x", nil)})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(7 * time.Second):
		t.Fatal("server did not stop")
	}
}
