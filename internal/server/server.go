// Package server provides the development preview server: it serves the
// generated output tree and pushes reload notifications to connected
// browsers over a websocket after each successful rebuild.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/vitaforge/vitae/internal/logging"
)

// reloadScript is injected before </body> of served HTML pages. It reloads
// the page whenever the server broadcasts after a rebuild.
const reloadScript = `<script>
(function() {
  var proto = location.protocol === "https:" ? "wss" : "ws";
  var ws = new WebSocket(proto + "://" + location.host + "/__vitae_reload");
  ws.onmessage = function(ev) { if (ev.data === "reload") location.reload(); };
  ws.onclose = function() { setTimeout(function() { location.reload(); }, 1000); };
})();
</script>`

// PreviewServer serves the output directory with live reload.
type PreviewServer struct {
	root string
	log  logging.Logger
	srv  *http.Server

	mutex   sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// New creates a preview server rooted at the build output directory.
func New(root string, log logging.Logger) *PreviewServer {
	if log == nil {
		log = logging.Discard()
	}
	return &PreviewServer{
		root:    root,
		log:     log.WithComponent("preview"),
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Start begins serving on addr. It returns once the listener is bound; the
// serve loop runs until Shutdown.
func (s *PreviewServer) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/__vitae_reload", s.handleReloadSocket)
	mux.HandleFunc("/", s.handleStatic)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("binding preview server: %w", err)
	}

	s.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := s.srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error(err, "preview server stopped")
		}
	}()

	s.log.Info("preview server listening", "addr", "http://"+addr)
	return nil
}

// Shutdown stops the server and disconnects all reload clients.
func (s *PreviewServer) Shutdown(ctx context.Context) error {
	s.mutex.Lock()
	for conn := range s.clients {
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
	s.clients = make(map[*websocket.Conn]struct{})
	s.mutex.Unlock()

	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// NotifyReload tells every connected browser to reload. Failed writes drop
// the client; browsers reconnect on their own.
func (s *PreviewServer) NotifyReload() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s.mutex.Lock()
	defer s.mutex.Unlock()
	for conn := range s.clients {
		if err := conn.Write(ctx, websocket.MessageText, []byte("reload")); err != nil {
			_ = conn.Close(websocket.StatusAbnormalClosure, "write failed")
			delete(s.clients, conn)
		}
	}
}

func (s *PreviewServer) handleReloadSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Warn("websocket accept failed", "error", err.Error())
		return
	}

	s.mutex.Lock()
	s.clients[conn] = struct{}{}
	s.mutex.Unlock()

	// Hold the connection open; the client never sends anything we care
	// about, so the read pump exists only to notice disconnects.
	go func() {
		defer func() {
			s.mutex.Lock()
			delete(s.clients, conn)
			s.mutex.Unlock()
			_ = conn.Close(websocket.StatusNormalClosure, "")
		}()
		for {
			if _, _, err := conn.Read(r.Context()); err != nil {
				return
			}
		}
	}()
}

// handleStatic serves files from the output tree, injecting the reload
// script into HTML responses.
func (s *PreviewServer) handleStatic(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
	if rel == "" {
		rel = "index.html"
	}
	path := filepath.Join(s.root, rel)

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		path = filepath.Join(path, "index.html")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if strings.HasSuffix(path, ".html") {
		page := string(data)
		if idx := strings.LastIndex(page, "</body>"); idx >= 0 {
			page = page[:idx] + reloadScript + page[idx:]
		} else {
			page += reloadScript
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
		return
	}

	http.ServeFile(w, r, path)
}
