package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"artvista/internal/events"
	"artvista/internal/gallery"
	applog "artvista/internal/log"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = feedPongWait * 9 / 10
	feedBuffer     = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Events streams the workspace's store events over a websocket. It runs outside the
// session middleware, so the workspace is resolved from the cookie directly.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFromCookie(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "no workspace bound to this browser")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		applog.Debug(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	queue := make(chan events.Event, feedBuffer)
	unsubscribe := ws.Subscribe(func(e events.Event) {
		select {
		case queue <- e:
		default:
			applog.Warn(r.Context(), "event feed full, dropping event", "workspace", ws.ID, "store", e.Store)
		}
	})
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(feedPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	applog.Debug(r.Context(), "event feed opened", "workspace", ws.ID)
	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case e := <-queue:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteJSON(e); err != nil {
				applog.Debug(r.Context(), "event feed write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			applog.Debug(r.Context(), "event feed closed", "workspace", ws.ID)
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (h *Handler) workspaceFromCookie(r *http.Request) (*gallery.Workspace, bool) {
	cookie, err := r.Cookie(h.sessions.Cookie.Name)
	if err != nil {
		return nil, false
	}
	ctx, err := h.sessions.Load(r.Context(), cookie.Value)
	if err != nil {
		applog.Error(r.Context(), "failed to load session for event feed", "error", err)
		return nil, false
	}
	id := h.sessions.GetString(ctx, sessionWorkspaceKey)
	if id == "" {
		return nil, false
	}
	ws, err := h.gallery.Workspace(r.Context(), id)
	if err != nil {
		applog.Error(r.Context(), "failed to open workspace for event feed", "error", err)
		return nil, false
	}
	return ws, true
}
