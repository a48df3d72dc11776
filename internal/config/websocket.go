package config

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket builds the upgrader for renderer connections. Outside
// development only same-origin renderers and the allowed origins may
// connect.
func NewWebSocket(app *App) *WebSocket {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}
	switch {
	case app.Development:
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	case len(app.AllowedOrigins) > 0:
		upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == "http://"+r.Host ||
				slices.Contains(app.AllowedOrigins, origin)
		}
	}
	return &WebSocket{Upgrader: upgrader}
}
