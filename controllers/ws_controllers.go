package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/frotaweb/fleet-app/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RequestEventsHandler -> staff WebSocket endpoint for new-request alerts
func RequestEventsHandler(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	if role != "staff" && role != "admin" {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	realtime.RegisterClient(ws, role)

	// Confirm the subscription before any event arrives
	ws.WriteJSON(realtime.Message{
		Type:    realtime.EventConnectionEstablished,
		Message: "Conectado ao sistema de notificações de solicitações",
	})

	// Drain incoming frames until the peer goes away
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	realtime.UnregisterClient(ws)
}
