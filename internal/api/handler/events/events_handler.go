package events

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/veritlyapp-cell/liah-backend/internal/events"
	"github.com/veritlyapp-cell/liah-backend/internal/model"
	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Token auth already ran in middleware; origin checks are handled by
	// the CORS layer for regular requests.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// EventsHandler streams requisition lifecycle events over WebSocket.
type EventsHandler struct {
	hub *events.Hub
}

func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Subscribe upgrades the connection and forwards events scoped to the
// caller's holding until the client disconnects.
func (h *EventsHandler) Subscribe(c *gin.Context) {
	holdingID := c.GetString("holding_id")
	if c.GetString("role") == model.RoleAdmin {
		// Platform operators may watch everything.
		holdingID = c.Query("holding_id")
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("WebSocket upgrade failed: %v", err)
		return
	}

	ch := h.hub.Subscribe(holdingID)
	defer h.hub.Unsubscribe(ch)
	defer conn.Close()

	// Reader goroutine: drain client frames and detect disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
