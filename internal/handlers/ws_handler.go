package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"teamtask-api/internal/middleware"
	"teamtask-api/internal/realtime"
)

// wsClient implements realtime.Client by wrapping a websocket connection.
type wsClient struct {
	conn *websocket.Conn
}

func (c *wsClient) Send(message []byte) bool {
	if c == nil || c.conn == nil {
		return false
	}
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		return false
	}
	return true
}

func (c *wsClient) Close() {
	if c != nil && c.conn != nil {
		_ = c.conn.Close()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is already handled at Gin level; allow upgrade from any origin
		return true
	},
}

// WebSocket handles GET /api/ws: upgrades the connection and registers the
// client on the notification hub. Requires JWT middleware.
func (a *API) WebSocket(c *gin.Context) {
	staffID := c.GetUint(middleware.CtxStaffID)
	if staffID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Staff not authorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{conn: conn}
	a.hub.Register(staffID, client)

	// Heartbeat: periodic pings; the reader loop exits on error
	pingTicker := time.NewTicker(30 * time.Second)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-pingTicker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
					return
				}
			}
		}
	}()
	defer func() {
		close(done)
		pingTicker.Stop()
		a.hub.Unregister(staffID, client)
		client.Close()
	}()

	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

var _ realtime.Client = (*wsClient)(nil)
