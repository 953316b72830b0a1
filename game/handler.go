package game

import (
	"encoding/json"
	"net/http"
	"time"

	"scriblet/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1 << 20

	// Generous enough for a stream of stroke updates, tight enough to
	// shed a misbehaving client.
	messagesPerSecond = 20
	messageBurst      = 40
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS upgrades the HTTP request and hands the connection to the hub.
func ServeWS(hub *Hub, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Error("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &models.Client{
			ID:      uuid.New().String(),
			Conn:    conn,
			Send:    make(chan []byte, 256),
			Limiter: rate.NewLimiter(messagesPerSecond, messageBurst),
		}
		hub.Connect(client)

		go writePump(client, logger)
		go readPump(hub, client, logger)
	}
}

// readPump reads client frames, enforces the rate limit and forwards
// decoded events to the hub. It owns connection teardown.
func readPump(hub *Hub, client *models.Client, logger *zap.Logger) {
	defer func() {
		hub.Disconnect(client.ID)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("unexpected websocket close",
					zap.String("conn", client.ID),
					zap.Error(err),
				)
			}
			return
		}
		if !client.Limiter.Allow() {
			logger.Warn("rate limit exceeded, dropping message", zap.String("conn", client.ID))
			continue
		}
		var msg models.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warn("malformed client message",
				zap.String("conn", client.ID),
				zap.Error(err),
			)
			continue
		}
		hub.Deliver(client, msg)
	}
}

// writePump drains the client's send queue and keeps the connection
// alive with pings.
func writePump(client *models.Client, logger *zap.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				logger.Warn("websocket write failed",
					zap.String("conn", client.ID),
					zap.Error(err),
				)
				return
			}
		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
