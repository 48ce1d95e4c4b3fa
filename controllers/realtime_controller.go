package controllers

import (
	"net/http"

	"github.com/dream2405/healthy-meal-backend/logger"
	"github.com/dream2405/healthy-meal-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ConnectWS upgrades the request to a websocket and keeps the client
// registered with the hub until the connection drops. The read loop only
// drains control frames; all traffic is server-to-client.
func ConnectWS(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	client := &services.WSClient{UserID: userID, Conn: conn}
	hub.Register(client)

	go func() {
		defer hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
