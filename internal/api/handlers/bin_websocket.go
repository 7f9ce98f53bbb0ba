package handlers

import (
	"log"
	"net/http"

	"civicpulse-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BinWebSocketHandler upgrades dashboard connections to the live bin feed.
type BinWebSocketHandler struct {
	wsManager *ws.Manager
}

func NewBinWebSocketHandler(wsManager *ws.Manager) *BinWebSocketHandler {
	return &BinWebSocketHandler{wsManager: wsManager}
}

// HandleBinFeed upgrades the HTTP connection and registers the client for
// bin fill-level updates.
func (h *BinWebSocketHandler) HandleBinFeed(c *gin.Context) {
	clientID := uuid.New().String()

	conn, err := h.wsManager.GetUpgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection to WebSocket: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to upgrade to WebSocket"})
		return
	}

	if err := h.wsManager.RegisterClient(clientID, conn); err != nil {
		log.Printf("Failed to register WebSocket client: %v", err)
		conn.Close()
		return
	}

	log.Printf("Bin feed client connected: %s", clientID)
}

// GetFeedStats reports how many dashboard clients are connected.
func (h *BinWebSocketHandler) GetFeedStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"connectedClients": h.wsManager.GetConnectedClients(),
	})
}
