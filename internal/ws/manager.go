package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"civicpulse-backend/internal/models"

	"github.com/gorilla/websocket"
)

// BinUpdate is the message pushed to dashboard clients whenever the
// simulator or the empty operation changes a bin.
type BinUpdate struct {
	BinCode   string    `json:"binCode"`
	FillLevel int       `json:"fillLevel"`
	Status    string    `json:"status"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
}

// Client is a single dashboard websocket connection.
type Client struct {
	ID       string
	Conn     *websocket.Conn
	Send     chan BinUpdate
	LastPing time.Time
}

// Manager fans bin updates out to connected dashboard clients.
type Manager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan BinUpdate
	mutex      sync.RWMutex
	upgrader   websocket.Upgrader
	done       chan struct{}
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan BinUpdate, 256),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		done: make(chan struct{}),
	}
}

// Start begins the manager's event loop.
func (m *Manager) Start() error {
	go m.run()
	log.Println("Bin feed websocket manager started")
	return nil
}

// Stop shuts the manager down and closes all client connections.
func (m *Manager) Stop() error {
	close(m.done)

	m.mutex.Lock()
	for _, client := range m.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
	m.clients = make(map[string]*Client)
	m.mutex.Unlock()

	log.Println("Bin feed websocket manager stopped")
	return nil
}

func (m *Manager) run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-m.register:
			m.mutex.Lock()
			m.clients[client.ID] = client
			m.mutex.Unlock()
			log.Printf("Bin feed client %s connected", client.ID)
			go m.handleClient(client)

		case client := <-m.unregister:
			m.removeClient(client.ID)

		case update := <-m.broadcast:
			m.broadcastToClients(update)

		case <-ticker.C:
			m.healthCheck()

		case <-m.done:
			return
		}
	}
}

// RegisterClient attaches a new websocket connection to the feed.
func (m *Manager) RegisterClient(clientID string, conn *websocket.Conn) error {
	client := &Client{
		ID:       clientID,
		Conn:     conn,
		Send:     make(chan BinUpdate, 64),
		LastPing: time.Now(),
	}

	m.register <- client
	return nil
}

// UnregisterClient detaches a client from the feed.
func (m *Manager) UnregisterClient(clientID string) error {
	m.mutex.RLock()
	client, exists := m.clients[clientID]
	m.mutex.RUnlock()

	if exists {
		m.unregister <- client
	}
	return nil
}

// BroadcastBinUpdate queues a bin state change for delivery. Updates are
// dropped, not blocked on, when the feed is saturated.
func (m *Manager) BroadcastBinUpdate(bin *models.Bin) {
	update := BinUpdate{
		BinCode:   bin.Code,
		FillLevel: bin.FillLevel,
		Status:    bin.Status,
		Location:  bin.Location.Address,
		Timestamp: time.Now(),
	}

	select {
	case m.broadcast <- update:
	default:
		log.Printf("Bin feed channel full, dropping update for %s", bin.Code)
	}
}

// GetConnectedClients returns the number of attached clients.
func (m *Manager) GetConnectedClients() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// GetUpgrader exposes the upgrader for the HTTP handler.
func (m *Manager) GetUpgrader() *websocket.Upgrader {
	return &m.upgrader
}

func (m *Manager) removeClient(clientID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if client, ok := m.clients[clientID]; ok {
		delete(m.clients, clientID)
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
		log.Printf("Bin feed client %s disconnected", clientID)
	}
}

func (m *Manager) broadcastToClients(update BinUpdate) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, client := range m.clients {
		select {
		case client.Send <- update:
		default:
			log.Printf("Bin feed client %s send buffer full, skipping", client.ID)
		}
	}
}

func (m *Manager) handleClient(client *Client) {
	defer func() {
		// After Stop the run loop no longer drains unregister; Stop has
		// already closed every client, so just let the goroutine exit.
		select {
		case m.unregister <- client:
		case <-m.done:
		}
	}()

	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.LastPing = time.Now()
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go m.writeMessages(client)

	for {
		// The feed is one-way; reads only service control frames.
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Bin feed error for client %s: %v", client.ID, err)
			}
			break
		}
	}
}

func (m *Manager) writeMessages(client *Client) {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteJSON(map[string]interface{}{
				"type": "bin_update",
				"data": update,
			}); err != nil {
				log.Printf("Error writing to bin feed client %s: %v", client.ID, err)
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (m *Manager) healthCheck() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := time.Now()
	for clientID, client := range m.clients {
		if now.Sub(client.LastPing) > 90*time.Second {
			log.Printf("Bin feed client %s timed out, removing", clientID)
			delete(m.clients, clientID)
			close(client.Send)
			if client.Conn != nil {
				client.Conn.Close()
			}
		}
	}
}
