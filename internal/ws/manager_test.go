package ws

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"civicpulse-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	manager := NewManager()

	assert.NotNil(t, manager)
	assert.NotNil(t, manager.clients)
	assert.NotNil(t, manager.register)
	assert.NotNil(t, manager.unregister)
	assert.NotNil(t, manager.broadcast)
}

func TestManagerStartStop(t *testing.T) {
	manager := NewManager()

	err := manager.Start()
	assert.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	err = manager.Stop()
	assert.NoError(t, err)
}

func TestRegisterAndUnregisterClient(t *testing.T) {
	manager := NewManager()
	err := manager.Start()
	require.NoError(t, err)
	defer manager.Stop()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := manager.upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		err = manager.RegisterClient("test-client", conn)
		assert.NoError(t, err)

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 1, manager.GetConnectedClients())

		err = manager.UnregisterClient("test-client")
		assert.NoError(t, err)

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 0, manager.GetConnectedClients())
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	time.Sleep(150 * time.Millisecond)
}

func TestBroadcastBinUpdateDeliversToClient(t *testing.T) {
	manager := NewManager()
	err := manager.Start()
	require.NoError(t, err)
	defer manager.Stop()

	bin := &models.Bin{
		Code:      "IoT-BIN-001",
		FillLevel: 93,
		Status:    models.BinStatusCritical,
		Location:  models.Location{Address: "Model Town Market"},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := manager.upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)

		err = manager.RegisterClient("dashboard", conn)
		require.NoError(t, err)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)
	manager.BroadcastBinUpdate(bin)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var message struct {
		Type string    `json:"type"`
		Data BinUpdate `json:"data"`
	}
	err = conn.ReadJSON(&message)
	require.NoError(t, err)

	assert.Equal(t, "bin_update", message.Type)
	assert.Equal(t, "IoT-BIN-001", message.Data.BinCode)
	assert.Equal(t, 93, message.Data.FillLevel)
	assert.Equal(t, models.BinStatusCritical, message.Data.Status)
}

func TestStopWithConnectedClientReleasesReader(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.Start())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := manager.upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		require.NoError(t, manager.RegisterClient("viewer", conn))
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, manager.GetConnectedClients())

	before := runtime.NumGoroutine()
	require.NoError(t, manager.Stop())

	// Stop closes the connection before the run loop exits. The reader
	// goroutine must bail out instead of blocking on unregister forever.
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() < before
	}, 2*time.Second, 20*time.Millisecond)
}

func TestBroadcastWithoutClientsDoesNotBlock(t *testing.T) {
	manager := NewManager()
	err := manager.Start()
	require.NoError(t, err)
	defer manager.Stop()

	bin := &models.Bin{Code: "IoT-BIN-002", FillLevel: 40, Status: models.BinStatusNormal}
	for i := 0; i < 500; i++ {
		manager.BroadcastBinUpdate(bin)
	}
}
