package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *DashboardServer) handleWebsockets() {
	for {
		select {
		case <-s.done:
			for client := range s.clients {
				delete(s.clients, client)
				close(client.send)
			}
			return

		case client := <-s.register:
			s.clients[client] = struct{}{}
			// Send initial state on connect
			s.stateMutex.RLock()
			if s.latestState != nil {
				client.send <- s.latestState
			}
			s.stateMutex.RUnlock()

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}

		case snapshot := <-s.broadcast:
			// Update state and broadcast
			s.stateMutex.Lock()
			s.latestState = snapshot
			s.stateMutex.Unlock()

			for client := range s.clients {
				select {
				case client.send <- snapshot:
					// Message sent successfully
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// Broadcast queues a refresh snapshot for all connected clients.
func (s *DashboardServer) Broadcast(snapshot *models.MDashboardSnapshot) {
	snapshot.Type = "UPDATE"
	s.broadcast <- snapshot
}

// -----------------------------------------------------------------------------

// UpdateSnapshot replaces the internal state without waking clients.
func (s *DashboardServer) UpdateSnapshot(snapshot *models.MDashboardSnapshot) {
	s.stateMutex.Lock()
	snapshot.Type = "UPDATE"
	s.latestState = snapshot
	s.stateMutex.Unlock()
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MDashboardSnapshot, 256),
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *DashboardServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	s.stateMutex.RLock()
	response := s.subscribeResponse(cmd.Symbols)
	s.stateMutex.RUnlock()

	// Non-blocking send; the Hub loop prunes clients whose buffers stay full
	select {
	case client.send <- response:
	default:
	}
}

// -----------------------------------------------------------------------------
// Response Filtering
// -----------------------------------------------------------------------------

// subscribeResponse builds the initial state for a subscribe command. An
// empty symbol list means the whole watchlist. Callers hold stateMutex.
func (s *DashboardServer) subscribeResponse(symbols []string) *models.MDashboardSnapshot {
	filtered := make(map[string]models.MQuote)
	if len(symbols) == 0 {
		filtered = s.latestState.Quotes
	} else {
		for _, sym := range symbols {
			if q, exists := s.latestState.Quotes[sym]; exists {
				filtered[sym] = q
			}
		}
	}

	return &models.MDashboardSnapshot{
		Type:           "INITIAL",
		Quotes:         filtered,
		Movers:         s.latestState.Movers,
		Summary:        s.latestState.Summary,
		Sectors:        s.latestState.Sectors,
		MostActive:     s.latestState.MostActive,
		Timestamp:      s.latestState.Timestamp,
		RefreshMetrics: s.latestState.RefreshMetrics,
	}
}
