package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/impostor-party/impostor/internal/logger"
	"github.com/impostor-party/impostor/internal/models"
	"github.com/impostor-party/impostor/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local network app, all origins welcome
	},
}

// GameFeed is the slice of the game service the hub needs: a state
// snapshot for newly connected screens and the countdown tick.
type GameFeed interface {
	State() models.GameState
	TickTimer() (models.GameState, bool)
}

// Hub maintains the set of active companion screens and broadcasts
// messages to them
type Hub struct {
	log        logger.Logger
	clients    map[*Client]bool
	broadcast  chan models.WSMessage
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	game       GameFeed
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan models.WSMessage
}

// New creates a new Hub instance with injected dependencies
func New(log logger.Logger, game GameFeed) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan models.WSMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		game:       game,
	}
}

// Start begins the hub's main loop in a goroutine
func (h *Hub) Start() {
	go h.run()
}

// run handles client registration/unregistration and message broadcasting
func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			h.log.Debug("Screen connected", "total_clients", len(h.clients))

			// Bring the new screen up to date immediately
			go func() {
				client.send <- models.WSMessage{
					Type:    "game_state",
					Payload: redactForScreens(h.game.State()),
				}
			}()

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()
			h.log.Debug("Screen disconnected", "total_clients", len(h.clients))

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send channel is full, unregister
					go func(c *Client) {
						h.unregister <- c
					}(client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// BroadcastMessage sends a message to all connected screens
func (h *Hub) BroadcastMessage(msgType string, payload interface{}) {
	h.broadcast <- models.WSMessage{
		Type:    msgType,
		Payload: payload,
	}
}

// redactForScreens strips the round's secrets from a state snapshot.
// Companion screens hang on the same LAN as the players' phones, so roles
// and words only go out once the game is over.
func redactForScreens(state models.GameState) models.GameState {
	if state.GameEnded {
		return state
	}

	state.SecretWord = ""
	state.UndercoverWord = ""
	state.ConfusedWord = ""

	players := make([]models.Player, len(state.Players))
	copy(players, state.Players)
	for i := range players {
		players[i].Role = ""
	}
	state.Players = players

	return state
}

// BroadcastGameState implements services.Broadcaster
func (h *Hub) BroadcastGameState(state models.GameState) {
	h.BroadcastMessage("game_state", redactForScreens(state))
}

// BroadcastTimerTick implements services.Broadcaster
func (h *Hub) BroadcastTimerTick(remaining int) {
	h.BroadcastMessage("timer_tick", map[string]interface{}{
		"seconds_remaining": remaining,
	})
}

// BroadcastTimerDone implements services.Broadcaster
func (h *Hub) BroadcastTimerDone() {
	h.BroadcastMessage("timer_done", nil)
}

// BroadcastCategoriesChanged implements services.Broadcaster
func (h *Hub) BroadcastCategoriesChanged() {
	h.BroadcastMessage("categories_changed", nil)
}

var _ services.Broadcaster = (*Hub)(nil)

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("WebSocket error", "error", err)
			}
			break
		}

		// Screens are read-only; log anything they send anyway
		var msg models.WSMessage
		if err := json.Unmarshal(message, &msg); err == nil {
			c.hub.log.Debug("Received message", "type", msg.Type)
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			msgBytes, _ := json.Marshal(message)
			w.Write(msgBytes)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs handles websocket requests from companion screens
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("WebSocket upgrade error", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan models.WSMessage, 256),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// StartDiscussionTicker drives the discussion countdown at 1 Hz with
// context-based cancellation. Ticks only flow while a game is in the
// timer phase with a running timer.
func (h *Hub) StartDiscussionTicker(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Info("Discussion ticker stopped")
			return
		case <-ticker.C:
			h.tickDiscussion()
		}
	}
}

func (h *Hub) tickDiscussion() {
	before := h.game.State()
	if before.CurrentPhase != models.PhaseTimer || !before.TimerRunning {
		return
	}

	state, done := h.game.TickTimer()
	h.BroadcastTimerTick(state.TimerRemaining)
	if done {
		h.log.Info("Discussion time is up")
		h.BroadcastTimerDone()
	}
}
