package websocket

import (
	"context"
	"encoding/json"

	"photostudio-be/internal/dto"
	"photostudio-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel carries ledger events between instances.
const ClusterChannel = "ledger_events"

// Hub fans ledger events out to every connected dashboard. With Redis
// configured, events published on one instance reach clients on all of them.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	// Closed when Run returns; senders select on it so nothing blocks on a
	// stopped hub.
	done chan struct{}

	rdb    *redis.Client
	origin string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		rdb:        rdb,
		origin:     uuid.NewString(),
		logger:     log,
	}
}

// Run owns the client set until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID, "clients": len(h.clients)})

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"user_id": client.UserID})
			}

		case data := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- data:
				default:
					h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"user_id": client.UserID})
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// Broadcast delivers msg to local clients and, when Redis is available, to
// the other instances.
func (h *Hub) Broadcast(ctx context.Context, msg dto.LedgerEventMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Hub", "Failed to encode ledger event", map[string]interface{}{"error": err.Error()})
		return
	}
	if !h.send(data) {
		return
	}

	if h.rdb == nil {
		return
	}
	envelope, _ := json.Marshal(clusterMessage{Origin: h.origin, Message: data})
	if err := h.rdb.Publish(ctx, ClusterChannel, envelope).Err(); err != nil {
		h.logger.Warn("Hub", "Failed to publish to Redis", map[string]interface{}{"error": err.Error()})
	}
}

type clusterMessage struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()
	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			// Local clients already got it from Broadcast.
			if payload.Origin == h.origin {
				continue
			}
			if !h.send(payload.Message) {
				return
			}
		}
	}
}

// send queues data for Run. It reports false once the hub has stopped.
func (h *Hub) send(data []byte) bool {
	select {
	case h.broadcast <- data:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) attach(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) detach(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
