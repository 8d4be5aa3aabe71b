package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Topics the hub fans out. Live recording points go to TopicTrack,
// first-time gem discoveries to TopicDiscoveries.
const (
	TopicTrack       = "track"
	TopicDiscoveries = "discoveries"
)

// Event is the envelope every broadcast payload is wrapped in.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	Topic string
	Send  chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(topic string) *Client {
	client := &Client{
		Topic: topic,
		Send:  make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[topic] == nil {
		h.clients[topic] = map[*Client]struct{}{}
	}
	h.clients[topic][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if topicClients, ok := h.clients[client.Topic]; ok {
		delete(topicClients, client)
		if len(topicClients) == 0 {
			delete(h.clients, client.Topic)
		}
	}
	close(client.Send)
}

// Publish marshals an event envelope and broadcasts it on the topic.
func (h *Hub) Publish(topic string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("stream marshal error: %v", err)
		return
	}
	h.Broadcast(topic, payload)
}

// Broadcast delivers a raw payload to every local subscriber of the topic
// and mirrors it to the Redis channel for other instances. Slow clients are
// skipped, never waited on.
func (h *Hub) Broadcast(topic string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[topic]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(topic), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "capequest:*:broadcast")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		topic := topicFromChannel(msg.Channel)
		h.mu.RLock()
		clients := h.clients[topic]
		h.mu.RUnlock()
		for client := range clients {
			select {
			case client.Send <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func redisChannel(topic string) string {
	return "capequest:" + topic + ":broadcast"
}

func topicFromChannel(ch string) string {
	// capequest:{topic}:broadcast
	const prefix = "capequest:"
	const suffix = ":broadcast"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
