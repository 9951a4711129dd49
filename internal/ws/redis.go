package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/rangecard/backend/internal/solutions"
)

// StartSolutionEventSubscriber relays events published on the solution events channel
// to every feed client of hub, so each server instance sees solves made on any other.
func StartSolutionEventSubscriber(ctx context.Context, rdb *redis.Client, hub *Hub) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; solution event subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, solutions.EventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", solutions.EventsChannel)
		for msg := range ch {
			if !json.Valid([]byte(msg.Payload)) {
				log.Printf("[WS] invalid event payload: %s", msg.Payload)
				continue
			}
			hub.Broadcast([]byte(msg.Payload))
		}
		log.Printf("[WS] %s subscriber stopped", solutions.EventsChannel)
	}()
}
