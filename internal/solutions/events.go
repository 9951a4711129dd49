package solutions

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rangecard/backend/internal/report"
)

// EventsChannel is the Redis pub/sub channel solution events are published on.
const EventsChannel = "solution_events"

// Event announces a completed solve to feed subscribers.
type Event struct {
	Type           string   `json:"type"`
	Caliber        string   `json:"caliber"`
	MuzzleVelocity float64  `json:"muzzle_velocity"`
	Range          float64  `json:"range"`
	Branch         string   `json:"branch"`
	Status         string   `json:"status"`
	AngleDeg       *float64 `json:"angle_deg,omitempty"`
	At             int64    `json:"at"`
}

func NewEvent(res *Result) Event {
	ev := Event{
		Type:           "solution",
		Caliber:        res.Caliber(),
		MuzzleVelocity: res.MuzzleVelocity,
		Range:          res.Range,
		Branch:         res.Branch,
		Status:         report.StatusNoSolution,
		At:             time.Now().Unix(),
	}
	if deg, ok := res.Solution.Degrees(); ok {
		ev.Status = report.StatusOK
		ev.AngleDeg = &deg
	}
	return ev
}

// Publisher fans solution events out to other processes.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// RedisPublisher publishes events as JSON on EventsChannel.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, EventsChannel, data).Err()
}
