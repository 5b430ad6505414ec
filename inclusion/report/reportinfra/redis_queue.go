package reportinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/incluempleo/vinculo/inclusion/report"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

const dequeueTimeout = 5 * time.Second

// queueMessage is the wire format of a queued delivery
type queueMessage struct {
	ReportID   string    `json:"report_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// RedisQueue implements report.Queue using a Redis list
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue creates a new Redis-based delivery queue
func NewRedisQueue(client *redis.Client, queueName string) report.Queue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue schedules a report for asynchronous delivery
func (q *RedisQueue) Enqueue(ctx context.Context, id kernel.ReportID) error {
	data, err := json.Marshal(queueMessage{
		ReportID:   string(id),
		EnqueuedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal queue message for report %s: %w", id, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue report %s: %w", id, err)
	}

	return nil
}

// Dequeue blocks until a report is available or the timeout elapses
func (q *RedisQueue) Dequeue(ctx context.Context) (*kernel.ReportID, error) {
	result, err := q.client.BRPop(ctx, dequeueTimeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when the timeout hits
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue report: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var msg queueMessage
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		return nil, fmt.Errorf("unmarshal queue message: %w", err)
	}

	id := kernel.ReportID(msg.ReportID)
	return &id, nil
}
