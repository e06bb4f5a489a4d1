// Package alerts records low-stock events and mails them as a daily digest.
package alerts

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rogerio-castellano/erp-analytics/internal/redissvc"
)

const DailyLowStockKey = "alerts:lowstock:daily"

// Event is one product dropping to or below its reorder point.
type Event struct {
	UserID      int       `json:"user_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	Threshold   int       `json:"threshold"`
	Time        time.Time `json:"time"`
}

// EventLog buffers events until the next digest.
type EventLog interface {
	Push(e Event) error
	// Drain returns every buffered event and empties the log.
	Drain() ([]Event, error)
	// Restore puts drained events back ahead of anything pushed since.
	Restore(events []Event) error
}

type RedisLog struct {
	rs *redissvc.RedisService
}

func NewRedisLog(rs *redissvc.RedisService) *RedisLog {
	return &RedisLog{rs: rs}
}

func (l *RedisLog) Push(e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return l.rs.Rdb().RPush(l.rs.Ctx(), DailyLowStockKey, data).Err()
}

func (l *RedisLog) Drain() ([]Event, error) {
	rdb, ctx := l.rs.Rdb(), l.rs.Ctx()

	pipe := rdb.TxPipeline()
	lrange := pipe.LRange(ctx, DailyLowStockKey, 0, -1)
	pipe.Del(ctx, DailyLowStockKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to drain alert log: %w", err)
	}

	var events []Event
	for _, item := range lrange.Val() {
		var e Event
		if err := json.Unmarshal([]byte(item), &e); err == nil {
			events = append(events, e)
		}
	}
	return events, nil
}

func (l *RedisLog) Restore(events []Event) error {
	if len(events) == 0 {
		return nil
	}

	// LPUSH prepends one value at a time, so push newest first.
	values := make([]any, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		data, err := json.Marshal(events[i])
		if err != nil {
			return err
		}
		values = append(values, data)
	}
	if err := l.rs.Rdb().LPush(l.rs.Ctx(), DailyLowStockKey, values...).Err(); err != nil {
		return fmt.Errorf("failed to restore alert log: %w", err)
	}
	return nil
}

type MemoryLog struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) Push(e Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

func (l *MemoryLog) Drain() ([]Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.events
	l.events = nil
	return events, nil
}

func (l *MemoryLog) Restore(events []Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(append([]Event(nil), events...), l.events...)
	return nil
}
