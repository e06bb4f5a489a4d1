package cache

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
	"github.com/rogerio-castellano/erp-analytics/internal/redissvc"
)

type RedisReportCache struct {
	rs  *redissvc.RedisService
	ttl time.Duration
}

func NewRedisReportCache(rs *redissvc.RedisService, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{rs: rs, ttl: ttl}
}

func (c *RedisReportCache) Get(userID, days int, day time.Time) (analytics.Report, bool) {
	data, err := c.rs.Rdb().Get(c.rs.Ctx(), Key(userID, days, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return analytics.Report{}, false
	}
	if err != nil {
		log.Printf("[cache] get failed user=%d days=%d err=%v", userID, days, err)
		return analytics.Report{}, false
	}

	report, err := decodeReport(data)
	if err != nil {
		log.Printf("[cache] decode failed user=%d days=%d err=%v", userID, days, err)
		return analytics.Report{}, false
	}
	return report, true
}

func (c *RedisReportCache) Generation(userID int) int64 {
	gen, err := c.rs.Rdb().Get(c.rs.Ctx(), generationKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("[cache] generation failed user=%d err=%v", userID, err)
		return -1
	}
	return gen
}

// Set watches the account's generation key so an Invalidate racing with it
// aborts the write.
func (c *RedisReportCache) Set(userID, days int, day time.Time, gen int64, report analytics.Report) {
	if gen < 0 {
		return
	}
	data, err := encodeReport(report)
	if err != nil {
		log.Printf("[cache] encode failed user=%d days=%d err=%v", userID, days, err)
		return
	}

	rdb, ctx := c.rs.Rdb(), c.rs.Ctx()
	genKey := generationKey(userID)
	err = rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, Key(userID, days, day), data, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return
	}
	if err != nil {
		log.Printf("[cache] set failed user=%d days=%d err=%v", userID, days, err)
	}
}

// Invalidate scans for the account's keys and deletes them.
func (c *RedisReportCache) Invalidate(userID int) {
	rdb, ctx := c.rs.Rdb(), c.rs.Ctx()

	if err := rdb.Incr(ctx, generationKey(userID)).Err(); err != nil {
		log.Printf("[cache] generation bump failed user=%d err=%v", userID, err)
	}

	var keys []string
	iter := rdb.Scan(ctx, 0, accountPrefix(userID)+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("[cache] scan failed user=%d err=%v", userID, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[cache] invalidate failed user=%d err=%v", userID, err)
	}
}

func encodeReport(report analytics.Report) ([]byte, error) {
	return json.Marshal(report)
}

func decodeReport(data []byte) (analytics.Report, error) {
	var report analytics.Report
	err := json.Unmarshal(data, &report)
	return report, err
}
