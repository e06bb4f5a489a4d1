package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
)

type entry struct {
	report   analytics.Report
	storedAt time.Time
}

type MemoryReportCache struct {
	mu          sync.Mutex
	ttl         time.Duration
	entries     map[string]entry
	generations map[int]int64
	now         func() time.Time
}

func NewMemoryReportCache(ttl time.Duration) *MemoryReportCache {
	return &MemoryReportCache{
		ttl:         ttl,
		entries:     make(map[string]entry),
		generations: make(map[int]int64),
		now:         time.Now,
	}
}

func (c *MemoryReportCache) expired(e entry) bool {
	return c.now().Sub(e.storedAt) >= c.ttl
}

func (c *MemoryReportCache) Generation(userID int) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[userID]
}

func (c *MemoryReportCache) Get(userID, days int, day time.Time) (analytics.Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key(userID, days, day)
	e, ok := c.entries[key]
	if !ok {
		return analytics.Report{}, false
	}
	if c.expired(e) {
		delete(c.entries, key)
		return analytics.Report{}, false
	}
	return e.report, true
}

// Set also drops every expired entry, so reports of past days do not pile up.
func (c *MemoryReportCache) Set(userID, days int, day time.Time, gen int64, report analytics.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
		}
	}

	if c.generations[userID] != gen {
		return
	}
	c.entries[Key(userID, days, day)] = entry{report: report, storedAt: c.now()}
}

// Invalidate drops every cached report of the account.
func (c *MemoryReportCache) Invalidate(userID int) {
	prefix := accountPrefix(userID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[userID]++
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

func (c *MemoryReportCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
