// Package cache keeps computed analytics reports per account, window and day.
package cache

import (
	"fmt"
	"time"

	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
)

const keyPrefix = "analytics:report"

// ReportCache stores reports until they expire or the account writes.
// Implementations never fail the caller: errors are logged and treated as a miss.
type ReportCache interface {
	// Generation changes every time the account's reports are invalidated.
	// Read it before loading the records a report is computed from.
	Generation(userID int) int64
	Get(userID, days int, day time.Time) (analytics.Report, bool)
	// Set stores report only if the account was not invalidated since gen was read.
	Set(userID, days int, day time.Time, gen int64, report analytics.Report)
	Invalidate(userID int)
}

// Key identifies one account's report for a window on a calendar day.
func Key(userID, days int, day time.Time) string {
	return fmt.Sprintf("%s:%d:%d:%s", keyPrefix, userID, days, day.Format("2006-01-02"))
}

func accountPrefix(userID int) string {
	return fmt.Sprintf("%s:%d:", keyPrefix, userID)
}

func generationKey(userID int) string {
	return fmt.Sprintf("analytics:generation:%d", userID)
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Generation(int) int64                             { return 0 }
func (Nop) Get(int, int, time.Time) (analytics.Report, bool) { return analytics.Report{}, false }
func (Nop) Set(int, int, time.Time, int64, analytics.Report) {}
func (Nop) Invalidate(int)                                   {}
