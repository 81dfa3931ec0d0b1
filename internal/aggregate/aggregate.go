// Package aggregate derives per-client daily query counts from raw
// appliance query-log entries.
//
// The counting policy is deliberately biased toward over-counting: an entry
// whose timestamp is missing or unparseable counts as today rather than
// being dropped. The bias is centralized in countsAsToday so the rest of
// the code never re-implements timestamp handling.
package aggregate

import (
	"strings"
	"time"

	"github.com/oracledns/oracle/internal/adguard"
)

// DayFormat is the calendar-day key format used throughout the history
// store.
const DayFormat = "2006-01-02"

// Day renders t as a history day key in t's own location.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// CountToday returns how many entries fall on the calendar day of today.
// The reduction is order-independent: it is a plain sum of entries matching
// the policy in countsAsToday.
func CountToday(entries []adguard.QueryEntry, today time.Time) int {
	count := 0
	for _, e := range entries {
		if countsAsToday(e.Timestamp, today) {
			count++
		}
	}
	return count
}

// countsAsToday resolves the timestamp tagged union against today.
//
//   - Absent: counts (assume current).
//   - Epoch: epoch seconds converted to a local calendar date.
//   - ISO: only the substring before the first 'T' is significant.
//   - Parse failure on a present value: counts (fail-open).
func countsAsToday(ts adguard.Timestamp, today time.Time) bool {
	day := Day(today)

	switch ts.Kind {
	case adguard.TimestampEpoch:
		return Day(time.Unix(int64(ts.Epoch), 0).In(today.Location())) == day
	case adguard.TimestampISO:
		datePart, _, _ := strings.Cut(ts.ISO, "T")
		parsed, err := time.ParseInLocation(DayFormat, datePart, today.Location())
		if err != nil {
			return true
		}
		return Day(parsed) == day
	default:
		return true
	}
}
