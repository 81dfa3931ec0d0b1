package aggregate_test

import (
	"testing"
	"time"

	"github.com/oracledns/oracle/internal/adguard"
	"github.com/oracledns/oracle/internal/aggregate"
	"github.com/stretchr/testify/assert"
)

var today = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func entry(ts adguard.Timestamp) adguard.QueryEntry {
	return adguard.QueryEntry{Timestamp: ts}
}

func TestCountToday(t *testing.T) {
	sameDay := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC).Unix()
	dayBefore := time.Date(2024, 3, 14, 23, 59, 0, 0, time.UTC).Unix()

	tests := []struct {
		name    string
		entries []adguard.QueryEntry
		want    int
	}{
		{
			name: "absent timestamps count",
			entries: []adguard.QueryEntry{
				entry(adguard.Timestamp{Kind: adguard.TimestampAbsent}),
				entry(adguard.Timestamp{Kind: adguard.TimestampAbsent}),
			},
			want: 2,
		},
		{
			name: "epoch same day counts",
			entries: []adguard.QueryEntry{
				entry(adguard.Timestamp{Kind: adguard.TimestampEpoch, Epoch: float64(sameDay)}),
			},
			want: 1,
		},
		{
			name: "epoch other day excluded",
			entries: []adguard.QueryEntry{
				entry(adguard.Timestamp{Kind: adguard.TimestampEpoch, Epoch: float64(dayBefore)}),
			},
			want: 0,
		},
		{
			name: "iso date only portion significant",
			entries: []adguard.QueryEntry{
				entry(adguard.Timestamp{Kind: adguard.TimestampISO, ISO: "2024-03-15T23:59:59+09:00"}),
				entry(adguard.Timestamp{Kind: adguard.TimestampISO, ISO: "2024-03-15"}),
				entry(adguard.Timestamp{Kind: adguard.TimestampISO, ISO: "2024-03-14T00:00:01Z"}),
			},
			want: 2,
		},
		{
			name: "unparseable strings fail open",
			entries: []adguard.QueryEntry{
				entry(adguard.Timestamp{Kind: adguard.TimestampISO, ISO: "not-a-date"}),
				entry(adguard.Timestamp{Kind: adguard.TimestampISO, ISO: ""}),
			},
			want: 2,
		},
		{
			name:    "empty input",
			entries: nil,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregate.CountToday(tt.entries, today))
		})
	}
}

func TestCountToday_OrderIndependent(t *testing.T) {
	a := entry(adguard.Timestamp{Kind: adguard.TimestampAbsent})
	b := entry(adguard.Timestamp{Kind: adguard.TimestampISO, ISO: "2020-01-01"})
	c := entry(adguard.Timestamp{Kind: adguard.TimestampISO, ISO: "2024-03-15"})

	assert.Equal(t,
		aggregate.CountToday([]adguard.QueryEntry{a, b, c}, today),
		aggregate.CountToday([]adguard.QueryEntry{c, a, b}, today))
}

func TestDay(t *testing.T) {
	assert.Equal(t, "2024-03-15", aggregate.Day(today))
}
