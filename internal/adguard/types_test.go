package adguard_test

import (
	"encoding/json"
	"testing"

	"github.com/oracledns/oracle/internal/adguard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, body string) adguard.QueryEntry {
	t.Helper()
	var q adguard.QueryEntry
	require.NoError(t, json.Unmarshal([]byte(body), &q))
	return q
}

func TestQueryEntry_TimestampShapes(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		q := decodeEntry(t, `{"question": {"name": "a.example"}}`)
		assert.Equal(t, adguard.TimestampAbsent, q.Timestamp.Kind)
		assert.Equal(t, "a.example", q.Domain)
	})

	t.Run("null treated as absent", func(t *testing.T) {
		q := decodeEntry(t, `{"ts": null}`)
		assert.Equal(t, adguard.TimestampAbsent, q.Timestamp.Kind)
	})

	t.Run("epoch seconds", func(t *testing.T) {
		q := decodeEntry(t, `{"ts": 1700000000}`)
		assert.Equal(t, adguard.TimestampEpoch, q.Timestamp.Kind)
		assert.Equal(t, float64(1700000000), q.Timestamp.Epoch)
	})

	t.Run("iso string", func(t *testing.T) {
		q := decodeEntry(t, `{"time": "2023-11-14T22:13:20Z"}`)
		assert.Equal(t, adguard.TimestampISO, q.Timestamp.Kind)
		assert.Equal(t, "2023-11-14T22:13:20Z", q.Timestamp.ISO)
	})

	t.Run("field precedence ts then time then timestamp", func(t *testing.T) {
		q := decodeEntry(t, `{"timestamp": "2020-01-01", "time": "2021-01-01", "ts": 5}`)
		assert.Equal(t, adguard.TimestampEpoch, q.Timestamp.Kind)
	})

	t.Run("unexpected shape kept as literal text", func(t *testing.T) {
		q := decodeEntry(t, `{"ts": {"weird": true}}`)
		assert.Equal(t, adguard.TimestampISO, q.Timestamp.Kind)
	})
}

func TestClientRecord_Identifier(t *testing.T) {
	assert.Equal(t, "dev-1", adguard.ClientRecord{ClientID: "dev-1", IP: "10.0.0.2", Name: "tv"}.Identifier())
	assert.Equal(t, "10.0.0.2", adguard.ClientRecord{IP: "10.0.0.2", Name: "tv"}.Identifier())
	assert.Equal(t, "tv", adguard.ClientRecord{Name: "tv"}.Identifier())
}
