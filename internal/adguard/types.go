package adguard

import (
	"encoding/json"
	"strings"
)

// ClientRecord is a normalized view of one appliance client. It is rebuilt
// on every refresh cycle and never persisted.
type ClientRecord struct {
	// ClientID is the appliance's explicit identifier, when it has one.
	ClientID string `json:"id,omitempty"`

	// IP is the client address (ip, client_ip or address upstream field).
	IP string `json:"ip,omitempty"`

	// Name is the display name (name, hostname, or the address itself).
	Name string `json:"name"`

	// IDs carries the appliance's identifier list when present.
	IDs []string `json:"ids,omitempty"`

	// Queries holds the raw query entries fetched for the current cycle.
	Queries []QueryEntry `json:"-"`
}

// Identifier returns the canonical key for this client: the explicit ID when
// the appliance provides one, else the IP address, else the display name.
func (c ClientRecord) Identifier() string {
	if c.ClientID != "" {
		return c.ClientID
	}
	if c.IP != "" {
		return c.IP
	}
	return c.Name
}

// rawClient covers every upstream field spelling seen across appliance
// versions. Individual entries are coerced into ClientRecord, never dropped.
type rawClient struct {
	ID       string   `json:"id"`
	IDs      []string `json:"ids"`
	IP       string   `json:"ip"`
	ClientIP string   `json:"client_ip"`
	Address  string   `json:"address"`
	Name     string   `json:"name"`
	Hostname string   `json:"hostname"`
}

func (r rawClient) normalize() ClientRecord {
	rec := ClientRecord{ClientID: r.ID, IDs: r.IDs}

	switch {
	case r.IP != "":
		rec.IP = r.IP
	case r.ClientIP != "":
		rec.IP = r.ClientIP
	default:
		rec.IP = r.Address
	}

	switch {
	case r.Name != "":
		rec.Name = r.Name
	case r.Hostname != "":
		rec.Name = r.Hostname
	default:
		rec.Name = rec.IP
	}

	return rec
}

// normalizeEntry turns one raw list element into a ClientRecord. Bare
// strings are treated as an address that doubles as name and identifier;
// anything else is coerced to its literal JSON text.
func normalizeEntry(raw json.RawMessage) ClientRecord {
	if isObject(raw) {
		var rc rawClient
		// Unknown or mistyped fields simply stay zero-valued.
		_ = json.Unmarshal(raw, &rc)
		return rc.normalize()
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = strings.TrimSpace(string(raw))
	}
	return ClientRecord{IP: s, Name: s, IDs: []string{s}}
}

func isObject(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "{")
}

// TimestampKind tags the three shapes a query timestamp arrives in.
type TimestampKind int

const (
	// TimestampAbsent means the entry carried no timestamp field at all.
	TimestampAbsent TimestampKind = iota
	// TimestampEpoch is a numeric value interpreted as epoch seconds.
	TimestampEpoch
	// TimestampISO is an ISO-8601-like string; only the date part matters.
	TimestampISO
)

// Timestamp is the tagged union for a query entry's timestamp.
type Timestamp struct {
	Kind  TimestampKind
	Epoch float64
	ISO   string
}

// QueryEntry is a single DNS query record from the appliance query log.
// The upstream spells the timestamp field three different ways; the first
// one present wins.
type QueryEntry struct {
	Domain    string
	Timestamp Timestamp
}

type rawQueryEntry struct {
	TS        json.RawMessage `json:"ts"`
	Time      json.RawMessage `json:"time"`
	Timestamp json.RawMessage `json:"timestamp"`
	Question  struct {
		Name string `json:"name"`
	} `json:"question"`
}

// UnmarshalJSON decodes an upstream query record, resolving the timestamp
// into its tagged-union form.
func (q *QueryEntry) UnmarshalJSON(data []byte) error {
	var raw rawQueryEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	q.Domain = raw.Question.Name
	q.Timestamp = decodeTimestamp(firstPresent(raw.TS, raw.Time, raw.Timestamp))
	return nil
}

func firstPresent(candidates ...json.RawMessage) json.RawMessage {
	for _, c := range candidates {
		if len(c) > 0 && string(c) != "null" {
			return c
		}
	}
	return nil
}

func decodeTimestamp(raw json.RawMessage) Timestamp {
	if raw == nil {
		return Timestamp{Kind: TimestampAbsent}
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return Timestamp{Kind: TimestampEpoch, Epoch: num}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Timestamp{Kind: TimestampISO, ISO: s}
	}

	// Unexpected shape: keep the literal text so the aggregator's
	// fail-open parse path decides what to do with it.
	return Timestamp{Kind: TimestampISO, ISO: strings.TrimSpace(string(raw))}
}
