package store

import "sort"

// Document is the persisted root record for one target.
//
// ControlledDevices is serialized as an ordered sequence but is effectively
// a set: Normalize deduplicates and sorts it so that saved output stays
// deterministic. History maps client identifier -> ISO day -> query count,
// with at most one entry per (client, day).
type Document struct {
	ControlledDevices []string                  `json:"controlled_devices"`
	History           map[string]map[string]int `json:"history"`
}

// NewDocument returns an empty document ready for use.
func NewDocument() *Document {
	return &Document{
		ControlledDevices: []string{},
		History:           map[string]map[string]int{},
	}
}

// Normalize repairs a document loaded from storage: nil maps become empty,
// and the controlled list is deduplicated and sorted. Duplicates can exist
// in documents written by earlier versions; the invariant is "effectively a
// set", so they are collapsed on every load.
func (d *Document) Normalize() {
	if d.History == nil {
		d.History = map[string]map[string]int{}
	}

	seen := make(map[string]bool, len(d.ControlledDevices))
	deduped := make([]string, 0, len(d.ControlledDevices))
	for _, id := range d.ControlledDevices {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}
	sort.Strings(deduped)
	d.ControlledDevices = deduped
}
