// Package wire holds the JSON shapes shared by the peer HTTP surface and
// the gossip path (spec §6). Keeping them here (rather than duplicated in
// peerhttp and replicator) means both sides of a gossip exchange encode
// and decode the same Go types.
package wire

import (
	"encoding/json"
	"fmt"

	"clipsync/internal/clipboard"
	"clipsync/internal/clock"
	"clipsync/internal/entrykey"
)

// GossipRequest is POSTed to /gossip (spec §4.2, §6). It carries the
// EntryKey explicitly — the spec's Open Question flags the original wire
// format as missing this, which breaks idempotent duplicate handling; this
// is the "assumed fix".
type GossipRequest struct {
	Clock clock.Clock     `json:"clock"`
	Key   entrykey.Key    `json:"key"`
	Entry clipboard.Entry `json:"entry"`
	TTL   uint64          `json:"ttl"`
}

// RecentItem is one (entry, key) pair as returned by /recent_clipboard.
// The wire format is a 2-element JSON array, not an object, so this type
// carries its own Marshal/Unmarshal.
type RecentItem struct {
	Key   entrykey.Key
	Entry clipboard.Entry
}

func (r RecentItem) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.Entry, r.Key.String()})
}

func (r *RecentItem) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("wire: decode recent item: %w", err)
	}

	var entry clipboard.Entry
	if err := json.Unmarshal(pair[0], &entry); err != nil {
		return fmt.Errorf("wire: decode recent item entry: %w", err)
	}

	var keyStr string
	if err := json.Unmarshal(pair[1], &keyStr); err != nil {
		return fmt.Errorf("wire: decode recent item key: %w", err)
	}
	key, err := entrykey.Parse(keyStr)
	if err != nil {
		return err
	}

	r.Entry = entry
	r.Key = key
	return nil
}
