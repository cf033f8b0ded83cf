package replicator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"clipsync/internal/clipboard"
	"clipsync/internal/clock"
	"clipsync/internal/discovery"
	"clipsync/internal/entrykey"
	"clipsync/internal/wire"
)

// sendGossip POSTs one gossip payload to a peer. Network and non-2xx
// failures are logged and swallowed -- gossip is fire-and-forget (spec
// §4.2, §9 "Partial failure").
func (r *Replicator) sendGossip(p discovery.PeerInfo, key entrykey.Key, entry clipboard.Entry, c clock.Clock, ttl uint64) {
	body, err := json.Marshal(wire.GossipRequest{Clock: c, Key: key, Entry: entry, TTL: ttl})
	if err != nil {
		r.logger.Printf("marshal gossip to %s: %v", p.HostID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+p.Address+"/gossip", bytes.NewReader(body))
	if err != nil {
		r.logger.Printf("build gossip request to %s: %v", p.HostID, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Printf("gossip to %s: %v", p.HostID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		r.logger.Printf("gossip to %s: unexpected status %d", p.HostID, resp.StatusCode)
	}
}

// fetchClock performs the anti-entropy GET /clock call.
func (r *Replicator) fetchClock(p discovery.PeerInfo) (clock.Clock, error) {
	var c clock.Clock
	if err := r.getJSON(p, "/clock", &c); err != nil {
		return nil, err
	}
	return c, nil
}

// fetchRecent performs the anti-entropy GET /recent_clipboard call.
func (r *Replicator) fetchRecent(p discovery.PeerInfo) ([]wire.RecentItem, error) {
	var items []wire.RecentItem
	if err := r.getJSON(p, "/recent_clipboard", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Replicator) getJSON(p discovery.PeerInfo, path string, out any) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+p.Address+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
