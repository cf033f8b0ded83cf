package replicator

import (
	"clipsync/internal/clock"
	"clipsync/internal/discovery"
)

// gossipRound executes one outbound push (spec §4.2 "Gossip (outbound)").
// When t.Clock is nil this is a fresh local write: TTL is forced to 1 and
// the clock sent is the current local snapshot. When t.Clock is set this
// is a re-gossip relaying someone else's entry, and both fields are used
// exactly as given by the caller.
func (r *Replicator) gossipRound(t Transmit) {
	peers, err := r.discovery.Peers()
	if err != nil {
		r.logger.Printf("refresh peers: %v", err)
		return
	}

	ttl := t.TTL
	outClock := t.Clock
	if outClock == nil {
		ttl = 1
		localClock, err := r.store.LoadClock()
		if err != nil {
			r.logger.Printf("load clock: %v", err)
			return
		}
		outClock = localClock
	}

	targets := onlinePeers(peers, r.selfHostID)
	if len(targets) > r.fanout {
		targets = targets[:r.fanout]
	}

	for _, p := range targets {
		go r.sendGossip(p, t.Key, t.Entry, outClock, ttl)
	}
}

// antiEntropyRound executes one pull sweep (spec §4.2 "Anti-entropy
// (tick)"): for every online peer, compare clocks and reconcile only if
// the peer looks ahead.
func (r *Replicator) antiEntropyRound() {
	peers, err := r.discovery.Peers()
	if err != nil {
		r.logger.Printf("anti-entropy: refresh peers: %v", err)
		return
	}

	for _, p := range onlinePeers(peers, r.selfHostID) {
		r.pullFrom(p)
	}
}

func (r *Replicator) pullFrom(p discovery.PeerInfo) {
	local, err := r.store.LoadClock()
	if err != nil {
		r.logger.Printf("anti-entropy: load local clock: %v", err)
		return
	}

	remote, err := r.fetchClock(p)
	if err != nil {
		r.logger.Printf("anti-entropy: %s unreachable: %v", p.HostID, err)
		return
	}

	if !clock.IsOutdated(local, remote) {
		return
	}

	recent, err := r.fetchRecent(p)
	if err != nil {
		r.logger.Printf("anti-entropy: %s recent fetch failed: %v", p.HostID, err)
		return
	}

	for _, item := range recent {
		if _, err := r.store.WriteReplicated(item.Key, item.Entry); err != nil {
			r.logger.Printf("anti-entropy: write replicated from %s: %v", p.HostID, err)
		}
	}

	if err := r.store.MergeClock(remote); err != nil {
		r.logger.Printf("anti-entropy: merge clock from %s: %v", p.HostID, err)
	}
}

func onlinePeers(peers []discovery.PeerInfo, self clock.HostID) []discovery.PeerInfo {
	out := make([]discovery.PeerInfo, 0, len(peers))
	for _, p := range peers {
		if p.HostID == self || !p.Online {
			continue
		}
		out = append(out, p)
	}
	return out
}
