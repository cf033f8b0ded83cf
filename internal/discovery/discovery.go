// Package discovery defines the peer-discovery adapter the core treats as
// an external collaborator (spec §6): something that enumerates reachable
// hosts. The Replicator never caches what this returns across rounds
// (spec §9 "Peer list lifetime") — it calls Peers() fresh every gossip and
// every anti-entropy sweep.
package discovery

import "clipsync/internal/clock"

// PeerInfo describes one other host in the mesh (spec §3).
type PeerInfo struct {
	HostID  clock.HostID
	Address string
	Online  bool
}

// Adapter enumerates the hosts currently reachable on the mesh.
type Adapter interface {
	Peers() ([]PeerInfo, error)
}
