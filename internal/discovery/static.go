package discovery

import "sync"

// Static is an in-memory Adapter used by tests to simulate a mesh whose
// membership changes over time (peers going offline and rejoining).
type Static struct {
	mu    sync.Mutex
	peers []PeerInfo
}

func NewStatic(peers []PeerInfo) *Static {
	return &Static{peers: peers}
}

func (s *Static) Peers() ([]PeerInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PeerInfo, len(s.peers))
	copy(out, s.peers)
	return out, nil
}

// SetPeers replaces the peer list wholesale.
func (s *Static) SetPeers(peers []PeerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peers = peers
}

// SetOnline flips the Online flag for one host, if present.
func (s *Static) SetOnline(host string, online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.peers {
		if string(s.peers[i].HostID) == host {
			s.peers[i].Online = online
		}
	}
}
