package discovery

import (
	"encoding/json"
	"fmt"
	"os"

	"clipsync/internal/clock"
)

// StaticFile is the one concrete Adapter this repo ships: it re-reads a
// small JSON peer list from disk on every call, since no real mesh
// discovery service is reachable from this environment. A missing file is
// treated as "no peers yet", not an error, so a freshly started host with
// no configured peers simply gossips to nobody until the file appears.
type StaticFile struct {
	path string
}

func NewStaticFile(path string) StaticFile {
	return StaticFile{path: path}
}

type peerRecord struct {
	HostID  string `json:"host_id"`
	Address string `json:"address"`
	Online  bool   `json:"online"`
}

func (s StaticFile) Peers() ([]PeerInfo, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("discovery: read %s: %w", s.path, err)
	}

	var records []peerRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("discovery: parse %s: %w", s.path, err)
	}

	peers := make([]PeerInfo, len(records))
	for i, r := range records {
		peers[i] = PeerInfo{HostID: clock.HostID(r.HostID), Address: r.Address, Online: r.Online}
	}
	return peers, nil
}
