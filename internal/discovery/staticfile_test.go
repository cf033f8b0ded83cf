package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStaticFileMissingFileIsNoPeers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peers.json")
	adapter := NewStaticFile(path)

	peers, err := adapter.Peers()
	if err != nil {
		t.Fatalf("Peers: %v", err)
	}
	if len(peers) != 0 {
		t.Fatalf("got %d peers for a missing file, want 0", len(peers))
	}
}

func TestStaticFileRereadsOnEveryCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peers.json")
	adapter := NewStaticFile(path)

	if err := os.WriteFile(path, []byte(`[{"host_id":"a","address":"10.0.0.1:3000","online":true}]`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	peers, err := adapter.Peers()
	if err != nil {
		t.Fatalf("Peers: %v", err)
	}
	if len(peers) != 1 || peers[0].HostID != "a" || !peers[0].Online {
		t.Fatalf("got %+v, want one online peer 'a'", peers)
	}

	if err := os.WriteFile(path, []byte(`[
		{"host_id":"a","address":"10.0.0.1:3000","online":false},
		{"host_id":"b","address":"10.0.0.2:3000","online":true}
	]`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	peers, err = adapter.Peers()
	if err != nil {
		t.Fatalf("Peers: %v", err)
	}
	if len(peers) != 2 {
		t.Fatalf("got %d peers after rewrite, want 2 (adapter must re-read, not cache)", len(peers))
	}
	if peers[0].Online {
		t.Fatalf("host a still reported online after the file changed it to offline")
	}
	if peers[1].HostID != "b" || !peers[1].Online {
		t.Fatalf("host b = %+v, want online", peers[1])
	}
}
