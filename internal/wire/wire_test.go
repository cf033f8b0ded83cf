package wire

import (
	"encoding/json"
	"testing"

	"clipsync/internal/clipboard"
	"clipsync/internal/clock"
	"clipsync/internal/entrykey"
)

func TestGossipRequestJSONRoundTrip(t *testing.T) {
	gen := entrykey.NewGenerator()
	key, err := gen.New()
	if err != nil {
		t.Fatalf("New(): %v", err)
	}

	req := GossipRequest{
		Clock: clock.Clock{"A": 3, "B": 1},
		Key:   key,
		Entry: clipboard.NewText("hello"),
		TTL:   1,
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got GossipRequest
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !clock.Agree(got.Clock, req.Clock) {
		t.Errorf("Clock = %v, want %v", got.Clock, req.Clock)
	}
	if got.Key.Compare(req.Key) != 0 {
		t.Errorf("Key = %s, want %s", got.Key, req.Key)
	}
	if got.Entry.Text() != "hello" {
		t.Errorf("Entry.Text() = %q, want %q", got.Entry.Text(), "hello")
	}
	if got.TTL != req.TTL {
		t.Errorf("TTL = %d, want %d", got.TTL, req.TTL)
	}
}

func TestRecentItemJSONRoundTrip(t *testing.T) {
	gen := entrykey.NewGenerator()
	key, err := gen.New()
	if err != nil {
		t.Fatalf("New(): %v", err)
	}
	item := RecentItem{Key: key, Entry: clipboard.NewText("world")}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		t.Fatalf("recent item did not encode as a JSON array: %v", err)
	}
	if len(arr) != 2 {
		t.Fatalf("got %d-element array, want 2", len(arr))
	}

	var got RecentItem
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Key.Compare(item.Key) != 0 {
		t.Errorf("Key = %s, want %s", got.Key, item.Key)
	}
	if got.Entry.Text() != "world" {
		t.Errorf("Entry.Text() = %q, want %q", got.Entry.Text(), "world")
	}
}

func TestRecentItemUnmarshalRejectsMalformedKey(t *testing.T) {
	data := []byte(`[{"Text":"hi"},"not-a-valid-ulid"]`)
	var got RecentItem
	if err := json.Unmarshal(data, &got); err == nil {
		t.Fatal("expected an error decoding a malformed key")
	}
}
