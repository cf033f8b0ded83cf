package clipboard

import (
	"encoding/json"
	"testing"
)

func TestTextEntryJSONRoundTrip(t *testing.T) {
	e := NewText("hello")

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Entry
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.IsImage() {
		t.Fatal("round-tripped text entry became an image")
	}
	if got.Text() != "hello" {
		t.Fatalf("got text %q, want %q", got.Text(), "hello")
	}
}

func TestImageEntryJSONRoundTrip(t *testing.T) {
	img := Image{Width: 2, Height: 1, Bytes: make([]byte, 2*1*4)}
	for i := range img.Bytes {
		img.Bytes[i] = byte(i)
	}
	e, err := NewImage(img)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Entry
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.IsImage() {
		t.Fatal("round-tripped image entry became text")
	}
	gotImg := got.Image()
	if gotImg.Width != img.Width || gotImg.Height != img.Height {
		t.Fatalf("got dimensions %dx%d, want %dx%d", gotImg.Width, gotImg.Height, img.Width, img.Height)
	}
	if string(gotImg.Bytes) != string(img.Bytes) {
		t.Fatal("image bytes changed across round trip")
	}
}

func TestNewImageRejectsBadDimensions(t *testing.T) {
	cases := []struct {
		name string
		img  Image
	}{
		{"zero width", Image{Width: 0, Height: 1, Bytes: make([]byte, 4)}},
		{"negative height", Image{Width: 1, Height: -1, Bytes: make([]byte, 4)}},
		{"byte count mismatch", Image{Width: 2, Height: 2, Bytes: make([]byte, 4)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewImage(tc.img); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestSummary(t *testing.T) {
	if got := NewText("hi").Summary(); got != "hi" {
		t.Fatalf("Summary() = %q, want %q", got, "hi")
	}

	img, err := NewImage(Image{Width: 1, Height: 1, Bytes: make([]byte, 4)})
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	if got := img.Summary(); got != "image" {
		t.Fatalf("Summary() = %q, want %q", got, "image")
	}
}

func TestUnmarshalMalformedEntry(t *testing.T) {
	var e Entry
	if err := json.Unmarshal([]byte(`{}`), &e); err == nil {
		t.Fatal("expected an error for an entry with neither Text nor Image")
	}
}
