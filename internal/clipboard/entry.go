// Package clipboard holds the ClipboardEntry sum type (spec §3) and the
// OS clipboard adapter interface (spec §6), which the core treats as an
// external collaborator.
package clipboard

import (
	"encoding/json"
	"fmt"
)

// Image is a raw RGBA bitmap. Bytes must have length Width*Height*4.
type Image struct {
	Width  int
	Height int
	Bytes  []byte
}

func (img Image) validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("clipboard: image dimensions must be positive, got %dx%d", img.Width, img.Height)
	}
	want := img.Width * img.Height * 4
	if len(img.Bytes) != want {
		return fmt.Errorf("clipboard: image bytes length %d, want %d (%dx%d RGBA)", len(img.Bytes), want, img.Width, img.Height)
	}
	return nil
}

// Entry is the ClipboardEntry sum type: exactly one of Text or Image is set.
type Entry struct {
	text     string
	image    Image
	hasImage bool
}

// NewText builds a text entry.
func NewText(s string) Entry {
	return Entry{text: s}
}

// NewImage builds an image entry, validating dimensions against byte length.
func NewImage(img Image) (Entry, error) {
	if err := img.validate(); err != nil {
		return Entry{}, err
	}
	return Entry{image: img, hasImage: true}, nil
}

// IsImage reports whether this entry holds an image rather than text.
func (e Entry) IsImage() bool { return e.hasImage }

// Text returns the text payload. Only meaningful when !IsImage().
func (e Entry) Text() string { return e.text }

// Image returns the image payload. Only meaningful when IsImage().
func (e Entry) Image() Image { return e.image }

// Summary returns the textual summary used by the `history` command
// (spec §4.1 History): the text itself, or the literal token "image".
func (e Entry) Summary() string {
	if e.hasImage {
		return "image"
	}
	return e.text
}

// ─── wire encoding (spec §6) ────────────────────────────────────────────

type wireImage struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Bytes  []byte `json:"bytes"`
}

type wireEntry struct {
	Text  *string    `json:"Text,omitempty"`
	Image *wireImage `json:"Image,omitempty"`
}

// MarshalJSON renders the tagged-variant wire format: {"Text": "..."} or
// {"Image": {"width": W, "height": H, "bytes": [...]}}.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.hasImage {
		return json.Marshal(wireEntry{Image: &wireImage{
			Width:  e.image.Width,
			Height: e.image.Height,
			Bytes:  e.image.Bytes,
		}})
	}
	text := e.text
	return json.Marshal(wireEntry{Text: &text})
}

// UnmarshalJSON decodes the tagged-variant wire format back into an Entry.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w wireEntry
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.Text != nil:
		*e = NewText(*w.Text)
		return nil
	case w.Image != nil:
		img := Image{Width: w.Image.Width, Height: w.Image.Height, Bytes: w.Image.Bytes}
		entry, err := NewImage(img)
		if err != nil {
			return err
		}
		*e = entry
		return nil
	default:
		return fmt.Errorf("clipboard: malformed entry: neither Text nor Image present")
	}
}
