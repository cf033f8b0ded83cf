package clipboard

import (
	"bytes"
	"fmt"
	"os/exec"
)

// WlClipboard is a platform-fallback Adapter that shells out to wl-copy
// and wl-paste (spec §6 explicitly allows this; the original daemon did
// the same thing via fallback_get_clipboard_hyprland when arboard could
// not read the system clipboard directly). GetImage always reports no
// image; SetImage pipes the raw RGBA bytes to wl-copy under the
// image/x-rgba MIME type.
type WlClipboard struct{}

func NewWlClipboard() WlClipboard { return WlClipboard{} }

func (WlClipboard) GetText() (string, bool) {
	out, err := exec.Command("wl-paste", "--no-newline").Output()
	if err != nil {
		return "", false
	}
	return string(out), true
}

func (WlClipboard) GetImage() (Image, bool) {
	return Image{}, false
}

func (WlClipboard) SetText(s string) error {
	cmd := exec.Command("wl-copy")
	cmd.Stdin = bytes.NewReader([]byte(s))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard: wl-copy: %w", err)
	}
	return nil
}

func (WlClipboard) SetImage(img Image) error {
	cmd := exec.Command("wl-copy", "--type", "image/x-rgba")
	cmd.Stdin = bytes.NewReader(img.Bytes)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard: wl-copy image: %w", err)
	}
	return nil
}
