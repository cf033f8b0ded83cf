package clipboard

import "sync"

// Mem is an in-memory Adapter: no real windowing system behind it, for
// callers that need a clipboard without a display server (spec §1 treats
// the real adapter as an external collaborator). Nothing in this
// repository wires it in; clipsyncd always uses WlClipboard.
type Mem struct {
	mu    sync.Mutex
	text  string
	image Image
	kind  entryKind
}

type entryKind int

const (
	kindEmpty entryKind = iota
	kindText
	kindImage
)

func NewMem() *Mem { return &Mem{} }

func (m *Mem) GetText() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, m.kind == kindText
}

func (m *Mem) GetImage() (Image, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.image, m.kind == kindImage
}

func (m *Mem) SetText(s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = s
	m.kind = kindText
	return nil
}

func (m *Mem) SetImage(img Image) error {
	if err := img.validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.image = img
	m.kind = kindImage
	return nil
}
