package entrykey

import "testing"

func TestGeneratorMonotonic(t *testing.T) {
	g := NewGenerator()
	var prev Key
	for i := 0; i < 1000; i++ {
		k, err := g.New()
		if err != nil {
			t.Fatalf("New() #%d: %v", i, err)
		}
		if i > 0 && !prev.Less(k) {
			t.Fatalf("key #%d (%s) does not sort strictly after #%d (%s)", i, k, i-1, prev)
		}
		prev = k
	}
}

func TestParseRoundTrip(t *testing.T) {
	g := NewGenerator()
	k, err := g.New()
	if err != nil {
		t.Fatalf("New(): %v", err)
	}

	parsed, err := Parse(k.String())
	if err != nil {
		t.Fatalf("Parse(%s): %v", k.String(), err)
	}
	if parsed.Compare(k) != 0 {
		t.Fatalf("Parse round trip mismatch: got %s, want %s", parsed, k)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("not-a-valid-ulid"); err == nil {
		t.Fatal("expected an error parsing a malformed key")
	}
}

func TestTextMarshalRoundTrip(t *testing.T) {
	g := NewGenerator()
	k, _ := g.New()

	text, err := k.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var got Key
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if got.Compare(k) != 0 {
		t.Fatalf("UnmarshalText round trip mismatch: got %s, want %s", got, k)
	}
}

func TestScanValueRoundTrip(t *testing.T) {
	g := NewGenerator()
	k, _ := g.New()

	v, err := k.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var got Key
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan(%v): %v", v, err)
	}
	if got.Compare(k) != 0 {
		t.Fatalf("Scan round trip mismatch: got %s, want %s", got, k)
	}
}
