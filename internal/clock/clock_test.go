package clock

import "testing"

func TestMerged(t *testing.T) {
	cases := []struct {
		name  string
		local Clock
		other Clock
		want  Clock
	}{
		{
			name:  "disjoint hosts union",
			local: Clock{"A": 3, "B": 1},
			other: Clock{"C": 7},
			want:  Clock{"A": 3, "B": 1, "C": 7},
		},
		{
			name:  "max per host",
			local: Clock{"A": 3, "B": 1},
			other: Clock{"A": 2, "B": 4, "C": 7},
			want:  Clock{"A": 3, "B": 4, "C": 7},
		},
		{
			name:  "empty other leaves local unchanged",
			local: Clock{"A": 5},
			other: Clock{},
			want:  Clock{"A": 5},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			localBefore := tc.local.Copy()
			got := tc.local.Merged(tc.other)
			for host, want := range tc.want {
				if got.Get(host) != want {
					t.Errorf("Merged()[%s] = %d, want %d", host, got.Get(host), want)
				}
			}
			for host, before := range localBefore {
				if tc.local.Get(host) != before {
					t.Errorf("Merged mutated local clock: %s changed from %d to %d", host, before, tc.local.Get(host))
				}
			}
		})
	}
}

func TestIsOutdated(t *testing.T) {
	cases := []struct {
		name   string
		local  Clock
		remote Clock
		want   bool
	}{
		{"remote ahead on one host", Clock{"A": 3}, Clock{"A": 2, "B": 4}, true},
		{"remote behind everywhere", Clock{"A": 5, "B": 5}, Clock{"A": 2, "B": 1}, false},
		{"clocks equal", Clock{"A": 3, "B": 1}, Clock{"A": 3, "B": 1}, false},
		{"remote empty", Clock{"A": 1}, Clock{}, false},
		{"local empty, remote nonzero", Clock{}, Clock{"A": 1}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsOutdated(tc.local, tc.remote); got != tc.want {
				t.Errorf("IsOutdated(%v, %v) = %v, want %v", tc.local, tc.remote, got, tc.want)
			}
		})
	}
}

func TestAgree(t *testing.T) {
	a := Clock{"A": 3, "B": 1}
	b := Clock{"A": 3, "B": 1}
	if !Agree(a, b) {
		t.Fatal("identical clocks should agree")
	}

	c := Clock{"A": 3, "B": 2}
	if Agree(a, c) {
		t.Fatal("clocks differing on a shared host should not agree")
	}

	// Scenario 6 from spec §8: local {A:3, B:1}, MergeClock {A:2, B:4, C:7}
	// -> result {A:3, B:4, C:7}.
	merged := a.Merged(Clock{"A": 2, "B": 4, "C": 7})
	want := Clock{"A": 3, "B": 4, "C": 7}
	if !Agree(merged, want) {
		t.Fatalf("merged clock %v does not agree with expected %v", merged, want)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	c := Clock{"A": 1}
	cp := c.Copy()
	cp["A"] = 99
	cp["B"] = 1
	if c.Get("A") != 1 {
		t.Fatalf("mutating the copy affected the original: got %d, want 1", c.Get("A"))
	}
	if _, ok := c["B"]; ok {
		t.Fatal("mutating the copy added a host to the original")
	}
}
