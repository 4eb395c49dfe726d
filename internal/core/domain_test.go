package core

import (
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"participant", RoleParticipant},
		{"dropbox", RoleDropboxOwner},
		{"recycler", RoleRecycler},
		{" recycler ", RoleRecycler},
		{"recycler\r", RoleRecycler},
		{"Recycler", RoleUnrecognized},
		{"admin", RoleUnrecognized},
		{"", RoleUnrecognized},
	}
	for _, tc := range cases {
		if got := ParseRole(tc.in); got != tc.want {
			t.Fatalf("ParseRole(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRoleRecognized(t *testing.T) {
	if RoleUnrecognized.Recognized() {
		t.Fatal("unrecognized role reported as recognized")
	}
	for _, r := range []Role{RoleParticipant, RoleDropboxOwner, RoleRecycler} {
		if !r.Recognized() {
			t.Fatalf("%v should be recognized", r)
		}
	}
}

func TestCountOrZero(t *testing.T) {
	if got := ValidCount(7).OrZero(); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := (Count{Value: 9}).OrZero(); got != 0 {
		t.Fatalf("invalid count should sum as 0, got %d", got)
	}
	if s := (Count{}).String(); s != "invalid" {
		t.Fatalf("unexpected string %q", s)
	}
}

func TestMonthKeyOf(t *testing.T) {
	if _, ok := MonthKeyOf(time.Time{}); ok {
		t.Fatal("zero time must not produce a key")
	}
	k, ok := MonthKeyOf(time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC))
	if !ok || k != "2024-03" {
		t.Fatalf("got %q ok=%v", k, ok)
	}
	if k.Label() != "Mar 2024" {
		t.Fatalf("unexpected label %q", k.Label())
	}
}

func TestTrailingMonths(t *testing.T) {
	now := time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC)
	got := TrailingMonths(now, 12)
	if len(got) != 12 {
		t.Fatalf("expected 12 keys, got %d", len(got))
	}
	if got[0] != "2023-04" || got[11] != "2024-03" {
		t.Fatalf("unexpected window %v", got)
	}
	// no duplicate months even from the 31st
	seen := map[MonthKey]bool{}
	for _, k := range got {
		if seen[k] {
			t.Fatalf("duplicate key %s in %v", k, got)
		}
		seen[k] = true
	}
	if TrailingMonths(now, 0) != nil {
		t.Fatal("expected nil for empty window")
	}
}
