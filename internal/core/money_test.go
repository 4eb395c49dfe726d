package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseRate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"0.10", true},
		{" 0.25 ", true},
		{"0", true},
		{"-0.1", false},
		{"abc", false},
		{"", false},
	}
	for _, tc := range cases {
		_, err := ParseRate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q unexpected error %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestEarn(t *testing.T) {
	cases := []struct {
		bottles int64
		want    string
	}{
		{5, "0.50"},
		{8, "0.80"},
		{0, "0.00"},
		{3, "0.30"},
		{1234, "123.40"},
	}
	for _, tc := range cases {
		got := Earn(tc.bottles, DefaultUnitRate)
		if got.String() != tc.want {
			t.Fatalf("Earn(%d) = %s, want %s", tc.bottles, got, tc.want)
		}
	}
	if Earn(5, decimal.RequireFromString("0.05")).Display() != "$0.25" {
		t.Fatal("unexpected display for custom rate")
	}
}

func TestMoneyAdd(t *testing.T) {
	total := Earn(1, DefaultUnitRate).Add(Earn(2, DefaultUnitRate))
	if !total.Equal(Earn(3, DefaultUnitRate)) {
		t.Fatalf("expected 0.30, got %s", total)
	}
}
