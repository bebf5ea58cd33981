package domain

import (
	"sort"
	"testing"
)

func TestCompareNaturalCanonicalOrder(t *testing.T) {
	in := []string{"Penthouse", "1A", "10", "2"}
	sort.SliceStable(in, func(i, j int) bool { return NaturalLess(in[i], in[j]) })
	want := []string{"2", "10", "1A", "Penthouse"}
	for i := range want {
		if in[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q (full order %v)", i, in[i], want[i], in)
		}
	}
}

func TestCompareNaturalNumericBeforeMixed(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"10", "1A", -1},
		{"101", "Penthouse", -1},
		{"1A", "Penthouse", -1},
		{"apt2", "apt10", -1},
		{"apt10", "apt10", 0},
		{"A", "a", 0},
		{"007", "7", 0},
		{"1B", "1A", 1},
	}
	for _, tc := range cases {
		got := CompareNatural(tc.a, tc.b)
		switch {
		case tc.want < 0 && got >= 0,
			tc.want > 0 && got <= 0,
			tc.want == 0 && got != 0:
			t.Errorf("CompareNatural(%q, %q) = %d, want sign %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCompareNaturalLargeDigitRuns(t *testing.T) {
	a := "99999999999999999999999999999998"
	b := "99999999999999999999999999999999"
	if CompareNatural(a, b) >= 0 {
		t.Fatalf("digit runs beyond int64 must still compare numerically")
	}
}

func TestListingLessPriorityOrder(t *testing.T) {
	storage := Apartment{ID: 1, Number: "Bodega 1", Floor: "-1", UnitType: UnitStorage}
	standard := Apartment{ID: 2, Number: "301", Floor: "3", UnitType: UnitStandard}
	penthouse := Apartment{ID: 3, Number: "PH", Floor: "3", UnitType: UnitPenthouse}

	in := []Apartment{penthouse, standard, storage}
	sort.SliceStable(in, func(i, j int) bool { return ListingLess(in[i], in[j]) })

	wantIDs := []int{1, 2, 3}
	for i, want := range wantIDs {
		if in[i].ID != want {
			t.Fatalf("position %d: got apartment %d (%s), want %d", i, in[i].ID, in[i].Number, want)
		}
	}
}

func TestListingLessFloorsAscendingWithinMainGroup(t *testing.T) {
	a := Apartment{ID: 1, Number: "101", Floor: "1", UnitType: UnitStandard}
	b := Apartment{ID: 2, Number: "201", Floor: "2", UnitType: UnitStandard}
	local := Apartment{ID: 3, Number: "Local A", Floor: "1", UnitType: UnitCommercial}

	if !ListingLess(a, b) {
		t.Fatalf("floor 1 must list before floor 2")
	}
	if !ListingLess(local, a) {
		t.Fatalf("commercial unit must list before standard units on the same floor")
	}
}
