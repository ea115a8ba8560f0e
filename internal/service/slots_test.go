package service

import (
	"testing"
)

func TestCandidateSlots(t *testing.T) {
	slots := CandidateSlots()

	if len(slots) != 9 {
		t.Fatalf("expected 9 slots, got %d", len(slots))
	}
	if slots[0] != "08:00" {
		t.Fatalf("expected first slot 08:00, got %s", slots[0])
	}
	if slots[len(slots)-1] != "16:00" {
		t.Fatalf("expected last slot 16:00, got %s", slots[len(slots)-1])
	}

	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Fatalf("slots not in ascending order: %s before %s", slots[i-1], slots[i])
		}
	}
}

func TestValidSlot(t *testing.T) {
	cases := []struct {
		label string
		valid bool
	}{
		{
			label: "08:00",
			valid: true,
		},
		{
			label: "12:00",
			valid: true,
		},
		{
			label: "16:00",
			valid: true,
		},
		{
			label: "17:00",
			valid: false,
		},
		{
			label: "07:00",
			valid: false,
		},
		{
			label: "08:30",
			valid: false,
		},
		{
			label: "8:00",
			valid: false,
		},
		{
			label: "",
			valid: false,
		},
	}

	for _, c := range cases {
		if got := ValidSlot(c.label); got != c.valid {
			t.Fatalf("ValidSlot(%q) = %v, expected %v", c.label, got, c.valid)
		}
	}
}
