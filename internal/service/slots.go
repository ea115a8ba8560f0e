package service

import "fmt"

// Booking slots are fixed hourly labels from 08:00 up to but excluding
// 17:00, giving nine bookable hours per day. Doctor-specific working hours
// are not modeled.
const (
	firstSlotHour = 8
	lastSlotHour  = 17 // exclusive
)

// CandidateSlots returns the fixed, ordered set of bookable slot labels
// ("08:00" .. "16:00"). Both availability listing and booking validation
// consume this one function.
func CandidateSlots() []string {
	slots := make([]string, 0, lastSlotHour-firstSlotHour)
	for hour := firstSlotHour; hour < lastSlotHour; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
	}
	return slots
}

// ValidSlot reports whether the label is one of the fixed slot labels
func ValidSlot(label string) bool {
	for _, slot := range CandidateSlots() {
		if slot == label {
			return true
		}
	}
	return false
}
