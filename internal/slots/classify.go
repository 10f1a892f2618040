// Package slots turns raw per-hour availability into the two display groups
// the booking screen renders: morning (before noon) and afternoon.
package slots

import (
	"fmt"
	"sort"

	"github.com/chairtime/booking-flow/internal/schedapi"
)

// DisplaySlot is one renderable hour. Derived fresh on every classify;
// never cached across provider or date changes.
type DisplaySlot struct {
	Hour      int
	Available bool
	Label     string
}

// Day holds the classified groups for one provider-day.
type Day struct {
	Morning   []DisplaySlot
	Afternoon []DisplaySlot
}

// Label renders an hour as a fixed 24-hour clock label ("09:00", "14:00").
// Digits and a colon only; never localized.
func Label(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// Classify partitions the slots at noon and sorts each group ascending by
// hour. Every input slot lands in exactly one group; input order carries no
// meaning and is discarded. Pure: no I/O, no memory of prior calls.
func Classify(in []schedapi.AvailabilitySlot) Day {
	sorted := make([]schedapi.AvailabilitySlot, len(in))
	copy(sorted, in)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Hour < sorted[j].Hour })

	var day Day
	for _, s := range sorted {
		ds := DisplaySlot{Hour: s.Hour, Available: s.Available, Label: Label(s.Hour)}
		if s.Hour < 12 {
			day.Morning = append(day.Morning, ds)
		} else {
			day.Afternoon = append(day.Afternoon, ds)
		}
	}
	return day
}
