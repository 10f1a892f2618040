package booking

import "time"

// Confirmation is the terminal success artifact of a submitted booking.
// It carries the exact instant that was submitted; the server's persisted
// value is not re-read and no booking id surfaces in this flow.
type Confirmation struct {
	Time time.Time
}

// FormatLong renders the confirmed instant for the confirmation screen,
// e.g. "Monday, January 2 2006 at 15:04".
func (c Confirmation) FormatLong() string {
	return c.Time.Format("Monday, January 2 2006 at 15:04")
}
