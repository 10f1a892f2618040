// Package booking holds the appointment booking workflow: the user's
// in-progress selection, the availability-driven display state, and the
// single-shot submission of a chosen slot.
package booking

import "time"

// HourUnset marks a selection with no hour chosen yet.
const HourUnset = -1

// Selection is the user's in-progress provider/date/hour choice. It is a
// plain value; transitions go through Apply so the clearing rules stay in
// one place.
type Selection struct {
	ProviderID string
	Date       time.Time
	Hour       int
}

// NewSelection is the screen-entry state: the provider the user navigated
// with, the current moment as the date, and no hour chosen.
func NewSelection(providerID string, now time.Time) Selection {
	return Selection{ProviderID: providerID, Date: now, Hour: HourUnset}
}

// HourChosen reports whether an hour has been picked. Readiness to submit
// is exactly this predicate.
func (s Selection) HourChosen() bool {
	return s.Hour != HourUnset
}

// Action is a selection transition.
type Action interface {
	isAction()
}

// SelectProvider switches the provider. Availability is provider-specific,
// so any previously chosen hour is invalidated.
type SelectProvider struct {
	ID string
}

// SelectDate switches the calendar day, likewise clearing the hour.
type SelectDate struct {
	Date time.Time
}

// SelectHour picks an hour. The reducer is deliberately permissive about
// slots flagged unavailable: the server is authoritative and availability
// can change between display and submit anyway, so rejection happens at
// submission, not here. Disabling unavailable slots is a presentation
// concern.
type SelectHour struct {
	Hour int
}

func (SelectProvider) isAction() {}
func (SelectDate) isAction()     {}
func (SelectHour) isAction()     {}

// Apply returns the next selection for an action. Pure; the input value is
// not modified.
func Apply(s Selection, a Action) Selection {
	switch act := a.(type) {
	case SelectProvider:
		s.ProviderID = act.ID
		s.Hour = HourUnset
	case SelectDate:
		s.Date = act.Date
		s.Hour = HourUnset
	case SelectHour:
		s.Hour = act.Hour
	}
	return s
}
