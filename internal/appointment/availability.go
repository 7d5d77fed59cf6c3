package appointment

import "time"

// weekdayName maps a calendar date to one of the seven canonical English
// weekday names, Sunday first.
func weekdayName(date time.Time) string {
	return date.Weekday().String()
}

// findDay returns the first availability entry for the named weekday.
func findDay(entries []AvailabilityEntry, day string) (AvailabilityEntry, bool) {
	for _, e := range entries {
		if e.Day == day {
			return e, true
		}
	}
	return AvailabilityEntry{}, false
}

// slotContains reports whether [startMin, endMin) fits entirely inside one of
// the entry's slots. Full containment, not mere overlap. Malformed slots are
// skipped rather than treated as matches.
func slotContains(entry AvailabilityEntry, startMin, endMin int) bool {
	for _, slot := range entry.Slots {
		slotStart, err := minutesOfDay(slot.StartTime)
		if err != nil {
			continue
		}
		slotEnd, err := minutesOfDay(slot.EndTime)
		if err != nil {
			continue
		}
		if startMin >= slotStart && endMin <= slotEnd {
			return true
		}
	}
	return false
}

// checkAvailability validates a requested interval against a doctor's weekly
// schedule. A doctor with no published schedule accepts any time; callers
// wanting stricter behavior must gate on that upstream.
func checkAvailability(entries []AvailabilityEntry, day time.Time, startMin, endMin int) error {
	if len(entries) == 0 {
		return nil
	}
	entry, ok := findDay(entries, weekdayName(day))
	if !ok {
		return ErrDoctorUnavailableDay
	}
	if !slotContains(entry, startMin, endMin) {
		return ErrOutsideAvailability
	}
	return nil
}
