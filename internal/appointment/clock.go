package appointment

import (
	"fmt"
)

// minutesOfDay converts a zero-padded 24-hour "HH:mm" string into minutes
// since midnight. The format is checked strictly so that interval comparisons
// can run on numbers instead of relying on lexicographic string ordering.
func minutesOfDay(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:mm", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid time %q: want HH:mm", s)
		}
	}

	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: hour or minute out of range", s)
	}

	return hour*60 + minute, nil
}

// parseTimeRange validates both endpoints and the start < end invariant.
func parseTimeRange(start, end string) (startMin, endMin int, err error) {
	startMin, err = minutesOfDay(start)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	endMin, err = minutesOfDay(end)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	if startMin >= endMin {
		return 0, 0, fmt.Errorf("%w: start %q must be before end %q", ErrInvalidTimeRange, start, end)
	}
	return startMin, endMin, nil
}
