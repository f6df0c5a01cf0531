package schedule

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/dance10/webapps/core"
)

// Interval is a half-open time span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two spans share any instant. Touching spans do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// ParseDate reads a "yyyy-MM-dd" date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing date %q", s)
	}
	return d, nil
}

// NewInterval combines a calendar date with "HH:mm" start and end clock times in the date's
// location. End must be after start.
func NewInterval(date time.Time, startTime, endTime string) (Interval, error) {
	start, err := atClock(date, startTime)
	if err != nil {
		return Interval{}, core.NewValidationError(nil, core.FieldError{Field: "startTime", Error: msgInvalidTime})
	}
	end, err := atClock(date, endTime)
	if err != nil {
		return Interval{}, core.NewValidationError(nil, core.FieldError{Field: "endTime", Error: msgInvalidTime})
	}
	if !end.After(start) {
		return Interval{}, core.NewValidationError(nil, core.FieldError{Field: "endTime", Error: msgEndBeforeStart})
	}
	return Interval{Start: start, End: end}, nil
}

func atClock(date time.Time, clock string) (time.Time, error) {
	c, err := time.Parse(clockLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, date.Location()), nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
