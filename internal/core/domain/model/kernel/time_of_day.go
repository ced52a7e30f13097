package kernel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const (
	// MinutesPerDay is the number of distinct TimeOfDay values.
	MinutesPerDay = 24 * 60

	// TimeOfDayLayout is the canonical text form of a pickup time, e.g. "03:04 PM".
	TimeOfDayLayout = "03:04 PM"
)

// ErrTimeOfDayIsNotConstructed is returned when a TimeOfDay was not built by one of its constructors.
var ErrTimeOfDayIsNotConstructed = errs.NewValueIsRequiredError(
	"time of day must be created via NewTimeOfDay, TimeOfDayFromMinutes or ParseTimeOfDay")

// parseLayouts are tried in order by ParseTimeOfDay.
var parseLayouts = []struct {
	layout     string
	twelveHour bool
}{
	{layout: "3:04 PM", twelveHour: true},
	{layout: "3:04PM", twelveHour: true},
	{layout: "15:04"},
}

// TimeOfDay is a wall-clock time with minute granularity and no date.
// Two pickup times that fall within the same minute are equal.
// Times never wrap around midnight: 11:55 PM is after 00:05 AM.
type TimeOfDay struct { //nolint:recvcheck //using for validation
	minutes int
	guard   guard.ConstructorGuard
}

// NewTimeOfDay builds a TimeOfDay from a 24-hour clock hour and a minute.
func NewTimeOfDay(hour int, minute int) (TimeOfDay, error) {
	t := TimeOfDay{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateRange("hour", hour, 0, 23),
		validateRange("minute", minute, 0, 59),
	); err != nil {
		return TimeOfDay{}, err
	}

	t.minutes = hour*60 + minute
	return t, nil
}

// TimeOfDayFromMinutes restores a TimeOfDay from minutes since midnight.
func TimeOfDayFromMinutes(minutes int) (TimeOfDay, error) {
	if err := validateRange("minutes", minutes, 0, MinutesPerDay-1); err != nil {
		return TimeOfDay{}, err
	}

	return TimeOfDay{
		minutes: minutes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// ParseTimeOfDay accepts "03:04 PM", "3:04 PM", "3:04pm" and the 24-hour "15:04" form.
// Anything else is rejected; pickup times are never coerced.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	value := strings.ToUpper(strings.TrimSpace(s))
	if value == "" {
		return TimeOfDay{}, errs.NewValueIsRequiredError("pickup time")
	}

	for _, p := range parseLayouts {
		parsed, err := time.Parse(p.layout, value)
		if err != nil {
			continue
		}
		// time.Parse reads hour 0 as 12 on a 12-hour clock; "00:30 PM" is malformed.
		if p.twelveHour && isZeroHour(value) {
			break
		}
		return NewTimeOfDay(parsed.Hour(), parsed.Minute())
	}

	return TimeOfDay{}, errs.NewValueIsInvalidErrorWithCause(
		"pickup time", fmt.Errorf("%q does not match %q or %q", s, TimeOfDayLayout, "15:04"))
}

func isZeroHour(value string) bool {
	hour, _, found := strings.Cut(value, ":")
	return found && strings.Trim(hour, "0") == ""
}

func (t TimeOfDay) Validate() error {
	return t.guard.Validate(ErrTimeOfDayIsNotConstructed)
}

// Minutes returns minutes elapsed since midnight.
func (t TimeOfDay) Minutes() int {
	return t.minutes
}

// MinutesSince returns t - other in minutes. The result is negative when t is earlier.
func (t TimeOfDay) MinutesSince(other TimeOfDay) int {
	return t.minutes - other.minutes
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.minutes > other.minutes
}

func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.minutes == other.minutes
}

// String formats the time using TimeOfDayLayout.
func (t TimeOfDay) String() string {
	hour, minute := t.minutes/60, t.minutes%60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", hour12, minute, suffix)
}

func validateRange(name string, value, minValue, maxValue int) error {
	if value < minValue || value > maxValue {
		return errs.NewValueIsOutOfRangeError(name, value, minValue, maxValue)
	}
	return nil
}
