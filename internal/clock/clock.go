package clock

import (
	"fmt"
	"time"

	"github.com/mfiorito/hard75/internal/constants"
)

// Clock produces calendar dates in the fixed civil timezone. Every device has
// to agree on what "today" means, so day boundaries are always computed in
// Argentina time rather than the host's local zone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// Countdown is the remaining wall-clock time until the next civil midnight.
// Purely presentational; the rollover itself is driven by date comparison.
type Countdown struct {
	Hours   int
	Minutes int
	Seconds int
	Total   time.Duration
}

// New returns a Clock bound to the civil timezone.
func New() (*Clock, error) {
	loc, err := time.LoadLocation(constants.CivilTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load civil timezone %q: %w", constants.CivilTimezone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewAt returns a Clock whose current time is supplied by now. Used in tests
// to pin the clock to a known instant.
func NewAt(now func() time.Time) (*Clock, error) {
	c, err := New()
	if err != nil {
		return nil, err
	}
	c.now = now
	return c, nil
}

// Now returns the current instant expressed in the civil timezone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns today's date string (YYYY-MM-DD) as observed in the civil
// timezone. Two calls within the same physical day yield the same string.
func (c *Clock) Today() string {
	return c.Now().Format(constants.DateFormat)
}

// UntilMidnight returns the time remaining until the next midnight in the
// civil timezone. The next-midnight instant is computed entirely within the
// civil zone; mixing in host-local setters would skew the countdown by the
// offset between the two zones.
func (c *Clock) UntilMidnight() Countdown {
	now := c.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, c.loc)
	diff := midnight.Sub(now)
	if diff < 0 {
		diff = 0
	}

	return Countdown{
		Hours:   int(diff.Hours()),
		Minutes: int(diff.Minutes()) % 60,
		Seconds: int(diff.Seconds()) % 60,
		Total:   diff,
	}
}

// DaysBetween returns the absolute whole-day difference between two date
// strings (YYYY-MM-DD). Both dates are anchored at midnight UTC before
// subtracting so DST-style shifts can never produce fractional days.
func DaysBetween(a, b string) (int, error) {
	da, err := time.Parse(constants.DateFormat, a)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", a, err)
	}
	db, err := time.Parse(constants.DateFormat, b)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", b, err)
	}

	diff := db.Sub(da)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24), nil
}

// ValidateDate checks that a string is a well-formed YYYY-MM-DD date.
func ValidateDate(date string) bool {
	_, err := time.Parse(constants.DateFormat, date)
	return err == nil
}
