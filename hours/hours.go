package hours

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status labels shown to diners.
const (
	LabelOpen   = "Mở cửa"
	LabelClosed = "Đã đóng"
)

const (
	rangeSeparator = " - "
	clockSeparator = ":"
)

// ErrMalformedHours is returned by Parse for any spec it cannot read.
var ErrMalformedHours = errors.New("malformed open hours")

// ParseOutcome tells whether a verdict came from a parsed schedule or from
// the closed-by-default fallback.
type ParseOutcome int

const (
	Parsed ParseOutcome = iota
	DefaultedClosed
)

func (o ParseOutcome) String() string {
	switch o {
	case Parsed:
		return "parsed"
	case DefaultedClosed:
		return "defaulted_closed"
	default:
		return "unknown"
	}
}

// TimeOfDay is a wall-clock minute in [0, 1440).
type TimeOfDay int

// At builds a TimeOfDay, reporting false when hour or minute is out of range.
func At(hour, minute int) (TimeOfDay, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return TimeOfDay(hour*60 + minute), true
}

// FromTime reduces t to its hour and minute in t's own location. Seconds are
// dropped, so the whole closing minute counts as open: 22:00:59 is inside
// "09:00 - 22:00". Comparing with seconds would report closed from 22:00:01.
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Schedule is one daily opening window. Close before Open means the window
// runs past midnight.
type Schedule struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// Wraps reports whether the window crosses midnight.
func (s Schedule) Wraps() bool {
	return s.Close < s.Open
}

// Contains reports whether now falls inside the window. Both ends are
// inclusive.
func (s Schedule) Contains(now TimeOfDay) bool {
	if s.Wraps() {
		return now >= s.Open || now <= s.Close
	}
	return s.Open <= now && now <= s.Close
}

// Parse reads a spec in the "HH:MM - HH:MM" format.
func Parse(spec string) (Schedule, error) {
	parts := strings.Split(spec, rangeSeparator)
	if len(parts) != 2 {
		return Schedule{}, fmt.Errorf("%w: %q needs exactly one %q", ErrMalformedHours, spec, rangeSeparator)
	}
	open, err := ParseTimeOfDay(parts[0])
	if err != nil {
		return Schedule{}, err
	}
	close, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{Open: open, Close: close}, nil
}

// ParseTimeOfDay reads a single "HH:MM" clock value.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	fields := strings.Split(strings.TrimSpace(raw), clockSeparator)
	if len(fields) != 2 {
		return 0, fmt.Errorf("%w: %q is not HH:MM", ErrMalformedHours, raw)
	}
	hour, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("%w: hour %q: %v", ErrMalformedHours, fields[0], err)
	}
	minute, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%w: minute %q: %v", ErrMalformedHours, fields[1], err)
	}
	tod, ok := At(hour, minute)
	if !ok {
		return 0, fmt.Errorf("%w: %q out of range", ErrMalformedHours, raw)
	}
	return tod, nil
}

// Verdict is the full outcome of evaluating a spec at an instant.
type Verdict struct {
	Open    bool
	Label   string
	Outcome ParseOutcome
}

// Evaluate checks spec against now. A spec that cannot be parsed yields a
// closed verdict with Outcome set to DefaultedClosed.
func Evaluate(spec string, now time.Time) Verdict {
	schedule, err := Parse(spec)
	if err != nil {
		return Verdict{Open: false, Label: LabelClosed, Outcome: DefaultedClosed}
	}
	if schedule.Contains(FromTime(now)) {
		return Verdict{Open: true, Label: LabelOpen, Outcome: Parsed}
	}
	return Verdict{Open: false, Label: LabelClosed, Outcome: Parsed}
}

// IsOpen reports whether a restaurant with the given hours spec is open at
// now, along with the label to display. Malformed specs are treated as
// closed.
func IsOpen(spec string, now time.Time) (bool, string) {
	v := Evaluate(spec, now)
	return v.Open, v.Label
}
