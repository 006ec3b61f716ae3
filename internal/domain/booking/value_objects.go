package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInterval  = errors.New("end time must be after start time")
	ErrBookedByRequired = errors.New("booked_by is required")
	ErrBookedByTooLong  = errors.New("booked_by is too long (max 255 characters)")
	ErrPurposeTooLong   = errors.New("purpose is too long (max 1000 characters)")
)

const (
	MaxBookedByLength = 255
	MaxPurposeLength  = 1000
)

// TimeSlot is the half-open interval [start, end).
type TimeSlot struct {
	start time.Time
	end   time.Time
}

// Zero-length and inverted slots are rejected. Bounds are kept at
// microsecond precision, matching what PostgreSQL stores.
func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	start = start.UTC().Truncate(time.Microsecond)
	end = end.UTC().Truncate(time.Microsecond)
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidInterval
	}

	return TimeSlot{
		start: start,
		end:   end,
	}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Touching slots ([10:00,11:00) and [11:00,12:00)) do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && ts.end.After(other.start)
}

func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339Nano), ts.end.Format(time.RFC3339Nano))
}

func (ts TimeSlot) String() string {
	return ts.ToTstzrange()
}

// Window is a possibly open-ended filter range [from, to); nil bounds are unbounded.
type Window struct {
	from *time.Time
	to   *time.Time
}

func NewWindow(from, to *time.Time) (Window, error) {
	if from != nil && to != nil && !to.After(*from) {
		return Window{}, ErrInvalidInterval
	}
	return Window{from: from, to: to}, nil
}

func (w Window) From() *time.Time { return w.from }
func (w Window) To() *time.Time   { return w.to }

// Uses the same half-open rule as TimeSlot.Overlaps.
func (w Window) Intersects(slot TimeSlot) bool {
	if w.from != nil && !slot.end.After(*w.from) {
		return false
	}
	if w.to != nil && !slot.start.Before(*w.to) {
		return false
	}
	return true
}

type BookedBy struct {
	value string
}

func NewBookedBy(value string) (BookedBy, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return BookedBy{}, ErrBookedByRequired
	}
	if len(trimmed) > MaxBookedByLength {
		return BookedBy{}, ErrBookedByTooLong
	}
	return BookedBy{value: trimmed}, nil
}

func (b BookedBy) String() string {
	return b.value
}

type Purpose struct {
	value string
}

func NewPurpose(value string) (Purpose, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > MaxPurposeLength {
		return Purpose{}, ErrPurposeTooLong
	}
	return Purpose{value: trimmed}, nil
}

func (p Purpose) String() string {
	return p.value
}

func (p Purpose) IsEmpty() bool {
	return p.value == ""
}
