//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"resource-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func slot(t *testing.T, startHour, endHour int) booking.TimeSlot {
	t.Helper()
	s, err := booking.NewTimeSlot(at(startHour, 0), at(endHour, 0))
	require.NoError(t, err)
	return s
}

func TestNewTimeSlot(t *testing.T) {
	t.Run("valid slot keeps bounds in UTC", func(t *testing.T) {
		jst := time.FixedZone("JST", 9*60*60)
		start := time.Date(2025, 6, 2, 19, 0, 0, 0, jst)
		s, err := booking.NewTimeSlot(start, start.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, time.UTC, s.Start().Location())
		assert.True(t, start.Equal(s.Start()))
		assert.Equal(t, time.Hour, s.Duration())
	})

	t.Run("zero duration is rejected", func(t *testing.T) {
		_, err := booking.NewTimeSlot(at(10, 0), at(10, 0))
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		_, err := booking.NewTimeSlot(at(11, 0), at(10, 0))
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("one microsecond is the smallest valid slot", func(t *testing.T) {
		_, err := booking.NewTimeSlot(at(10, 0), at(10, 0).Add(time.Microsecond))
		assert.NoError(t, err)
	})

	t.Run("sub-microsecond slot collapses and is rejected", func(t *testing.T) {
		_, err := booking.NewTimeSlot(at(10, 0), at(10, 0).Add(time.Nanosecond))
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})
}

func TestTimeSlotOverlaps(t *testing.T) {
	existing := slot(t, 9, 12)

	tests := []struct {
		name      string
		start     int
		end       int
		wantClash bool
	}{
		{name: "identical interval", start: 9, end: 12, wantClash: true},
		{name: "contained", start: 10, end: 11, wantClash: true},
		{name: "containing", start: 8, end: 13, wantClash: true},
		{name: "overlaps start", start: 8, end: 10, wantClash: true},
		{name: "overlaps end", start: 11, end: 13, wantClash: true},
		{name: "shares start", start: 9, end: 10, wantClash: true},
		{name: "shares end", start: 11, end: 12, wantClash: true},
		{name: "ends when existing starts", start: 8, end: 9, wantClash: false},
		{name: "starts when existing ends", start: 12, end: 13, wantClash: false},
		{name: "entirely before", start: 6, end: 8, wantClash: false},
		{name: "entirely after", start: 13, end: 15, wantClash: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := slot(t, tt.start, tt.end)
			assert.Equal(t, tt.wantClash, candidate.Overlaps(existing))
			assert.Equal(t, candidate.Overlaps(existing), existing.Overlaps(candidate), "overlap must be symmetric")
		})
	}
}

func TestTimeSlotOverlapsIsSymmetric(t *testing.T) {
	// every pair of hourly slots within a small day window
	var slots []booking.TimeSlot
	for start := 8; start < 14; start++ {
		for end := start + 1; end <= 14; end++ {
			slots = append(slots, slot(t, start, end))
		}
	}

	for _, a := range slots {
		for _, b := range slots {
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "%s vs %s", a, b)
		}
	}
}

func TestTimeSlotToTstzrange(t *testing.T) {
	s := slot(t, 10, 11)
	assert.Equal(t, "[2025-06-02T10:00:00Z,2025-06-02T11:00:00Z)", s.ToTstzrange())
}

func TestNewWindow(t *testing.T) {
	from, to := at(9, 0), at(12, 0)

	t.Run("open bounds", func(t *testing.T) {
		w, err := booking.NewWindow(nil, nil)
		require.NoError(t, err)
		assert.True(t, w.Intersects(slot(t, 0, 1)))
	})

	t.Run("inverted bounds are rejected", func(t *testing.T) {
		_, err := booking.NewWindow(&to, &from)
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("empty bounds are rejected", func(t *testing.T) {
		_, err := booking.NewWindow(&from, &from)
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("intersection uses the half-open rule", func(t *testing.T) {
		w, err := booking.NewWindow(&from, &to)
		require.NoError(t, err)

		assert.False(t, w.Intersects(slot(t, 8, 9)), "ends at window start")
		assert.False(t, w.Intersects(slot(t, 12, 13)), "starts at window end")
		assert.True(t, w.Intersects(slot(t, 8, 10)))
		assert.True(t, w.Intersects(slot(t, 11, 13)))
		assert.True(t, w.Intersects(slot(t, 7, 14)))
	})

	t.Run("only lower bound", func(t *testing.T) {
		w, err := booking.NewWindow(&from, nil)
		require.NoError(t, err)
		assert.False(t, w.Intersects(slot(t, 8, 9)))
		assert.True(t, w.Intersects(slot(t, 20, 21)))
	})

	t.Run("only upper bound", func(t *testing.T) {
		w, err := booking.NewWindow(nil, &to)
		require.NoError(t, err)
		assert.True(t, w.Intersects(slot(t, 1, 2)))
		assert.False(t, w.Intersects(slot(t, 12, 13)))
	})
}

func TestNewBookedBy(t *testing.T) {
	b, err := booking.NewBookedBy("  alice@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", b.String())

	_, err = booking.NewBookedBy("   ")
	assert.ErrorIs(t, err, booking.ErrBookedByRequired)

	_, err = booking.NewBookedBy(strings.Repeat("a", booking.MaxBookedByLength+1))
	assert.ErrorIs(t, err, booking.ErrBookedByTooLong)
}

func TestNewPurpose(t *testing.T) {
	p, err := booking.NewPurpose("")
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())

	_, err = booking.NewPurpose(strings.Repeat("a", booking.MaxPurposeLength+1))
	assert.ErrorIs(t, err, booking.ErrPurposeTooLong)
}
