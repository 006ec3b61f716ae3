//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"resource-booking/internal/infra/cache"
	"resource-booking/internal/infra/memstore"
	"resource-booking/internal/pkg/clock"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/queries"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.BookingEvent
	err    error
}

func (p *recordingPublisher) PublishBookingEvent(_ context.Context, event shared.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []shared.BookingEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]shared.BookingEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type BookingCommandsTestSuite struct {
	suite.Suite
	store     *memstore.Store
	publisher *recordingPublisher
	bookings  commands.BookingCommands
	resources commands.ResourceCommands
	queries   queries.BookingQueries
	room      *queries.ResourceView
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.store = memstore.New()
	s.publisher = &recordingPublisher{}
	clk := clock.NewMockClock(day.Add(-24 * time.Hour))

	s.queries = queries.NewBookingQueries(memstore.NewBookingReadStore(s.store))
	resourceQueries := queries.NewResourceQueries(memstore.NewResourceReadStore(s.store), cache.NopResourceCache{})

	s.bookings = commands.NewBookingCommands(s.store, s.queries, s.publisher, clk)
	s.resources = commands.NewResourceCommands(s.store, resourceQueries, cache.NopResourceCache{}, clk)

	room, err := s.resources.Create(context.Background(), commands.CreateResourceRequest{Name: "Room A", Capacity: 8})
	s.Require().NoError(err)
	s.room = room
}

func (s *BookingCommandsTestSuite) create(start, end time.Time, bookedBy string) (*queries.BookingView, error) {
	return s.bookings.Create(context.Background(), commands.CreateBookingRequest{
		ResourceID: s.room.ID,
		StartTime:  start,
		EndTime:    end,
		BookedBy:   bookedBy,
		Purpose:    "standup",
	})
}

func (s *BookingCommandsTestSuite) list() []*queries.BookingView {
	views, err := s.queries.ListByResource(context.Background(), s.room.ID, nil, nil)
	s.Require().NoError(err)
	return views
}

func (s *BookingCommandsTestSuite) TestCreate() {
	s.Run("success returns the stored booking", func() {
		view, err := s.create(at(9, 0), at(10, 0), "  alice  ")

		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, view.ID)
		s.Equal(s.room.ID, view.ResourceID)
		s.Equal("Room A", view.ResourceName)
		s.Equal("alice", view.BookedBy)
		s.Equal("standup", view.Purpose)
		s.True(at(9, 0).Equal(view.StartTime))
		s.True(at(10, 0).Equal(view.EndTime))
		s.Equal([]shared.BookingEventType{shared.BookingCreated}, s.publisher.types())
	})

	s.Run("back-to-back bookings are both accepted", func() {
		_, err := s.create(at(10, 0), at(11, 0), "bob")
		s.Require().NoError(err)
		_, err = s.create(at(8, 0), at(9, 0), "carol")
		s.Require().NoError(err)
		s.Len(s.list(), 3)
	})
}

func (s *BookingCommandsTestSuite) TestCreateConflicts() {
	existing, err := s.create(at(9, 0), at(12, 0), "alice")
	s.Require().NoError(err)

	tests := []struct {
		name       string
		start, end time.Time
	}{
		{name: "identical interval", start: at(9, 0), end: at(12, 0)},
		{name: "contained", start: at(10, 0), end: at(11, 0)},
		{name: "containing", start: at(8, 0), end: at(13, 0)},
		{name: "overlaps start", start: at(8, 30), end: at(9, 30)},
		{name: "overlaps end", start: at(11, 30), end: at(12, 30)},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.create(tt.start, tt.end, "bob")

			s.Require().Error(err)
			s.True(errs.Is(err, errs.ErrBookingConflict))

			var conflictErr *commands.ConflictError
			s.Require().True(errors.As(err, &conflictErr))
			s.Equal(s.room.ID, conflictErr.ResourceID)
			s.Require().Len(conflictErr.Conflicts, 1)
			s.Equal(existing.ID, conflictErr.Conflicts[0].ID)
			s.True(at(9, 0).Equal(conflictErr.Conflicts[0].StartTime))
			s.True(at(12, 0).Equal(conflictErr.Conflicts[0].EndTime))
		})
	}

	s.Len(s.list(), 1, "rejected requests leave the list unchanged")
}

func (s *BookingCommandsTestSuite) TestCreateConflictListsEveryOverlap() {
	first, err := s.create(at(9, 0), at(10, 0), "alice")
	s.Require().NoError(err)
	second, err := s.create(at(10, 0), at(11, 0), "bob")
	s.Require().NoError(err)

	_, err = s.create(at(9, 30), at(10, 30), "carol")

	var conflictErr *commands.ConflictError
	s.Require().True(errors.As(err, &conflictErr))
	s.Require().Len(conflictErr.Conflicts, 2)
	s.Equal(first.ID, conflictErr.Conflicts[0].ID)
	s.Equal(second.ID, conflictErr.Conflicts[1].ID)
}

func (s *BookingCommandsTestSuite) TestCreateValidationOrder() {
	s.Run("missing booked_by wins over unknown resource", func() {
		_, err := s.bookings.Create(context.Background(), commands.CreateBookingRequest{
			ResourceID: uuid.New(),
			StartTime:  at(10, 0),
			EndTime:    at(9, 0),
			BookedBy:   "   ",
		})
		s.True(errs.Is(err, errs.ErrBookedByRequired))
	})

	s.Run("unknown resource wins over invalid interval", func() {
		_, err := s.bookings.Create(context.Background(), commands.CreateBookingRequest{
			ResourceID: uuid.New(),
			StartTime:  at(10, 0),
			EndTime:    at(9, 0),
			BookedBy:   "alice",
		})
		s.True(errs.Is(err, errs.ErrResourceNotFound))
	})

	s.Run("invalid interval wins over unavailable resource", func() {
		_, err := s.resources.SetAvailability(context.Background(), s.room.ID, false)
		s.Require().NoError(err)
		defer func() {
			_, err := s.resources.SetAvailability(context.Background(), s.room.ID, true)
			s.Require().NoError(err)
		}()

		_, err = s.create(at(10, 0), at(10, 0), "alice")
		s.True(errs.Is(err, errs.ErrInvalidInterval))
	})

	s.Run("unavailable resource wins over conflict", func() {
		_, err := s.create(at(9, 0), at(10, 0), "alice")
		s.Require().NoError(err)

		_, err = s.resources.SetAvailability(context.Background(), s.room.ID, false)
		s.Require().NoError(err)

		_, err = s.create(at(9, 0), at(10, 0), "bob")
		s.True(errs.Is(err, errs.ErrResourceUnavailable))
		s.False(errs.Is(err, errs.ErrBookingConflict))
	})

	s.Run("overlong purpose is a validation error", func() {
		long := make([]byte, 1001)
		for i := range long {
			long[i] = 'x'
		}
		_, err := s.bookings.Create(context.Background(), commands.CreateBookingRequest{
			ResourceID: s.room.ID,
			StartTime:  at(14, 0),
			EndTime:    at(15, 0),
			BookedBy:   "alice",
			Purpose:    string(long),
		})
		s.True(errs.Is(err, errs.ErrDomainValidation))
	})

	s.Len(s.list(), 1)
}

func (s *BookingCommandsTestSuite) TestDelete() {
	view, err := s.create(at(9, 0), at(10, 0), "alice")
	s.Require().NoError(err)

	s.Require().NoError(s.bookings.Delete(context.Background(), view.ID))
	s.Empty(s.list())

	err = s.bookings.Delete(context.Background(), view.ID)
	s.True(errs.Is(err, errs.ErrBookingNotFound))

	s.Equal([]shared.BookingEventType{shared.BookingCreated, shared.BookingDeleted}, s.publisher.types())
}

func (s *BookingCommandsTestSuite) TestDeleteFreesTheSlot() {
	view, err := s.create(at(9, 0), at(10, 0), "alice")
	s.Require().NoError(err)
	s.Require().NoError(s.bookings.Delete(context.Background(), view.ID))

	_, err = s.create(at(9, 0), at(10, 0), "bob")
	s.NoError(err)
}

func (s *BookingCommandsTestSuite) TestReschedule() {
	first, err := s.create(at(9, 0), at(10, 0), "alice")
	s.Require().NoError(err)
	second, err := s.create(at(11, 0), at(12, 0), "bob")
	s.Require().NoError(err)

	s.Run("overlapping its own slot is allowed", func() {
		view, err := s.bookings.Reschedule(context.Background(), first.ID, commands.RescheduleBookingRequest{
			StartTime: at(9, 30),
			EndTime:   at(10, 30),
		})
		s.Require().NoError(err)
		s.Equal(first.ID, view.ID)
		s.True(at(9, 30).Equal(view.StartTime))
		s.Equal("alice", view.BookedBy)
	})

	s.Run("overlapping another booking conflicts", func() {
		_, err := s.bookings.Reschedule(context.Background(), first.ID, commands.RescheduleBookingRequest{
			StartTime: at(10, 30),
			EndTime:   at(11, 30),
		})
		var conflictErr *commands.ConflictError
		s.Require().True(errors.As(err, &conflictErr))
		s.Require().Len(conflictErr.Conflicts, 1)
		s.Equal(second.ID, conflictErr.Conflicts[0].ID)
	})

	s.Run("invalid interval", func() {
		_, err := s.bookings.Reschedule(context.Background(), first.ID, commands.RescheduleBookingRequest{
			StartTime: at(12, 0),
			EndTime:   at(11, 0),
		})
		s.True(errs.Is(err, errs.ErrInvalidInterval))
	})

	s.Run("unknown booking", func() {
		_, err := s.bookings.Reschedule(context.Background(), uuid.New(), commands.RescheduleBookingRequest{
			StartTime: at(13, 0),
			EndTime:   at(14, 0),
		})
		s.True(errs.Is(err, errs.ErrBookingNotFound))
	})

	views := s.list()
	s.Require().Len(views, 2)
	s.True(at(9, 30).Equal(views[0].StartTime))
	s.True(at(10, 30).Equal(views[0].EndTime))
}

func (s *BookingCommandsTestSuite) TestPublishFailureKeepsBooking() {
	s.publisher.err = errors.New("broker down")

	view, err := s.create(at(9, 0), at(10, 0), "alice")
	s.Require().NoError(err)
	s.Require().Len(s.list(), 1)
	s.Equal(view.ID, s.list()[0].ID)
}

func (s *BookingCommandsTestSuite) TestConcurrentOverlappingCreates() {
	const workers = 8
	var wg sync.WaitGroup
	results := make([]error, workers)
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, results[i] = s.create(at(9, 0), at(10, 0), "racer")
		}(i)
	}
	close(start)
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errs.Is(err, errs.ErrBookingConflict):
			conflicted++
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}

	s.Equal(1, succeeded)
	s.Equal(workers-1, conflicted)
	s.Len(s.list(), 1)
}

func TestBookingCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func TestConflictErrorMatchesSentinel(t *testing.T) {
	err := error(&commands.ConflictError{ResourceID: uuid.New()})

	assert.True(t, errors.Is(err, errs.ErrBookingConflict))
	assert.True(t, errs.Is(err, errs.ErrBookingConflict))
	assert.False(t, errs.Is(err, errs.ErrResourceNotFound))
	require.Contains(t, err.Error(), "0 overlapping")
}
