//go:build e2e

package booking_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	resdto "resource-booking/internal/handler/dto/response"
	"resource-booking/tests/common/builder"
	"resource-booking/tests/common/dbtest"
	"resource-booking/tests/common/httptest"
	"resource-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
)

type BookingE2ETestSuite struct {
	e2e.SharedSuite
}

func TestBookingE2ETestSuite(t *testing.T) {
	suite.Run(t, new(BookingE2ETestSuite))
}

func (s *BookingE2ETestSuite) createResource(name string) resdto.ResourceResponse {
	req := builder.NewResourceBuilder().With(func(r *builder.ResourceBuilder) { r.Name = name }).BuildCreateRequestDTO()
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/resources", req)

	var body resdto.ResourceResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
	return body
}

func (s *BookingE2ETestSuite) book(resourceID uuid.UUID, start, end time.Duration, by string) (int, resdto.BookingResponse, httptest.ErrorBody) {
	req := builder.NewBookingBuilder().Between(start, end).With(func(b *builder.BookingBuilder) {
		b.ResourceID = resourceID
		b.BookedBy = by
	}).BuildCreateRequestDTO()
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", req)

	var (
		ok     resdto.BookingResponse
		failed httptest.ErrorBody
	)
	if rec.Code == http.StatusCreated {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &ok))
	} else {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &failed), rec.Body.String())
	}
	return rec.Code, ok, failed
}

func (s *BookingE2ETestSuite) TestBookingLifecycle() {
	room := s.createResource("Room A")

	var first resdto.BookingResponse
	s.Run("first booking is accepted", func() {
		code, body, _ := s.book(room.ID, 0, time.Hour, "alice")
		s.Require().Equal(http.StatusCreated, code)

		expected := &resdto.BookingResponse{
			ResourceID:   room.ID,
			ResourceName: "Room A",
			StartTime:    builder.DefaultStart,
			EndTime:      builder.DefaultStart.Add(time.Hour),
			BookedBy:     "alice",
			Purpose:      "Sprint planning",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.BookingResponse{}, "ID", "CreatedAt"),
			cmpopts.EquateApproxTime(0),
		}
		if diff := cmp.Diff(expected, &body, opts...); diff != "" {
			s.Failf("booking mismatch", "(-want +got):\n%s", diff)
		}

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings/"+body.ID.String(), nil)
		var fetched resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &fetched)
		if diff := cmp.Diff(&body, &fetched, cmpopts.EquateApproxTime(0)); diff != "" {
			s.Failf("read-back mismatch", "(-want +got):\n%s", diff)
		}
		first = body
	})

	s.Run("overlap is rejected with the conflicting booking", func() {
		code, _, failed := s.book(room.ID, 30*time.Minute, 90*time.Minute, "bob")
		s.Require().Equal(http.StatusConflict, code)
		s.Equal("Booking conflict", failed.Error.Message)
		s.Require().Len(failed.Detail.Conflicts, 1)
		s.Equal(first.ID.String(), failed.Detail.Conflicts[0].ID)
		s.Equal("alice", failed.Detail.Conflicts[0].BookedBy)
	})

	s.Run("containing interval is rejected", func() {
		code, _, _ := s.book(room.ID, -time.Hour, 2*time.Hour, "bob")
		s.Equal(http.StatusConflict, code)
	})

	s.Run("back-to-back bookings are accepted", func() {
		code, _, _ := s.book(room.ID, time.Hour, 2*time.Hour, "bob")
		s.Equal(http.StatusCreated, code)
		code, _, _ = s.book(room.ID, -time.Hour, 0, "carol")
		s.Equal(http.StatusCreated, code)
	})

	s.Run("listing is ordered by start time", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/resources/"+room.ID.String()+"/bookings", nil)

		var list []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &list)
		s.Require().Len(list, 3)
		s.Equal("carol", list[0].BookedBy)
		s.Equal("alice", list[1].BookedBy)
		s.Equal("bob", list[2].BookedBy)
	})

	s.Run("window excludes bookings touching its bounds", func() {
		from := builder.DefaultStart.Format(time.RFC3339)
		to := builder.DefaultStart.Add(time.Hour).Format(time.RFC3339)
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/resources/"+room.ID.String()+"/bookings?from="+from+"&to="+to, nil)

		var list []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &list)
		s.Require().Len(list, 1)
		s.Equal(first.ID, list[0].ID)
	})

	s.Run("deleting frees the slot", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/bookings/"+first.ID.String(), nil)
		s.Equal(http.StatusNoContent, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/bookings/"+first.ID.String(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")

		code, _, _ := s.book(room.ID, 30*time.Minute, time.Hour, "dave")
		s.Equal(http.StatusCreated, code)
	})

	s.Run("resource with bookings cannot be deleted", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/resources/"+room.ID.String(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Resource has bookings")
	})
}

func (s *BookingE2ETestSuite) TestRejections() {
	room := s.createResource("Room B")

	s.Run("inverted interval", func() {
		code, _, failed := s.book(room.ID, time.Hour, 0, "alice")
		s.Equal(http.StatusBadRequest, code)
		s.Contains(failed.Error.Message, "Invalid interval")
	})

	s.Run("empty interval", func() {
		code, _, _ := s.book(room.ID, time.Hour, time.Hour, "alice")
		s.Equal(http.StatusBadRequest, code)
	})

	s.Run("unknown resource", func() {
		code, _, failed := s.book(uuid.New(), 0, time.Hour, "alice")
		s.Equal(http.StatusNotFound, code)
		s.Equal("Resource not found", failed.Error.Message)
	})

	s.Run("unavailable resource", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch,
			"/api/resources/"+room.ID.String()+"/availability", map[string]any{"available": false})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		code, _, failed := s.book(room.ID, 0, time.Hour, "alice")
		s.Equal(http.StatusUnprocessableEntity, code)
		s.Equal("Resource is unavailable", failed.Error.Message)
		s.Zero(dbtest.CountBookings(s.T(), s.DB, room.ID))
	})
}

func (s *BookingE2ETestSuite) TestReschedule() {
	room := s.createResource("Room C")
	_, moving, _ := s.book(room.ID, 0, time.Hour, "alice")
	_, _, _ = s.book(room.ID, 2*time.Hour, 3*time.Hour, "bob")

	reschedule := func(start, end time.Duration) int {
		req := builder.NewBookingBuilder().Between(start, end).BuildRescheduleRequestDTO()
		return httptest.PerformRequest(s.T(), s.Router, http.MethodPut, "/api/bookings/"+moving.ID.String(), req).Code
	}

	s.Equal(http.StatusOK, reschedule(30*time.Minute, 90*time.Minute), "overlapping its own old slot is fine")
	s.Equal(http.StatusConflict, reschedule(90*time.Minute, 150*time.Minute))
	s.Equal(http.StatusOK, reschedule(time.Hour, 2*time.Hour))
}

// Concurrent requests for the same slot must produce exactly one booking.
func (s *BookingE2ETestSuite) TestConcurrentBookingsForSameSlot() {
	room := s.createResource("Room D")
	const workers = 10

	body, err := json.Marshal(builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.ResourceID = room.ID
	}).BuildCreateRequestDTO())
	s.Require().NoError(err)

	codes := make([]int, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			req := nethttptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := nethttptest.NewRecorder()
			s.Router.ServeHTTP(rec, req)
			codes[i] = rec.Code
		}(i)
	}
	close(start)
	wg.Wait()

	created, conflicted := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		}
	}
	s.Equal(1, created)
	s.Equal(workers-1, conflicted)
	s.Equal(1, dbtest.CountBookings(s.T(), s.DB, room.ID))
}

// The schema rejects overlaps even when the application checks are bypassed.
func (s *BookingE2ETestSuite) TestExclusionConstraint() {
	resourceID := dbtest.CreateTestResource(s.T(), s.DB, "Room E", true)
	dbtest.CreateTestBooking(s.T(), s.DB, resourceID, builder.DefaultStart, builder.DefaultStart.Add(time.Hour), "alice")

	_, err := s.DB.Exec(context.Background(),
		`INSERT INTO bookings (id, resource_id, start_time, end_time, booked_by, purpose, created_at)
		 VALUES ($1, $2, $3, $4, 'bob', '', now())`,
		uuid.New(), resourceID, builder.DefaultStart.Add(30*time.Minute), builder.DefaultStart.Add(90*time.Minute))

	var pgErr *pgconn.PgError
	s.Require().True(errors.As(err, &pgErr), "expected a postgres error, got %v", err)
	s.Equal("23P01", pgErr.Code)

	dbtest.CreateTestBooking(s.T(), s.DB, resourceID, builder.DefaultStart.Add(time.Hour), builder.DefaultStart.Add(2*time.Hour), "carol")
	s.Equal(2, dbtest.CountBookings(s.T(), s.DB, resourceID))
}
