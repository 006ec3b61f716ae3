//go:build unit

package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/domain/resource"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	a := m.Called(ctx, sql)
	return a.Get(0).(pgconn.CommandTag), a.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	a := m.Called(ctx, sql)
	rows, _ := a.Get(0).(pgx.Rows)
	return rows, a.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	a := m.Called(ctx, sql)
	return a.Get(0).(pgx.Row)
}

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error { return f(dest...) }

func errRow(err error) pgx.Row {
	return scanFunc(func(...any) error { return err })
}

var (
	start   = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	created = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

func bookingRow(id, resourceID uuid.UUID) pgx.Row {
	return scanFunc(func(dest ...any) error {
		*dest[0].(*pgtype.UUID) = pgconv.UUIDToPgtype(id)
		*dest[1].(*pgtype.UUID) = pgconv.UUIDToPgtype(resourceID)
		*dest[2].(*pgtype.Timestamptz) = pgconv.TimeToPgtype(start)
		*dest[3].(*pgtype.Timestamptz) = pgconv.TimeToPgtype(start.Add(time.Hour))
		*dest[4].(*string) = "alice"
		*dest[5].(*string) = "standup"
		*dest[6].(*pgtype.Timestamptz) = pgconv.TimeToPgtype(created)
		return nil
	})
}

func sampleBooking(t *testing.T) *booking.Booking {
	t.Helper()
	slot, err := booking.NewTimeSlot(start, start.Add(time.Hour))
	require.NoError(t, err)
	by, err := booking.NewBookedBy("alice")
	require.NoError(t, err)
	return booking.NewBooking(uuid.New(), slot, by, booking.Purpose{}, created)
}

func TestBookingRepositoryFindByID(t *testing.T) {
	id, resourceID := uuid.New(), uuid.New()

	tests := []struct {
		name     string
		row      pgx.Row
		wantKind infra.RepositoryErrorKind
	}{
		{name: "found", row: bookingRow(id, resourceID)},
		{name: "no rows", row: errRow(pgx.ErrNoRows), wantKind: infra.KindNotFound},
		{name: "driver failure", row: errRow(assert.AnError), wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(MockDBTX)
			dbtx.On("QueryRow", mock.Anything, getBookingByIDSQL).Return(tt.row)

			b, err := NewBookingRepository(dbtx).FindByID(context.Background(), id)

			if tt.wantKind != "" {
				assert.Nil(t, b)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				require.NoError(t, err)
				assert.Equal(t, id, b.ID())
				assert.Equal(t, resourceID, b.ResourceID())
				assert.True(t, start.Equal(b.TimeSlot().Start()))
				assert.Equal(t, "alice", b.BookedBy().String())
				assert.Equal(t, "standup", b.Purpose().String())
			}
			dbtx.AssertExpectations(t)
		})
	}
}

func TestBookingRepositoryInsertClassifiesConstraints(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "exclusion constraint", err: &pgconn.PgError{Code: "23P01"}, wantKind: infra.KindConflict},
		{name: "missing resource", err: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
		{name: "other failure", err: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(MockDBTX)
			dbtx.On("Exec", mock.Anything, insertBookingSQL).Return(pgconn.CommandTag{}, tt.err)

			err := NewBookingRepository(dbtx).Insert(context.Background(), sampleBooking(t))
			assert.True(t, infra.IsKind(err, tt.wantKind))
		})
	}
}

func TestBookingRepositoryUpdateAndDelete(t *testing.T) {
	t.Run("update of a missing booking", func(t *testing.T) {
		dbtx := new(MockDBTX)
		dbtx.On("Exec", mock.Anything, updateBookingSlotSQL).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

		err := NewBookingRepository(dbtx).UpdateSlot(context.Background(), sampleBooking(t))
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("delete reports whether a row was removed", func(t *testing.T) {
		dbtx := new(MockDBTX)
		dbtx.On("Exec", mock.Anything, deleteBookingSQL).Return(pgconn.NewCommandTag("DELETE 1"), nil).Once()
		dbtx.On("Exec", mock.Anything, deleteBookingSQL).Return(pgconn.NewCommandTag("DELETE 0"), nil).Once()
		repo := NewBookingRepository(dbtx)

		deleted, err := repo.Delete(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestResourceRepositoryLockByIDTakesRowLock(t *testing.T) {
	dbtx := new(MockDBTX)
	dbtx.On("QueryRow", mock.Anything, mock.MatchedBy(func(sql string) bool {
		return strings.HasSuffix(sql, "FOR UPDATE")
	})).Return(errRow(pgx.ErrNoRows))

	_, err := NewResourceRepository(dbtx).LockByID(context.Background(), uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	dbtx.AssertExpectations(t)
}

func TestResourceRepositoryDeleteRestricted(t *testing.T) {
	res, err := resource.NewResource("Room A", "", "", 4, created)
	require.NoError(t, err)

	dbtx := new(MockDBTX)
	dbtx.On("Exec", mock.Anything, deleteResourceSQL).Return(pgconn.CommandTag{}, &pgconn.PgError{Code: "23503"})

	err = NewResourceRepository(dbtx).Delete(context.Background(), res.ID())
	assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated))
}
