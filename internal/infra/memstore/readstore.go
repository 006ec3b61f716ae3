package memstore

import (
	"context"
	"sort"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/infra"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceReadStore struct {
	store *Store
}

func NewResourceReadStore(store *Store) *ResourceReadStore {
	return &ResourceReadStore{store: store}
}

func (r *ResourceReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	var view *queries.ResourceView
	r.store.read(func(st *state) {
		if row, ok := st.resources[id]; ok {
			view = row.toView()
		}
	})
	if view == nil {
		return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return view, nil
}

func (r *ResourceReadStore) FindAll(_ context.Context) ([]*queries.ResourceView, error) {
	views := []*queries.ResourceView{}
	r.store.read(func(st *state) {
		for _, row := range st.resources {
			views = append(views, row.toView())
		}
	})
	sort.Slice(views, func(i, j int) bool {
		if views[i].Name != views[j].Name {
			return views[i].Name < views[j].Name
		}
		return views[i].ID.String() < views[j].ID.String()
	})
	return views, nil
}

type BookingReadStore struct {
	store *Store
}

func NewBookingReadStore(store *Store) *BookingReadStore {
	return &BookingReadStore{store: store}
}

func (r *BookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var view *queries.BookingView
	r.store.read(func(st *state) {
		if row, ok := st.bookings[id]; ok {
			view = row.toView(st.resources[row.resourceID].name)
		}
	})
	if view == nil {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return view, nil
}

func (r *BookingReadStore) FindByResource(_ context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	window, err := booking.NewWindow(filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	var rows []bookingRow
	var resourceName string
	r.store.read(func(st *state) {
		resourceName = st.resources[filter.ResourceID].name
		for _, row := range st.bookings {
			if row.resourceID == filter.ResourceID && window.Intersects(row.slot) {
				rows = append(rows, row)
			}
		}
	})

	sort.Slice(rows, func(i, j int) bool {
		si, sj := rows[i].slot.Start(), rows[j].slot.Start()
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		return rows[i].id.String() < rows[j].id.String()
	})

	views := make([]*queries.BookingView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.toView(resourceName))
	}
	return views, nil
}

func (r *BookingReadStore) ResourceExists(_ context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	r.store.read(func(st *state) {
		_, ok = st.resources[id]
	})
	return ok, nil
}

func (row resourceRow) toView() *queries.ResourceView {
	return &queries.ResourceView{
		ID:          row.id,
		Name:        row.name,
		Description: row.description,
		Location:    row.location,
		Capacity:    int32(row.capacity), // #nosec G115 -- bounded by resource.MaxCapacity
		IsAvailable: row.available,
		CreatedAt:   row.createdAt,
		UpdatedAt:   row.updatedAt,
	}
}

func (row bookingRow) toView(resourceName string) *queries.BookingView {
	return &queries.BookingView{
		ID:           row.id,
		ResourceID:   row.resourceID,
		ResourceName: resourceName,
		StartTime:    row.slot.Start(),
		EndTime:      row.slot.End(),
		BookedBy:     row.bookedBy.String(),
		Purpose:      row.purpose.String(),
		CreatedAt:    row.createdAt,
	}
}
