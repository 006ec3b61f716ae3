//go:build unit || e2e

package builder

import (
	"time"

	reqdto "resource-booking/internal/handler/dto/request"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceBuilder struct {
	ID          uuid.UUID
	Name        string
	Description string
	Location    string
	Capacity    int
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewResourceBuilder() *ResourceBuilder {
	now := DefaultStart.Add(-48 * time.Hour)
	return &ResourceBuilder{
		ID:          uuid.New(),
		Name:        "Room A",
		Description: "Corner room with a whiteboard",
		Location:    "HQ 2F",
		Capacity:    6,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (r *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(r)
	return r
}

func (r *ResourceBuilder) AsUnavailable() *ResourceBuilder {
	r.IsAvailable = false
	return r
}

// Build methods
func (r *ResourceBuilder) BuildCreateRequestDTO() reqdto.CreateResourceRequest {
	return reqdto.CreateResourceRequest{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Capacity:    r.Capacity,
	}
}

func (r *ResourceBuilder) BuildView() *queries.ResourceView {
	return &queries.ResourceView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Capacity:    int32(r.Capacity), // #nosec G115 -- test fixture values are small
		IsAvailable: r.IsAvailable,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
