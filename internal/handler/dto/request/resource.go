package request

import (
	"resource-booking/internal/usecase/commands"
)

type CreateResourceRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=255"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity" binding:"min=0"`
}

func (r CreateResourceRequest) ToCommand() commands.CreateResourceRequest {
	return commands.CreateResourceRequest{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Capacity:    r.Capacity,
	}
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}
