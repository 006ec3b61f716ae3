package resource

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
	ErrNegativeCapacity    = errors.New("capacity cannot be negative")
	ErrCapacityTooLarge    = errors.New("capacity is too large")
)

const (
	MaxResourceNameLength = 255
	MaxCapacity           = math.MaxInt32
)

type Resource struct {
	id          uuid.UUID
	name        string
	description string
	location    string
	capacity    int
	available   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// New resources start out available.
func NewResource(name, description, location string, capacity int, now time.Time) (*Resource, error) {
	if err := validateResourceName(name); err != nil {
		return nil, err
	}

	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}

	return &Resource{
		id:          uuid.New(),
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		location:    strings.TrimSpace(location),
		capacity:    capacity,
		available:   true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructResource(
	id uuid.UUID,
	name, description, location string,
	capacity int,
	available bool,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:          id,
		name:        name,
		description: description,
		location:    location,
		capacity:    capacity,
		available:   available,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Resource) SetAvailability(available bool, now time.Time) {
	r.available = available
	r.updatedAt = now
}

func validateResourceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	return nil
}

func validateCapacity(capacity int) error {
	if capacity < 0 {
		return ErrNegativeCapacity
	}
	if capacity > MaxCapacity {
		return ErrCapacityTooLarge
	}
	return nil
}

func (r *Resource) ID() uuid.UUID        { return r.id }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) Description() string  { return r.description }
func (r *Resource) Location() string     { return r.location }
func (r *Resource) Capacity() int        { return r.capacity }
func (r *Resource) IsAvailable() bool    { return r.available }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time { return r.updatedAt }
