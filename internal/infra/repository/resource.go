package repository

import (
	"context"

	"resource-booking/internal/domain/resource"
	"resource-booking/internal/infra"
	"resource-booking/internal/infra/db"
	"resource-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const resourceColumns = `id, name, description, location, capacity, is_available, created_at, updated_at`

const (
	getResourceByIDSQL = `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`

	// the row lock serializes every booking write of one resource
	lockResourceByIDSQL = getResourceByIDSQL + ` FOR UPDATE`

	insertResourceSQL = `
INSERT INTO resources (id, name, description, location, capacity, is_available, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	updateResourceAvailabilitySQL = `UPDATE resources SET is_available = $2, updated_at = $3 WHERE id = $1`

	deleteResourceSQL = `DELETE FROM resources WHERE id = $1`

	resourceHasBookingsSQL = `SELECT EXISTS (SELECT 1 FROM bookings WHERE resource_id = $1)`
)

type ResourceRepository struct {
	db db.DBTX
}

func NewResourceRepository(dbtx db.DBTX) *ResourceRepository {
	return &ResourceRepository{db: dbtx}
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.getOne(ctx, getResourceByIDSQL, id)
}

func (r *ResourceRepository) LockByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.getOne(ctx, lockResourceByIDSQL, id)
}

func (r *ResourceRepository) getOne(ctx context.Context, query string, id uuid.UUID) (*resource.Resource, error) {
	res, err := scanResource(r.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load resource", err)
	}
	return res, nil
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	_, err := r.db.Exec(ctx, insertResourceSQL,
		pgconv.UUIDToPgtype(res.ID()),
		res.Name(),
		res.Description(),
		res.Location(),
		int32(res.Capacity()), // #nosec G115 -- bounded by resource.MaxCapacity
		res.IsAvailable(),
		pgconv.TimeToPgtype(res.CreatedAt()),
		pgconv.TimeToPgtype(res.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert resource", err)
	}
	return nil
}

func (r *ResourceRepository) UpdateAvailability(ctx context.Context, res *resource.Resource) error {
	tag, err := r.db.Exec(ctx, updateResourceAvailabilitySQL,
		pgconv.UUIDToPgtype(res.ID()),
		res.IsAvailable(),
		pgconv.TimeToPgtype(res.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update resource availability", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteResourceSQL, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr("failed to delete resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ResourceRepository) HasBookings(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, resourceHasBookingsSQL, pgconv.UUIDToPgtype(id)).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check resource bookings", err)
	}
	return exists, nil
}

func scanResource(row pgx.Row) (*resource.Resource, error) {
	var (
		id                          pgtype.UUID
		name, description, location string
		capacity                    int32
		available                   bool
		createdAt, updatedAt        pgtype.Timestamptz
	)
	if err := row.Scan(&id, &name, &description, &location, &capacity, &available, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return resource.ReconstructResource(
		pgconv.UUIDFromPgtype(id),
		name,
		description,
		location,
		int(capacity),
		available,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
