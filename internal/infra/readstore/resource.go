package readstore

import (
	"context"

	"resource-booking/internal/infra"
	"resource-booking/internal/infra/db"
	"resource-booking/internal/pkg/pgconv"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	getResourceViewSQL = `
SELECT id, name, description, location, capacity, is_available, created_at, updated_at
FROM resources
WHERE id = $1`

	listResourceViewsSQL = `
SELECT id, name, description, location, capacity, is_available, created_at, updated_at
FROM resources
ORDER BY name, id`
)

type ResourceReadStore struct {
	db db.DBTX
}

func NewResourceReadStore(dbtx db.DBTX) *ResourceReadStore {
	return &ResourceReadStore{db: dbtx}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	view, err := scanResourceView(r.db.QueryRow(ctx, getResourceViewSQL, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	return view, nil
}

func (r *ResourceReadStore) FindAll(ctx context.Context) ([]*queries.ResourceView, error) {
	rows, err := r.db.Query(ctx, listResourceViewsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find all resources", err)
	}
	defer rows.Close()

	result := []*queries.ResourceView{}
	for rows.Next() {
		view, err := scanResourceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resources", err)
	}
	return result, nil
}

func scanResourceView(row pgx.Row) (*queries.ResourceView, error) {
	var (
		id                   pgtype.UUID
		createdAt, updatedAt pgtype.Timestamptz
		view                 queries.ResourceView
	)
	err := row.Scan(
		&id,
		&view.Name,
		&view.Description,
		&view.Location,
		&view.Capacity,
		&view.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.ID = pgconv.UUIDFromPgtype(id)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
