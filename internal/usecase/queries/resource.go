package queries

//go:generate mockgen -source=resource.go -destination=../../../tests/mock/queries/resource.go -package=queriesmock

import (
	"context"
	"log/slog"

	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	// FindAll returns every resource ordered by name, then id.
	FindAll(ctx context.Context) ([]*ResourceView, error)
}

// ResourceListCache holds the full catalog listing between mutations.
// Every invalidation bumps the generation; SetResourceList drops the write
// when the generation moved since it was read.
type ResourceListCache interface {
	GetResourceList(ctx context.Context) ([]*ResourceView, bool, error)
	ResourceListGeneration(ctx context.Context) (int64, error)
	SetResourceList(ctx context.Context, generation int64, resources []*ResourceView) error
}

type ResourceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	IsAvailable(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*ResourceView, error)
}

type resourceQueriesImpl struct {
	store ResourceReadStore
	cache ResourceListCache
}

func NewResourceQueries(store ResourceReadStore, cache ResourceListCache) ResourceQueries {
	return &resourceQueriesImpl{
		store: store,
		cache: cache,
	}
}

func (q *resourceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *resourceQueriesImpl) IsAvailable(ctx context.Context, id uuid.UUID) (bool, error) {
	view, err := q.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return view.IsAvailable, nil
}

// Cache failures degrade to a store read.
func (q *resourceQueriesImpl) List(ctx context.Context) ([]*ResourceView, error) {
	cached, ok, err := q.cache.GetResourceList(ctx)
	if err != nil {
		slog.Warn("resource list cache read failed", "error", err.Error())
	} else if ok {
		return cached, nil
	}

	// Read before the store so a mutation committed during FindAll
	// invalidates this fill.
	generation, genErr := q.cache.ResourceListGeneration(ctx)
	if genErr != nil {
		slog.Warn("resource list cache generation read failed", "error", genErr.Error())
	}

	views, err := q.store.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if views == nil {
		views = []*ResourceView{}
	}

	if genErr == nil {
		if err := q.cache.SetResourceList(ctx, generation, views); err != nil {
			slog.Warn("resource list cache write failed", "error", err.Error())
		}
	}
	return views, nil
}
