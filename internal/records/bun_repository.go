package records

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewRecordRepository creates the go-repository-bun repository for records.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord:          func() *Record { return &Record{} },
		GetID:              func(r *Record) uuid.UUID { return r.ID },
		SetID:              func(r *Record, id uuid.UUID) { r.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(r *Record) string { return r.Slug },
	})
}

// BunRepository implements Repository with optional caching. Lookups by ID
// go through the cache; slug lookups and listings feed the write path and
// always hit the database.
type BunRepository struct {
	base         repository.Repository[*Record]
	repo         repository.Repository[*Record]
	cacheService cache.CacheService
	cachePrefix  string
}

const recordNamespace = "i18n_record"

// NewBunRepository creates a record repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a record repository with caching services.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewRecordRepository(db)
	r := &BunRepository{base: base, repo: base}
	if cacheService != nil && serializer != nil {
		r.repo = repositorycache.New(base, cacheService, serializer)
		r.cacheService = cacheService
		r.cachePrefix = recordNamespace + cache.KeySeparator
	}
	return r
}

// InvalidateCache drops every cached record entry.
func (r *BunRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

// CreateSchema creates the records table when it does not exist yet.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("records: create table: %w", err)
	}
	if _, err := db.NewCreateIndex().
		Model((*Record)(nil)).
		Index("i18n_records_collection_slug_idx").
		Unique().
		IfNotExists().
		Column("collection", "slug").
		Exec(ctx); err != nil {
		return fmt.Errorf("records: create index: %w", err)
	}
	return nil
}

func (r *BunRepository) Create(ctx context.Context, record *Record) (*Record, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID.String())
	}
	return created, r.InvalidateCache(ctx)
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) GetBySlug(ctx context.Context, collection, slug string) (*Record, error) {
	records, _, err := r.base.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.collection = ?", collection).Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, slugKey(collection, slug))
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "record", Key: slugKey(collection, slug)}
	}
	return records[0], nil
}

func (r *BunRepository) List(ctx context.Context, collection string) ([]*Record, error) {
	records, _, err := r.base.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.collection = ?", collection).OrderExpr("?TableAlias.slug ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, collection)
	}
	return records, nil
}

func (r *BunRepository) Update(ctx context.Context, record *Record) (*Record, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"slug",
			"data",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID.String())
	}
	return updated, r.InvalidateCache(ctx)
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.base.GetByID(ctx, id.String()); err != nil {
		return mapRepositoryError(err, id.String())
	}
	if err := r.repo.Delete(ctx, &Record{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return r.InvalidateCache(ctx)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}

	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "record", Key: key}
	}

	return fmt.Errorf("record repository error: %w", err)
}
