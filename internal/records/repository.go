package records

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Repository persists records.
type Repository interface {
	Create(ctx context.Context, record *Record) (*Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	GetBySlug(ctx context.Context, collection, slug string) (*Record, error)
	// List returns the records of collection ordered by slug.
	List(ctx context.Context, collection string) ([]*Record, error)
	Update(ctx context.Context, record *Record) (*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a record cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func slugKey(collection, slug string) string {
	return collection + "/" + slug
}
