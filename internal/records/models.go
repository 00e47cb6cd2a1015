package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-better-i18n/internal/document"
)

// Record is a stored multi-locale document. Data holds the physical keys,
// localized values under their `<name>_<code>` slots.
type Record struct {
	bun.BaseModel `bun:"table:i18n_records,alias:r"`

	ID         uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	Collection string            `bun:"collection,notnull" json:"collection"`
	Slug       string            `bun:"slug,notnull" json:"slug"`
	Data       document.Document `bun:"data,type:jsonb,notnull" json:"data"`
	CreatedAt  time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func cloneRecord(record *Record) *Record {
	if record == nil {
		return nil
	}
	cloned := *record
	cloned.Data = record.Data.Clone()
	return &cloned
}
