package records

import (
	"context"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-better-i18n/internal/collections"
	"github.com/goliatone/go-better-i18n/internal/document"
	"github.com/goliatone/go-better-i18n/internal/fields"
	"github.com/goliatone/go-better-i18n/internal/locales"
	"github.com/goliatone/go-better-i18n/internal/logging"
	"github.com/goliatone/go-better-i18n/internal/projection"
	"github.com/goliatone/go-better-i18n/internal/validation"
	"github.com/goliatone/go-better-i18n/pkg/interfaces"
)

const (
	TextCodeRecordNotFound   = "I18N_RECORD_NOT_FOUND"
	TextCodeSlugRequired     = "I18N_RECORD_SLUG_REQUIRED"
	TextCodeSlugExists       = "I18N_RECORD_SLUG_EXISTS"
	TextCodeLocaleUnknown    = "I18N_RECORD_LOCALE_UNKNOWN"
	TextCodeUnknownSchema    = "I18N_RECORD_UNKNOWN_COLLECTION"
	TextCodePayloadInvalid   = "I18N_RECORD_PAYLOAD_INVALID"
	TextCodeLocaleRequired   = "I18N_RECORD_LOCALE_REQUIRED"
	recordsRepositoryMessage = "record repository failure"
)

// ReadOptions controls record reads. An empty Locale returns stored records
// unprojected.
type ReadOptions struct {
	Locale string
}

// CreateRecordRequest stores a multi-locale record as given.
type CreateRecordRequest struct {
	Collection string
	Slug       string
	// ID is optional; a random UUID is generated when empty.
	ID   uuid.UUID
	Data document.Document
}

// SaveLocaleRequest writes one locale of a record from its single-locale view.
// The record is created when no record exists under Collection/Slug.
type SaveLocaleRequest struct {
	Collection string
	Slug       string
	Locale     string
	ID         uuid.UUID
	View       document.Document
}

// Service manages localized records.
type Service interface {
	Create(ctx context.Context, req CreateRecordRequest) (*Record, error)
	SaveLocale(ctx context.Context, req SaveLocaleRequest) (*Record, error)
	Get(ctx context.Context, id uuid.UUID, opts ReadOptions) (*Record, error)
	GetBySlug(ctx context.Context, collection, slug string, opts ReadOptions) (*Record, error)
	List(ctx context.Context, collection string, opts ReadOptions) ([]*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the generator used for new record IDs.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLocales restricts SaveLocale to the given locales.
func WithLocales(list []locales.Locale) ServiceOption {
	return func(s *service) {
		s.locales = list
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo       Repository
	registry   *collections.Registry
	locales    []locales.Locale
	now        func() time.Time
	id         func() uuid.UUID
	logger     interfaces.Logger
	validators sync.Map
}

// NewService wires a record service over repo. Collections are resolved
// through registry, which must hold the transformed definitions.
func NewService(repo Repository, registry *collections.Registry, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		registry: registry,
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateRecordRequest) (*Record, error) {
	def, err := s.definition(req.Collection)
	if err != nil {
		return nil, err
	}
	slugValue, err := normalizeSlug(req.Slug)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(ctx, def.Slug, slugValue); err != nil {
		return nil, err
	}

	data := req.Data.Clone()
	data.Delete(fields.SelectorFieldName)
	if err := s.validate(def, data); err != nil {
		return nil, err
	}

	id := req.ID
	if id == uuid.Nil {
		id = s.id()
	}
	now := s.now()
	created, err := s.repo.Create(ctx, &Record{
		ID:         id,
		Collection: def.Slug,
		Slug:       slugValue,
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, wrapRepositoryError(err)
	}

	logging.WithRecordContext(s.logger, def.Slug, "", slugValue).Debug("records.created", "id", created.ID.String())
	return created, nil
}

func (s *service) SaveLocale(ctx context.Context, req SaveLocaleRequest) (*Record, error) {
	def, err := s.definition(req.Collection)
	if err != nil {
		return nil, err
	}
	locale := strings.TrimSpace(req.Locale)
	if locale == "" {
		return nil, goerrors.New("locale is required", goerrors.CategoryValidation).
			WithTextCode(TextCodeLocaleRequired)
	}
	if len(s.locales) > 0 {
		if _, ok := locales.Find(s.locales, locale); !ok {
			return nil, goerrors.New("locale is not configured", goerrors.CategoryValidation).
				WithTextCode(TextCodeLocaleUnknown).
				WithMetadata(map[string]any{"locale": locale})
		}
	}
	slugValue, err := normalizeSlug(req.Slug)
	if err != nil {
		return nil, err
	}

	logical := def.Logical
	if logical == nil {
		logical = def.Fields
	}

	existing, err := s.repo.GetBySlug(ctx, def.Slug, slugValue)
	var notFound *NotFoundError
	switch {
	case err == nil:
	case goerrors.As(err, &notFound):
		existing = nil
	default:
		return nil, wrapRepositoryError(err)
	}

	stored := document.New()
	if existing != nil {
		stored = existing.Data
	}
	merged := projection.Merge(stored, req.View, logical, locale)
	if err := s.validate(def, merged); err != nil {
		return nil, err
	}

	logger := logging.WithRecordContext(s.logger, def.Slug, locale, slugValue)
	now := s.now()
	if existing == nil {
		id := req.ID
		if id == uuid.Nil {
			id = s.id()
		}
		created, err := s.repo.Create(ctx, &Record{
			ID:         id,
			Collection: def.Slug,
			Slug:       slugValue,
			Data:       merged,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return nil, wrapRepositoryError(err)
		}
		logger.Debug("records.locale.created", "id", created.ID.String())
		return created, nil
	}

	existing.Data = merged
	existing.UpdatedAt = now
	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, wrapRepositoryError(err)
	}
	logger.Debug("records.locale.updated", "id", updated.ID.String())
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, opts ReadOptions) (*Record, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepositoryError(err)
	}
	return s.afterRead(ctx, record, opts)
}

func (s *service) GetBySlug(ctx context.Context, collection, slugValue string, opts ReadOptions) (*Record, error) {
	def, err := s.definition(collection)
	if err != nil {
		return nil, err
	}
	normalized, err := normalizeSlug(slugValue)
	if err != nil {
		return nil, err
	}
	record, err := s.repo.GetBySlug(ctx, def.Slug, normalized)
	if err != nil {
		return nil, wrapRepositoryError(err)
	}
	return s.afterRead(ctx, record, opts)
}

func (s *service) List(ctx context.Context, collection string, opts ReadOptions) ([]*Record, error) {
	def, err := s.definition(collection)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.List(ctx, def.Slug)
	if err != nil {
		return nil, wrapRepositoryError(err)
	}
	out := make([]*Record, 0, len(list))
	for _, record := range list {
		read, err := s.afterRead(ctx, record, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, read)
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapRepositoryError(err)
	}
	logging.WithFields(s.logger, map[string]any{"id": id.String()}).Debug("records.deleted")
	return nil
}

// afterRead runs the collection hooks over a copy of record.
func (s *service) afterRead(ctx context.Context, record *Record, opts ReadOptions) (*Record, error) {
	view, err := s.registry.RunAfterRead(ctx, record.Collection, record.Data, strings.TrimSpace(opts.Locale))
	if err != nil {
		return nil, err
	}
	out := cloneRecord(record)
	out.Data = view
	return out, nil
}

func (s *service) definition(slugValue string) (collections.Definition, error) {
	if s.registry == nil {
		return collections.Definition{}, goerrors.New("collection registry is not configured", goerrors.CategoryInternal)
	}
	def, ok := s.registry.Get(slugValue)
	if !ok {
		return collections.Definition{}, goerrors.Wrap(&collections.UnknownCollectionError{Slug: slugValue}, goerrors.CategoryNotFound, "unknown collection").
			WithTextCode(TextCodeUnknownSchema)
	}
	return def, nil
}

func (s *service) ensureSlugAvailable(ctx context.Context, collection, slugValue string) error {
	_, err := s.repo.GetBySlug(ctx, collection, slugValue)
	var notFound *NotFoundError
	switch {
	case err == nil:
		return goerrors.New("slug already exists", goerrors.CategoryConflict).
			WithTextCode(TextCodeSlugExists).
			WithMetadata(map[string]any{"collection": collection, "slug": slugValue})
	case goerrors.As(err, &notFound):
		return nil
	default:
		return wrapRepositoryError(err)
	}
}

func (s *service) validate(def collections.Definition, data document.Document) error {
	validator, err := s.validator(def)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "invalid collection schema")
	}
	if err := validator.Validate(data); err != nil {
		issues := validation.Issues(err)
		fieldErrors := make([]goerrors.FieldError, 0, len(issues))
		for _, issue := range issues {
			fieldErrors = append(fieldErrors, goerrors.FieldError{Field: issue.Location, Message: issue.Message})
		}
		wrapped := goerrors.Wrap(err, goerrors.CategoryValidation, "record does not match collection schema").
			WithTextCode(TextCodePayloadInvalid)
		wrapped.ValidationErrors = fieldErrors
		return wrapped
	}
	return nil
}

func (s *service) validator(def collections.Definition) (*validation.Validator, error) {
	if cached, ok := s.validators.Load(def.Slug); ok {
		return cached.(*validation.Validator), nil
	}
	validator, err := validation.NewValidator(def.Fields)
	if err != nil {
		return nil, err
	}
	actual, _ := s.validators.LoadOrStore(def.Slug, validator)
	return actual.(*validation.Validator), nil
}

func normalizeSlug(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", goerrors.New("slug is required", goerrors.CategoryValidation).
			WithTextCode(TextCodeSlugRequired)
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return "", goerrors.New("slug is invalid", goerrors.CategoryValidation).
			WithTextCode(TextCodeSlugRequired).
			WithMetadata(map[string]any{"slug": value})
	}
	return normalized, nil
}

func wrapRepositoryError(err error) error {
	var notFound *NotFoundError
	if goerrors.As(err, &notFound) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, notFound.Error()).
			WithTextCode(TextCodeRecordNotFound)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, recordsRepositoryMessage)
}
