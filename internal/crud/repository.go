package crud

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simp-lee/photostore/internal/domain"
)

// Scope is a reusable query modifier.
type Scope func(db *gorm.DB) *gorm.DB

// Repository is the data store for one soft-deletable entity type.
type Repository[T any] struct {
	db *gorm.DB
}

// NewRepository creates a Repository backed by db.
func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx}
}

// FindMany returns every row selected by scope. Soft-delete filtering is the
// scope's responsibility.
func (r *Repository[T]) FindMany(ctx context.Context, scope Scope) ([]T, error) {
	var recs []T
	q := r.db.WithContext(ctx).Model(new(T))
	if scope != nil {
		q = scope(q)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, MapError(err)
	}
	return recs, nil
}

// FindOne returns the row matching key within scope.
func (r *Repository[T]) FindOne(ctx context.Context, key Key, scope Scope) (*T, error) {
	var rec T
	q := r.db.WithContext(ctx).Model(new(T))
	if scope != nil {
		q = scope(q)
	}
	if err := key.scope(q).Take(&rec).Error; err != nil {
		return nil, MapError(err)
	}
	return &rec, nil
}

// FindLive returns the non-deleted row matching key, without any other filter.
func (r *Repository[T]) FindLive(ctx context.Context, key Key) (*T, error) {
	return r.FindOne(ctx, key, NotDeleted)
}

// FindUnscoped returns the row matching key even if it is soft deleted.
func (r *Repository[T]) FindUnscoped(ctx context.Context, key Key) (*T, error) {
	return r.FindOne(ctx, key, nil)
}

// Create inserts rec without touching its associations.
func (r *Repository[T]) Create(ctx context.Context, rec *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error; err != nil {
		return MapError(err)
	}
	return nil
}

// Save writes every column of rec without touching its associations.
func (r *Repository[T]) Save(ctx context.Context, rec *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error; err != nil {
		return MapError(err)
	}
	return nil
}

// SoftDelete stamps deleted_at on the live row matching key.
func (r *Repository[T]) SoftDelete(ctx context.Context, key Key) error {
	q := key.scope(NotDeleted(r.db.WithContext(ctx).Model(new(T))))
	result := q.Update("deleted_at", time.Now())
	if result.Error != nil {
		return MapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDeleteWhere stamps deleted_at on every live row of model matching the
// condition. It is used to cascade a parent's deletion to its children.
func SoftDeleteWhere(db *gorm.DB, model any, query string, args ...any) error {
	err := NotDeleted(db.Model(model)).Where(query, args...).Update("deleted_at", time.Now()).Error
	return MapError(err)
}

// MapError converts GORM errors to domain errors.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. Not every dialector translates driver errors to
// gorm.ErrDuplicatedKey (e.g. the pure-Go SQLite driver).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

// LiveExists reports whether a non-deleted row of model has the given id.
func LiveExists(db *gorm.DB, model any, id uint) (bool, error) {
	var count int64
	err := NotDeleted(db.Session(&gorm.Session{NewDB: true}).Model(model)).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, MapError(err)
	}
	return count > 0, nil
}
