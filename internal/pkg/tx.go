package pkg

import (
	"context"

	"gorm.io/gorm"
)

// WithTx executes fn within a database transaction bound to ctx.
// It commits on success, rolls back on error or panic. Everything fn does
// must go through tx; touching the outer handle inside fn can deadlock a
// single-connection pool.
func WithTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
