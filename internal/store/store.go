// Package store defines the persistence contract for purchase items.
//
// Implementations live in subpackages (see sqlitestore). Every engine failure
// is reported as a *StorageError; a missing id on Update or Delete is not an
// error and is reported through the boolean result instead.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/idilsaglam/compras/internal/model"
)

// Repository is the single-table purchase item store.
type Repository interface {
	// Count returns the total number of rows.
	Count(ctx context.Context) (int, error)
	// ListAll returns every row, not-done items first, ties in insertion order.
	ListAll(ctx context.Context) ([]model.PurchaseItem, error)
	// Seed inserts descriptions with the given done flag when the table is
	// empty, all in one transaction. It returns the number of rows inserted,
	// zero when the table already had rows. On failure nothing is kept.
	Seed(ctx context.Context, descriptions []string, done bool) (int, error)
	// Insert creates a row and returns its fresh id.
	Insert(ctx context.Context, description string, done bool) (int64, error)
	// Update replaces description and done of the row with item.ID.
	// It reports false when no such row exists.
	Update(ctx context.Context, item model.PurchaseItem) (bool, error)
	// Delete removes the row with id. It reports false when no such row exists.
	Delete(ctx context.Context, id int64) (bool, error)
	Close() error
}

// StorageError wraps a failure of the underlying storage engine.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Wrap returns err as a *StorageError for op. A nil err stays nil and an
// existing StorageError is returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err is or wraps a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
