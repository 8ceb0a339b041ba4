// Package sqlitestore is the SQLite-backed store.Repository.
//
// The database holds a single table, compra, with three columns (id,
// description, done). The schema version lives in PRAGMA user_version.
//
// # Migration policy
//
// Migrations are destructive: when the stored version differs from
// SchemaVersion the table is dropped and recreated, and every row is lost.
// A fresh file (user_version 0) is simply initialized.
package sqlitestore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/idilsaglam/compras/internal/model"
	"github.com/idilsaglam/compras/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// SchemaVersion is the layout written by this package.
// 1 - compra(id, description, done)
const SchemaVersion = 1

// Store persists purchase items in one SQLite file.
type Store struct {
	db *sql.DB
}

var _ store.Repository = (*Store)(nil)

// Open creates or opens the database at path and brings the schema to
// SchemaVersion. The pool is limited to one connection, so writes are
// serialized by SQLite itself.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, store.Wrap("open", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, store.Wrap("open", fmt.Errorf("connect %s: %w", path, err))
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, store.Wrap("open", err)
	}
	if err := applySchema(ctx, db); err != nil {
		db.Close()
		return nil, store.Wrap("migrate", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle. Calling it more than once is safe.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("exec %q: %w", p, err)
		}
	}
	return nil
}

func applySchema(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version != 0 && version != SchemaVersion {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS compra"); err != nil {
			return fmt.Errorf("drop compra (version %d): %w", version, err)
		}
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM compra").Scan(&n); err != nil {
		return 0, store.Wrap("count", err)
	}
	return n, nil
}

func (s *Store) ListAll(ctx context.Context) ([]model.PurchaseItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, done FROM compra ORDER BY done ASC, id ASC")
	if err != nil {
		return nil, store.Wrap("list", err)
	}
	defer rows.Close()

	items := []model.PurchaseItem{}
	for rows.Next() {
		var it model.PurchaseItem
		if err := rows.Scan(&it.ID, &it.Description, &it.Done); err != nil {
			return nil, store.Wrap("list", fmt.Errorf("scan: %w", err))
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("list", err)
	}
	return items, nil
}

func (s *Store) Seed(ctx context.Context, descriptions []string, done bool) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, store.Wrap("seed", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM compra").Scan(&n); err != nil {
		return 0, store.Wrap("seed", err)
	}
	if n > 0 {
		return 0, nil
	}
	for _, d := range descriptions {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO compra (description, done) VALUES (?, ?)", d, done); err != nil {
			return 0, store.Wrap("seed", fmt.Errorf("insert %q: %w", d, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, store.Wrap("seed", err)
	}
	return len(descriptions), nil
}

func (s *Store) Insert(ctx context.Context, description string, done bool) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO compra (description, done) VALUES (?, ?)", description, done)
	if err != nil {
		return 0, store.Wrap("insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, store.Wrap("insert", err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, item model.PurchaseItem) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE compra SET description = ?, done = ? WHERE id = ?",
		item.Description, item.Done, item.ID)
	if err != nil {
		return false, store.Wrap("update", err)
	}
	return affected(res, "update")
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM compra WHERE id = ?", id)
	if err != nil {
		return false, store.Wrap("delete", err)
	}
	return affected(res, "delete")
}

func affected(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, store.Wrap(op, err)
	}
	return n > 0, nil
}
