package database

import (
	"database/sql"
)

// Repository implements DataStore over a database/sql handle
type Repository struct {
	db      *sql.DB
	dialect Dialect
}

var _ DataStore = (*Repository)(nil)

// NewRepository wraps an open connection. Migrations are not run.
func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// DB exposes the underlying handle
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Dialect reports which SQL dialect queries are written in
func (r *Repository) Dialect() Dialect {
	return r.dialect
}

// Close closes the underlying connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// q adapts a query to the repository's placeholder style
func (r *Repository) q(query string) string {
	return rebind(r.dialect, query)
}
