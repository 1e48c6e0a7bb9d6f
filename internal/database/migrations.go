package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// schema is written once for both dialects; {{TS}} and {{BOOL}} are replaced
// with the dialect's column types
var schema = []string{
	`CREATE TABLE IF NOT EXISTS cities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		state_code TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		PRIMARY KEY (user_id, role)
	)`,
	`CREATE TABLE IF NOT EXISTS requests (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		request_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'new',
		city_id TEXT REFERENCES cities(id),
		requester_id TEXT REFERENCES profiles(id) ON DELETE SET NULL,
		created_by TEXT REFERENCES profiles(id) ON DELETE SET NULL,
		company TEXT NOT NULL DEFAULT '',
		volume INTEGER,
		need_answer_by {{TS}},
		delivery_date {{TS}},
		created_on_behalf {{BOOL}} NOT NULL DEFAULT FALSE,
		created_at {{TS}} NOT NULL,
		updated_at {{TS}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_created_at ON requests(created_at)`,
	`CREATE TABLE IF NOT EXISTS request_assignments (
		request_id TEXT NOT NULL REFERENCES requests(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		assigned_at {{TS}} NOT NULL,
		PRIMARY KEY (request_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS request_comments (
		id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL REFERENCES requests(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES profiles(id),
		parent_comment_id TEXT REFERENCES request_comments(id) ON DELETE SET NULL,
		content TEXT NOT NULL,
		is_edited {{BOOL}} NOT NULL DEFAULT FALSE,
		created_at {{TS}} NOT NULL,
		updated_at {{TS}} NOT NULL,
		deleted_at {{TS}}
	)`,
	`CREATE INDEX IF NOT EXISTS idx_request_comments_request ON request_comments(request_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS comment_mentions (
		comment_id TEXT NOT NULL REFERENCES request_comments(id) ON DELETE CASCADE,
		mentioned_user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		PRIMARY KEY (comment_id, mentioned_user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS restaurants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'new',
		city_id TEXT REFERENCES cities(id),
		bdr_target_per_week INTEGER NOT NULL DEFAULT 4,
		created_by TEXT REFERENCES profiles(id) ON DELETE SET NULL,
		created_at {{TS}} NOT NULL,
		updated_at {{TS}} NOT NULL,
		deleted_at {{TS}}
	)`,
	`CREATE INDEX IF NOT EXISTS idx_restaurants_created_at ON restaurants(created_at)`,
	`CREATE TABLE IF NOT EXISTS restaurant_assignments (
		restaurant_id TEXT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		role TEXT NOT NULL DEFAULT 'BDR',
		assigned_at {{TS}} NOT NULL,
		PRIMARY KEY (restaurant_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS restaurant_comments (
		id TEXT PRIMARY KEY,
		restaurant_id TEXT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES profiles(id),
		parent_comment_id TEXT REFERENCES restaurant_comments(id) ON DELETE SET NULL,
		content TEXT NOT NULL,
		is_edited {{BOOL}} NOT NULL DEFAULT FALSE,
		created_at {{TS}} NOT NULL,
		updated_at {{TS}} NOT NULL,
		deleted_at {{TS}}
	)`,
	`CREATE INDEX IF NOT EXISTS idx_restaurant_comments_restaurant ON restaurant_comments(restaurant_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS restaurant_comment_mentions (
		comment_id TEXT NOT NULL REFERENCES restaurant_comments(id) ON DELETE CASCADE,
		mentioned_user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		PRIMARY KEY (comment_id, mentioned_user_id)
	)`,
}

func columnTypes(dialect Dialect) *strings.Replacer {
	if dialect == DialectPostgres {
		return strings.NewReplacer("{{TS}}", "TIMESTAMPTZ", "{{BOOL}}", "BOOLEAN")
	}
	return strings.NewReplacer("{{TS}}", "DATETIME", "{{BOOL}}", "BOOLEAN")
}

// runMigrations creates the schema. Every statement is idempotent.
func runMigrations(ctx context.Context, db *sql.DB, dialect Dialect) error {
	types := columnTypes(dialect)
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, types.Replace(stmt)); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
