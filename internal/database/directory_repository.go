package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/salesboard/internal/models"
)

// ListTeamMembers returns every profile ordered by display name
func (r *Repository) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, display_name, email FROM profiles ORDER BY display_name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer closeRows(rows)

	members := []models.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.DisplayName, &m.Email); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetProfile returns one profile or models.ErrProfileNotFound
func (r *Repository) GetProfile(ctx context.Context, id string) (*models.TeamMember, error) {
	var m models.TeamMember
	err := r.db.QueryRowContext(ctx, r.q(`SELECT id, display_name, email FROM profiles WHERE id = ?`), id).
		Scan(&m.ID, &m.DisplayName, &m.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", id, models.ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}
	return &m, nil
}

// UpsertProfile inserts or renames a profile
func (r *Repository) UpsertProfile(ctx context.Context, m models.TeamMember) error {
	_, err := r.db.ExecContext(ctx, r.q(`
		INSERT INTO profiles (id, display_name, email) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET display_name = excluded.display_name, email = excluded.email`),
		m.ID, m.DisplayName, m.Email,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", m.ID, err)
	}
	return nil
}

// IsAdmin reports whether userID holds the admin role
func (r *Repository) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, r.q(
		`SELECT COUNT(*) FROM user_roles WHERE user_id = ? AND role = ?`), userID, RoleAdmin,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check role of %s: %w", userID, err)
	}
	return n > 0, nil
}

// GrantRole gives userID role; granting twice is a no-op
func (r *Repository) GrantRole(ctx context.Context, userID, role string) error {
	_, err := r.db.ExecContext(ctx, r.q(`
		INSERT INTO user_roles (user_id, role) VALUES (?, ?)
		ON CONFLICT (user_id, role) DO NOTHING`),
		userID, role,
	)
	if err != nil {
		return fmt.Errorf("failed to grant %s to %s: %w", role, userID, err)
	}
	return nil
}

// ListCities returns cities ordered by name
func (r *Repository) ListCities(ctx context.Context) ([]models.City, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, state_code FROM cities ORDER BY name, state_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer closeRows(rows)

	cities := []models.City{}
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.StateCode); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

// UpsertCity inserts or renames a city
func (r *Repository) UpsertCity(ctx context.Context, c models.City) error {
	_, err := r.db.ExecContext(ctx, r.q(`
		INSERT INTO cities (id, name, state_code) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, state_code = excluded.state_code`),
		c.ID, c.Name, c.StateCode,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert city %s: %w", c.ID, err)
	}
	return nil
}
