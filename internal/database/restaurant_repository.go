package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/thenoetrevino/salesboard/internal/models"
)

const restaurantColumns = `
	s.id, s.name, s.slug, s.description, s.status,
	COALESCE(s.city_id, ''), COALESCE(c.name, ''), COALESCE(c.state_code, ''),
	s.bdr_target_per_week,
	COALESCE(s.created_by, ''), COALESCE(cp.display_name, ''),
	s.created_at, s.updated_at, s.deleted_at,
	(SELECT COUNT(*) FROM restaurant_comments rc WHERE rc.restaurant_id = s.id AND rc.deleted_at IS NULL)`

const restaurantFrom = `
	FROM restaurants s
	LEFT JOIN cities c ON c.id = s.city_id
	LEFT JOIN profiles cp ON cp.id = s.created_by`

func scanRestaurant(row rowScanner) (models.Restaurant, error) {
	var (
		s         models.Restaurant
		status    string
		deletedAt sql.NullTime
	)
	err := row.Scan(
		&s.ID, &s.Name, &s.Slug, &s.Description, &status,
		&s.CityID, &s.CityName, &s.CityState,
		&s.BDRTargetPerWeek,
		&s.CreatedBy, &s.CreatorName,
		&s.CreatedAt, &s.UpdatedAt, &deletedAt,
		&s.CommentsCount,
	)
	if err != nil {
		return models.Restaurant{}, err
	}
	s.Status = models.NormalizeStatus(status)
	s.DeletedAt = nullTimeToPtr(deletedAt)
	s.AssignedBDRs = []models.BDR{}
	return s, nil
}

// ListRestaurants returns live restaurants newest first, with BDRs attached
func (r *Repository) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT"+restaurantColumns+restaurantFrom+`
	WHERE s.deleted_at IS NULL
	ORDER BY s.created_at DESC, s.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer closeRows(rows)

	restaurants := []models.Restaurant{}
	for rows.Next() {
		s, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}

	if err := r.attachRestaurantAssignments(ctx, restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// GetRestaurant returns one live restaurant or models.ErrRestaurantNotFound
func (r *Repository) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	row := r.db.QueryRowContext(ctx, r.q("SELECT"+restaurantColumns+restaurantFrom+
		"\n\tWHERE s.id = ? AND s.deleted_at IS NULL"), id)
	s, err := scanRestaurant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("restaurant %s: %w", id, models.ErrRestaurantNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant %s: %w", id, err)
	}

	list := []models.Restaurant{s}
	if err := r.attachRestaurantAssignments(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *Repository) attachRestaurantAssignments(ctx context.Context, restaurants []models.Restaurant) error {
	if len(restaurants) == 0 {
		return nil
	}

	ids := make([]any, len(restaurants))
	index := make(map[string]int, len(restaurants))
	for i, s := range restaurants {
		ids[i] = s.ID
		index[s.ID] = i
	}

	rows, err := r.db.QueryContext(ctx, r.q(`
		SELECT ra.restaurant_id, ra.user_id, COALESCE(p.display_name, '')
		FROM restaurant_assignments ra
		LEFT JOIN profiles p ON p.id = ra.user_id
		WHERE ra.restaurant_id IN (`+placeholders(len(ids))+`)
		ORDER BY ra.assigned_at, ra.user_id`), ids...)
	if err != nil {
		return fmt.Errorf("failed to query restaurant assignments: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var restaurantID string
		var bdr models.BDR
		if err := rows.Scan(&restaurantID, &bdr.ID, &bdr.Name); err != nil {
			return fmt.Errorf("failed to scan restaurant assignment: %w", err)
		}
		if i, ok := index[restaurantID]; ok {
			restaurants[i].AssignedBDRs = append(restaurants[i].AssignedBDRs, bdr)
		}
	}
	return rows.Err()
}

// CreateRestaurant inserts s, filling ID, slug, status and timestamps when unset
func (r *Repository) CreateRestaurant(ctx context.Context, s *models.Restaurant) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Slug == "" {
		s.Slug = models.Slugify(s.Name)
	}
	if s.BDRTargetPerWeek == 0 {
		s.BDRTargetPerWeek = models.DefaultBDRTargetPerWeek
	}
	s.Status = models.NormalizeStatus(string(s.Status))
	ts := now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = ts
	}
	s.UpdatedAt = s.CreatedAt

	_, err := r.db.ExecContext(ctx, r.q(`
		INSERT INTO restaurants (
			id, name, slug, description, status, city_id, bdr_target_per_week, created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		s.ID, s.Name, s.Slug, s.Description, string(s.Status),
		nullString(s.CityID), s.BDRTargetPerWeek, nullString(s.CreatedBy), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert restaurant '%s': %w", s.Name, err)
	}
	return nil
}

// UpdateRestaurant applies the non-nil fields of patch. A new name also
// refreshes the slug.
func (r *Repository) UpdateRestaurant(ctx context.Context, id string, patch models.RestaurantPatch) error {
	var sets []string
	var args []any
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Name != nil {
		set("name", *patch.Name)
		set("slug", models.Slugify(*patch.Name))
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Status != nil {
		set("status", string(models.NormalizeStatus(string(*patch.Status))))
	}
	if patch.CityID != nil {
		set("city_id", nullString(*patch.CityID))
	}
	if patch.BDRTargetPerWeek != nil {
		set("bdr_target_per_week", *patch.BDRTargetPerWeek)
	}
	set("updated_at", now())
	args = append(args, id)

	query := "UPDATE restaurants SET " + strings.Join(sets, ", ") + " WHERE id = ? AND deleted_at IS NULL"
	return r.execOne(ctx, query, args, "update restaurant "+id, models.ErrRestaurantNotFound)
}

// SoftDeleteRestaurant stamps deleted_at; deleting twice reports not found
func (r *Repository) SoftDeleteRestaurant(ctx context.Context, id string) error {
	ts := now()
	return r.execOne(ctx,
		"UPDATE restaurants SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		[]any{ts, ts, id},
		"delete restaurant "+id, models.ErrRestaurantNotFound,
	)
}

// AssignRestaurantBDR links a profile to a restaurant. Assigning someone
// already on the restaurant is a no-op.
func (r *Repository) AssignRestaurantBDR(ctx context.Context, restaurantID, userID string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, r.q(
			`SELECT COUNT(*) FROM restaurants WHERE id = ? AND deleted_at IS NULL`), restaurantID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check restaurant %s: %w", restaurantID, err)
		}
		if exists == 0 {
			return fmt.Errorf("restaurant %s: %w", restaurantID, models.ErrRestaurantNotFound)
		}

		err = tx.QueryRowContext(ctx, r.q(`SELECT COUNT(*) FROM profiles WHERE id = ?`), userID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check profile %s: %w", userID, err)
		}
		if exists == 0 {
			return fmt.Errorf("profile %s: %w", userID, models.ErrProfileNotFound)
		}

		if _, err := tx.ExecContext(ctx, r.q(`
			INSERT INTO restaurant_assignments (restaurant_id, user_id, role, assigned_at) VALUES (?, ?, ?, ?)
			ON CONFLICT (restaurant_id, user_id) DO NOTHING`),
			restaurantID, userID, RoleBDR, now(),
		); err != nil {
			return fmt.Errorf("failed to assign %s to restaurant %s: %w", userID, restaurantID, err)
		}
		return nil
	})
}

// UnassignRestaurantBDR removes a profile from a restaurant
func (r *Repository) UnassignRestaurantBDR(ctx context.Context, restaurantID, userID string) error {
	return r.execOne(ctx,
		"DELETE FROM restaurant_assignments WHERE restaurant_id = ? AND user_id = ?",
		[]any{restaurantID, userID},
		"unassign "+userID+" from restaurant "+restaurantID, models.ErrNotAssigned,
	)
}

// ListRestaurantComments returns the live comments of a restaurant oldest
// first, flat
func (r *Repository) ListRestaurantComments(ctx context.Context, restaurantID string) ([]*models.Comment, error) {
	return r.listComments(ctx, restaurantComments, restaurantID)
}

// GetRestaurantComment returns a restaurant comment, deleted or not
func (r *Repository) GetRestaurantComment(ctx context.Context, id string) (*models.Comment, error) {
	return r.getComment(ctx, restaurantComments, id)
}

// CreateRestaurantComment inserts c and its mentions in one transaction
func (r *Repository) CreateRestaurantComment(ctx context.Context, c *models.Comment) error {
	return r.createComment(ctx, restaurantComments, c)
}

// EditRestaurantComment rewrites a live comment and replaces its mentions
func (r *Repository) EditRestaurantComment(ctx context.Context, c *models.Comment) error {
	return r.editComment(ctx, restaurantComments, c)
}

// SoftDeleteRestaurantComment stamps deleted_at on a restaurant comment
func (r *Repository) SoftDeleteRestaurantComment(ctx context.Context, id string) error {
	return r.softDeleteComment(ctx, restaurantComments, id)
}
