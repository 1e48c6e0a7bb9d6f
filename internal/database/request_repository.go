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

const requestColumns = `
	r.id, r.title, r.description, r.request_type, r.status,
	COALESCE(r.city_id, ''), COALESCE(c.name, ''), COALESCE(c.state_code, ''),
	COALESCE(r.requester_id, ''), COALESCE(rp.display_name, ''),
	COALESCE(r.created_by, ''), COALESCE(cp.display_name, ''),
	r.company, r.volume, r.need_answer_by, r.delivery_date, r.created_on_behalf,
	r.created_at, r.updated_at,
	(SELECT COUNT(*) FROM request_comments rc WHERE rc.request_id = r.id AND rc.deleted_at IS NULL)`

const requestFrom = `
	FROM requests r
	LEFT JOIN cities c ON c.id = r.city_id
	LEFT JOIN profiles rp ON rp.id = r.requester_id
	LEFT JOIN profiles cp ON cp.id = r.created_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (models.Request, error) {
	var (
		r            models.Request
		status       string
		requestType  string
		volume       sql.NullInt64
		needAnswerBy sql.NullTime
		deliveryDate sql.NullTime
	)
	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &requestType, &status,
		&r.CityID, &r.CityName, &r.CityState,
		&r.RequesterID, &r.RequesterName,
		&r.CreatedBy, &r.CreatorName,
		&r.Company, &volume, &needAnswerBy, &deliveryDate, &r.CreatedOnBehalf,
		&r.CreatedAt, &r.UpdatedAt,
		&r.CommentsCount,
	)
	if err != nil {
		return models.Request{}, err
	}

	r.RequestType = models.RequestType(requestType)
	r.Status = models.NormalizeStatus(status)
	r.Volume = nullInt64ToPtr(volume)
	r.NeedAnswerBy = nullTimeToPtr(needAnswerBy)
	r.DeliveryDate = nullTimeToPtr(deliveryDate)
	if r.RequesterName == "" {
		r.RequesterName = models.DefaultRequesterName
	}
	return r, nil
}

// ListRequests returns requests newest first, with assigned BDRs attached
func (r *Repository) ListRequests(ctx context.Context, scope RequestScope) ([]models.Request, error) {
	query := "SELECT" + requestColumns + requestFrom
	var args []any
	if scope.UserID != "" {
		query += `
	WHERE r.created_by = ? OR r.requester_id = ?
		OR EXISTS (SELECT 1 FROM request_assignments ra WHERE ra.request_id = r.id AND ra.user_id = ?)`
		args = append(args, scope.UserID, scope.UserID, scope.UserID)
	}
	query += "\n\tORDER BY r.created_at DESC, r.id"

	rows, err := r.db.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer closeRows(rows)

	requests := []models.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests: %w", err)
	}

	if err := r.attachAssignments(ctx, requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// GetRequest returns one request or models.ErrRequestNotFound
func (r *Repository) GetRequest(ctx context.Context, id string) (*models.Request, error) {
	row := r.db.QueryRowContext(ctx, r.q("SELECT"+requestColumns+requestFrom+"\n\tWHERE r.id = ?"), id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("request %s: %w", id, models.ErrRequestNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request %s: %w", id, err)
	}

	list := []models.Request{req}
	if err := r.attachAssignments(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *Repository) attachAssignments(ctx context.Context, requests []models.Request) error {
	if len(requests) == 0 {
		return nil
	}

	ids := make([]any, len(requests))
	index := make(map[string]int, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
		index[req.ID] = i
	}

	rows, err := r.db.QueryContext(ctx, r.q(`
		SELECT ra.request_id, ra.user_id, COALESCE(p.display_name, '')
		FROM request_assignments ra
		LEFT JOIN profiles p ON p.id = ra.user_id
		WHERE ra.request_id IN (`+placeholders(len(ids))+`)
		ORDER BY ra.assigned_at, ra.user_id`), ids...)
	if err != nil {
		return fmt.Errorf("failed to query assignments: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var requestID string
		var bdr models.BDR
		if err := rows.Scan(&requestID, &bdr.ID, &bdr.Name); err != nil {
			return fmt.Errorf("failed to scan assignment: %w", err)
		}
		if i, ok := index[requestID]; ok {
			requests[i].AssignedBDRs = append(requests[i].AssignedBDRs, bdr)
		}
	}
	return rows.Err()
}

// CreateRequest inserts r, filling ID, status and timestamps when unset
func (r *Repository) CreateRequest(ctx context.Context, req *models.Request) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.Status = models.NormalizeStatus(string(req.Status))
	ts := now()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = ts
	}
	req.UpdatedAt = req.CreatedAt

	_, err := r.db.ExecContext(ctx, r.q(`
		INSERT INTO requests (
			id, title, description, request_type, status, city_id, requester_id, created_by,
			company, volume, need_answer_by, delivery_date, created_on_behalf, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		req.ID, req.Title, req.Description, string(req.RequestType), string(req.Status),
		nullString(req.CityID), nullString(req.RequesterID), nullString(req.CreatedBy),
		req.Company, intPtrToNull(req.Volume), timePtrToNull(req.NeedAnswerBy), timePtrToNull(req.DeliveryDate),
		req.CreatedOnBehalf, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request '%s': %w", req.Title, err)
	}
	return nil
}

// UpdateRequest applies the non-nil fields of patch
func (r *Repository) UpdateRequest(ctx context.Context, id string, patch models.RequestPatch) error {
	var sets []string
	var args []any
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.RequestType != nil {
		set("request_type", string(*patch.RequestType))
	}
	if patch.Status != nil {
		set("status", string(models.NormalizeStatus(string(*patch.Status))))
	}
	if patch.CityID != nil {
		set("city_id", nullString(*patch.CityID))
	}
	if patch.RequesterID != nil {
		set("requester_id", nullString(*patch.RequesterID))
	}
	if patch.Company != nil {
		set("company", *patch.Company)
	}
	if patch.Volume != nil {
		set("volume", intPtrToNull(patch.Volume))
	}
	if patch.NeedAnswerBy != nil {
		set("need_answer_by", timePtrToNull(patch.NeedAnswerBy))
	}
	if patch.DeliveryDate != nil {
		set("delivery_date", timePtrToNull(patch.DeliveryDate))
	}
	set("updated_at", now())
	args = append(args, id)

	query := "UPDATE requests SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	return r.execOne(ctx, query, args, "update request "+id, models.ErrRequestNotFound)
}

// UpdateRequestStatus writes only the status column
func (r *Repository) UpdateRequestStatus(ctx context.Context, id string, status models.Status) error {
	return r.execOne(ctx,
		"UPDATE requests SET status = ?, updated_at = ? WHERE id = ?",
		[]any{string(status), now(), id},
		"update status of request "+id, models.ErrRequestNotFound,
	)
}

// AssignBDR links a profile to a request
func (r *Repository) AssignBDR(ctx context.Context, requestID, userID string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, r.q(`SELECT COUNT(*) FROM requests WHERE id = ?`), requestID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check request %s: %w", requestID, err)
		}
		if exists == 0 {
			return fmt.Errorf("request %s: %w", requestID, models.ErrRequestNotFound)
		}

		err = tx.QueryRowContext(ctx, r.q(`SELECT COUNT(*) FROM profiles WHERE id = ?`), userID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check profile %s: %w", userID, err)
		}
		if exists == 0 {
			return fmt.Errorf("profile %s: %w", userID, models.ErrProfileNotFound)
		}

		err = tx.QueryRowContext(ctx, r.q(
			`SELECT COUNT(*) FROM request_assignments WHERE request_id = ? AND user_id = ?`),
			requestID, userID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check assignment: %w", err)
		}
		if exists > 0 {
			return models.ErrAlreadyAssigned
		}

		if _, err := tx.ExecContext(ctx, r.q(
			`INSERT INTO request_assignments (request_id, user_id, assigned_at) VALUES (?, ?, ?)`),
			requestID, userID, now(),
		); err != nil {
			return fmt.Errorf("failed to assign %s to request %s: %w", userID, requestID, err)
		}
		return nil
	})
}

// UnassignBDR removes a profile from a request
func (r *Repository) UnassignBDR(ctx context.Context, requestID, userID string) error {
	return r.execOne(ctx,
		"DELETE FROM request_assignments WHERE request_id = ? AND user_id = ?",
		[]any{requestID, userID},
		"unassign "+userID+" from request "+requestID, models.ErrNotAssigned,
	)
}

// execOne runs a statement that must touch at least one row, mapping zero
// rows to notFound
func (r *Repository) execOne(ctx context.Context, query string, args []any, what string, notFound error) error {
	result, err := r.db.ExecContext(ctx, r.q(query), args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("failed to %s: %w", what, notFound)
	}
	return nil
}
