package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/thenoetrevino/salesboard/internal/models"
)

// commentTables names where comments on one kind of parent live. Requests and
// restaurants keep separate tables with the same shape.
type commentTables struct {
	comments string
	parent   string
	mentions string
}

var (
	requestComments    = commentTables{comments: "request_comments", parent: "request_id", mentions: "comment_mentions"}
	restaurantComments = commentTables{comments: "restaurant_comments", parent: "restaurant_id", mentions: "restaurant_comment_mentions"}
)

func (t commentTables) columns() string {
	return `
	c.id, c.` + t.parent + `, c.user_id, COALESCE(p.display_name, ''),
	COALESCE(c.parent_comment_id, ''), c.content, c.is_edited,
	c.created_at, c.updated_at, c.deleted_at
	FROM ` + t.comments + ` c
	LEFT JOIN profiles p ON p.id = c.user_id`
}

// setOwner stores the parent id in the field matching the table
func (t commentTables) setOwner(c *models.Comment, id string) {
	if t.parent == restaurantComments.parent {
		c.RestaurantID = id
		return
	}
	c.RequestID = id
}

func (t commentTables) owner(c *models.Comment) string {
	if t.parent == restaurantComments.parent {
		return c.RestaurantID
	}
	return c.RequestID
}

func scanComment(row rowScanner, t commentTables) (*models.Comment, error) {
	var (
		c         models.Comment
		owner     string
		deletedAt sql.NullTime
	)
	err := row.Scan(
		&c.ID, &owner, &c.UserID, &c.UserName,
		&c.ParentCommentID, &c.Content, &c.IsEdited,
		&c.CreatedAt, &c.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	t.setOwner(&c, owner)
	c.DeletedAt = nullTimeToPtr(deletedAt)
	c.Mentions = []models.Mention{}
	return &c, nil
}

// ListComments returns the live comments of a request oldest first, flat.
// Use models.BuildThreads to nest replies.
func (r *Repository) ListComments(ctx context.Context, requestID string) ([]*models.Comment, error) {
	return r.listComments(ctx, requestComments, requestID)
}

// GetComment returns a request comment, deleted or not, without mentions
func (r *Repository) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	return r.getComment(ctx, requestComments, id)
}

// CreateComment inserts c and its mentions in one transaction
func (r *Repository) CreateComment(ctx context.Context, c *models.Comment) error {
	return r.createComment(ctx, requestComments, c)
}

// SoftDeleteComment stamps deleted_at; deleting twice reports not found
func (r *Repository) SoftDeleteComment(ctx context.Context, id string) error {
	return r.softDeleteComment(ctx, requestComments, id)
}

func (r *Repository) listComments(ctx context.Context, t commentTables, parentID string) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, r.q(`SELECT`+t.columns()+`
		WHERE c.`+t.parent+` = ? AND c.deleted_at IS NULL
		ORDER BY c.created_at, c.id`), parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments for %s %s: %w", t.parent, parentID, err)
	}
	defer closeRows(rows)

	comments := []*models.Comment{}
	index := make(map[string]*models.Comment)
	for rows.Next() {
		c, err := scanComment(rows, t)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
		index[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	if len(comments) == 0 {
		return comments, nil
	}

	mentions, err := r.db.QueryContext(ctx, r.q(`
		SELECT cm.comment_id, cm.mentioned_user_id, COALESCE(p.display_name, '')
		FROM `+t.mentions+` cm
		JOIN `+t.comments+` c ON c.id = cm.comment_id
		LEFT JOIN profiles p ON p.id = cm.mentioned_user_id
		WHERE c.`+t.parent+` = ?
		ORDER BY cm.comment_id, p.display_name`), parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mentions for %s %s: %w", t.parent, parentID, err)
	}
	defer closeRows(mentions)

	for mentions.Next() {
		var commentID string
		var m models.Mention
		if err := mentions.Scan(&commentID, &m.UserID, &m.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan mention: %w", err)
		}
		if c, ok := index[commentID]; ok {
			c.Mentions = append(c.Mentions, m)
		}
	}
	return comments, mentions.Err()
}

func (r *Repository) getComment(ctx context.Context, t commentTables, id string) (*models.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx, r.q(`SELECT`+t.columns()+` WHERE c.id = ?`), id), t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("comment %s: %w", id, models.ErrCommentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment %s: %w", id, err)
	}
	return c, nil
}

func (r *Repository) createComment(ctx context.Context, t commentTables, c *models.Comment) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	ts := now()
	c.CreatedAt = ts
	c.UpdatedAt = ts
	owner := t.owner(c)

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, r.q(`
			INSERT INTO `+t.comments+` (id, `+t.parent+`, user_id, parent_comment_id, content, is_edited, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
			c.ID, owner, c.UserID, nullString(c.ParentCommentID), c.Content, false, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert comment on %s %s: %w", t.parent, owner, err)
		}
		return r.insertMentions(ctx, tx, t, c)
	})
}

func (r *Repository) insertMentions(ctx context.Context, tx *sql.Tx, t commentTables, c *models.Comment) error {
	for _, m := range c.Mentions {
		if _, err := tx.ExecContext(ctx, r.q(
			`INSERT INTO `+t.mentions+` (comment_id, mentioned_user_id) VALUES (?, ?)`),
			c.ID, m.UserID,
		); err != nil {
			return fmt.Errorf("failed to insert mention of %s: %w", m.UserID, err)
		}
	}
	return nil
}

// editComment replaces the content and mentions of a live comment and marks
// it edited
func (r *Repository) editComment(ctx context.Context, t commentTables, c *models.Comment) error {
	c.UpdatedAt = now()
	c.IsEdited = true

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, r.q(`
			UPDATE `+t.comments+` SET content = ?, is_edited = ?, updated_at = ?
			WHERE id = ? AND deleted_at IS NULL`),
			c.Content, true, c.UpdatedAt, c.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to edit comment %s: %w", c.ID, err)
		}
		if n, err := result.RowsAffected(); err != nil {
			return fmt.Errorf("failed to edit comment %s: %w", c.ID, err)
		} else if n == 0 {
			return fmt.Errorf("comment %s: %w", c.ID, models.ErrCommentNotFound)
		}

		if _, err := tx.ExecContext(ctx, r.q(`DELETE FROM `+t.mentions+` WHERE comment_id = ?`), c.ID); err != nil {
			return fmt.Errorf("failed to clear mentions of comment %s: %w", c.ID, err)
		}
		return r.insertMentions(ctx, tx, t, c)
	})
}

func (r *Repository) softDeleteComment(ctx context.Context, t commentTables, id string) error {
	ts := now()
	return r.execOne(ctx,
		"UPDATE "+t.comments+" SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		[]any{ts, ts, id},
		"delete comment "+id, models.ErrCommentNotFound,
	)
}
