package models

import "time"

// Comment is a note on a request or a restaurant; exactly one of RequestID
// and RestaurantID is set. Replies reference their parent through
// ParentCommentID and are nested into Replies by BuildThreads.
type Comment struct {
	ID              string     `json:"id"`
	RequestID       string     `json:"request_id,omitempty"`
	RestaurantID    string     `json:"restaurant_id,omitempty"`
	UserID          string     `json:"user_id,omitempty"`
	UserName        string     `json:"user_name"`
	ParentCommentID string     `json:"parent_comment_id,omitempty"`
	Content         string     `json:"content"`
	Mentions        []Mention  `json:"mentions"`
	Replies         []*Comment `json:"replies,omitempty"`
	IsEdited        bool       `json:"is_edited"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

// Mention links a comment to a team member named in its text
type Mention struct {
	UserID   string `json:"mentioned_user_id"`
	UserName string `json:"mentioned_user_name"`
}

// BuildThreads nests replies under their parents. Roots keep the order of the
// input slice; a reply whose parent is missing is promoted to a root.
func BuildThreads(flat []*Comment) []*Comment {
	byID := make(map[string]*Comment, len(flat))
	for _, c := range flat {
		c.Replies = nil
		byID[c.ID] = c
	}

	roots := make([]*Comment, 0, len(flat))
	for _, c := range flat {
		if c.ParentCommentID != "" {
			if parent, ok := byID[c.ParentCommentID]; ok && parent != c {
				parent.Replies = append(parent.Replies, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}
