package comment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/salesboard/internal/database"
	"github.com/thenoetrevino/salesboard/internal/events"
	"github.com/thenoetrevino/salesboard/internal/models"
)

// Store is the slice of the data layer this service needs
type Store interface {
	database.CommentStore
	GetRequest(ctx context.Context, id string) (*models.Request, error)
	ListTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Service defines all comment-related business operations
type Service interface {
	List(ctx context.Context, viewer models.Viewer, requestID string) ([]*models.Comment, error)
	Create(ctx context.Context, viewer models.Viewer, req CreateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, viewer models.Viewer, commentID string) error
}

// CreateCommentRequest encapsulates all data needed to post a comment
type CreateCommentRequest struct {
	RequestID       string
	ParentCommentID string // Optional: empty means a top-level comment
	Content         string
}

// service implements Service interface
type service struct {
	repo        Store
	eventClient events.EventPublisher
}

// NewService creates a new comment service
func NewService(repo Store, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// access loads the request and the viewer's role together
func (s *service) access(ctx context.Context, viewer models.Viewer, requestID string) (bool, error) {
	var (
		req   *models.Request
		admin bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		req, err = s.repo.GetRequest(gctx, requestID)
		return err
	})
	g.Go(func() error {
		if viewer.IsSuperAdmin || viewer.UserID == "" {
			admin = viewer.IsSuperAdmin
			return nil
		}
		var err error
		admin, err = s.repo.IsAdmin(gctx, viewer.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return false, fmt.Errorf("failed to check comment access: %w", err)
	}

	if admin {
		return true, nil
	}
	if viewer.UserID == "" {
		return false, nil
	}
	return req.CreatedBy == viewer.UserID ||
		req.RequesterID == viewer.UserID ||
		req.IsAssignedTo(viewer.UserID), nil
}

// List returns the threaded comments of a request. Viewers who are not an
// admin, the creator, the requester or an assigned BDR get an empty list.
func (s *service) List(ctx context.Context, viewer models.Viewer, requestID string) ([]*models.Comment, error) {
	if strings.TrimSpace(requestID) == "" {
		return nil, ErrInvalidRequestID
	}

	ok, err := s.access(ctx, viewer, requestID)
	if err != nil {
		return nil, err
	}
	if !ok {
		slog.Debug("comment list hidden from viewer", "request_id", requestID, "user_id", viewer.UserID)
		return []*models.Comment{}, nil
	}

	flat, err := s.repo.ListComments(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return models.BuildThreads(flat), nil
}

// Create posts a comment and records who it mentions
func (s *service) Create(ctx context.Context, viewer models.Viewer, in CreateCommentRequest) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > models.MaxCommentLength {
		return nil, ErrContentTooLong
	}
	if strings.TrimSpace(in.RequestID) == "" {
		return nil, ErrInvalidRequestID
	}
	if viewer.UserID == "" {
		return nil, ErrForbidden
	}

	ok, err := s.access(ctx, viewer, in.RequestID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if in.ParentCommentID != "" {
		parent, err := s.repo.GetComment(ctx, in.ParentCommentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent comment: %w", err)
		}
		if parent.RequestID != in.RequestID {
			return nil, ErrInvalidParent
		}
	}

	members, err := s.repo.ListTeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}

	c := &models.Comment{
		RequestID:       in.RequestID,
		UserID:          viewer.UserID,
		ParentCommentID: in.ParentCommentID,
		Content:         content,
		Mentions:        ParseMentions(content, members),
	}
	for _, m := range members {
		if m.ID == viewer.UserID {
			c.UserName = m.DisplayName
		}
	}

	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	slog.Info("comment created", "request_id", c.RequestID, "comment_id", c.ID, "mentions", len(c.Mentions))
	events.Send(s.eventClient, events.EventCommentChanged, c.RequestID)
	return c, nil
}

// Delete soft-deletes a comment. Only its author or an admin may do so.
func (s *service) Delete(ctx context.Context, viewer models.Viewer, commentID string) error {
	if strings.TrimSpace(commentID) == "" {
		return ErrInvalidCommentID
	}

	c, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to load comment: %w", err)
	}
	if c.DeletedAt != nil {
		return fmt.Errorf("comment %s: %w", commentID, models.ErrCommentNotFound)
	}

	if c.UserID != viewer.UserID || viewer.UserID == "" {
		admin := viewer.IsSuperAdmin
		if !admin && viewer.UserID != "" {
			if admin, err = s.repo.IsAdmin(ctx, viewer.UserID); err != nil {
				return fmt.Errorf("failed to check role: %w", err)
			}
		}
		if !admin {
			return ErrForbidden
		}
	}

	if err := s.repo.SoftDeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, models.ErrCommentNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	events.Send(s.eventClient, events.EventCommentChanged, c.RequestID)
	return nil
}
