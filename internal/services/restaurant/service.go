// Package restaurant manages the partners the BDR team onboards: their
// status, assigned BDRs and comment threads.
package restaurant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/salesboard/internal/database"
	"github.com/thenoetrevino/salesboard/internal/events"
	"github.com/thenoetrevino/salesboard/internal/models"
	commentservice "github.com/thenoetrevino/salesboard/internal/services/comment"
)

// Store is the slice of the data layer this service needs
type Store interface {
	database.RestaurantStore
	ListTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Service defines all restaurant-related business operations
type Service interface {
	// Read operations
	List(ctx context.Context, filter Filter) ([]models.Restaurant, error)
	Get(ctx context.Context, id string) (*models.Restaurant, error)

	// Write operations
	Create(ctx context.Context, in CreateRestaurant) (*models.Restaurant, error)
	Update(ctx context.Context, id string, patch models.RestaurantPatch) (*models.Restaurant, error)
	SetStatus(ctx context.Context, id string, status models.Status) (*models.Restaurant, error)
	Delete(ctx context.Context, id string) error

	// BDR assignment
	AssignBDR(ctx context.Context, restaurantID, userID string) error
	UnassignBDR(ctx context.Context, restaurantID, userID string) error

	// Comments
	ListComments(ctx context.Context, restaurantID string) ([]*models.Comment, error)
	AddComment(ctx context.Context, viewer models.Viewer, in AddComment) (*models.Comment, error)
	EditComment(ctx context.Context, viewer models.Viewer, commentID, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, viewer models.Viewer, commentID string) error
}

// CreateRestaurant encapsulates all data needed to add a restaurant
type CreateRestaurant struct {
	Name             string
	Description      string
	CityID           string
	CreatedBy        string
	BDRTargetPerWeek int    // Optional: zero means models.DefaultBDRTargetPerWeek
	AssignedBDRID    string // Optional: assigned right after creation
}

// AddComment encapsulates all data needed to comment on a restaurant
type AddComment struct {
	RestaurantID    string
	ParentCommentID string // Optional: empty means a top-level comment
	Content         string
}

// Filter narrows a restaurant listing. The zero value keeps everything.
type Filter struct {
	Search   string
	Statuses []models.Status
	CityID   string
}

// Apply returns the restaurants that pass every set criterion, in order
func (f Filter) Apply(restaurants []models.Restaurant) []models.Restaurant {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Restaurant, 0, len(restaurants))
	for _, s := range restaurants {
		if f.CityID != "" && s.CityID != f.CityID {
			continue
		}
		if len(f.Statuses) > 0 && !hasStatus(f.Statuses, s.Status) {
			continue
		}
		if search != "" && !matches(s, search) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func hasStatus(statuses []models.Status, status models.Status) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func matches(s models.Restaurant, needle string) bool {
	for _, field := range []string{s.Name, s.Description, s.CityName} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// service implements Service interface
type service struct {
	repo        Store
	eventClient events.EventPublisher
}

// NewService creates a new restaurant service
func NewService(repo Store, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// List returns live restaurants newest first. Every signed-in user sees
// every restaurant.
func (s *service) List(ctx context.Context, filter Filter) ([]models.Restaurant, error) {
	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return filter.Apply(restaurants), nil
}

// Get returns a single live restaurant
func (s *service) Get(ctx context.Context, id string) (*models.Restaurant, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidRestaurantID
	}
	r, err := s.repo.GetRestaurant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return r, nil
}

// Create adds a restaurant in status new and optionally assigns its first BDR
func (s *service) Create(ctx context.Context, in CreateRestaurant) (*models.Restaurant, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.CityID) == "" {
		return nil, ErrMissingCity
	}
	if strings.TrimSpace(in.CreatedBy) == "" {
		return nil, ErrMissingCreator
	}
	if in.BDRTargetPerWeek < 0 {
		return nil, ErrInvalidTarget
	}

	r := &models.Restaurant{
		Name:             name,
		Description:      strings.TrimSpace(in.Description),
		Status:           models.StatusNew,
		CityID:           in.CityID,
		CreatedBy:        in.CreatedBy,
		BDRTargetPerWeek: in.BDRTargetPerWeek,
	}
	if err := s.repo.CreateRestaurant(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}
	slog.Info("restaurant created", "restaurant_id", r.ID, "slug", r.Slug)

	if in.AssignedBDRID != "" {
		if err := s.repo.AssignRestaurantBDR(ctx, r.ID, in.AssignedBDRID); err != nil {
			return nil, fmt.Errorf("failed to assign bdr: %w", err)
		}
	}

	events.SendRestaurant(s.eventClient, r.ID)
	return s.Get(ctx, r.ID)
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.MaxRestaurantNameLength {
		return ErrNameTooLong
	}
	return nil
}

// Update applies a partial edit
func (s *service) Update(ctx context.Context, id string, patch models.RestaurantPatch) (*models.Restaurant, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidRestaurantID
	}
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if patch.CityID != nil && strings.TrimSpace(*patch.CityID) == "" {
		return nil, ErrMissingCity
	}
	if patch.BDRTargetPerWeek != nil && *patch.BDRTargetPerWeek <= 0 {
		return nil, ErrInvalidTarget
	}
	if patch.Status != nil {
		status, ok := models.ParseStatus(string(*patch.Status))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *patch.Status)
		}
		patch.Status = &status
	}

	if err := s.repo.UpdateRestaurant(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}

	events.SendRestaurant(s.eventClient, id)
	return s.Get(ctx, id)
}

// SetStatus moves a restaurant to any status
func (s *service) SetStatus(ctx context.Context, id string, status models.Status) (*models.Restaurant, error) {
	r, err := s.Update(ctx, id, models.RestaurantPatch{Status: &status})
	if err != nil {
		return nil, err
	}
	slog.Info("restaurant status set", "restaurant_id", id, "status", r.Status)
	return r, nil
}

// Delete hides a restaurant from every listing
func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidRestaurantID
	}
	if err := s.repo.SoftDeleteRestaurant(ctx, id); err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	slog.Info("restaurant deleted", "restaurant_id", id)
	events.SendRestaurant(s.eventClient, id)
	return nil
}

// AssignBDR puts a BDR on a restaurant
func (s *service) AssignBDR(ctx context.Context, restaurantID, userID string) error {
	if strings.TrimSpace(restaurantID) == "" {
		return ErrInvalidRestaurantID
	}
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUserID
	}
	if err := s.repo.AssignRestaurantBDR(ctx, restaurantID, userID); err != nil {
		return fmt.Errorf("failed to assign bdr: %w", err)
	}
	events.SendRestaurant(s.eventClient, restaurantID)
	return nil
}

// UnassignBDR takes a BDR off a restaurant
func (s *service) UnassignBDR(ctx context.Context, restaurantID, userID string) error {
	if strings.TrimSpace(restaurantID) == "" {
		return ErrInvalidRestaurantID
	}
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUserID
	}
	if err := s.repo.UnassignRestaurantBDR(ctx, restaurantID, userID); err != nil {
		return fmt.Errorf("failed to unassign bdr: %w", err)
	}
	events.SendRestaurant(s.eventClient, restaurantID)
	return nil
}

// ListComments returns the threaded comments of a live restaurant
func (s *service) ListComments(ctx context.Context, restaurantID string) ([]*models.Comment, error) {
	if _, err := s.Get(ctx, restaurantID); err != nil {
		return nil, err
	}
	flat, err := s.repo.ListRestaurantComments(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return models.BuildThreads(flat), nil
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", commentservice.ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > models.MaxCommentLength {
		return "", commentservice.ErrContentTooLong
	}
	return content, nil
}

// mentionsIn resolves @names in content and the viewer's display name
func (s *service) mentionsIn(ctx context.Context, content, userID string) ([]models.Mention, string, error) {
	members, err := s.repo.ListTeamMembers(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load team members: %w", err)
	}
	name := ""
	for _, m := range members {
		if m.ID == userID {
			name = m.DisplayName
		}
	}
	return commentservice.ParseMentions(content, members), name, nil
}

// AddComment posts a comment on a restaurant. Any signed-in user may comment.
func (s *service) AddComment(ctx context.Context, viewer models.Viewer, in AddComment) (*models.Comment, error) {
	content, err := validateContent(in.Content)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.RestaurantID) == "" {
		return nil, ErrInvalidRestaurantID
	}
	if viewer.UserID == "" {
		return nil, commentservice.ErrForbidden
	}
	if _, err := s.Get(ctx, in.RestaurantID); err != nil {
		return nil, err
	}

	if in.ParentCommentID != "" {
		parent, err := s.repo.GetRestaurantComment(ctx, in.ParentCommentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent comment: %w", err)
		}
		if parent.RestaurantID != in.RestaurantID {
			return nil, commentservice.ErrInvalidParent
		}
	}

	mentions, name, err := s.mentionsIn(ctx, content, viewer.UserID)
	if err != nil {
		return nil, err
	}
	c := &models.Comment{
		RestaurantID:    in.RestaurantID,
		UserID:          viewer.UserID,
		UserName:        name,
		ParentCommentID: in.ParentCommentID,
		Content:         content,
		Mentions:        mentions,
	}
	if err := s.repo.CreateRestaurantComment(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	slog.Info("restaurant comment created", "restaurant_id", c.RestaurantID, "comment_id", c.ID, "mentions", len(c.Mentions))
	events.SendRestaurant(s.eventClient, c.RestaurantID)
	return c, nil
}

// liveComment loads a comment that has not been deleted
func (s *service) liveComment(ctx context.Context, commentID string) (*models.Comment, error) {
	if strings.TrimSpace(commentID) == "" {
		return nil, commentservice.ErrInvalidCommentID
	}
	c, err := s.repo.GetRestaurantComment(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	if c.DeletedAt != nil {
		return nil, fmt.Errorf("comment %s: %w", commentID, models.ErrCommentNotFound)
	}
	return c, nil
}

// EditComment rewrites a comment. Only its author may do so.
func (s *service) EditComment(ctx context.Context, viewer models.Viewer, commentID, content string) (*models.Comment, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	c, err := s.liveComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if viewer.UserID == "" || c.UserID != viewer.UserID {
		return nil, commentservice.ErrForbidden
	}

	mentions, _, err := s.mentionsIn(ctx, content, viewer.UserID)
	if err != nil {
		return nil, err
	}
	c.Content = content
	c.Mentions = mentions
	if err := s.repo.EditRestaurantComment(ctx, c); err != nil {
		if errors.Is(err, models.ErrCommentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to edit comment: %w", err)
	}

	events.SendRestaurant(s.eventClient, c.RestaurantID)
	return c, nil
}

// DeleteComment soft-deletes a comment. Only its author or an admin may do so.
func (s *service) DeleteComment(ctx context.Context, viewer models.Viewer, commentID string) error {
	c, err := s.liveComment(ctx, commentID)
	if err != nil {
		return err
	}

	if c.UserID != viewer.UserID || viewer.UserID == "" {
		admin := viewer.IsSuperAdmin
		if !admin && viewer.UserID != "" {
			if admin, err = s.repo.IsAdmin(ctx, viewer.UserID); err != nil {
				return fmt.Errorf("failed to check role: %w", err)
			}
		}
		if !admin {
			return commentservice.ErrForbidden
		}
	}

	if err := s.repo.SoftDeleteRestaurantComment(ctx, commentID); err != nil {
		if errors.Is(err, models.ErrCommentNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	events.SendRestaurant(s.eventClient, c.RestaurantID)
	return nil
}
