package request

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/thenoetrevino/salesboard/internal/board"
	"github.com/thenoetrevino/salesboard/internal/database"
	"github.com/thenoetrevino/salesboard/internal/events"
	"github.com/thenoetrevino/salesboard/internal/models"
	"github.com/thenoetrevino/salesboard/internal/workflow"
)

// Store is the slice of the data layer this service needs
type Store interface {
	database.RequestStore
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Service defines all request-related business operations
type Service interface {
	// Read operations
	List(ctx context.Context, viewer models.Viewer, filter board.Filter) ([]models.Request, error)
	Get(ctx context.Context, id string) (*models.Request, error)
	AllowedTransitions(ctx context.Context, id string) ([]models.Status, error)

	// Write operations
	Create(ctx context.Context, req CreateRequest) (*models.Request, error)
	Update(ctx context.Context, id string, patch models.RequestPatch) (*models.Request, error)

	// Status changes. SetStatus is the board path and accepts any column;
	// ChangeStatus is the manual edit path and follows the workflow table.
	SetStatus(ctx context.Context, id string, status models.Status) error
	ChangeStatus(ctx context.Context, id string, status models.Status) (*models.Request, error)

	// BDR assignment
	AssignBDR(ctx context.Context, requestID, userID string) error
	UnassignBDR(ctx context.Context, requestID, userID string) error
}

// CreateRequest encapsulates all data needed to create a request
type CreateRequest struct {
	Title        string
	Description  string
	RequestType  models.RequestType
	Status       models.Status // Optional: empty means new
	CityID       string
	CreatedBy    string
	RequesterID  string // Optional: empty means the creator
	Company      string
	Volume       *int
	NeedAnswerBy *time.Time
	DeliveryDate *time.Time
}

// service implements Service interface
type service struct {
	repo        Store
	eventClient events.EventPublisher
}

// NewService creates a new request service
func NewService(repo Store, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// List returns what viewer may see, filtered and sorted. Admins see every
// request; everyone else sees requests they created, asked for or work on.
func (s *service) List(ctx context.Context, viewer models.Viewer, filter board.Filter) ([]models.Request, error) {
	scope, err := s.scopeFor(ctx, viewer)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.ListRequests(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return filter.Apply(requests), nil
}

func (s *service) scopeFor(ctx context.Context, viewer models.Viewer) (database.RequestScope, error) {
	if viewer.IsSuperAdmin {
		return database.RequestScope{}, nil
	}
	if viewer.UserID == "" {
		return database.RequestScope{}, ErrInvalidUserID
	}
	admin, err := s.repo.IsAdmin(ctx, viewer.UserID)
	if err != nil {
		return database.RequestScope{}, fmt.Errorf("failed to check role: %w", err)
	}
	if admin {
		return database.RequestScope{}, nil
	}
	return database.RequestScope{UserID: viewer.UserID}, nil
}

// Get returns a single request
func (s *service) Get(ctx context.Context, id string) (*models.Request, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidRequestID
	}
	req, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return req, nil
}

// AllowedTransitions lists the statuses the manual edit path accepts next
func (s *service) AllowedTransitions(ctx context.Context, id string) ([]models.Status, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return workflow.AllowedTransitions(req.Status), nil
}

// Create handles request creation with validation
func (s *service) Create(ctx context.Context, in CreateRequest) (*models.Request, error) {
	if err := validateCreate(&in); err != nil {
		return nil, err
	}

	requester := in.RequesterID
	if requester == "" {
		requester = in.CreatedBy
	}

	req := &models.Request{
		Title:           in.Title,
		Description:     strings.TrimSpace(in.Description),
		RequestType:     in.RequestType,
		Status:          in.Status,
		CityID:          in.CityID,
		RequesterID:     requester,
		CreatedBy:       in.CreatedBy,
		Company:         strings.TrimSpace(in.Company),
		Volume:          in.Volume,
		NeedAnswerBy:    in.NeedAnswerBy,
		DeliveryDate:    in.DeliveryDate,
		CreatedOnBehalf: requester != in.CreatedBy,
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	slog.Info("request created", "request_id", req.ID, "status", req.Status)
	events.Send(s.eventClient, events.EventRequestChanged, req.ID)

	return s.Get(ctx, req.ID)
}

func validateCreate(in *CreateRequest) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateTitle(in.Title); err != nil {
		return err
	}
	if !in.RequestType.Valid() {
		return ErrInvalidRequestType
	}
	if strings.TrimSpace(in.CityID) == "" {
		return ErrMissingCity
	}
	if strings.TrimSpace(in.CreatedBy) == "" {
		return ErrMissingCreator
	}
	if in.Volume != nil && *in.Volume < 0 {
		return ErrNegativeVolume
	}
	if in.Status == "" {
		in.Status = models.DefaultStatus
		return nil
	}
	status, ok := models.ParseStatus(string(in.Status))
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	in.Status = status
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// Update applies a partial edit. A status in the patch is written as given,
// matching the edit form.
func (s *service) Update(ctx context.Context, id string, patch models.RequestPatch) (*models.Request, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidRequestID
	}
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if patch.RequestType != nil && !patch.RequestType.Valid() {
		return nil, ErrInvalidRequestType
	}
	if patch.CityID != nil && strings.TrimSpace(*patch.CityID) == "" {
		return nil, ErrMissingCity
	}
	if patch.Volume != nil && *patch.Volume < 0 {
		return nil, ErrNegativeVolume
	}
	if patch.Status != nil {
		normalized := models.NormalizeStatus(string(*patch.Status))
		patch.Status = &normalized
	}

	if err := s.repo.UpdateRequest(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}

	events.Send(s.eventClient, events.EventRequestChanged, id)
	return s.Get(ctx, id)
}

// SetStatus writes status without consulting the workflow table
func (s *service) SetStatus(ctx context.Context, id string, status models.Status) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidRequestID
	}
	status = models.NormalizeStatus(string(status))

	if err := s.repo.UpdateRequestStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	slog.Info("request status set", "request_id", id, "status", status)
	events.Send(s.eventClient, events.EventRequestChanged, id)
	return nil
}

// ChangeStatus moves a request along the workflow table
func (s *service) ChangeStatus(ctx context.Context, id string, status models.Status) (*models.Request, error) {
	target, ok := models.ParseStatus(string(status))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == target {
		return current, nil
	}
	if !workflow.CanTransition(current.Status, target) {
		return nil, fmt.Errorf("%w: %s to %s", ErrTransitionNotAllowed, current.Status, target)
	}

	if err := s.SetStatus(ctx, id, target); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// AssignBDR puts a BDR on a request
func (s *service) AssignBDR(ctx context.Context, requestID, userID string) error {
	if strings.TrimSpace(requestID) == "" {
		return ErrInvalidRequestID
	}
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUserID
	}
	if err := s.repo.AssignBDR(ctx, requestID, userID); err != nil {
		return fmt.Errorf("failed to assign bdr: %w", err)
	}
	events.Send(s.eventClient, events.EventRequestChanged, requestID)
	return nil
}

// UnassignBDR takes a BDR off a request
func (s *service) UnassignBDR(ctx context.Context, requestID, userID string) error {
	if strings.TrimSpace(requestID) == "" {
		return ErrInvalidRequestID
	}
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUserID
	}
	if err := s.repo.UnassignBDR(ctx, requestID, userID); err != nil {
		return fmt.Errorf("failed to unassign bdr: %w", err)
	}
	events.Send(s.eventClient, events.EventRequestChanged, requestID)
	return nil
}
