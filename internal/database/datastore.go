package database

import (
	"context"

	"github.com/thenoetrevino/salesboard/internal/models"
)

// RequestScope limits which requests a listing returns. The zero value means
// every request; a UserID restricts to requests that user created, asked for
// or is assigned to.
type RequestScope struct {
	UserID string
}

// RequestStore persists requests and their BDR assignments
type RequestStore interface {
	ListRequests(ctx context.Context, scope RequestScope) ([]models.Request, error)
	GetRequest(ctx context.Context, id string) (*models.Request, error)
	CreateRequest(ctx context.Context, r *models.Request) error
	UpdateRequest(ctx context.Context, id string, patch models.RequestPatch) error
	UpdateRequestStatus(ctx context.Context, id string, status models.Status) error
	AssignBDR(ctx context.Context, requestID, userID string) error
	UnassignBDR(ctx context.Context, requestID, userID string) error
}

// CommentStore persists comments and their mentions
type CommentStore interface {
	ListComments(ctx context.Context, requestID string) ([]*models.Comment, error)
	GetComment(ctx context.Context, id string) (*models.Comment, error)
	CreateComment(ctx context.Context, c *models.Comment) error
	SoftDeleteComment(ctx context.Context, id string) error
}

// RestaurantStore persists restaurants, their BDR assignments and comments
type RestaurantStore interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
	CreateRestaurant(ctx context.Context, s *models.Restaurant) error
	UpdateRestaurant(ctx context.Context, id string, patch models.RestaurantPatch) error
	SoftDeleteRestaurant(ctx context.Context, id string) error
	AssignRestaurantBDR(ctx context.Context, restaurantID, userID string) error
	UnassignRestaurantBDR(ctx context.Context, restaurantID, userID string) error

	ListRestaurantComments(ctx context.Context, restaurantID string) ([]*models.Comment, error)
	GetRestaurantComment(ctx context.Context, id string) (*models.Comment, error)
	CreateRestaurantComment(ctx context.Context, c *models.Comment) error
	EditRestaurantComment(ctx context.Context, c *models.Comment) error
	SoftDeleteRestaurantComment(ctx context.Context, id string) error
}

// DirectoryStore holds people, roles and cities
type DirectoryStore interface {
	ListTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	GetProfile(ctx context.Context, id string) (*models.TeamMember, error)
	UpsertProfile(ctx context.Context, m models.TeamMember) error
	IsAdmin(ctx context.Context, userID string) (bool, error)
	GrantRole(ctx context.Context, userID, role string) error
	ListCities(ctx context.Context) ([]models.City, error)
	UpsertCity(ctx context.Context, c models.City) error
}

// DataStore defines the unified interface for all data operations.
// Consumers can depend on the smaller interfaces for clearer dependencies.
type DataStore interface {
	RequestStore
	CommentStore
	RestaurantStore
	DirectoryStore
	Close() error
}

// RoleAdmin marks a super admin in user_roles
const RoleAdmin = "admin"

// RoleBDR is the role recorded on restaurant assignments
const RoleBDR = "BDR"
