package repositories

import (
	"errors"

	"vegano/internal/models"
)

// ErrUserNotFound is returned by user lookups that match nothing.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user data access. The order layer
// uses GetByID to expand an order's owner; the auth collaborator uses the rest.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
