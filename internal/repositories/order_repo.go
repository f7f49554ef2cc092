package repositories

import (
	"errors"

	"vegano/internal/models"
)

// ErrOrderNotFound is returned by lookups for an id that has no order.
// Handlers rely on it to tell "no such order" apart from a store failure.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	Save(order *models.Order) error
	// No Delete: orders are never removed by this layer.
}
