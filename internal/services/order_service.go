package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"vegano/internal/models"
	"vegano/internal/repositories"
	"vegano/pkg/rabbitmq"
)

// ErrNoOrderItems is returned when an order is created without line items.
// The text is the client-facing message.
var ErrNoOrderItems = errors.New("No order items")

// ErrMissingPayer is returned when a payment confirmation carries no payer.
var ErrMissingPayer = errors.New("payment confirmation has no payer")

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	mqClient  *rabbitmq.Client // RabbitMQ client, nil disables event publishing
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		mqClient:  mqClient,
	}
}

// CreateOrder persists a new order for the given owner. The only validation
// performed is that the order has at least one line item; everything else is
// stored as submitted. The order starts unpaid and undelivered regardless of
// what the request carried.
func (s *OrderService) CreateOrder(userID string, order models.Order) (*models.Order, error) {
	if len(order.OrderItems) == 0 {
		return nil, ErrNoOrderItems
	}

	order.ID = "" // The repository assigns the id.
	order.UserID = userID
	order.Owner = nil
	order.IsPaid = false
	order.PaidAt = nil
	order.PaymentResult = nil
	order.IsDelivered = false
	order.DeliveredAt = nil

	if err := s.orderRepo.Create(&order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishEvent("order.created", &order)

	return &order, nil
}

// GetOrderByID retrieves a single order with its owner expanded to name and
// email. A missing owner leaves the expansion empty rather than failing the
// lookup.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(order.UserID)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to expand order owner: %w", err)
		}
	} else {
		order.Owner = &models.OwnerRef{Name: user.Name, Email: user.Email}
	}

	return order, nil
}

// MarkPaid flags an order as paid, recording the payment confirmation and the
// payment time. Re-application refreshes the timestamp and result; last write
// wins. The confirmation's payer is only checked once the order is found, so
// a missing order takes precedence over a malformed confirmation.
func (s *OrderService) MarkPaid(id string, confirmation models.PaymentConfirmation) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if confirmation.Payer == nil {
		return nil, ErrMissingPayer
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = &models.PaymentResult{
		ID:           confirmation.ID,
		Status:       confirmation.Status,
		UpdateTime:   confirmation.UpdateTime,
		EmailAddress: confirmation.Payer.EmailAddress,
	}

	if err := s.orderRepo.Save(order); err != nil {
		return nil, fmt.Errorf("failed to save paid order %s: %w", id, err)
	}

	s.publishEvent("order.paid", order)

	return order, nil
}

// MarkDelivered flags an order as delivered, recording the delivery time.
func (s *OrderService) MarkDelivered(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.IsDelivered = true
	order.DeliveredAt = &now

	if err := s.orderRepo.Save(order); err != nil {
		return nil, fmt.Errorf("failed to save delivered order %s: %w", id, err)
	}

	s.publishEvent("order.delivered", order)

	return order, nil
}

// GetMyOrders retrieves all orders owned by the given user. No orders is an
// empty slice, not an error.
func (s *OrderService) GetMyOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetAllOrders retrieves every order, each with its owner expanded to id and
// name.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}

	// Orders cluster by owner, so resolve each user once.
	owners := make(map[string]*models.User)
	for i := range orders {
		user, ok := owners[orders[i].UserID]
		if !ok {
			user, err = s.userRepo.GetByID(orders[i].UserID)
			if err != nil {
				if !errors.Is(err, repositories.ErrUserNotFound) {
					return nil, fmt.Errorf("failed to expand order owner: %w", err)
				}
				user = nil
			}
			owners[orders[i].UserID] = user
		}
		if user != nil {
			orders[i].Owner = &models.OwnerRef{ID: user.ID, Name: user.Name}
		}
	}

	return orders, nil
}

// publishEvent emits an order lifecycle event. Publishing is best-effort: a
// broker failure is logged and never fails the request.
func (s *OrderService) publishEvent(eventType string, order *models.Order) {
	if s.mqClient == nil {
		return
	}

	payload := map[string]interface{}{
		"orderID":     order.ID,
		"userID":      order.UserID,
		"total":       order.TotalPrice,
		"isPaid":      order.IsPaid,
		"isDelivered": order.IsDelivered,
	}
	if err := s.mqClient.PublishOrderEvent(eventType, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", eventType, order.ID, err)
	}
}
