package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"vegano/internal/models"
	"vegano/internal/repositories"
	"vegano/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app. All routes
// assume AuthRequired already ran; admin gates the list-all and deliver
// routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, admin fiber.Handler) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", admin, h.HandleGetOrders)
	orderRoutes.Get("/myorders", h.HandleGetMyOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	// Pay and deliver are GETs carrying their payload in the body; the wire
	// contract predates this service and its clients depend on it.
	orderRoutes.Get("/:id/pay", h.HandleUpdateOrderToPaid)
	orderRoutes.Get("/:id/deliver", admin, h.HandleUpdateOrderToDelivered)
}

// HandleCreateOrder creates a new order owned by the authenticated caller.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var orderRequest models.Order
	if err := c.BodyParser(&orderRequest); err != nil {
		log.Printf("Error parsing create order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	userID, _ := c.Locals("user_id").(string)

	createdOrder, err := h.service.CreateOrder(userID, orderRequest)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(createdOrder)
}

// HandleGetOrderByID retrieves a single order with its owner expanded to
// name and email.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			// A missing order yields an empty body, not a 404.
			return nil
		}
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.JSON(order)
}

// HandleUpdateOrderToPaid marks an order paid from a payment confirmation
// payload.
func (h *OrderHandler) HandleUpdateOrderToPaid(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var confirmation models.PaymentConfirmation
	if err := c.BodyParser(&confirmation); err != nil {
		log.Printf("Error parsing payment confirmation for order %s: %v", orderID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	order, err := h.service.MarkPaid(orderID, confirmation)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			// A missing order yields an empty body, not a 404.
			return nil
		}
		log.Printf("Error marking order %s paid: %v", orderID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.JSON(order)
}

// HandleUpdateOrderToDelivered marks an order delivered.
func (h *OrderHandler) HandleUpdateOrderToDelivered(c *fiber.Ctx) error {
	orderID := c.Params("id")

	order, err := h.service.MarkDelivered(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			// A missing order yields an empty body, not a 404.
			return nil
		}
		log.Printf("Error marking order %s delivered: %v", orderID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.JSON(order)
}

// HandleGetMyOrders lists the authenticated caller's orders.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	orders, err := h.service.GetMyOrders(userID)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", userID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrders lists every order with each owner expanded to id and name.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.JSON(orders)
}
