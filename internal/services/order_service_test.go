package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vegano/internal/models"
	"vegano/internal/repositories"
	"vegano/internal/services"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func newOrderService(orderRepo *MockOrderRepository, userRepo *MockUserRepository) *services.OrderService {
	return services.NewOrderService(orderRepo, userRepo, nil) // nil mq client, events disabled
}

func TestOrderService_CreateOrder(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockUsers := new(MockUserRepository)
	service := newOrderService(mockOrders, mockUsers)

	request := models.Order{
		OrderItems: []models.OrderItem{
			{Name: "Laptop", Qty: 1, Price: 1200.00, Product: "prod-1"},
		},
		ShippingAddress: models.ShippingAddress{Address: "1 Main St", City: "Springfield"},
		PaymentMethod:   "PayPal",
		ItemsPrice:      1200.00,
		TaxPrice:        120.00,
		ShippingPrice:   10.00,
		TotalPrice:      1330.00,
		// Status fields submitted by the client must be ignored
		IsPaid:      true,
		IsDelivered: true,
	}

	mockOrders.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	created, err := service.CreateOrder("user-1", request)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", created.UserID)
	assert.False(t, created.IsPaid)
	assert.False(t, created.IsDelivered)
	assert.Nil(t, created.PaidAt)
	assert.Nil(t, created.DeliveredAt)
	assert.Nil(t, created.PaymentResult)
	mockOrders.AssertExpectations(t)
}

func TestOrderService_CreateOrderWithoutItems(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockUsers := new(MockUserRepository)
	service := newOrderService(mockOrders, mockUsers)

	_, err := service.CreateOrder("user-1", models.Order{})
	assert.ErrorIs(t, err, services.ErrNoOrderItems)
	assert.Equal(t, "No order items", err.Error())
	mockOrders.AssertNotCalled(t, "Create")
}

func TestOrderService_GetOrderByID(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockUsers := new(MockUserRepository)
	service := newOrderService(mockOrders, mockUsers)

	order := &models.Order{ID: "order-1", UserID: "user-1"}
	owner := &models.User{ID: "user-1", Name: "Test User", Email: "test@example.com"}

	// Owner is expanded to name and email
	mockOrders.On("GetByID", "order-1").Return(order, nil).Once()
	mockUsers.On("GetByID", "user-1").Return(owner, nil).Once()

	got, err := service.GetOrderByID("order-1")
	assert.NoError(t, err)
	assert.NotNil(t, got.Owner)
	assert.Equal(t, "Test User", got.Owner.Name)
	assert.Equal(t, "test@example.com", got.Owner.Email)
	assert.Empty(t, got.Owner.ID)
	mockOrders.AssertExpectations(t)
	mockUsers.AssertExpectations(t)

	// A missing owner leaves the expansion empty rather than failing
	mockOrders.On("GetByID", "order-1").Return(&models.Order{ID: "order-1", UserID: "ghost"}, nil).Once()
	mockUsers.On("GetByID", "ghost").Return(nil, repositories.ErrUserNotFound).Once()

	got, err = service.GetOrderByID("order-1")
	assert.NoError(t, err)
	assert.Nil(t, got.Owner)

	// A missing order surfaces the sentinel
	mockOrders.On("GetByID", "order-99").Return(nil, repositories.ErrOrderNotFound).Once()
	_, err = service.GetOrderByID("order-99")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
	mockOrders.AssertExpectations(t)
}

func TestOrderService_MarkPaid(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockUsers := new(MockUserRepository)
	service := newOrderService(mockOrders, mockUsers)

	order := &models.Order{ID: "order-1", UserID: "user-1"}
	confirmation := models.PaymentConfirmation{
		ID:         "PAY-123",
		Status:     "COMPLETED",
		UpdateTime: "2024-05-01T10:00:00Z",
		Payer:      &models.PaymentPayer{EmailAddress: "buyer@example.com"},
	}

	mockOrders.On("GetByID", "order-1").Return(order, nil).Once()
	mockOrders.On("Save", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	updated, err := service.MarkPaid("order-1", confirmation)
	assert.NoError(t, err)
	assert.True(t, updated.IsPaid)
	assert.NotNil(t, updated.PaidAt)
	assert.Equal(t, &models.PaymentResult{
		ID:           "PAY-123",
		Status:       "COMPLETED",
		UpdateTime:   "2024-05-01T10:00:00Z",
		EmailAddress: "buyer@example.com",
	}, updated.PaymentResult)
	mockOrders.AssertExpectations(t)

	// Missing order surfaces the sentinel without saving
	mockOrders.On("GetByID", "order-99").Return(nil, repositories.ErrOrderNotFound).Once()
	_, err = service.MarkPaid("order-99", confirmation)
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
	mockOrders.AssertExpectations(t)
}

func TestOrderService_MarkPaidWithoutPayer(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockUsers := new(MockUserRepository)
	service := newOrderService(mockOrders, mockUsers)

	noPayer := models.PaymentConfirmation{
		ID:         "PAY-456",
		Status:     "COMPLETED",
		UpdateTime: "2024-05-01T10:00:00Z",
	}

	// An existing order with a payerless confirmation fails without saving
	mockOrders.On("GetByID", "order-1").Return(&models.Order{ID: "order-1"}, nil).Once()
	_, err := service.MarkPaid("order-1", noPayer)
	assert.ErrorIs(t, err, services.ErrMissingPayer)
	mockOrders.AssertNotCalled(t, "Save")
	mockOrders.AssertExpectations(t)

	// A missing order takes precedence over the missing payer
	mockOrders.On("GetByID", "order-99").Return(nil, repositories.ErrOrderNotFound).Once()
	_, err = service.MarkPaid("order-99", noPayer)
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
	mockOrders.AssertExpectations(t)
}

func TestOrderService_MarkDelivered(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockUsers := new(MockUserRepository)
	service := newOrderService(mockOrders, mockUsers)

	order := &models.Order{ID: "order-1", UserID: "user-1", IsPaid: true}

	mockOrders.On("GetByID", "order-1").Return(order, nil).Once()
	mockOrders.On("Save", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	updated, err := service.MarkDelivered("order-1")
	assert.NoError(t, err)
	assert.True(t, updated.IsDelivered)
	assert.NotNil(t, updated.DeliveredAt)
	mockOrders.AssertExpectations(t)

	// Save failure is wrapped and surfaced
	mockOrders.On("GetByID", "order-1").Return(order, nil).Once()
	mockOrders.On("Save", mock.AnythingOfType("*models.Order")).Return(fmt.Errorf("database error")).Once()
	_, err = service.MarkDelivered("order-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockOrders.AssertExpectations(t)
}

func TestOrderService_GetMyOrders(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockUsers := new(MockUserRepository)
	service := newOrderService(mockOrders, mockUsers)

	mine := []models.Order{
		{ID: "order-1", UserID: "user-1"},
		{ID: "order-2", UserID: "user-1"},
	}
	mockOrders.On("GetByUser", "user-1").Return(mine, nil).Once()

	orders, err := service.GetMyOrders("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	mockOrders.AssertExpectations(t)

	// No orders is an empty slice, not an error
	mockOrders.On("GetByUser", "user-2").Return([]models.Order{}, nil).Once()
	orders, err = service.GetMyOrders("user-2")
	assert.NoError(t, err)
	assert.Empty(t, orders)
	mockOrders.AssertExpectations(t)
}

func TestOrderService_GetAllOrders(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockUsers := new(MockUserRepository)
	service := newOrderService(mockOrders, mockUsers)

	all := []models.Order{
		{ID: "order-1", UserID: "user-1"},
		{ID: "order-2", UserID: "user-1"},
		{ID: "order-3", UserID: "user-2"},
	}
	mockOrders.On("GetAll").Return(all, nil).Once()
	// Each owner is resolved once even when they own several orders
	mockUsers.On("GetByID", "user-1").Return(&models.User{ID: "user-1", Name: "Alice", Email: "alice@example.com"}, nil).Once()
	mockUsers.On("GetByID", "user-2").Return(&models.User{ID: "user-2", Name: "Bob", Email: "bob@example.com"}, nil).Once()

	orders, err := service.GetAllOrders()
	assert.NoError(t, err)
	assert.Len(t, orders, 3)
	for _, order := range orders {
		assert.NotNil(t, order.Owner)
		assert.Equal(t, order.UserID, order.Owner.ID)
		assert.NotEmpty(t, order.Owner.Name)
		assert.Empty(t, order.Owner.Email) // List expansion carries id and name only
	}
	mockOrders.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}
