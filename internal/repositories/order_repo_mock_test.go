package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vegano/internal/models"
	"vegano/internal/repositories"
)

// The in-memory repository must honor the same contract the GORM one does:
// id assignment on create, the not-found sentinel, owner filtering, and
// save-only-existing.
var _ repositories.OrderRepository = (*repositories.MockOrderRepository)(nil)

func TestMockOrderRepository_Create(t *testing.T) {
	repo := repositories.NewMockOrderRepository()

	order := &models.Order{UserID: "user-1", TotalPrice: 25.90}
	err := repo.Create(order)
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID) // Assigned when none is set

	got, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, 25.90, got.TotalPrice)

	// A caller-provided id is kept as-is
	withID := &models.Order{ID: "order-fixed", UserID: "user-1"}
	err = repo.Create(withID)
	assert.NoError(t, err)
	assert.Equal(t, "order-fixed", withID.ID)
}

func TestMockOrderRepository_GetByIDNotFound(t *testing.T) {
	repo := repositories.NewMockOrderRepository()

	order, err := repo.GetByID("no-such-order")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}

func TestMockOrderRepository_GetByUser(t *testing.T) {
	repo := repositories.NewMockOrderRepository()

	assert.NoError(t, repo.Create(&models.Order{UserID: "alice"}))
	assert.NoError(t, repo.Create(&models.Order{UserID: "alice"}))
	assert.NoError(t, repo.Create(&models.Order{UserID: "bob"}))

	mine, err := repo.GetByUser("alice")
	assert.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, order := range mine {
		assert.Equal(t, "alice", order.UserID)
	}

	// Unknown owner yields an empty slice, not an error
	none, err := repo.GetByUser("nobody")
	assert.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	all, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMockOrderRepository_Save(t *testing.T) {
	repo := repositories.NewMockOrderRepository()

	order := &models.Order{UserID: "user-1"}
	assert.NoError(t, repo.Create(order))

	order.IsPaid = true
	assert.NoError(t, repo.Save(order))

	got, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.True(t, got.IsPaid)

	// Save refuses an order that was never created
	err = repo.Save(&models.Order{ID: "no-such-order"})
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}
