package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwezo/shop-backend/internal/model"
)

type cartKey struct {
	user    uuid.UUID
	product uuid.UUID
}

// mockCartRepo mirrors the upsert semantics of the real table: one row per
// (user, product), repeated adds accumulate.
type mockCartRepo struct {
	items map[cartKey]*model.CartItem
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{items: make(map[cartKey]*model.CartItem)}
}

func (m *mockCartRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem
	for k, item := range m.items {
		if k.user == userID {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (m *mockCartRepo) UpsertAdd(_ context.Context, userID, productID uuid.UUID, quantity int) error {
	k := cartKey{user: userID, product: productID}
	if existing, ok := m.items[k]; ok {
		existing.Quantity += quantity
		return nil
	}
	m.items[k] = &model.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	return nil
}

func (m *mockCartRepo) SetQuantity(_ context.Context, userID, productID uuid.UUID, quantity int) error {
	k := cartKey{user: userID, product: productID}
	existing, ok := m.items[k]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Quantity = quantity
	return nil
}

func (m *mockCartRepo) Remove(_ context.Context, userID, productID uuid.UUID) error {
	k := cartKey{user: userID, product: productID}
	if _, ok := m.items[k]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.items, k)
	return nil
}

func TestCartService_AddItem_Accumulates(t *testing.T) {
	cartRepo := newMockCartRepo()
	productRepo := newMockProductRepo()
	pid := uuid.New()
	productRepo.products[pid] = &model.Product{ID: pid, Price: decimal.NewFromInt(10)}
	svc := NewCartService(cartRepo, productRepo)
	userID := uuid.New()

	require.NoError(t, svc.AddItem(context.Background(), userID, pid, 2))
	require.NoError(t, svc.AddItem(context.Background(), userID, pid, 3))

	require.Len(t, cartRepo.items, 1)
	assert.Equal(t, 5, cartRepo.items[cartKey{user: userID, product: pid}].Quantity)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	svc := NewCartService(newMockCartRepo(), newMockProductRepo())
	err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 2)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_List_ComputesTotal(t *testing.T) {
	cartRepo := newMockCartRepo()
	userID := uuid.New()
	a, b := uuid.New(), uuid.New()
	cartRepo.items[cartKey{user: userID, product: a}] = &model.CartItem{
		UserID: userID, ProductID: a, Quantity: 2, Price: decimal.RequireFromString("10.00"),
	}
	cartRepo.items[cartKey{user: userID, product: b}] = &model.CartItem{
		UserID: userID, ProductID: b, Quantity: 1, Price: decimal.RequireFromString("5.00"),
	}
	svc := NewCartService(cartRepo, newMockProductRepo())

	items, total, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.True(t, total.Equal(decimal.RequireFromString("25.00")), "total = %s", total)
}

func TestCartService_SetQuantity_NotFound(t *testing.T) {
	svc := NewCartService(newMockCartRepo(), newMockProductRepo())
	err := svc.SetQuantity(context.Background(), uuid.New(), uuid.New(), 3)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	cartRepo := newMockCartRepo()
	userID, pid := uuid.New(), uuid.New()
	cartRepo.items[cartKey{user: userID, product: pid}] = &model.CartItem{
		UserID: userID, ProductID: pid, Quantity: 1,
	}
	svc := NewCartService(cartRepo, newMockProductRepo())

	require.NoError(t, svc.RemoveItem(context.Background(), userID, pid))
	assert.Empty(t, cartRepo.items)

	err := svc.RemoveItem(context.Background(), userID, pid)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}
