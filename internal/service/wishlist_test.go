package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwezo/shop-backend/internal/model"
)

type mockWishlistRepo struct {
	items map[cartKey]model.WishlistItem
}

func newMockWishlistRepo() *mockWishlistRepo {
	return &mockWishlistRepo{items: make(map[cartKey]model.WishlistItem)}
}

func (m *mockWishlistRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	for k, item := range m.items {
		if k.user == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *mockWishlistRepo) Add(_ context.Context, userID, productID uuid.UUID) error {
	k := cartKey{user: userID, product: productID}
	if _, ok := m.items[k]; ok {
		return nil
	}
	m.items[k] = model.WishlistItem{UserID: userID, ProductID: productID}
	return nil
}

func (m *mockWishlistRepo) Remove(_ context.Context, userID, productID uuid.UUID) error {
	k := cartKey{user: userID, product: productID}
	if _, ok := m.items[k]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.items, k)
	return nil
}

func TestWishlistService_Add_Idempotent(t *testing.T) {
	wishlistRepo := newMockWishlistRepo()
	productRepo := newMockProductRepo()
	pid := uuid.New()
	productRepo.products[pid] = &model.Product{ID: pid, Name: "Kettle"}
	svc := NewWishlistService(wishlistRepo, productRepo)
	userID := uuid.New()

	require.NoError(t, svc.Add(context.Background(), userID, pid))
	require.NoError(t, svc.Add(context.Background(), userID, pid))

	items, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWishlistService_Add_ProductNotFound(t *testing.T) {
	svc := NewWishlistService(newMockWishlistRepo(), newMockProductRepo())
	err := svc.Add(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWishlistService_Remove_NotFound(t *testing.T) {
	svc := NewWishlistService(newMockWishlistRepo(), newMockProductRepo())
	err := svc.Remove(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
