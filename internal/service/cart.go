package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/uwezo/shop-backend/internal/model"
	"github.com/uwezo/shop-backend/internal/repository"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *CartService) List(ctx context.Context, userID uuid.UUID) ([]model.CartItem, decimal.Decimal, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("list cart: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return items, total, nil
}

func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.cartRepo.UpsertAdd(ctx, userID, productID, quantity)
}

func (s *CartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	err := s.cartRepo.SetQuantity(ctx, userID, productID, quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCartItemNotFound
	}
	return err
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	err := s.cartRepo.Remove(ctx, userID, productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCartItemNotFound
	}
	return err
}
