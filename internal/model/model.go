package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID        uuid.UUID
	Name      string
	Price     decimal.Decimal
	ImageURL  string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WishlistItem is a (user, product) membership row joined against the live
// product record for display.
type WishlistItem struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Name      string
	Price     decimal.Decimal
	ImageURL  string
	AddedAt   time.Time
}

// CartItem holds one row per (user, product); repeated adds accumulate into
// Quantity instead of duplicating the row.
type CartItem struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Name      string
	Price     decimal.Decimal
	UpdatedAt time.Time
}

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

type Order struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Status      OrderStatus
	TotalAmount decimal.Decimal
	Items       []OrderItem
	CreatedAt   time.Time
}

// OrderItem.Price is the product price captured at placement time; later
// product price changes never touch it.
type OrderItem struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
}

// AdminOrder is an order joined to the purchasing user for the admin view.
type AdminOrder struct {
	Order
	UserName  string
	UserEmail string
}

type ProductSales struct {
	ProductID uuid.UUID
	Name      string
	TotalSold int64
}

type OrderPlacedMessage struct {
	OrderID uuid.UUID `json:"order_id"`
	UserID  uuid.UUID `json:"user_id"`
}
