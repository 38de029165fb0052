package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/uwezo/shop-backend/internal/model"
)

type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
	TopProducts(ctx context.Context, limit int) ([]model.ProductSales, error)
}

type pgStatsRepo struct{ pool *pgxpool.Pool }

func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &pgStatsRepo{pool: pool}
}

func (r *pgStatsRepo) count(ctx context.Context, query, what string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", what, err)
	}
	return n, nil
}

func (r *pgStatsRepo) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`, "users")
}

func (r *pgStatsRepo) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products`, "products")
}

func (r *pgStatsRepo) CountOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM orders`, "orders")
}

func (r *pgStatsRepo) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM orders`,
	).Scan(&revenue)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum revenue: %w", err)
	}
	return revenue, nil
}

// TopProducts ranks by quantity sold; ties break on product id so the
// ordering is deterministic rather than store-dependent.
func (r *pgStatsRepo) TopProducts(ctx context.Context, limit int) ([]model.ProductSales, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT oi.product_id, p.name, SUM(oi.quantity) AS total_sold
		 FROM order_items oi JOIN products p ON p.id = oi.product_id
		 GROUP BY oi.product_id, p.name
		 ORDER BY total_sold DESC, oi.product_id ASC
		 LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var top []model.ProductSales
	for rows.Next() {
		var s model.ProductSales
		if err := rows.Scan(&s.ProductID, &s.Name, &s.TotalSold); err != nil {
			return nil, fmt.Errorf("scan product sales: %w", err)
		}
		top = append(top, s)
	}
	return top, rows.Err()
}
