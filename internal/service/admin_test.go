package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwezo/shop-backend/internal/model"
)

type mockStatsRepo struct {
	users    int64
	products int64
	orders   int64
	revenue  decimal.Decimal
	top      []model.ProductSales
}

func (m *mockStatsRepo) CountUsers(_ context.Context) (int64, error)    { return m.users, nil }
func (m *mockStatsRepo) CountProducts(_ context.Context) (int64, error) { return m.products, nil }
func (m *mockStatsRepo) CountOrders(_ context.Context) (int64, error)   { return m.orders, nil }
func (m *mockStatsRepo) Revenue(_ context.Context) (decimal.Decimal, error) {
	return m.revenue, nil
}
func (m *mockStatsRepo) TopProducts(_ context.Context, limit int) ([]model.ProductSales, error) {
	if len(m.top) > limit {
		return m.top[:limit], nil
	}
	return m.top, nil
}

func TestAdminService_Dashboard(t *testing.T) {
	stats := &mockStatsRepo{
		users:    12,
		products: 40,
		orders:   7,
		revenue:  decimal.RequireFromString("349.50"),
		top: []model.ProductSales{
			{ProductID: uuid.New(), Name: "Kettle", TotalSold: 20},
			{ProductID: uuid.New(), Name: "Toaster", TotalSold: 11},
		},
	}
	svc := NewAdminService(stats, newMockUserRepo(), newMockOrderRepo(newMockCartRepo()))

	resp, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 12, resp.Users)
	assert.EqualValues(t, 40, resp.Products)
	assert.EqualValues(t, 7, resp.Orders)
	assert.True(t, resp.Revenue.Equal(decimal.RequireFromString("349.50")), "revenue = %s", resp.Revenue)
	require.Len(t, resp.TopProducts, 2)
	assert.Equal(t, "Kettle", resp.TopProducts[0].Name)
	assert.EqualValues(t, 20, resp.TopProducts[0].TotalSold)
}

func TestAdminService_Dashboard_EmptyStore(t *testing.T) {
	stats := &mockStatsRepo{revenue: decimal.Zero}
	svc := NewAdminService(stats, newMockUserRepo(), newMockOrderRepo(newMockCartRepo()))

	resp, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, resp.Users)
	assert.Zero(t, resp.Orders)
	assert.True(t, resp.Revenue.IsZero())
	assert.Empty(t, resp.TopProducts)
}
