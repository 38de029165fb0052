package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/uwezo/shop-backend/internal/dto"
	"github.com/uwezo/shop-backend/internal/model"
	"github.com/uwezo/shop-backend/internal/repository"
)

const topProductsLimit = 5

type AdminService struct {
	statsRepo repository.StatsRepository
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
}

func NewAdminService(statsRepo repository.StatsRepository, userRepo repository.UserRepository, orderRepo repository.OrderRepository) *AdminService {
	return &AdminService{statsRepo: statsRepo, userRepo: userRepo, orderRepo: orderRepo}
}

// Dashboard gathers the aggregate counts concurrently; the queries are
// independent and only their combined result matters.
func (s *AdminService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	var resp dto.DashboardResponse
	var top []model.ProductSales

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.Users, err = s.statsRepo.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Products, err = s.statsRepo.CountProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Orders, err = s.statsRepo.CountOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Revenue, err = s.statsRepo.Revenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		top, err = s.statsRepo.TopProducts(gctx, topProductsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	resp.TopProducts = make([]dto.TopProductResponse, 0, len(top))
	for _, p := range top {
		resp.TopProducts = append(resp.TopProducts, dto.TopProductResponse{
			ProductID: p.ProductID, Name: p.Name, TotalSold: p.TotalSold,
		})
	}
	return &resp, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *AdminService) ListOrders(ctx context.Context) ([]model.AdminOrder, error) {
	return s.orderRepo.ListAll(ctx)
}
