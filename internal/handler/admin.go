package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uwezo/shop-backend/internal/dto"
	"github.com/uwezo/shop-backend/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
	log          *slog.Logger
}

func NewAdminHandler(adminService *service.AdminService, log *slog.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, log: log}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	resp, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err)
		return
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": items, "total": len(items)})
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.adminService.ListOrders(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err)
		return
	}

	items := make([]dto.AdminOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, dto.AdminOrderResponse{
			OrderResponse: toOrderResponse(&orders[i].Order),
			UserID:        orders[i].UserID,
			UserName:      orders[i].UserName,
			UserEmail:     orders[i].UserEmail,
		})
	}
	c.JSON(http.StatusOK, gin.H{"orders": items, "total": len(items)})
}
