package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/uwezo/shop-backend/internal/dto"
	"github.com/uwezo/shop-backend/internal/middleware"
	"github.com/uwezo/shop-backend/internal/service"
)

type WishlistHandler struct {
	svc *service.WishlistService
	log *slog.Logger
}

func NewWishlistHandler(svc *service.WishlistService, log *slog.Logger) *WishlistHandler {
	return &WishlistHandler{svc: svc, log: log}
}

func (h *WishlistHandler) List(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	items, err := h.svc.List(c.Request.Context(), identity.UserID)
	if err != nil {
		internalError(c, h.log, err)
		return
	}

	resp := dto.WishlistResponse{Items: make([]dto.WishlistItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.WishlistItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			AddedAt:   item.AddedAt,
		})
	}
	resp.Total = len(resp.Items)
	c.JSON(http.StatusOK, resp)
}

func (h *WishlistHandler) Add(c *gin.Context) {
	var req dto.AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.svc.Add(c.Request.Context(), identity.UserID, req.ProductID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "item added to wishlist"})
}

func (h *WishlistHandler) Remove(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.svc.Remove(c.Request.Context(), identity.UserID, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not in wishlist"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
