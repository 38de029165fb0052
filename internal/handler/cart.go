package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/uwezo/shop-backend/internal/dto"
	"github.com/uwezo/shop-backend/internal/middleware"
	"github.com/uwezo/shop-backend/internal/service"
)

type CartHandler struct {
	svc *service.CartService
	log *slog.Logger
}

func NewCartHandler(svc *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{svc: svc, log: log}
}

func (h *CartHandler) List(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	items, total, err := h.svc.List(c.Request.Context(), identity.UserID)
	if err != nil {
		internalError(c, h.log, err)
		return
	}

	resp := dto.CartResponse{Items: make([]dto.CartItemResponse, 0, len(items)), Total: total}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Price.Mul(decimalFromInt(item.Quantity)),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.svc.AddItem(c.Request.Context(), identity.UserID, req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "item added to cart"})
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req dto.SetCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.svc.SetQuantity(c.Request.Context(), identity.UserID, req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
}

func (h *CartHandler) Remove(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	identity := middleware.GetIdentity(c)
	if err := h.svc.RemoveItem(c.Request.Context(), identity.UserID, productID); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
