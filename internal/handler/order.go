package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelune/storefront/internal/dto"
	"github.com/avelune/storefront/internal/store"
	"github.com/avelune/storefront/internal/worker"
)

type OrderHandler struct {
	store     *store.Store
	publisher *worker.Publisher
}

func NewOrderHandler(store *store.Store, publisher *worker.Publisher) *OrderHandler {
	return &OrderHandler{store: store, publisher: publisher}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, ok := h.store.CreateOrder(req.ToCustomer())
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
		return
	}

	// Hand off to fulfillment, fire-and-forget.
	h.publisher.OrderCreated(c.Request.Context(), order)

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders := h.store.GetAllOrders()
	c.JSON(http.StatusOK, dto.OrderListResponse{Orders: orders, Total: len(orders)})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, ok := h.store.GetOrder(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orderID := c.Param("id")
	if _, ok := h.store.GetOrder(orderID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	h.store.UpdateOrderStatus(orderID, req.Status)
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}
