package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loja-backend/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// GET /pedidos
func (h *OrderHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	orders, err := h.orders.ListMine(ctx, callerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /pedidos/:id
func (h *OrderHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.orders.Get(ctx, callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
