package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loja-backend/internal/service"
)

type PaymentHandler struct {
	payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// POST /criar-pagamento-cartao
func (h *PaymentHandler) CreateCardPayment(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	secret, err := h.payments.CreateCardPayment(ctx, callerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
