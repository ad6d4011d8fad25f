package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"loja-backend/internal/apperr"
	"loja-backend/internal/models"
	"loja-backend/internal/service"
)

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// POST /carrinho
// 201 when the cart was created by this call, 200 when an existing cart grew.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req service.AddItemInput
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	cart, created, err := h.carts.AddItem(ctx, callerFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, cart)
}

// GET /carrinho
func (h *CartHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	cart, err := h.carts.Get(ctx, callerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// GET /carrinho/filtrar
func (h *CartHandler) Filter(c *gin.Context) {
	f, err := parseItemFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := h.carts.ListFiltered(ctx, callerFrom(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /carrinho/:id
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req service.UpdateQuantityInput
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	cart, err := h.carts.UpdateQuantity(ctx, callerFrom(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// DELETE /carrinho/:id
func (h *CartHandler) RemoveCart(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.carts.RemoveCart(ctx, callerFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	message(c, "carrinho removido com sucesso")
}

// DELETE /carrinho/:id/item/:itemId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	cart, err := h.carts.RemoveItem(ctx, callerFrom(c), c.Param("id"), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// GET /admin/carrinhos
func (h *CartHandler) ListAll(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	carts, err := h.carts.ListAll(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carts)
}

// POST /carrinho/:carrinhoId/finalizar
func (h *CartHandler) Checkout(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := h.carts.Checkout(ctx, callerFrom(c), c.Param("carrinhoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "pedido criado com sucesso",
		"pedido":  order,
	})
}

func parseItemFilter(c *gin.Context) (models.ItemFilter, error) {
	f := models.ItemFilter{Nome: strings.TrimSpace(c.Query("nome"))}
	var err error
	if f.PrecoMin, err = queryFloat(c, "precoMin"); err != nil {
		return f, err
	}
	if f.PrecoMax, err = queryFloat(c, "precoMax"); err != nil {
		return f, err
	}
	if f.QuantidadeMin, err = queryInt(c, "quantidadeMin"); err != nil {
		return f, err
	}
	if f.QuantidadeMax, err = queryInt(c, "quantidadeMax"); err != nil {
		return f, err
	}
	return f, nil
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperr.Validation(key + " deve ser um número")
	}
	return &v, nil
}

func queryInt(c *gin.Context, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.Validation(key + " deve ser um número inteiro")
	}
	return &v, nil
}
