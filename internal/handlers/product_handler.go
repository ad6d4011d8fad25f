package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loja-backend/internal/models"
	"loja-backend/internal/service"
)

type ProductHandler struct {
	catalog *service.CatalogService
}

func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// GET /produtos
func (h *ProductHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := h.catalog.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /produtos/:id
func (h *ProductHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := h.catalog.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /produtos
func (h *ProductHandler) Create(c *gin.Context) {
	var req service.ProductInput
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := h.catalog.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PUT /produtos/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var req models.ProductUpdate
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := h.catalog.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /produtos/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.catalog.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	message(c, "produto removido com sucesso")
}
