package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"loja-backend/internal/apperr"
	"loja-backend/internal/models"
	"loja-backend/internal/repository"
)

const (
	productListKey = "produtos:all"
	productListTTL = 5 * time.Minute
)

// ProductCache is the subset of cache.Redis the catalog needs.
type ProductCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type ProductInput struct {
	Nome      string   `json:"nome"`
	Preco     *float64 `json:"preco"`
	URLFoto   string   `json:"urlfoto"`
	Descricao string   `json:"descricao"`
}

type CatalogService struct {
	products repository.ProductRepository
	cache    ProductCache // nil disables caching
}

func NewCatalogService(products repository.ProductRepository, cache ProductCache) *CatalogService {
	return &CatalogService{products: products, cache: cache}
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Nome) == "" || in.Preco == nil || in.URLFoto == "" || in.Descricao == "" {
		return nil, apperr.Validation("todos os campos são obrigatórios")
	}
	if *in.Preco < 0 {
		return nil, apperr.Validation("preço não pode ser negativo")
	}
	p := &models.Product{
		Nome:      strings.TrimSpace(in.Nome),
		Preco:     *in.Preco,
		URLFoto:   in.URLFoto,
		Descricao: in.Descricao,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, storeErr("create product", err, "")
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		var cached []models.Product
		hit, err := s.cache.Get(ctx, productListKey, &cached)
		if err != nil {
			logrus.WithError(err).Warn("product cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, storeErr("list products", err, "")
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, productListKey, products, productListTTL); err != nil {
			logrus.WithError(err).Warn("product cache write failed")
		}
	}
	return products, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return nil, storeErr("find product", err, "produto não encontrado")
	}
	return p, nil
}

// Update applies only the fields present in u.
func (s *CatalogService) Update(ctx context.Context, id string, u models.ProductUpdate) (*models.Product, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}
	if u.Empty() {
		return nil, apperr.Validation("nenhum campo para atualizar")
	}
	if u.Preco != nil && *u.Preco < 0 {
		return nil, apperr.Validation("preço não pode ser negativo")
	}
	if u.Nome != nil {
		nome := strings.TrimSpace(*u.Nome)
		if nome == "" {
			return nil, apperr.Validation("nome não pode ser vazio")
		}
		u.Nome = &nome
	}
	p, err := s.products.Update(ctx, oid, u)
	if err != nil {
		return nil, storeErr("update product", err, "produto não encontrado")
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	oid, err := models.ParseID(id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, oid); err != nil {
		return storeErr("delete product", err, "produto não encontrado")
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, productListKey); err != nil {
		logrus.WithError(err).Warn("product cache invalidation failed")
	}
}
