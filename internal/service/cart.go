package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"loja-backend/internal/apperr"
	"loja-backend/internal/models"
	"loja-backend/internal/repository"
)

var errQuantidadeMaxima = apperr.Validation(fmt.Sprintf("quantidade máxima por item é %d", models.MaxQuantidade))

type AddItemInput struct {
	ProdutoID  string `json:"produtoId"`
	Quantidade int    `json:"quantidade"`
	// Accepted for compatibility with older clients and ignored: price and
	// name always come from the catalog.
	PrecoUnitario *float64 `json:"precoUnitario,omitempty"`
	Nome          string   `json:"nome,omitempty"`
}

type UpdateQuantityInput struct {
	ProdutoID  string `json:"produtoId"`
	Quantidade *int   `json:"quantidade"`
}

// FilteredItems is a read-only view; Total covers only the filtered items.
type FilteredItems struct {
	Itens            []models.CartItem      `json:"itens"`
	Total            float64                `json:"total"`
	FiltrosAplicados map[string]interface{} `json:"filtrosAplicados"`
}

// CartService owns the per-user cart aggregate. Every mutation is a
// read-modify-write guarded by the cart version, so a concurrent writer
// surfaces as a Conflict instead of a silently lost update.
type CartService struct {
	carts    repository.CartRepository
	orders   repository.OrderRepository
	products repository.ProductRepository
	now      func() time.Time
}

func NewCartService(carts repository.CartRepository, orders repository.OrderRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, orders: orders, products: products, now: time.Now}
}

// AddItem adds quantidade units of a catalog product to the caller's cart,
// creating the cart on first use. The bool reports whether it was created.
func (s *CartService) AddItem(ctx context.Context, caller Caller, in AddItemInput) (*models.Cart, bool, error) {
	if err := caller.check(); err != nil {
		return nil, false, err
	}
	if in.ProdutoID == "" || in.Quantidade == 0 {
		return nil, false, apperr.Validation("produtoId e quantidade são obrigatórios")
	}
	if in.Quantidade < 1 {
		return nil, false, apperr.Validation("quantidade deve ser maior que zero")
	}
	if in.Quantidade > models.MaxQuantidade {
		return nil, false, errQuantidadeMaxima
	}
	productID, err := models.ParseID(in.ProdutoID)
	if err != nil {
		return nil, false, err
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, false, storeErr("find product", err, "produto não encontrado")
	}

	now := s.now()
	item := models.CartItem{
		ProdutoID:     product.ID,
		Quantidade:    in.Quantidade,
		PrecoUnitario: product.Preco,
		Nome:          product.Nome,
	}

	cart, err := s.carts.FindByUser(ctx, caller.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		cart = models.NewCart(caller.UserID, now)
		cart.AddItem(item, now)
		if err := s.carts.Insert(ctx, cart); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, false, apperr.Conflict("o carrinho foi alterado por outra requisição, tente novamente")
			}
			return nil, false, storeErr("insert cart", err, "")
		}
		logrus.WithFields(logrus.Fields{
			"user_id": caller.UserID.Hex(),
			"cart_id": cart.ID.Hex(),
		}).Info("cart created")
		return cart, true, nil
	}
	if err != nil {
		return nil, false, storeErr("find cart", err, "")
	}

	// both operands are capped, so the sum cannot overflow
	if i := cart.IndexOf(item.ProdutoID); i >= 0 && cart.Itens[i].Quantidade+item.Quantidade > models.MaxQuantidade {
		return nil, false, errQuantidadeMaxima
	}
	cart.AddItem(item, now)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, false, storeErr("save cart", err, "carrinho não encontrado")
	}
	return cart, false, nil
}

// Get returns the caller's cart, or an empty unsaved cart if none exists.
func (s *CartService) Get(ctx context.Context, caller Caller) (*models.Cart, error) {
	if err := caller.check(); err != nil {
		return nil, err
	}
	cart, err := s.carts.FindByUser(ctx, caller.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewCart(caller.UserID, s.now()), nil
	}
	if err != nil {
		return nil, storeErr("find cart", err, "")
	}
	return cart, nil
}

func (s *CartService) ListFiltered(ctx context.Context, caller Caller, f models.ItemFilter) (*FilteredItems, error) {
	cart, err := s.Get(ctx, caller)
	if err != nil {
		return nil, err
	}
	items := f.Apply(cart.Itens)
	return &FilteredItems{
		Itens:            items,
		Total:            models.SumItems(items),
		FiltrosAplicados: f.Applied(),
	}, nil
}

// loadOwned fetches a cart by id and enforces the ownership rule.
func (s *CartService) loadOwned(ctx context.Context, caller Caller, cartID string) (*models.Cart, error) {
	if err := caller.check(); err != nil {
		return nil, err
	}
	id, err := models.ParseID(cartID)
	if err != nil {
		return nil, err
	}
	cart, err := s.carts.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find cart", err, "carrinho não encontrado")
	}
	if !caller.IsAdmin() && !cart.OwnedBy(caller.UserID) {
		return nil, apperr.Forbidden("você não tem permissão para alterar este carrinho")
	}
	return cart, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, caller Caller, cartID string, in UpdateQuantityInput) (*models.Cart, error) {
	if in.ProdutoID == "" || in.Quantidade == nil {
		return nil, apperr.Validation("produtoId e quantidade são obrigatórios")
	}
	if *in.Quantidade < 1 {
		return nil, apperr.Validation("quantidade deve ser maior que zero")
	}
	if *in.Quantidade > models.MaxQuantidade {
		return nil, errQuantidadeMaxima
	}
	productID, err := models.ParseID(in.ProdutoID)
	if err != nil {
		return nil, err
	}
	cart, err := s.loadOwned(ctx, caller, cartID)
	if err != nil {
		return nil, err
	}
	if cart.IndexOf(productID) < 0 {
		return nil, apperr.NotFound("item não encontrado no carrinho")
	}

	cart.SetQuantity(productID, *in.Quantidade, s.now())
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, storeErr("save cart", err, "carrinho não encontrado")
	}
	return cart, nil
}

// RemoveItem drops one line item. The cart document survives even when it
// becomes empty.
func (s *CartService) RemoveItem(ctx context.Context, caller Caller, cartID, productID string) (*models.Cart, error) {
	pid, err := models.ParseID(productID)
	if err != nil {
		return nil, err
	}
	cart, err := s.loadOwned(ctx, caller, cartID)
	if err != nil {
		return nil, err
	}
	if !cart.RemoveItem(pid, s.now()) {
		return nil, apperr.NotFound("item não encontrado no carrinho")
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, storeErr("save cart", err, "carrinho não encontrado")
	}
	return cart, nil
}

func (s *CartService) RemoveCart(ctx context.Context, caller Caller, cartID string) error {
	cart, err := s.loadOwned(ctx, caller, cartID)
	if err != nil {
		return err
	}
	if err := s.carts.Delete(ctx, cart.ID); err != nil {
		return storeErr("delete cart", err, "carrinho não encontrado")
	}
	logrus.WithFields(logrus.Fields{
		"cart_id":  cart.ID.Hex(),
		"actor_id": caller.UserID.Hex(),
	}).Info("cart removed")
	return nil
}

// ListAll is the admin view over every cart.
func (s *CartService) ListAll(ctx context.Context) ([]models.Cart, error) {
	carts, err := s.carts.List(ctx)
	if err != nil {
		return nil, storeErr("list carts", err, "")
	}
	return carts, nil
}

// Checkout snapshots the caller's cart into a pending order and then
// empties the cart. The two writes are not atomic: if clearing the cart
// fails the order already exists and the failure is logged with both ids.
func (s *CartService) Checkout(ctx context.Context, caller Caller, cartID string) (*models.Order, error) {
	if err := caller.check(); err != nil {
		return nil, err
	}
	id, err := models.ParseID(cartID)
	if err != nil {
		return nil, err
	}
	cart, err := s.carts.FindByIDAndUser(ctx, id, caller.UserID)
	if err != nil {
		return nil, storeErr("find cart", err, "carrinho não encontrado")
	}
	if len(cart.Itens) == 0 {
		return nil, apperr.Validation("carrinho vazio")
	}

	now := s.now()
	order := models.NewOrderFromCart(cart, now)
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, storeErr("insert order", err, "")
	}

	cart.Clear(now)
	if err := s.carts.Save(ctx, cart); err != nil {
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID.Hex(),
			"cart_id":  cart.ID.Hex(),
			"error":    err.Error(),
		}).Error("order created but cart was not cleared")
		return nil, storeErr("clear cart", err, "carrinho não encontrado")
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID.Hex(),
		"cart_id":  cart.ID.Hex(),
		"user_id":  caller.UserID.Hex(),
		"total":    order.Total,
		"items":    len(order.Itens),
	}).Info("checkout completed")
	return order, nil
}
