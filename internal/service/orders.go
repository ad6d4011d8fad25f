package service

import (
	"context"

	"loja-backend/internal/apperr"
	"loja-backend/internal/models"
	"loja-backend/internal/repository"
)

// OrderService is read-only: orders are written by CartService.Checkout and
// never transition past "pending" here.
type OrderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

func (s *OrderService) ListMine(ctx context.Context, caller Caller) ([]models.Order, error) {
	if err := caller.check(); err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, storeErr("list orders", err, "")
	}
	return orders, nil
}

// Get returns an order owned by the caller. Other users' orders look
// absent rather than forbidden; admins can read any order.
func (s *OrderService) Get(ctx context.Context, caller Caller, id string) (*models.Order, error) {
	if err := caller.check(); err != nil {
		return nil, err
	}
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, storeErr("find order", err, "pedido não encontrado")
	}
	if !caller.IsAdmin() && order.UsuarioID != caller.UserID {
		return nil, apperr.NotFound("pedido não encontrado")
	}
	return order, nil
}
