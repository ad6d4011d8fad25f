package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"loja-backend/internal/apperr"
	"loja-backend/internal/models"
	"loja-backend/internal/payment"
	"loja-backend/internal/repository"
)

const paymentCurrency = "brl"

// PaymentService asks the provider for a card payment intent covering the
// caller's current cart. The outcome of the payment is not tracked.
type PaymentService struct {
	carts    repository.CartRepository
	provider payment.Provider
}

func NewPaymentService(carts repository.CartRepository, provider payment.Provider) *PaymentService {
	return &PaymentService{carts: carts, provider: provider}
}

func (s *PaymentService) CreateCardPayment(ctx context.Context, caller Caller) (string, error) {
	if err := caller.check(); err != nil {
		return "", err
	}
	cart, err := s.carts.FindByUser(ctx, caller.UserID)
	if err != nil {
		return "", storeErr("find cart", err, "carrinho não encontrado")
	}
	// recompute rather than trust the stored total
	amount := models.MinorUnits(models.SumItems(cart.Itens))
	if amount <= 0 {
		return "", apperr.Validation("carrinho vazio")
	}

	secret, err := s.provider.CreateIntent(ctx, payment.IntentRequest{
		Amount:   amount,
		Currency: paymentCurrency,
		Metadata: map[string]string{
			"usuarioId":  caller.UserID.Hex(),
			"carrinhoId": cart.ID.Hex(),
		},
	})
	if err != nil {
		return "", apperr.Internal("erro ao criar pagamento", fmt.Errorf("create intent: %w", err))
	}
	logrus.WithFields(logrus.Fields{
		"user_id": caller.UserID.Hex(),
		"cart_id": cart.ID.Hex(),
		"amount":  amount,
	}).Info("payment intent created")
	return secret, nil
}
