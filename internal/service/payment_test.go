package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"loja-backend/internal/apperr"
	"loja-backend/internal/models"
	"loja-backend/internal/payment"
	"loja-backend/internal/repository/memory"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) CreateIntent(ctx context.Context, req payment.IntentRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func seedCart(t *testing.T, carts *memory.Carts, user primitive.ObjectID, items ...models.CartItem) *models.Cart {
	t.Helper()
	now := time.Now()
	c := models.NewCart(user, now)
	for _, it := range items {
		c.AddItem(it, now)
	}
	require.NoError(t, carts.Insert(context.Background(), c))
	return c
}

func TestCreateCardPayment(t *testing.T) {
	carts := memory.NewCarts()
	provider := new(mockProvider)
	svc := NewPaymentService(carts, provider)
	caller := Caller{UserID: primitive.NewObjectID(), Role: models.RoleUser}
	cart := seedCart(t, carts, caller.UserID,
		models.CartItem{ProdutoID: primitive.NewObjectID(), Quantidade: 2, PrecoUnitario: 19.99, Nome: "Caneca"},
		models.CartItem{ProdutoID: primitive.NewObjectID(), Quantidade: 1, PrecoUnitario: 0.1, Nome: "Adesivo"},
	)

	provider.On("CreateIntent", mock.Anything, payment.IntentRequest{
		Amount:   4008,
		Currency: "brl",
		Metadata: map[string]string{"usuarioId": caller.UserID.Hex(), "carrinhoId": cart.ID.Hex()},
	}).Return("pi_123_secret_abc", nil).Once()

	secret, err := svc.CreateCardPayment(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_abc", secret)
	provider.AssertExpectations(t)
}

func TestCreateCardPaymentRejectsEmptyCart(t *testing.T) {
	carts := memory.NewCarts()
	provider := new(mockProvider)
	svc := NewPaymentService(carts, provider)
	caller := Caller{UserID: primitive.NewObjectID(), Role: models.RoleUser}

	_, err := svc.CreateCardPayment(context.Background(), caller)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	seedCart(t, carts, caller.UserID)
	_, err = svc.CreateCardPayment(context.Background(), caller)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	provider.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything)
}

func TestCreateCardPaymentProviderFailure(t *testing.T) {
	carts := memory.NewCarts()
	provider := new(mockProvider)
	svc := NewPaymentService(carts, provider)
	caller := Caller{UserID: primitive.NewObjectID(), Role: models.RoleUser}
	seedCart(t, carts, caller.UserID, models.CartItem{ProdutoID: primitive.NewObjectID(), Quantidade: 1, PrecoUnitario: 5, Nome: "x"})

	provider.On("CreateIntent", mock.Anything, mock.Anything).Return("", errors.New("card_declined"))

	_, err := svc.CreateCardPayment(context.Background(), caller)
	assert.True(t, apperr.Is(err, apperr.KindInternal))
	assert.Equal(t, "erro ao criar pagamento", apperr.MessageOf(err))
}
