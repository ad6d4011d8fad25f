package service

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"loja-backend/internal/apperr"
	"loja-backend/internal/models"
	"loja-backend/internal/repository"
)

// Caller is the authenticated identity a request runs as.
type Caller struct {
	UserID primitive.ObjectID
	Role   string
}

func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

func (c Caller) check() error {
	if c.UserID.IsZero() {
		return apperr.Unauthenticated("usuário não autenticado")
	}
	return nil
}

// storeErr translates repository errors into the application taxonomy.
func storeErr(op string, err error, notFound string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(notFound)
	case errors.Is(err, repository.ErrVersionConflict):
		return apperr.Conflict("o carrinho foi alterado por outra requisição, tente novamente")
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict("registro duplicado")
	default:
		return apperr.Internal("erro interno ao acessar o banco de dados", fmt.Errorf("%s: %w", op, err))
	}
}
