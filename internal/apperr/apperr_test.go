package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	base := NotFound("carrinho não encontrado")
	wrapped := fmt.Errorf("remove item: %w", base)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, "carrinho não encontrado", MessageOf(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(wrapped, KindForbidden))
}

func TestPlainErrorsAreInternal(t *testing.T) {
	err := errors.New("connection reset")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "erro interno do servidor", MessageOf(err))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("socket closed")
	err := Internal("erro ao salvar carrinho", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "erro ao salvar carrinho", MessageOf(err))
}

func TestStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindUnauthenticated: http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.Status(), kind.String())
	}
}
