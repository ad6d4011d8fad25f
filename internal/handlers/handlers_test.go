package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loja-backend/internal/apperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{apperr.Validation("quantidade inválida"), http.StatusBadRequest, `{"erro":"quantidade inválida"}`},
		{apperr.Unauthenticated("x"), http.StatusUnauthorized, `{"erro":"x"}`},
		{apperr.Forbidden("x"), http.StatusForbidden, `{"erro":"x"}`},
		{apperr.NotFound("x"), http.StatusNotFound, `{"erro":"x"}`},
		{apperr.Conflict("x"), http.StatusConflict, `{"erro":"x"}`},
		{apperr.Internal("falhou", errors.New("connection reset by peer")), http.StatusInternalServerError, `{"erro":"falhou"}`},
		{errors.New("raw driver error"), http.StatusInternalServerError, `{"erro":"erro interno do servidor"}`},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.JSONEq(t, tc.body, w.Body.String())
	}
}

func filterFrom(t *testing.T, query string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/carrinho/filtrar?"+query, nil)
	return c, w
}

func TestParseItemFilter(t *testing.T) {
	c, _ := filterFrom(t, "nome=+caneca+&precoMin=5&precoMax=15.5&quantidadeMin=1&quantidadeMax=3")
	f, err := parseItemFilter(c)
	require.NoError(t, err)
	assert.Equal(t, "caneca", f.Nome)
	require.NotNil(t, f.PrecoMin)
	assert.Equal(t, 5.0, *f.PrecoMin)
	require.NotNil(t, f.PrecoMax)
	assert.Equal(t, 15.5, *f.PrecoMax)
	require.NotNil(t, f.QuantidadeMin)
	assert.Equal(t, 1, *f.QuantidadeMin)
	require.NotNil(t, f.QuantidadeMax)
	assert.Equal(t, 3, *f.QuantidadeMax)

	c, _ = filterFrom(t, "")
	f, err = parseItemFilter(c)
	require.NoError(t, err)
	assert.Nil(t, f.PrecoMin)
	assert.Empty(t, f.Applied())
}

func TestParseItemFilterRejectsMalformedNumbers(t *testing.T) {
	for _, q := range []string{
		"precoMin=abc", "precoMax=1,5", "quantidadeMin=1.5", "quantidadeMax=x",
		"precoMin=NaN", "precoMax=Inf", "precoMin=-Infinity", "precoMax=%2BInf",
	} {
		c, _ := filterFrom(t, q)
		_, err := parseItemFilter(c)
		assert.True(t, apperr.Is(err, apperr.KindValidation), q)
	}
}
