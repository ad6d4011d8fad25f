package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"loja-backend/internal/apperr"
)

func item(price float64, qty int, name string) CartItem {
	return CartItem{ProdutoID: primitive.NewObjectID(), PrecoUnitario: price, Quantidade: qty, Nome: name}
}

func TestAddItemMergesSameProduct(t *testing.T) {
	now := time.Now()
	c := NewCart(primitive.NewObjectID(), now)
	a := item(10.5, 2, "Caneca")
	b := item(3.25, 1, "Adesivo")

	c.AddItem(a, now)
	c.AddItem(b, now)
	assert.Len(t, c.Itens, 2)
	assert.Equal(t, 24.25, c.Total)

	again := a
	again.Quantidade = 3
	again.PrecoUnitario = 99
	again.Nome = "outro nome"
	c.AddItem(again, now)

	require.Len(t, c.Itens, 2)
	assert.Equal(t, 5, c.Itens[0].Quantidade)
	assert.Equal(t, 10.5, c.Itens[0].PrecoUnitario, "price is first-write-wins")
	assert.Equal(t, "Caneca", c.Itens[0].Nome)
	assert.Equal(t, 55.75, c.Total)
}

func TestTotalNeverDrifts(t *testing.T) {
	now := time.Now()
	c := NewCart(primitive.NewObjectID(), now)
	items := []CartItem{item(0.1, 3, "a"), item(0.2, 7, "b"), item(19.99, 1, "c")}
	for _, it := range items {
		c.AddItem(it, now)
	}
	for i := 0; i < 50; i++ {
		c.SetQuantity(items[0].ProdutoID, i%5+1, now)
		c.AddItem(items[1], now)
		c.RemoveItem(items[2].ProdutoID, now)
		c.AddItem(items[2], now)
	}
	assert.Equal(t, SumItems(c.Itens), c.Total)
}

func TestSetQuantityUnknownProduct(t *testing.T) {
	now := time.Now()
	c := NewCart(primitive.NewObjectID(), now)
	c.AddItem(item(5, 1, "x"), now)

	ok := c.SetQuantity(primitive.NewObjectID(), 4, now)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Itens[0].Quantidade)
	assert.Equal(t, 5.0, c.Total)
}

func TestRemoveItemTwice(t *testing.T) {
	now := time.Now()
	c := NewCart(primitive.NewObjectID(), now)
	keep := item(2, 2, "keep")
	drop := item(7, 3, "drop")
	c.AddItem(keep, now)
	c.AddItem(drop, now)
	require.Equal(t, 25.0, c.Total)

	assert.True(t, c.RemoveItem(drop.ProdutoID, now))
	assert.Equal(t, 4.0, c.Total)
	assert.False(t, c.RemoveItem(drop.ProdutoID, now))
	assert.Len(t, c.Itens, 1)
}

func TestClearKeepsIdentity(t *testing.T) {
	now := time.Now()
	c := NewCart(primitive.NewObjectID(), now)
	c.ID = primitive.NewObjectID()
	c.AddItem(item(4, 4, "x"), now)

	c.Clear(now)
	assert.NotNil(t, c.Itens)
	assert.Empty(t, c.Itens)
	assert.Zero(t, c.Total)
	assert.False(t, c.ID.IsZero())
}

func TestItemFilterPriceRange(t *testing.T) {
	items := []CartItem{item(5, 1, "Barato"), item(15, 2, "Médio"), item(25, 1, "Caro")}
	min, max := 10.0, 20.0
	f := ItemFilter{PrecoMin: &min, PrecoMax: &max}

	got := f.Apply(items)
	require.Len(t, got, 1)
	assert.Equal(t, "Médio", got[0].Nome)
	assert.Equal(t, 30.0, SumItems(got))
	assert.Equal(t, map[string]interface{}{"precoMin": 10.0, "precoMax": 20.0}, f.Applied())
}

func TestItemFilterNameAndQuantity(t *testing.T) {
	items := []CartItem{item(1, 1, "Camiseta Azul"), item(1, 5, "camiseta verde"), item(1, 9, "Boné")}
	qmin := 2
	f := ItemFilter{Nome: "CAMISETA", QuantidadeMin: &qmin}

	got := f.Apply(items)
	require.Len(t, got, 1)
	assert.Equal(t, "camiseta verde", got[0].Nome)
}

func TestItemFilterEmptyResultIsNotNil(t *testing.T) {
	max := 0.5
	got := ItemFilter{PrecoMax: &max}.Apply([]CartItem{item(1, 1, "x")})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNewOrderFromCartCopiesItems(t *testing.T) {
	now := time.Now()
	c := NewCart(primitive.NewObjectID(), now)
	c.AddItem(item(12.5, 2, "x"), now)
	c.AddItem(item(1, 1, "y"), now)

	o := NewOrderFromCart(c, now)
	c.Clear(now)

	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Len(t, o.Itens, 2)
	assert.Equal(t, 26.0, o.Total)
	assert.Equal(t, c.UsuarioID, o.UsuarioID)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), MinorUnits(19.99))
	assert.Equal(t, int64(30), MinorUnits(0.1+0.2))
	assert.Equal(t, int64(0), MinorUnits(0))
}

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := ParseID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	for _, bad := range []string{"", "123", "not-an-object-id-at-all!", "000000000000000000000000"} {
		_, err := ParseID(bad)
		assert.True(t, apperr.Is(err, apperr.KindValidation), bad)
	}
}

func TestProductUpdate(t *testing.T) {
	nome := "Novo"
	preco := 9.9
	u := ProductUpdate{Nome: &nome, Preco: &preco}
	p := Product{Nome: "Velho", Preco: 1, URLFoto: "http://x/foto.png", Descricao: "d"}

	u.Apply(&p)
	assert.Equal(t, "Novo", p.Nome)
	assert.Equal(t, 9.9, p.Preco)
	assert.Equal(t, "http://x/foto.png", p.URLFoto)
	assert.Equal(t, map[string]interface{}{"nome": "Novo", "preco": 9.9}, u.Fields())
	assert.False(t, u.Empty())
	assert.True(t, ProductUpdate{}.Empty())
}
