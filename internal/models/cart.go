package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxQuantidade caps the quantity of a single cart line.
const MaxQuantidade = 10000

// CartItem is embedded in a cart. Price and name are captured when the
// product is first added and never refreshed from the catalog.
type CartItem struct {
	ProdutoID     primitive.ObjectID `bson:"produtoId" json:"produtoId"`
	Quantidade    int                `bson:"quantidade" json:"quantidade"`
	PrecoUnitario float64            `bson:"precoUnitario" json:"precoUnitario"`
	Nome          string             `bson:"nome" json:"nome"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.PrecoUnitario).Mul(decimal.NewFromInt(int64(i.Quantidade)))
}

// Cart is the per-user aggregate. Total is denormalised and rebuilt from
// Itens on every mutation. Versao guards against lost updates.
type Cart struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UsuarioID       primitive.ObjectID `bson:"usuarioId" json:"usuarioId"`
	Itens           []CartItem         `bson:"itens" json:"itens"`
	Total           float64            `bson:"total" json:"total"`
	Versao          int64              `bson:"versao" json:"-"`
	DataAtualizacao time.Time          `bson:"dataAtualizacao" json:"dataAtualizacao"`
}

// NewCart returns an empty cart for userID.
func NewCart(userID primitive.ObjectID, now time.Time) *Cart {
	return &Cart{
		UsuarioID:       userID,
		Itens:           []CartItem{},
		DataAtualizacao: now,
	}
}

// SumItems returns Σ(precoUnitario × quantidade), rounded to cents.
func SumItems(items []CartItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total.Round(2).InexactFloat64()
}

func (c *Cart) OwnedBy(userID primitive.ObjectID) bool {
	return c.UsuarioID == userID
}

func (c *Cart) Recalculate() {
	c.Total = SumItems(c.Itens)
}

func (c *Cart) IndexOf(productID primitive.ObjectID) int {
	for i, it := range c.Itens {
		if it.ProdutoID == productID {
			return i
		}
	}
	return -1
}

// AddItem merges item into the cart. An existing line for the same product
// only has its quantity increased.
func (c *Cart) AddItem(item CartItem, now time.Time) {
	if i := c.IndexOf(item.ProdutoID); i >= 0 {
		c.Itens[i].Quantidade += item.Quantidade
	} else {
		c.Itens = append(c.Itens, item)
	}
	c.touch(now)
}

// SetQuantity overwrites the quantity of productID. It reports false when
// the product is not in the cart.
func (c *Cart) SetQuantity(productID primitive.ObjectID, qty int, now time.Time) bool {
	i := c.IndexOf(productID)
	if i < 0 {
		return false
	}
	c.Itens[i].Quantidade = qty
	c.touch(now)
	return true
}

// RemoveItem filters productID out and reports whether anything was removed.
func (c *Cart) RemoveItem(productID primitive.ObjectID, now time.Time) bool {
	kept := make([]CartItem, 0, len(c.Itens))
	for _, it := range c.Itens {
		if it.ProdutoID != productID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(c.Itens) {
		return false
	}
	c.Itens = kept
	c.touch(now)
	return true
}

// Clear empties the cart but keeps the document.
func (c *Cart) Clear(now time.Time) {
	c.Itens = []CartItem{}
	c.touch(now)
}

func (c *Cart) touch(now time.Time) {
	c.Recalculate()
	c.DataAtualizacao = now
}

// ItemFilter is a conjunction of optional predicates over cart items.
type ItemFilter struct {
	Nome          string
	PrecoMin      *float64
	PrecoMax      *float64
	QuantidadeMin *int
	QuantidadeMax *int
}

func (f ItemFilter) Match(it CartItem) bool {
	if f.Nome != "" && !strings.Contains(strings.ToLower(it.Nome), strings.ToLower(f.Nome)) {
		return false
	}
	if f.PrecoMin != nil && it.PrecoUnitario < *f.PrecoMin {
		return false
	}
	if f.PrecoMax != nil && it.PrecoUnitario > *f.PrecoMax {
		return false
	}
	if f.QuantidadeMin != nil && it.Quantidade < *f.QuantidadeMin {
		return false
	}
	if f.QuantidadeMax != nil && it.Quantidade > *f.QuantidadeMax {
		return false
	}
	return true
}

func (f ItemFilter) Apply(items []CartItem) []CartItem {
	out := []CartItem{}
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Applied lists the filters that were actually set, for echoing back.
func (f ItemFilter) Applied() map[string]interface{} {
	applied := map[string]interface{}{}
	if f.Nome != "" {
		applied["nome"] = f.Nome
	}
	if f.PrecoMin != nil {
		applied["precoMin"] = *f.PrecoMin
	}
	if f.PrecoMax != nil {
		applied["precoMax"] = *f.PrecoMax
	}
	if f.QuantidadeMin != nil {
		applied["quantidadeMin"] = *f.QuantidadeMin
	}
	if f.QuantidadeMax != nil {
		applied["quantidadeMax"] = *f.QuantidadeMax
	}
	return applied
}
