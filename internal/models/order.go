package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const OrderStatusPending = "pending"

// Order ("pedido") is a snapshot of a cart at checkout.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UsuarioID       primitive.ObjectID `bson:"usuarioId" json:"usuarioId"`
	Itens           []CartItem         `bson:"itens" json:"itens"`
	Total           float64            `bson:"total" json:"total"`
	Status          string             `bson:"status" json:"status"`
	DataCriacao     time.Time          `bson:"dataCriacao" json:"dataCriacao"`
	DataAtualizacao time.Time          `bson:"dataAtualizacao" json:"dataAtualizacao"`
}

// NewOrderFromCart copies the cart items so later cart mutations cannot
// reach into the order.
func NewOrderFromCart(c *Cart, now time.Time) *Order {
	items := make([]CartItem, len(c.Itens))
	copy(items, c.Itens)
	return &Order{
		UsuarioID:       c.UsuarioID,
		Itens:           items,
		Total:           SumItems(items),
		Status:          OrderStatusPending,
		DataCriacao:     now,
		DataAtualizacao: now,
	}
}

// MinorUnits converts an amount to integer cents.
func MinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
