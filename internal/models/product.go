package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Nome      string             `bson:"nome" json:"nome"`
	Preco     float64            `bson:"preco" json:"preco"`
	URLFoto   string             `bson:"urlfoto" json:"urlfoto"`
	Descricao string             `bson:"descricao" json:"descricao"`
}

// ProductUpdate is a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Nome      *string  `json:"nome"`
	Preco     *float64 `json:"preco"`
	URLFoto   *string  `json:"urlfoto"`
	Descricao *string  `json:"descricao"`
}

func (u ProductUpdate) Empty() bool {
	return u.Nome == nil && u.Preco == nil && u.URLFoto == nil && u.Descricao == nil
}

// Fields returns the provided fields keyed by their document name.
func (u ProductUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Nome != nil {
		fields["nome"] = *u.Nome
	}
	if u.Preco != nil {
		fields["preco"] = *u.Preco
	}
	if u.URLFoto != nil {
		fields["urlfoto"] = *u.URLFoto
	}
	if u.Descricao != nil {
		fields["descricao"] = *u.Descricao
	}
	return fields
}

// Apply copies the provided fields onto p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Nome != nil {
		p.Nome = *u.Nome
	}
	if u.Preco != nil {
		p.Preco = *u.Preco
	}
	if u.URLFoto != nil {
		p.URLFoto = *u.URLFoto
	}
	if u.Descricao != nil {
		p.Descricao = *u.Descricao
	}
}
