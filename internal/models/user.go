package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Nome  string             `bson:"nome" json:"nome"`
	Idade int                `bson:"idade" json:"idade"`
	Email string             `bson:"email" json:"email"`
	Senha string             `bson:"senha" json:"-"` // bcrypt hash
	Role  string             `bson:"role" json:"role"`
}
