package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"loja-backend/internal/apperr"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ParseID is the one place a client supplied identifier becomes a store id.
// Only the 24 character hex form of an ObjectID is accepted.
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil || id.IsZero() {
		return primitive.NilObjectID, apperr.Validation("identificador inválido: " + s)
	}
	return id, nil
}
