// Package authz holds the pure authorization rules for boards and pins.
// Decisions are made over an already-loaded resource and the requesting
// actor; nothing here touches the store.
package authz

import (
	"pinboard/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actor is the identity behind a request. A zero ID means the request is
// unauthenticated (public routes with optional auth).
type Actor struct {
	ID   primitive.ObjectID
	Role string
}

func (a Actor) Authenticated() bool {
	return !a.ID.IsZero()
}

// CanReadBoard allows anyone on a public board and only the owner on a
// private one.
func CanReadBoard(a Actor, b *model.Board) bool {
	if !b.IsPrivate {
		return true
	}
	return a.Authenticated() && a.ID == b.CreatedBy
}

// CanWriteBoard covers update, delete and pinning into the board.
func CanWriteBoard(a Actor, b *model.Board) bool {
	return a.Authenticated() && a.ID == b.CreatedBy
}

// CanWritePin covers update and delete. Pin reads are unrestricted: pins
// carry no privacy flag, unlike boards.
func CanWritePin(a Actor, p *model.Pin) bool {
	return a.Authenticated() && a.ID == p.CreatedBy
}
