// Package access decides whether a caller may mutate a listing. Role
// checks live here instead of being string-compared in every handler.
package access

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotAllowed is returned on every denial so callers can answer with a
// not-authorized response instead of a server error.
var ErrNotAllowed = errors.New("not allowed")

type Role string

const (
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole maps the free-form role string stored on users into the
// closed set; anything unrecognized is a plain user.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAgent, RoleAdmin:
		return Role(s)
	default:
		return RoleUser
	}
}

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actor is the authenticated caller, as resolved by the JWT middleware.
type Actor struct {
	ID   primitive.ObjectID
	Role Role
}

// Authorize checks one action against one resource. Creation requires the
// agent role (the new listing's agent is forced to the actor, so there is
// no cross-agent creation). Updates and deletes require ownership or the
// admin role.
func Authorize(actor Actor, resourceAgent primitive.ObjectID, action Action) error {
	switch action {
	case ActionCreate:
		if actor.Role == RoleAgent {
			return nil
		}
	case ActionUpdate, ActionDelete:
		if actor.ID == resourceAgent || actor.Role == RoleAdmin {
			return nil
		}
	}
	return ErrNotAllowed
}
