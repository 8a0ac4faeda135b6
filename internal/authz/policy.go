// Package authz holds the single ownership policy for contact access.
// Every handler that reads or mutates a contact consults these functions
// instead of carrying its own inline role check, so the rules cannot drift
// between routes. All functions are pure: no database access, no clock.
package authz

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

var (
	// ErrForbidden means the actor is authenticated but not permitted.
	ErrForbidden = errors.New("access denied")
	// ErrBadOwner means a requested owner id is not a valid object id.
	ErrBadOwner = errors.New("invalid owner id")
)

// Actor is the authenticated identity performing a request.
type Actor struct {
	UserID primitive.ObjectID
	Role   models.Role
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanAccess decides whether the actor may read or mutate a resource owned
// by ownerID. Admins may touch every resource; employees only their own.
func CanAccess(actor Actor, ownerID primitive.ObjectID) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleEmployee:
		return actor.UserID == ownerID
	default:
		return false
	}
}

// ResolveOwner determines the owner of a resource being created. An empty
// request assigns the actor itself. Admins may name any user; an employee
// naming anyone but themselves gets ErrForbidden.
func ResolveOwner(actor Actor, requested string) (primitive.ObjectID, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return actor.UserID, nil
	}

	ownerID, err := primitive.ObjectIDFromHex(requested)
	if err != nil {
		return primitive.NilObjectID, ErrBadOwner
	}

	if !actor.IsAdmin() && ownerID != actor.UserID {
		return primitive.NilObjectID, ErrForbidden
	}
	return ownerID, nil
}

// ListFilter returns the query filter scoping a list operation: admins see
// every owner, employees only themselves.
func ListFilter(actor Actor) bson.M {
	if actor.IsAdmin() {
		return bson.M{}
	}
	return bson.M{"userId": actor.UserID}
}

// MutationFilter returns the filter for a conditional update or delete of
// a single resource. For employees the owner is part of the filter, so a
// write racing a concurrent delete (or any stale ownership check) matches
// nothing instead of writing through.
func MutationFilter(actor Actor, resourceID primitive.ObjectID) bson.M {
	if actor.IsAdmin() {
		return bson.M{"_id": resourceID}
	}
	return bson.M{"_id": resourceID, "userId": actor.UserID}
}
