package authz

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func TestCanAccess(t *testing.T) {
	ownerID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	tests := []struct {
		name  string
		actor Actor
		owner primitive.ObjectID
		want  bool
	}{
		{"admin accesses any resource", Actor{UserID: otherID, Role: models.RoleAdmin}, ownerID, true},
		{"admin accesses own resource", Actor{UserID: ownerID, Role: models.RoleAdmin}, ownerID, true},
		{"employee accesses own resource", Actor{UserID: ownerID, Role: models.RoleEmployee}, ownerID, true},
		{"employee denied foreign resource", Actor{UserID: otherID, Role: models.RoleEmployee}, ownerID, false},
		{"unknown role denied everything", Actor{UserID: ownerID, Role: models.Role("root")}, ownerID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccess(tt.actor, tt.owner); got != tt.want {
				t.Fatalf("CanAccess = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveOwnerDefaultsToActor(t *testing.T) {
	actor := Actor{UserID: primitive.NewObjectID(), Role: models.RoleEmployee}

	for _, requested := range []string{"", "   "} {
		ownerID, err := ResolveOwner(actor, requested)
		if err != nil {
			t.Fatalf("ResolveOwner(%q) returned error: %v", requested, err)
		}
		if ownerID != actor.UserID {
			t.Fatalf("expected owner %s, got %s", actor.UserID.Hex(), ownerID.Hex())
		}
	}
}

func TestResolveOwnerEmployeeSelfAssignment(t *testing.T) {
	actor := Actor{UserID: primitive.NewObjectID(), Role: models.RoleEmployee}

	ownerID, err := ResolveOwner(actor, actor.UserID.Hex())
	if err != nil {
		t.Fatalf("ResolveOwner returned error: %v", err)
	}
	if ownerID != actor.UserID {
		t.Fatalf("expected owner %s, got %s", actor.UserID.Hex(), ownerID.Hex())
	}
}

func TestResolveOwnerEmployeeForeignAssignmentForbidden(t *testing.T) {
	actor := Actor{UserID: primitive.NewObjectID(), Role: models.RoleEmployee}

	if _, err := ResolveOwner(actor, primitive.NewObjectID().Hex()); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestResolveOwnerAdminAssignsAnyUser(t *testing.T) {
	actor := Actor{UserID: primitive.NewObjectID(), Role: models.RoleAdmin}
	target := primitive.NewObjectID()

	ownerID, err := ResolveOwner(actor, target.Hex())
	if err != nil {
		t.Fatalf("ResolveOwner returned error: %v", err)
	}
	if ownerID != target {
		t.Fatalf("expected owner %s, got %s", target.Hex(), ownerID.Hex())
	}
}

func TestResolveOwnerRejectsMalformedID(t *testing.T) {
	actor := Actor{UserID: primitive.NewObjectID(), Role: models.RoleAdmin}

	if _, err := ResolveOwner(actor, "not-a-hex-id"); err != ErrBadOwner {
		t.Fatalf("expected ErrBadOwner, got %v", err)
	}
}

func TestListFilter(t *testing.T) {
	employee := Actor{UserID: primitive.NewObjectID(), Role: models.RoleEmployee}
	admin := Actor{UserID: primitive.NewObjectID(), Role: models.RoleAdmin}

	if filter := ListFilter(admin); len(filter) != 0 {
		t.Fatalf("expected unconstrained admin filter, got %v", filter)
	}

	filter := ListFilter(employee)
	if got := filter["userId"]; got != employee.UserID {
		t.Fatalf("expected employee filter scoped to %s, got %v", employee.UserID.Hex(), filter)
	}
}

func TestMutationFilter(t *testing.T) {
	employee := Actor{UserID: primitive.NewObjectID(), Role: models.RoleEmployee}
	admin := Actor{UserID: primitive.NewObjectID(), Role: models.RoleAdmin}
	resourceID := primitive.NewObjectID()

	adminFilter := MutationFilter(admin, resourceID)
	if len(adminFilter) != 1 || adminFilter["_id"] != resourceID {
		t.Fatalf("expected admin filter on _id only, got %v", adminFilter)
	}

	employeeFilter := MutationFilter(employee, resourceID)
	if employeeFilter["_id"] != resourceID || employeeFilter["userId"] != employee.UserID {
		t.Fatalf("expected employee filter on _id and userId, got %v", employeeFilter)
	}
}
