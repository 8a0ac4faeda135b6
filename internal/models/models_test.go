package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseRoleDowngradesUnknownValues(t *testing.T) {
	tests := []struct {
		input string
		want  Role
	}{
		{"employee", RoleEmployee},
		{"admin", RoleAdmin},
		{"", RoleEmployee},
		{"superuser", RoleEmployee},
		{"Admin", RoleEmployee},
	}

	for _, tt := range tests {
		if got := ParseRole(tt.input); got != tt.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, valid := range []string{"future", "rejected", "lead"} {
		if !ValidStatus(valid) {
			t.Fatalf("expected %q to be valid", valid)
		}
	}
	for _, invalid := range []string{"", "closed", "Lead", "won"} {
		if ValidStatus(invalid) {
			t.Fatalf("expected %q to be invalid", invalid)
		}
	}
}

func TestUserJSONNeverIncludesPassword(t *testing.T) {
	user := User{
		ID:        primitive.NewObjectID(),
		Name:      "A",
		Email:     "a@x.com",
		Password:  "$2a$10$secret-hash",
		Role:      RoleEmployee,
		CreatedAt: time.Now(),
	}

	body, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}
	if strings.Contains(string(body), "secret-hash") {
		t.Fatalf("password hash leaked into json: %s", body)
	}
}

func TestPublicViewFallsBackToCreatedAt(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	user := User{Name: "A", CreatedAt: createdAt}

	if got := user.Public().MemberSince; !got.Equal(createdAt) {
		t.Fatalf("expected memberSince fallback %v, got %v", createdAt, got)
	}

	memberSince := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	user.MemberSince = &memberSince
	if got := user.Public().MemberSince; !got.Equal(memberSince) {
		t.Fatalf("expected memberSince %v, got %v", memberSince, got)
	}
}
