package handlers

import (
	"testing"
	"time"

	"backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestComputeContactStats(t *testing.T) {
	contacts := []models.Contact{
		{Status: models.StatusFuture, Called: true},
		{Status: models.StatusFuture, Called: false},
		{Status: models.StatusLead, Called: true},
		{Status: models.StatusRejected, Called: false},
		{Status: models.StatusRejected, Called: true},
	}

	stats := computeContactStats(contacts)
	if stats.Total != 5 {
		t.Fatalf("expected total 5, got %d", stats.Total)
	}
	if stats.Called != 3 {
		t.Fatalf("expected called 3, got %d", stats.Called)
	}
	if stats.Rejected != 2 {
		t.Fatalf("expected rejected 2, got %d", stats.Rejected)
	}
	if stats.Leads != 1 {
		t.Fatalf("expected leads 1, got %d", stats.Leads)
	}
	if stats.Later != 2 {
		t.Fatalf("expected later 2, got %d", stats.Later)
	}
}

func TestComputeContactStatsEmpty(t *testing.T) {
	stats := computeContactStats(nil)
	if stats != (ContactStats{}) {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestBuildProfileUpdateNoFields(t *testing.T) {
	updateFields, err := buildProfileUpdate(ProfileUpdateRequest{}, time.Now())
	if err != nil {
		t.Fatalf("buildProfileUpdate returned error: %v", err)
	}
	if len(updateFields) != 0 {
		t.Fatalf("expected empty update, got %v", updateFields)
	}
}

func TestBuildProfileUpdatePartialFields(t *testing.T) {
	updateFields, err := buildProfileUpdate(ProfileUpdateRequest{Phone: strPtr(" 555-0101 ")}, time.Now())
	if err != nil {
		t.Fatalf("buildProfileUpdate returned error: %v", err)
	}

	if updateFields["phone"] != "555-0101" {
		t.Fatalf("expected trimmed phone, got %v", updateFields["phone"])
	}
	if _, present := updateFields["location"]; present {
		t.Fatalf("expected location untouched, got %v", updateFields)
	}
	if _, present := updateFields["memberSince"]; present {
		t.Fatalf("expected memberSince untouched, got %v", updateFields)
	}
}

func TestBuildProfileUpdateBlankMemberSinceResetsToNow(t *testing.T) {
	now := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)

	for _, raw := range []string{"", "   "} {
		updateFields, err := buildProfileUpdate(ProfileUpdateRequest{MemberSince: strPtr(raw)}, now)
		if err != nil {
			t.Fatalf("buildProfileUpdate(%q) returned error: %v", raw, err)
		}
		if got := updateFields["memberSince"]; got != now {
			t.Fatalf("expected memberSince reset to %v, got %v", now, got)
		}
	}
}

func TestBuildProfileUpdateParsesMemberSince(t *testing.T) {
	updateFields, err := buildProfileUpdate(ProfileUpdateRequest{MemberSince: strPtr("2021-05-20")}, time.Now())
	if err != nil {
		t.Fatalf("buildProfileUpdate returned error: %v", err)
	}

	parsed, ok := updateFields["memberSince"].(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", updateFields["memberSince"])
	}
	if parsed.Year() != 2021 || parsed.Month() != time.May || parsed.Day() != 20 {
		t.Fatalf("unexpected parsed date: %v", parsed)
	}
}

func TestBuildProfileUpdateRejectsBadMemberSince(t *testing.T) {
	if _, err := buildProfileUpdate(ProfileUpdateRequest{MemberSince: strPtr("20/05/2021 or so")}, time.Now()); err != errInvalidMemberSince {
		t.Fatalf("expected errInvalidMemberSince, got %v", err)
	}
}

func TestParseDateInputLayouts(t *testing.T) {
	valid := []string{
		"2025-06-01",
		"2025-06-01T15:04:05",
		"2025-06-01T15:04:05Z",
		"2025-06-01T15:04:05.123Z",
	}
	for _, raw := range valid {
		if _, err := parseDateInput(raw); err != nil {
			t.Fatalf("parseDateInput(%q) returned error: %v", raw, err)
		}
	}

	for _, raw := range []string{"June 1st", "01-06-2025x", "tomorrow"} {
		if _, err := parseDateInput(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
