package authz

import (
	"testing"

	"boardapi/internal/domain"
)

func TestRequireOwnerOrElevated(t *testing.T) {
	owner := Principal{ID: 7, Role: "member"}
	other := Principal{ID: 8, Role: "member"}
	mod := Principal{ID: 9, Role: "moderator"}
	admin := Principal{ID: 10, Role: "admin"}

	if err := RequireOwnerOrElevated(owner, 7); err != nil {
		t.Fatalf("owner should be permitted: %v", err)
	}
	if err := RequireOwnerOrElevated(mod, 7); err != nil {
		t.Fatalf("moderator should be permitted: %v", err)
	}
	if err := RequireOwnerOrElevated(admin, 7); err != nil {
		t.Fatalf("admin should be permitted: %v", err)
	}

	err := RequireOwnerOrElevated(other, 7)
	if err == nil {
		t.Fatalf("non-owner member should be rejected")
	}
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestRequireOwnerOrElevatedAnonymous(t *testing.T) {
	// Zero-value principal (no credential) never matches an owner id,
	// not even a zero one.
	if err := RequireOwnerOrElevated(Principal{}, 0); err == nil {
		t.Fatalf("anonymous principal should be rejected")
	}
}

func TestRequireRoleNormalizes(t *testing.T) {
	if err := RequireRole(Principal{Role: "  Admin "}, "admin"); err != nil {
		t.Fatalf("role match should ignore case and spacing: %v", err)
	}
	if err := RequireRole(Principal{Role: "member"}, "admin", "moderator"); err == nil {
		t.Fatalf("member should not pass an elevated check")
	}
}

func TestElevated(t *testing.T) {
	cases := []struct {
		role string
		want bool
	}{
		{"admin", true},
		{"moderator", true},
		{"member", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := (Principal{Role: tc.role}).Elevated(); got != tc.want {
			t.Fatalf("role %q: elevated got %v want %v", tc.role, got, tc.want)
		}
	}
}
