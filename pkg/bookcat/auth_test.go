package bookcat

import (
	"testing"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
)

func TestSharedSecret(t *testing.T) {
	auth := NewSharedSecret(DefaultSecret)

	tests := []struct {
		candidate string
		expected  models.Role
	}{
		{"password123", models.RoleAdmin},
		{"password1234", models.RoleGuest},
		{"Password123", models.RoleGuest},
		{"", models.RoleGuest},
	}

	for _, tt := range tests {
		if got := auth.Authenticate(tt.candidate); got != tt.expected {
			t.Errorf("Authenticate(%q) = %v, expected %v", tt.candidate, got, tt.expected)
		}
	}
}

func TestSharedSecretEmptyNeverAuthenticates(t *testing.T) {
	if got := NewSharedSecret("").Authenticate(""); got != models.RoleGuest {
		t.Errorf("Expected guest for empty secret, got %v", got)
	}
}

func TestHashedSecret(t *testing.T) {
	hash, err := HashSecret("password123")
	if err != nil {
		t.Fatalf("HashSecret failed: %v", err)
	}
	auth, err := NewHashedSecret(hash)
	if err != nil {
		t.Fatalf("NewHashedSecret failed: %v", err)
	}

	if got := auth.Authenticate("password123"); got != models.RoleAdmin {
		t.Errorf("Expected admin, got %v", got)
	}
	if got := auth.Authenticate("wrong"); got != models.RoleGuest {
		t.Errorf("Expected guest, got %v", got)
	}

	if _, err := NewHashedSecret("plain-text"); err == nil {
		t.Errorf("Expected error for a non-bcrypt hash")
	}
}

func TestRolePermissions(t *testing.T) {
	if models.RoleGuest.CanEdit() || models.RoleGuest.CanViewStats() {
		t.Errorf("Guest must not edit or view stats")
	}
	if !models.RoleAdmin.CanEdit() || !models.RoleAdmin.CanViewStats() {
		t.Errorf("Admin must edit and view stats")
	}
}
