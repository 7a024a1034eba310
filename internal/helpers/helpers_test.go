package helpers_test

import (
	"strings"
	"testing"

	"github.com/bikebay/server/internal/helpers"
	"github.com/bikebay/server/internal/models"
	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	signer := helpers.NewTokenSigner("test-secret")

	userID := uuid.New()
	token, err := signer.SignAccessToken(userID, "hoster", "host@example.com")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	claims, err := signer.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.Subject != userID.String() {
		t.Errorf("subject = %s, want %s", claims.Subject, userID)
	}
	if claims.Role != "hoster" {
		t.Errorf("role = %s, want hoster", claims.Role)
	}
	if claims.Email != "host@example.com" {
		t.Errorf("email = %s", claims.Email)
	}
	if claims.Scope != "" {
		t.Errorf("access token should carry no scope, got %q", claims.Scope)
	}
}

func TestResetTokenScope(t *testing.T) {
	signer := helpers.NewTokenSigner("test-secret")

	token, err := signer.SignResetToken(uuid.New())
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	claims, err := signer.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.Scope != "password_reset" {
		t.Errorf("scope = %q, want password_reset", claims.Scope)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := helpers.NewTokenSigner("first-secret").SignAccessToken(uuid.New(), "user", "a@b.com")
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := helpers.NewTokenSigner("other-secret").ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret should not validate")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	signer := helpers.NewTokenSigner("test-secret")
	if _, err := signer.ValidateToken("not.a.jwt"); err == nil {
		t.Fatal("garbage token should not validate")
	}
}

func TestSignWithEmptySecret(t *testing.T) {
	signer := helpers.NewTokenSigner("")
	if _, err := signer.SignAccessToken(uuid.New(), "user", "a@b.com"); err == nil {
		t.Fatal("signing with an empty secret should fail")
	}
	if _, err := signer.SignResetToken(uuid.New()); err == nil {
		t.Fatal("signing with an empty secret should fail")
	}
}

func TestEnhancedClaimsActor(t *testing.T) {
	userID := uuid.New()
	claims := &helpers.EnhancedClaims{
		UserID: userID,
		Role:   models.RoleAdmin,
	}

	actor := claims.Actor()
	if actor.ID != userID {
		t.Errorf("actor ID = %s, want %s", actor.ID, userID)
	}
	if !actor.IsAdmin() {
		t.Error("admin claims should produce an admin actor")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := helpers.HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if strings.Contains(hash, "Sup3rSecret") {
		t.Fatal("hash must not contain the plaintext")
	}
	if !helpers.ComparePassword(hash, "Sup3rSecret") {
		t.Error("correct password should match")
	}
	if helpers.ComparePassword(hash, "WrongPass1") {
		t.Error("wrong password should not match")
	}
}

func TestIsPasswordStrong(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Sup3rSecret", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := helpers.IsPasswordStrong(tc.password); got != tc.want {
			t.Errorf("IsPasswordStrong(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}
