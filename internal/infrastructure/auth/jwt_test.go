package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("super-secret"), "bookmarkd", 900)
	userID := "9f4c7e9a-9a21-4a6e-b0bb-51a1d3d6c6a7"
	email := "u1@example.com"

	tok, err := issuer.IssueAccessToken(userID, email)
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	gotID, gotEmail, err := issuer.ValidateAccessToken(tok)
	if err != nil {
		t.Fatalf("ValidateAccessToken error: %v", err)
	}
	if gotID != userID {
		t.Fatalf("subject mismatch: got %q want %q", gotID, userID)
	}
	if gotEmail != email {
		t.Fatalf("email mismatch: got %q want %q", gotEmail, email)
	}
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	// Build an already-expired token with the same claims layout.
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		Email: "u1@example.com",
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	issuer := NewTokenIssuer(secret, "bookmarkd", 900)
	if _, _, err := issuer.ValidateAccessToken(tok); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("right-secret"), "bookmarkd", 900)
	tok, err := issuer.IssueAccessToken("u2", "u2@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	other := NewTokenIssuer([]byte("wrong-secret"), "bookmarkd", 900)
	if _, _, err := other.ValidateAccessToken(tok); err == nil {
		t.Fatal("expected error for invalid signature, got nil")
	}
}

func TestValidate_MalformedString(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("k"), "bookmarkd", 900)
	if _, _, err := issuer.ValidateAccessToken("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}

func TestNewTokenIssuer_DefaultExpiry(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("k"), "bookmarkd", 0)
	if issuer.expirySecs != DefaultAccessExpiry {
		t.Fatalf("expected default expiry %d, got %d", DefaultAccessExpiry, issuer.expirySecs)
	}
}
