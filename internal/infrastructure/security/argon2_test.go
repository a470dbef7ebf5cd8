package security

import (
	"strings"
	"testing"
)

// fastParams keeps hashing cheap in tests.
func fastParams() Argon2Params {
	return Argon2Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHashAndVerify_Success(t *testing.T) {
	t.Parallel()

	h := NewArgon2Hasher(fastParams())
	encoded, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("expected PHC argon2id prefix, got %q", encoded)
	}
	if !h.Verify("correct horse battery staple", encoded) {
		t.Fatal("Verify should succeed for the original password")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	h := NewArgon2Hasher(fastParams())
	encoded, err := h.Hash("password-one")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h.Verify("password-two", encoded) {
		t.Fatal("Verify should fail for a different password")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	h := NewArgon2Hasher(fastParams())
	for _, encoded := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=8192,t=1,p=1$onlyonepart",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
	} {
		if h.Verify("whatever", encoded) {
			t.Errorf("Verify should fail for malformed hash %q", encoded)
		}
	}
}

func TestHash_SaltsDiffer(t *testing.T) {
	t.Parallel()

	h := NewArgon2Hasher(fastParams())
	a, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password must differ (random salt)")
	}
	if !h.Verify("same password", a) || !h.Verify("same password", b) {
		t.Fatal("both hashes must verify")
	}
}

func TestVerify_ParametersFromHash(t *testing.T) {
	t.Parallel()

	// A hash produced under one parameter set still verifies with a hasher
	// configured differently: cost parameters travel inside the PHC string.
	old := NewArgon2Hasher(fastParams())
	encoded, err := old.Hash("migrating password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	current := NewArgon2Hasher(DefaultArgon2Params())
	if !current.Verify("migrating password", encoded) {
		t.Fatal("Verify must honor the parameters encoded in the stored hash")
	}
}
