package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	h, err := NewHasher(4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("hasher init failed: %v", err)
	}

	hash, err := h.Hash("s3cret-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "s3cret-password" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("hash does not look like bcrypt output: %q", hash)
	}
	if !h.Verify(hash, "s3cret-password") {
		t.Fatal("correct password did not verify")
	}
	if h.Verify(hash, "wrong-password") {
		t.Fatal("wrong password verified")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h, err := NewHasher(4)
	if err != nil {
		t.Fatalf("hasher init failed: %v", err)
	}
	a, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	b, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestNewHasherRejectsCostOutOfRange(t *testing.T) {
	if _, err := NewHasher(0); err == nil {
		t.Fatal("expected error for cost below minimum")
	}
	if _, err := NewHasher(99); err == nil {
		t.Fatal("expected error for cost above maximum")
	}
}
