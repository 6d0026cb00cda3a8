package clientcrypto

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"testing"
)

func TestRand_LengthUniq(t *testing.T) {
	t.Parallel()
	const n = 48
	a, err := Rand(n)
	if err != nil {
		t.Fatalf("Rand: %v", err)
	}
	if len(a) != n {
		t.Fatalf("len=%d, want=%d", len(a), n)
	}
	b, _ := Rand(n)
	if bytes.Equal(a, b) {
		t.Fatalf("Rand produced equal slices")
	}
}

func TestDeriveKey_DeterministicAndSaltDependent(t *testing.T) {
	t.Parallel()
	pw := []byte("correct horse")
	k1 := DeriveKey(pw, []byte("salt-1"))
	if len(k1) != KeyLen {
		t.Fatalf("key len=%d", len(k1))
	}
	if subtle.ConstantTimeCompare(k1, DeriveKey(pw, []byte("salt-1"))) != 1 {
		t.Fatalf("DeriveKey not deterministic")
	}
	if subtle.ConstantTimeCompare(k1, DeriveKey(pw, []byte("salt-2"))) != 0 {
		t.Fatalf("DeriveKey must change with salt")
	}
	if subtle.ConstantTimeCompare(k1, DeriveKey([]byte("other"), []byte("salt-1"))) != 0 {
		t.Fatalf("DeriveKey must change with passphrase")
	}
}

func TestSealOpen_RoundtripAndBinding(t *testing.T) {
	t.Parallel()
	key, _ := Rand(KeyLen)
	pt := []byte("eyJhbGciOi.token.value")

	sealed, err := Seal(key, []byte("access_token"), pt)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Contains(sealed, pt) {
		t.Fatalf("plaintext leaked into sealed output")
	}
	got, err := Open(key, []byte("access_token"), sealed)
	if err != nil || !bytes.Equal(got, pt) {
		t.Fatalf("Open: %q %v", got, err)
	}

	if _, err := Open(key, []byte("preferred_language"), sealed); !errors.Is(err, ErrOpen) {
		t.Fatalf("value must be bound to its name, got %v", err)
	}
	other, _ := Rand(KeyLen)
	if _, err := Open(other, []byte("access_token"), sealed); !errors.Is(err, ErrOpen) {
		t.Fatalf("wrong key must fail, got %v", err)
	}
	sealed[len(sealed)-1] ^= 0xff
	if _, err := Open(key, []byte("access_token"), sealed); !errors.Is(err, ErrOpen) {
		t.Fatalf("tampered blob must fail, got %v", err)
	}
	if _, err := Open(key, nil, []byte{1, 2}); !errors.Is(err, ErrOpen) {
		t.Fatalf("short blob must fail, got %v", err)
	}
}

func TestSeal_BadKey(t *testing.T) {
	t.Parallel()
	if _, err := Seal([]byte("short"), nil, []byte("x")); err == nil {
		t.Fatalf("want key size error")
	}
}
