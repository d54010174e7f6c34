package database

import (
	"errors"
	"testing"
)

func TestFieldCipherRoundTrip(t *testing.T) {
	c, err := NewFieldCipher("test-passphrase")
	if err != nil {
		t.Fatalf("NewFieldCipher: %v", err)
	}

	plaintext := "$2a$10$somebcryptlookinghashvalue"
	sealed, err := c.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if sealed == plaintext {
		t.Fatal("ciphertext equals plaintext")
	}

	got, err := c.Decrypt(sealed)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if got != plaintext {
		t.Errorf("round trip = %q, want %q", got, plaintext)
	}
}

func TestFieldCipherNonceIsRandom(t *testing.T) {
	c, err := NewFieldCipher("test-passphrase")
	if err != nil {
		t.Fatalf("NewFieldCipher: %v", err)
	}

	a, _ := c.Encrypt("same value")
	b, _ := c.Encrypt("same value")
	if a == b {
		t.Error("two encryptions of the same value produced identical ciphertext")
	}
}

func TestFieldCipherRejectsWrongKey(t *testing.T) {
	c1, _ := NewFieldCipher("key-one")
	c2, _ := NewFieldCipher("key-two")

	sealed, err := c1.Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := c2.Decrypt(sealed); !errors.Is(err, ErrCipherText) {
		t.Errorf("Decrypt with wrong key: err = %v, want ErrCipherText", err)
	}
}

func TestFieldCipherRejectsMalformedInput(t *testing.T) {
	c, _ := NewFieldCipher("test-passphrase")

	for _, input := range []string{"", "not base64 !!!", "aGVsbG8="} {
		if _, err := c.Decrypt(input); !errors.Is(err, ErrCipherText) {
			t.Errorf("Decrypt(%q): err = %v, want ErrCipherText", input, err)
		}
	}
}

func TestNewFieldCipherEmptyPassphrase(t *testing.T) {
	if _, err := NewFieldCipher(""); err == nil {
		t.Error("NewFieldCipher accepted an empty passphrase")
	}
}
