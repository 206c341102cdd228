package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewAESGCMKeySizes(t *testing.T) {
	for _, size := range []int{16, 24, 32} {
		if _, err := NewAESGCM(make([]byte, size)); err != nil {
			t.Errorf("key size %d: unexpected error %v", size, err)
		}
	}
	if _, err := NewAESGCM(make([]byte, 10)); !errors.Is(err, ErrInvalidKeySize) {
		t.Errorf("key size 10: got %v, want ErrInvalidKeySize", err)
	}
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	aead, _ := NewAESGCM(make([]byte, 32))
	a, _ := Encrypt(aead, []byte("same"))
	b, _ := Encrypt(aead, []byte("same"))
	if bytes.Equal(a, b) {
		t.Fatal("two encryptions of the same plaintext are identical")
	}
}

func TestDecryptErrors(t *testing.T) {
	aead, _ := NewAESGCM(make([]byte, 32))
	if _, err := Decrypt(aead, []byte{1, 2}); !errors.Is(err, ErrInvalidCiphertext) {
		t.Errorf("short input: got %v", err)
	}
	sealed, _ := Encrypt(aead, []byte("hello"))
	sealed[len(sealed)-1] ^= 0xff
	if _, err := Decrypt(aead, sealed); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("tampered input: got %v", err)
	}
}

func TestSealerRoundTrip(t *testing.T) {
	key, err := NewRandomKey()
	if err != nil {
		t.Fatalf("NewRandomKey: %v", err)
	}
	s, err := NewSealer(key)
	if err != nil {
		t.Fatalf("NewSealer: %v", err)
	}

	type msg struct{ Role, Content string }
	in := []msg{{"user", "Is lisinopril safe with amlodipine?"}}
	sealed, err := s.SealJSON(in)
	if err != nil {
		t.Fatalf("SealJSON: %v", err)
	}
	if bytes.Contains(sealed, []byte("lisinopril")) {
		t.Fatal("sealed payload contains plaintext")
	}

	var out []msg
	if err := s.OpenJSON(sealed, &out); err != nil {
		t.Fatalf("OpenJSON: %v", err)
	}
	if len(out) != 1 || out[0] != in[0] {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}

	otherKey, _ := NewRandomKey()
	other, _ := NewSealer(otherKey)
	if err := other.OpenJSON(sealed, &out); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("wrong key: got %v", err)
	}
}
