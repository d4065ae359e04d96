package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokenCodec_IssueAndVerify(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"), time.Hour)

	token, err := codec.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	userID, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("expected user-123, got %s", userID)
	}
}

func TestTokenCodec_Verify_Expired(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"), -time.Second)

	token, err := codec.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = codec.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenCodec_Verify_WrongSecret(t *testing.T) {
	issuer := NewTokenCodec([]byte("right-secret"), time.Hour)
	verifier := NewTokenCodec([]byte("wrong-secret"), time.Hour)

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenCodec_Verify_TamperedSignature(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"), time.Hour)

	token, err := codec.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip bytes in the signature segment
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Verify(tampered)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
}

func TestTokenCodec_Verify_Malformed(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"), time.Hour)

	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := codec.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestDecodeUnverified(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"), time.Hour)

	token, err := codec.Issue("user-456")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Decoding does not need the secret
	userID, err := DecodeUnverified(token)
	if err != nil {
		t.Fatalf("DecodeUnverified error: %v", err)
	}
	if userID != "user-456" {
		t.Errorf("expected user-456, got %s", userID)
	}

	if _, err := DecodeUnverified("corrupt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for corrupt token, got %v", err)
	}
}
