package utils

import (
	"testing"
	"time"
)

func TestNewSessionToken(t *testing.T) {
	tok, err := NewSessionToken(24)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if len(tok.Raw) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(tok.Raw))
	}
	if remaining := time.Until(tok.Exp); remaining < 23*time.Hour || remaining > 25*time.Hour {
		t.Errorf("expiration %v not roughly 24h out", tok.Exp)
	}

	other, err := NewSessionToken(24)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if tok.Raw == other.Raw {
		t.Error("consecutive tokens must differ")
	}
}

func TestHashSessionRaw(t *testing.T) {
	a := HashSessionRaw("abc")
	b := HashSessionRaw("abc")
	if a != b {
		t.Error("hashing must be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
	if a == HashSessionRaw("abd") {
		t.Error("different inputs must hash differently")
	}
}
