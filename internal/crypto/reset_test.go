package crypto

import (
	"encoding/hex"
	"testing"
)

func TestNewResetToken(t *testing.T) {
	token, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}

	if len(token) != resetTokenBytes*2 {
		t.Errorf("expected %d hex characters, got %d", resetTokenBytes*2, len(token))
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Errorf("token is not valid hex: %v", err)
	}
}

func TestNewResetToken_Unique(t *testing.T) {
	a, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}
	b, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}
	if a == b {
		t.Error("two reset tokens should never collide")
	}
}
