package helpers

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret" {
		t.Fatal("hash equals the plaintext")
	}
	if !CompareHashAndPassword(hash, "secret") {
		t.Error("correct password rejected")
	}
	if CompareHashAndPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, exp, err := m.GenerateSessionToken("sess-1")
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Error("expiry is not in the future")
	}

	claims, err := m.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("session id = %q, want sess-1", claims.SessionID)
	}
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	a := NewJWTManager("secret-a", time.Hour)
	b := NewJWTManager("secret-b", time.Hour)

	token, _, err := a.GenerateSessionToken("sess-1")
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	if _, err := b.ParseSessionToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, _, err := m.GenerateSessionToken("sess-1")
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	if _, err := m.ParseSessionToken(token); err == nil {
		t.Error("expired token was accepted")
	}
}
