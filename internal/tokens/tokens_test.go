package tokens

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	iss := NewIssuer("test-secret-32-bytes-should-be-long", time.Hour)

	tokenStr, err := iss.Issue(map[string]interface{}{"email": "test@example.com", "name": "Test User"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if tokenStr == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := iss.Verify(context.Background(), tokenStr)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims["email"] != "test@example.com" {
		t.Fatalf("unexpected email claim: got=%v", claims["email"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatal("expected exp claim to be attached")
	}
}

func TestIssue_EmptyClaimsRejected(t *testing.T) {
	iss := NewIssuer("another-secret-32-bytes-longgggg", time.Hour)
	if _, err := iss.Issue(nil); !errors.Is(err, ErrEmptyClaims) {
		t.Fatalf("expected ErrEmptyClaims, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	iss := NewIssuer("another-secret-32-bytes-longgggg", -time.Minute)
	tokenStr, err := iss.Issue(map[string]interface{}{"email": "x@x"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	_, err = iss.Verify(context.Background(), tokenStr)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecretFails(t *testing.T) {
	iss := NewIssuer("secret-one-32-bytes-xxxxxxxxxxxx", time.Hour)
	other := NewIssuer("different-secret-xxxxxxxxxxxxxxx", time.Hour)
	tokenStr, err := iss.Issue(map[string]interface{}{"email": "bob@example.com"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := other.Verify(context.Background(), tokenStr); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken with wrong secret, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	iss := NewIssuer("x", time.Hour)
	if _, err := iss.Verify(context.Background(), "not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

// Rejected when alg=none (unsigned token)
func TestVerify_AlgNoneRejected(t *testing.T) {
	iss := NewIssuer("x", time.Hour)
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"email":"none@example.com","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	if _, err := iss.Verify(context.Background(), tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none token, got %v", err)
	}
}

// Tampering with payload must fail signature verification
func TestVerify_TamperedPayload(t *testing.T) {
	iss := NewIssuer("tamper-test-secret-32-bytes-xxxx", time.Hour)
	tokenStr, err := iss.Issue(map[string]interface{}{"email": "honest@example.com"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	payloadStr := strings.Replace(string(payloadBytes), "honest", "attacker", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(payloadStr))
	tampered := strings.Join(parts, ".")
	if _, err := iss.Verify(context.Background(), tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected signature verification to fail for tampered token, got %v", err)
	}
}
