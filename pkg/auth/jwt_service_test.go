package auth_test

import (
	"testing"
	"time"

	"github.com/WunderSocial/wunder-id/pkg/auth"
)

func TestIssueAndVerify(t *testing.T) {
	svc := auth.NewService("secret", "wunder-id", time.Hour)

	token, err := svc.Issue("device-1", "sarah")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.DeviceID != "device-1" {
		t.Fatalf("deviceId = %q", claims.DeviceID)
	}
	if claims.Username != "sarah" {
		t.Fatalf("username = %q", claims.Username)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := auth.NewService("secret-a", "wunder-id", time.Hour).Issue("device-1", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := auth.NewService("secret-b", "wunder-id", time.Hour).Verify(token); err == nil {
		t.Fatal("expected verification failure")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := auth.NewService("secret", "wunder-id", -time.Minute)
	token, err := svc.Issue("device-1", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Fatal("expected expiry failure")
	}
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	token, err := auth.NewService("secret", "someone-else", time.Hour).Issue("device-1", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := auth.NewService("secret", "wunder-id", time.Hour).Verify(token); err == nil {
		t.Fatal("expected issuer mismatch failure")
	}
}

func TestMissingSecret(t *testing.T) {
	svc := auth.NewService("", "wunder-id", time.Hour)
	if _, err := svc.Issue("device-1", ""); err == nil {
		t.Fatal("expected missing-secret failure on issue")
	}
	if _, err := svc.Verify("whatever"); err == nil {
		t.Fatal("expected missing-secret failure on verify")
	}
}
