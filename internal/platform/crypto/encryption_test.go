package crypto

import (
	"bytes"
	"testing"
)

const testKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc, err := New(testKey, PurposePayrollSnapshot)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !svc.Configured() {
		t.Fatalf("expected configured service")
	}
	plain := []byte(`{"netSalary":2500166}`)
	sealed, err := svc.Encrypt(plain)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Contains(sealed, plain) {
		t.Fatalf("ciphertext leaks plaintext")
	}
	opened, err := svc.Decrypt(sealed)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(opened, plain) {
		t.Fatalf("expected %q, got %q", plain, opened)
	}
}

func TestPurposesDeriveDistinctKeys(t *testing.T) {
	a, err := New(testKey, PurposePayrollSnapshot)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	b, err := New(testKey, "hrpay/other")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	sealed, err := a.Encrypt([]byte("payslip"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := b.Decrypt(sealed); err == nil {
		t.Fatalf("expected decrypt with another purpose to fail")
	}
}

func TestUnconfiguredPassesThrough(t *testing.T) {
	svc, err := New("", PurposePayrollSnapshot)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if svc.Configured() {
		t.Fatalf("expected unconfigured service")
	}
	sealed, err := svc.Encrypt([]byte("plain"))
	if err != nil || string(sealed) != "plain" {
		t.Fatalf("expected passthrough, got %q %v", sealed, err)
	}
}

func TestShortKeyRejected(t *testing.T) {
	if _, err := New("short", PurposePayrollSnapshot); err == nil {
		t.Fatalf("expected short key to be rejected")
	}
}
