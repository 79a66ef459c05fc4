package providers

import "testing"

func TestNewAnthropic_MissingKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err := NewAnthropic("claude-sonnet-4-20250514")
	if !IsAuthError(err) {
		t.Errorf("IsAuthError = false for error %v", err)
	}
}

func TestNewAnthropic_WithKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	p, err := NewAnthropic("claude-sonnet-4-20250514")
	if err != nil {
		t.Fatalf("NewAnthropic error: %v", err)
	}
	if p.Name() != "anthropic" {
		t.Errorf("Name() = %q, want %q", p.Name(), "anthropic")
	}
}
