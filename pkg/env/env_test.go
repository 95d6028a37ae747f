package env

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("ORDERDESK_TEST_VALUE", " value ")
	if got := Get("ORDERDESK_TEST_VALUE", "fallback"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	t.Setenv("ORDERDESK_TEST_VALUE", "")
	if got := Get("ORDERDESK_TEST_VALUE", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGetBool(t *testing.T) {
	t.Setenv("ORDERDESK_TEST_FLAG", "true")
	if !GetBool("ORDERDESK_TEST_FLAG", false) {
		t.Fatal("expected true")
	}
	t.Setenv("ORDERDESK_TEST_FLAG", "nope")
	if !GetBool("ORDERDESK_TEST_FLAG", true) {
		t.Fatal("expected fallback on invalid value")
	}
}
