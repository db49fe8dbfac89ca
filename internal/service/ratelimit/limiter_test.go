package ratelimit

import "testing"

func TestAllowExhaustsBucket(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 0) {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow("k", 3, 0) {
		t.Fatal("bucket should be empty")
	}
}

func TestAllowIsolatesKeys(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatal("first request for a should pass")
	}
	if l.Allow("a", 1, 0) {
		t.Fatal("a is exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatal("b has its own bucket")
	}
}
