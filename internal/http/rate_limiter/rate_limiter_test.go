package rate_limiter

import "testing"

func TestGetVisitor(t *testing.T) {
	Configure(1, 2)
	t.Cleanup(func() {
		Configure(5, 10)
		CleanupAllVisitors()
	})

	l := GetVisitor("10.0.0.1")
	if l != GetVisitor("10.0.0.1") {
		t.Error("expected the same limiter for the same client")
	}
	if l == GetVisitor("10.0.0.2") {
		t.Error("expected a separate limiter per client")
	}

	if !l.Allow() || !l.Allow() {
		t.Fatal("expected the burst to be allowed")
	}
	if l.Allow() {
		t.Error("expected the third request to be limited")
	}

	CleanupAllVisitors()
	if GetVisitor("10.0.0.1") == l {
		t.Error("expected a fresh limiter after cleanup")
	}
}
