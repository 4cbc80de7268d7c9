package middleware

import (
	"testing"
	"time"
)

func TestLocalLimiterWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("1.1.1.1") || !l.Allow("1.1.1.1") {
		t.Fatal("first two requests should pass")
	}
	if l.Allow("1.1.1.1") {
		t.Fatal("third request should be blocked")
	}
	if !l.Allow("2.2.2.2") {
		t.Fatal("other clients are counted separately")
	}

	now = now.Add(61 * time.Second)
	if !l.Allow("1.1.1.1") {
		t.Fatal("new window should reset the count")
	}
}
