package ratelimit

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestLimiter_BurstThenRefill(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	l := newLimiter(60, 3, clk.Now) // one token per second

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("fourth attempt should be limited")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("other keys have their own bucket")
	}

	clk.Advance(time.Second)
	if !l.Allow("10.0.0.1") {
		t.Error("a token should have refilled after one second")
	}
}

func TestLimiter_Reset(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	l := newLimiter(1, 1, clk.Now)

	l.Allow("k")
	if l.Allow("k") {
		t.Fatal("expected limit")
	}
	l.Reset("k")
	if !l.Allow("k") {
		t.Error("reset key should be allowed again")
	}
}

func TestLimiter_Evict(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	l := newLimiter(60, 5, clk.Now)

	l.Allow("old")
	clk.Advance(11 * time.Minute)
	l.Allow("fresh")
	l.evict()

	if l.Len() != 1 {
		t.Fatalf("expected 1 key after eviction, got %d", l.Len())
	}
}

func TestLimiter_StopTwice(t *testing.T) {
	l := New(60, 5)
	l.Stop()
	l.Stop()
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.0.2.1:1234", "192.0.2.1"},
		{"remote without port", nil, "192.0.2.1", "192.0.2.1"},
		{"forwarded for", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "10.0.0.1:80", "203.0.113.5"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.7 "}, "10.0.0.1:80", "198.51.100.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/login", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginLimiter(t *testing.T) {
	ll := NewLoginLimiter(1, 4)
	t.Cleanup(ll.Stop)

	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "192.0.2.9:5000"

	// Email bucket holds 2, IP bucket holds 4.
	for i := 0; i < 2; i++ {
		if ok, _ := ll.Check(req, "John@AMEZion.gh "); !ok {
			t.Fatalf("attempt %d should pass", i+1)
		}
	}
	ok, reason := ll.Check(req, "john@amezion.gh")
	if ok || reason == "" {
		t.Fatal("third attempt for the same email should be limited")
	}

	ll.ResetEmail("JOHN@amezion.gh")
	if ok, _ := ll.Check(req, "john@amezion.gh"); !ok {
		t.Fatal("email bucket should be reset")
	}

	// IP bucket is now drained (4 attempts).
	if ok, _ := ll.Check(req, "other@amezion.gh"); ok {
		t.Error("IP bucket should be exhausted")
	}
}
