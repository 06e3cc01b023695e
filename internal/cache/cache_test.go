package cache

import (
	"testing"
	"time"
)

func TestRoundTripWithinTTL(t *testing.T) {
	c := New(50 * time.Millisecond)
	c.Set("gasPrice", "0x1234")

	got, ok := c.Get("gasPrice")
	if !ok || got != "0x1234" {
		t.Fatalf("Get = %v, %v, want 0x1234, true", got, ok)
	}
}

func TestAbsentAfterTTL(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("feeHistory", "cached")

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("feeHistory"); ok {
		t.Fatal("entry still present after TTL elapsed")
	}
}

func TestRemove(t *testing.T) {
	c := New(time.Hour)
	c.Set("getBalance.0xabc.latest", "0x0")
	c.Remove("getBalance.0xabc.latest")

	if _, ok := c.Get("getBalance.0xabc.latest"); ok {
		t.Fatal("entry still present after Remove")
	}
}

func TestIndependentKeys(t *testing.T) {
	c := New(time.Hour)
	c.Set("gasPrice", "0x1")
	c.Set("feeHistory", "0x2")

	gp, _ := c.Get("gasPrice")
	fh, _ := c.Get("feeHistory")
	if gp == fh {
		t.Fatal("gasPrice and feeHistory keys collided")
	}
}
