package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestNewRedisCacheOptions(t *testing.T) {
	ctx := context.Background()

	if _, err := NewRedisCache(ctx, RedisOptions{}); err == nil {
		t.Error("expected error without address")
	}
	if _, err := NewRedisCache(ctx, RedisOptions{URL: "http://not-redis"}); err == nil {
		t.Error("expected error for non-redis url")
	}
}

// TestRedisCache runs against a live server when BLOCKFILL_TEST_REDIS is
// set to host:port.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("BLOCKFILL_TEST_REDIS")
	if addr == "" {
		t.Skip("BLOCKFILL_TEST_REDIS not set")
	}
	ctx := context.Background()

	c, err := NewRedisCache(ctx, RedisOptions{Addr: addr, Prefix: "blockfill-test:"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get(k) = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
}
