package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newDenylist(t *testing.T) (*miniredis.Miniredis, *Denylist) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewDenylist(rdb)
}

func TestDenylist_RevokeThenCheck(t *testing.T) {
	_, d := newDenylist(t)
	ctx := context.Background()
	jti := strings.Repeat("c", 32)

	revoked, err := d.IsRevoked(ctx, jti)
	if err != nil || revoked {
		t.Fatalf("fresh jti: revoked=%v err=%v", revoked, err)
	}

	if err := d.Revoke(ctx, jti, time.Hour); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	revoked, err = d.IsRevoked(ctx, jti)
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !revoked {
		t.Fatalf("jti should be revoked")
	}
}

func TestDenylist_RevocationExpiresWithToken(t *testing.T) {
	mr, d := newDenylist(t)
	ctx := context.Background()
	jti := strings.Repeat("c", 32)

	if err := d.Revoke(ctx, jti, time.Minute); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	revoked, err := d.IsRevoked(ctx, jti)
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if revoked {
		t.Fatalf("revocation should lapse with the token's expiry")
	}
}

func TestDenylist_ExpiredTokenIsNoop(t *testing.T) {
	mr, d := newDenylist(t)
	ctx := context.Background()

	if err := d.Revoke(ctx, strings.Repeat("c", 32), -time.Minute); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if got := len(mr.Keys()); got != 0 {
		t.Fatalf("keys = %d, want none for an already-expired token", got)
	}
}
