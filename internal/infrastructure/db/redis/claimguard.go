package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 30 * time.Second

// ClaimGuard provides a best-effort per-donation mutual exclusion backed by
// Redis SETNX. Key format: claim:<donation_id>. The TTL only bounds how long
// a crashed claimant can block a donation; the Mongo conditional update is
// the authoritative arbiter.
type ClaimGuard struct {
	client *redis.Client
}

// NewClaimGuard creates a ClaimGuard wrapping the given Redis client.
func NewClaimGuard(client *redis.Client) *ClaimGuard {
	return &ClaimGuard{client: client}
}

// Acquire attempts to take the guard for a donation. It returns false when
// another claim already holds it.
func (g *ClaimGuard) Acquire(ctx context.Context, donationID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(donationID), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("claim guard: %w", err)
	}
	return ok, nil
}

func (g *ClaimGuard) key(donationID string) string {
	return "claim:" + donationID
}
