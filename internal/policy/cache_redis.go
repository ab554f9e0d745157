package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	platformredis "policygate/internal/platform/redis"
)

// LookupCache fronts FindByInsurerAndNumber with a TTL-bounded redis cache.
// Misses and cache outages fall through to the store; a stale entry can only
// live as long as the TTL, which retention policy for holder data also caps.
type LookupCache struct {
	client *platformredis.Client
	ttl    time.Duration
}

// NewLookupCache wraps the redis client. A nil client disables caching, so
// callers never branch on configuration.
func NewLookupCache(client *platformredis.Client, ttl time.Duration) *LookupCache {
	return &LookupCache{client: client, ttl: ttl}
}

func lookupKey(insurerID, number string) string {
	return fmt.Sprintf("policy:lookup:%s:%s", insurerID, number)
}

// Get returns the cached policy and whether it was present.
func (c *LookupCache) Get(ctx context.Context, insurerID, number string) (Policy, bool) {
	if c == nil || c.client == nil {
		return Policy{}, false
	}
	raw, err := c.client.Get(ctx, lookupKey(insurerID, number)).Bytes()
	if err != nil {
		return Policy{}, false
	}
	var p Policy
	if err := json.Unmarshal(raw, &p); err != nil {
		return Policy{}, false
	}
	return p, true
}

// Set stores the policy under the lookup key. Errors are deliberately
// dropped; the cache is an optimization, not a dependency.
func (c *LookupCache) Set(ctx context.Context, insurerID, number string, p Policy) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	c.client.Set(ctx, lookupKey(insurerID, number), raw, c.ttl)
}
