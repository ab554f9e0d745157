//go:build integration

package policy_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"policygate/internal/platform/config"
	platformredis "policygate/internal/platform/redis"
	"policygate/internal/policy"
	"policygate/pkg/testutil/containers"
)

type LookupCacheSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	client *platformredis.Client
}

func TestLookupCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(LookupCacheSuite))
}

func (s *LookupCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())

	client, err := platformredis.New(config.RedisConfig{
		URL:          s.redis.URL,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	s.Require().NoError(err)
	s.client = client
}

func (s *LookupCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *LookupCacheSuite) TestSetAndGet() {
	ctx := context.Background()
	cache := policy.NewLookupCache(s.client, time.Minute)

	premium := 420.50
	stored := policy.Policy{
		ID:        uuid.New(),
		Status:    policy.StatusActive,
		Number:    "POL-123",
		InsurerID: "ins-1",
		StartDate: "2026-01-01",
		EndDate:   "2027-01-01",
		Premium:   &premium,
	}

	_, ok := cache.Get(ctx, "ins-1", "POL-123")
	s.False(ok, "miss before set")

	cache.Set(ctx, "ins-1", "POL-123", stored)

	got, ok := cache.Get(ctx, "ins-1", "POL-123")
	s.Require().True(ok)
	s.Equal(stored.ID, got.ID)
	s.Equal(stored.Number, got.Number)
	s.Require().NotNil(got.Premium)
	s.InDelta(premium, *got.Premium, 0.001)
}

func (s *LookupCacheSuite) TestKeysAreScopedPerInsurer() {
	ctx := context.Background()
	cache := policy.NewLookupCache(s.client, time.Minute)

	cache.Set(ctx, "ins-1", "POL-123", policy.Policy{ID: uuid.New(), Number: "POL-123"})

	_, ok := cache.Get(ctx, "ins-2", "POL-123")
	s.False(ok)
}

func (s *LookupCacheSuite) TestEntriesExpire() {
	ctx := context.Background()
	cache := policy.NewLookupCache(s.client, 50*time.Millisecond)

	cache.Set(ctx, "ins-1", "POL-TTL", policy.Policy{ID: uuid.New(), Number: "POL-TTL"})
	time.Sleep(150 * time.Millisecond)

	_, ok := cache.Get(ctx, "ins-1", "POL-TTL")
	s.False(ok, "entry must expire with the TTL")
}

func (s *LookupCacheSuite) TestNilCacheIsInert() {
	ctx := context.Background()
	var cache *policy.LookupCache

	cache.Set(ctx, "ins-1", "POL-123", policy.Policy{})
	_, ok := cache.Get(ctx, "ins-1", "POL-123")
	s.False(ok)
}
