package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/budget-engine/backend/internal/domain/entity"
)

func newTestCache(t *testing.T) (*breakdownCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &breakdownCache{client: client, ttl: time.Minute}, mr
}

func sampleBreakdowns() []entity.PaycheckBreakdown {
	return []entity.PaycheckBreakdown{
		{
			Period: entity.PaycheckPeriod{
				ID:             0,
				PaycheckDate:   time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
				PaycheckAmount: decimal.NewFromInt(2000),
				PeriodStart:    time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:      time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC),
				Source:         entity.PeriodSourceActual,
			},
			ObligatedTotal: decimal.NewFromInt(1200),
			TotalAvailable: decimal.NewFromInt(2000),
			HealthScore:    88,
		},
	}
}

func TestBreakdownCache(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	referenceDate := time.Date(2024, time.June, 3, 15, 30, 0, 0, time.UTC)

	t.Run("should round-trip a breakdown list", func(t *testing.T) {
		c, _ := newTestCache(t)

		if err := c.Set(ctx, userID, referenceDate, sampleBreakdowns()); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		got, err := c.Get(ctx, userID, referenceDate)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 breakdown, got %d", len(got))
		}
		if got[0].HealthScore != 88 {
			t.Errorf("expected health score 88, got %d", got[0].HealthScore)
		}
		if !got[0].ObligatedTotal.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("expected obligated total 1200, got %s", got[0].ObligatedTotal)
		}
	})

	t.Run("should miss without error for an absent key", func(t *testing.T) {
		c, _ := newTestCache(t)

		got, err := c.Get(ctx, userID, referenceDate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected a miss, got %d breakdowns", len(got))
		}
	})

	t.Run("should share an entry across times on the same date", func(t *testing.T) {
		c, _ := newTestCache(t)

		if err := c.Set(ctx, userID, referenceDate, sampleBreakdowns()); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		later := referenceDate.Add(5 * time.Hour)
		got, err := c.Get(ctx, userID, later)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got == nil {
			t.Error("expected a hit for a later time on the same date")
		}
	})

	t.Run("should expire entries after the TTL", func(t *testing.T) {
		c, mr := newTestCache(t)

		if err := c.Set(ctx, userID, referenceDate, sampleBreakdowns()); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		mr.FastForward(2 * time.Minute)

		got, err := c.Get(ctx, userID, referenceDate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Error("expected the entry to have expired")
		}
	})

	t.Run("should invalidate every entry for a user", func(t *testing.T) {
		c, _ := newTestCache(t)
		otherUser := uuid.New()

		if err := c.Set(ctx, userID, referenceDate, sampleBreakdowns()); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if err := c.Set(ctx, userID, referenceDate.AddDate(0, 0, 1), sampleBreakdowns()); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if err := c.Set(ctx, otherUser, referenceDate, sampleBreakdowns()); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		if err := c.Invalidate(ctx, userID); err != nil {
			t.Fatalf("invalidate failed: %v", err)
		}

		if got, _ := c.Get(ctx, userID, referenceDate); got != nil {
			t.Error("expected the user's entries dropped")
		}
		if got, _ := c.Get(ctx, otherUser, referenceDate); got == nil {
			t.Error("expected the other user's entry kept")
		}
	})
}
