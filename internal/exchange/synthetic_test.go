package exchange

import (
	"context"
	"math"
	"testing"
	"time"

	"pairflow/internal/model"
)

func testOpts(seed int64) SyntheticOptions {
	return SyntheticOptions{
		Asset:       "BTC-USD",
		PoolMinutes: 60,
		Start:       time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC),
		Step:        3 * time.Second,
		Seed:        seed,
		StartProb:   0.55,
		Volatility:  0.012,
		Spread:      0.01,
		Reversion:   0.05,
	}
}

// 同一种子必须复现同一报价序列，回放才有意义
func TestSyntheticFeedDeterminism(t *testing.T) {
	ctx := context.Background()
	a := NewSyntheticFeed(testOpts(42))
	b := NewSyntheticFeed(testOpts(42))

	for i := 0; i < 50; i++ {
		ia, err := a.Poll(ctx)
		if err != nil {
			t.Fatalf("poll a: %v", err)
		}
		ib, err := b.Poll(ctx)
		if err != nil {
			t.Fatalf("poll b: %v", err)
		}
		if ia.PoolID != ib.PoolID || ia.MinutesLeft != ib.MinutesLeft {
			t.Fatalf("step %d: pool info diverged: %+v vs %+v", i, ia, ib)
		}
		for _, leg := range a.Legs() {
			qa, _ := a.GetQuote(ctx, leg)
			qb, _ := b.GetQuote(ctx, leg)
			if qa != qb {
				t.Fatalf("step %d leg %s: quotes diverged: %+v vs %+v", i, leg, qa, qb)
			}
		}
	}
	t.Logf("✅ 同种子 50 步序列完全一致")
}

// 报价必须落在 [0.01, 0.99]、按美分取整，且两腿公允价近似互补
func TestSyntheticFeedQuoteBounds(t *testing.T) {
	ctx := context.Background()
	opts := testOpts(7)
	opts.Volatility = 0.05 // 放大波动逼近边界
	f := NewSyntheticFeed(opts)

	for i := 0; i < 200; i++ {
		if _, err := f.Poll(ctx); err != nil {
			t.Fatalf("poll: %v", err)
		}
		up, err := f.GetQuote(ctx, LegUp)
		if err != nil {
			t.Fatalf("get up: %v", err)
		}
		down, err := f.GetQuote(ctx, LegDown)
		if err != nil {
			t.Fatalf("get down: %v", err)
		}
		for _, q := range []model.LegQuote{up, down} {
			if q.Bid < 0.01 || q.Ask > 0.99 || q.Ask < q.Bid {
				t.Fatalf("step %d: quote out of range: %+v", i, q)
			}
			for _, p := range []float64{q.Bid, q.Ask, q.Mid} {
				if math.Abs(p*100-math.Round(p*100)) > 1e-9 {
					t.Fatalf("step %d: price %.6f not cent-rounded", i, p)
				}
			}
		}
		if sum := up.Mid + down.Mid; math.Abs(sum-1.0) > 0.011 {
			t.Fatalf("step %d: mids should be complementary, got %.3f + %.3f", i, up.Mid, down.Mid)
		}
	}
	t.Logf("✅ 200 步报价全部在界内且互补")
}

// 池走完后要滚到下一池：PoolID 递增、剩余时间重置、概率回到起点
func TestSyntheticFeedRollover(t *testing.T) {
	ctx := context.Background()
	opts := testOpts(1)
	opts.PoolMinutes = 1
	opts.Step = 30 * time.Second
	f := NewSyntheticFeed(opts)

	info, err := f.Poll(ctx)
	if err != nil {
		t.Fatalf("poll 1: %v", err)
	}
	if info.PoolID != "BTC-USD-0" {
		t.Fatalf("expected first pool id BTC-USD-0, got %s", info.PoolID)
	}
	if math.Abs(info.MinutesLeft-0.5) > 1e-9 {
		t.Fatalf("expected 0.5 minutes left, got %.4f", info.MinutesLeft)
	}

	info, err = f.Poll(ctx)
	if err != nil {
		t.Fatalf("poll 2: %v", err)
	}
	if info.PoolID != "BTC-USD-1" {
		t.Fatalf("expected rollover to BTC-USD-1, got %s", info.PoolID)
	}
	if math.Abs(info.MinutesLeft-1.0) > 1e-9 {
		t.Fatalf("new pool should start full, got %.4f minutes left", info.MinutesLeft)
	}
	t.Logf("✅ 池滚动正常: %s 剩余 %.1f 分钟", info.PoolID, info.MinutesLeft)
}

func TestSyntheticFeedUnknownLeg(t *testing.T) {
	f := NewSyntheticFeed(testOpts(3))
	if _, err := f.GetQuote(context.Background(), "sideways"); err == nil {
		t.Fatalf("expected error for unknown leg")
	}
	t.Logf("✅ 未知腿返回错误")
}

// BuildSnapshot 要把池信息、两腿报价和外部持仓拼成一帧
func TestBuildSnapshot(t *testing.T) {
	ctx := context.Background()
	f := NewSyntheticFeed(testOpts(9))
	positions := []model.Position{{Asset: LegUp, Size: 40, Side: model.SideHigher}}

	snap, err := BuildSnapshot(ctx, f, positions)
	if err != nil {
		t.Fatalf("build snapshot: %v", err)
	}
	if snap.PoolID == "" || snap.Asset != "BTC-USD" {
		t.Fatalf("snapshot missing pool identity: %+v", snap)
	}
	if len(snap.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(snap.Legs))
	}
	if _, ok := snap.Quote(LegUp); !ok {
		t.Fatalf("snapshot should carry quote for %s", LegUp)
	}
	if got := snap.PositionSize(LegUp); got != 40 {
		t.Fatalf("expected position 40, got %.1f", got)
	}
	if got := snap.PositionSize(LegDown); got != 0 {
		t.Fatalf("expected empty down position, got %.1f", got)
	}
	t.Logf("✅ 快照拼装完整: pool=%s legs=%d", snap.PoolID, len(snap.Legs))
}
