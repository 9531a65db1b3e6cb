package exchange

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"pairflow/internal/model"
	"pairflow/pkg/logger"
)

const (
	LegUp   = "up"
	LegDown = "down"
)

// SyntheticOptions 合成行情的全部旋钮。随机源必须由外部注入种子,
// 同一种子同一序列,回放可复现。
type SyntheticOptions struct {
	Asset       string
	PoolMinutes float64
	Start       time.Time     // 虚拟时钟起点
	Step        time.Duration // 每次 Poll 推进的虚拟时长
	Seed        int64
	StartProb   float64 // higher 腿初始公允概率
	Volatility  float64 // 每步随机游走幅度
	Spread      float64 // 买卖价差
	Reversion   float64 // 向 0.5 的回归强度
	Drift       float64 // 每步漂移
}

// SyntheticFeed 两腿合成行情:公允概率做均值回归随机游走,
// up 腿报价为 p,down 腿为 1-p,池到期自动滚到下一池。
type SyntheticFeed struct {
	mu   sync.Mutex
	opts SyntheticOptions
	rng  *rand.Rand

	prob      float64
	now       time.Time
	poolStart time.Time
	poolSeq   int
	quotes    map[string]model.LegQuote
}

func NewSyntheticFeed(opts SyntheticOptions) *SyntheticFeed {
	if opts.PoolMinutes <= 0 {
		opts.PoolMinutes = 60
	}
	if opts.Step <= 0 {
		opts.Step = 3 * time.Second
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}
	if opts.StartProb <= 0 || opts.StartProb >= 1 {
		opts.StartProb = 0.55
	}
	if opts.Spread <= 0 {
		opts.Spread = 0.01
	}
	f := &SyntheticFeed{
		opts:      opts,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		prob:      opts.StartProb,
		now:       opts.Start,
		poolStart: opts.Start,
		quotes:    make(map[string]model.LegQuote),
	}
	f.refresh()
	return f
}

func (f *SyntheticFeed) Legs() []string {
	return []string{LegUp, LegDown}
}

// Poll 推进一步虚拟时间并演化价格;池走完自动滚动到下一池。
func (f *SyntheticFeed) Poll(_ context.Context) (PoolInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(f.opts.Step)
	if f.minutesLeft() <= 0 {
		f.poolStart = f.now
		f.poolSeq++
		f.prob = f.opts.StartProb
		logger.Info("合成行情滚入下一池",
			logger.Pair("asset", f.opts.Asset),
			logger.Pair("seq", f.poolSeq))
	}
	f.evolve()
	f.refresh()

	return PoolInfo{
		PoolID:      fmt.Sprintf("%s-%d", f.opts.Asset, f.poolSeq),
		Asset:       f.opts.Asset,
		Time:        f.now,
		MinutesLeft: f.minutesLeft(),
	}, nil
}

func (f *SyntheticFeed) GetQuote(_ context.Context, legID string) (model.LegQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[legID]
	if !ok {
		return model.LegQuote{}, fmt.Errorf("unknown leg %q", legID)
	}
	return q, nil
}

func (f *SyntheticFeed) minutesLeft() float64 {
	elapsed := f.now.Sub(f.poolStart).Minutes()
	return f.opts.PoolMinutes - elapsed
}

func (f *SyntheticFeed) evolve() {
	o := f.opts
	f.prob += o.Drift + o.Volatility*f.rng.NormFloat64() - o.Reversion*(f.prob-0.5)
	f.prob = clampProb(f.prob)
}

func (f *SyntheticFeed) refresh() {
	half := f.opts.Spread / 2
	f.quotes[LegUp] = mkQuote(LegUp, f.prob, half)
	f.quotes[LegDown] = mkQuote(LegDown, 1-f.prob, half)
}

func mkQuote(legID string, fair, half float64) model.LegQuote {
	ask := roundCent(fair + half)
	bid := roundCent(fair - half)
	if bid < 0.01 {
		bid = 0.01
	}
	if ask > 0.99 {
		ask = 0.99
	}
	if ask < bid {
		ask = bid
	}
	return model.LegQuote{
		LegID:  legID,
		Bid:    bid,
		Ask:    ask,
		Mid:    roundCent(fair),
		Spread: ask - bid,
	}
}

func clampProb(p float64) float64 {
	if p < 0.02 {
		return 0.02
	}
	if p > 0.98 {
		return 0.98
	}
	return p
}

func roundCent(p float64) float64 {
	return math.Round(p*100) / 100
}
