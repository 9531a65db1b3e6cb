package exchange

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	goexv2 "github.com/nntaoli-project/goex/v2"
	gmodel "github.com/nntaoli-project/goex/v2/model"

	"pairflow/internal/consts"
	"pairflow/internal/model"
	"pairflow/pkg/errors"
	"pairflow/pkg/errors/ecode"
	"pairflow/pkg/logger"
)

// OkxFeed 用 OKX 现货最新价驱动两腿报价。
// 以池开盘时刻的标的价为基准，之后的涨跌幅经 logistic 映射成 up 腿的
// 公允概率，down 腿恒为 1-p。池窗口按真实时间滚动，到期自动以当前价开新池。

type OkxOptions struct {
	Symbol      string        // 标的现货对，例如 BTC/USDT
	Asset       string        // 池标的名，进 PoolID；为空时由 Symbol 推导
	PoolMinutes float64       // 池时长（分钟）
	Spread      float64       // 两腿报价的买卖价差
	Sensitivity float64       // 收益率到概率的斜率，越大腿价对现货波动越敏感
	Timeout     time.Duration // 单次行情请求超时
}

type OkxFeed struct {
	mu   sync.Mutex
	opts OkxOptions

	pub  goexv2.IPubRest
	pair gmodel.CurrencyPair

	openPrice float64 // 当前池开盘时的标的价
	poolStart time.Time
	poolSeq   int
	quotes    map[string]model.LegQuote
}

func NewOkxFeed(opts OkxOptions) (*OkxFeed, error) {
	if opts.Asset == "" {
		opts.Asset = strings.ReplaceAll(opts.Symbol, "/", "-")
	}
	if opts.PoolMinutes <= 0 {
		opts.PoolMinutes = consts.DefaultPoolMinutes
	}
	if opts.Spread <= 0 {
		opts.Spread = 0.01
	}
	if opts.Sensitivity <= 0 {
		opts.Sensitivity = 120
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	pub := goexv2.OKx.Spot
	pair, err := toCurrencyPair(pub, opts.Symbol)
	if err != nil {
		return nil, err
	}
	return &OkxFeed{
		opts:   opts,
		pub:    pub,
		pair:   pair,
		quotes: make(map[string]model.LegQuote),
	}, nil
}

// symbol 格式转换: "BTC/USDT" -> goex 需要的 CurrencyPair
func toCurrencyPair(pub goexv2.IPubRest, symbol string) (gmodel.CurrencyPair, error) {
	parts := strings.Split(symbol, "/")
	if len(parts) == 1 {
		parts = strings.Split(symbol, "-")
	}
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return gmodel.CurrencyPair{}, errors.WithCodef(ecode.FeedErr, "invalid symbol %q, expected like BTC/USDT", symbol)
	}
	pair, err := pub.NewCurrencyPair(parts[0], parts[1])
	if err != nil {
		return gmodel.CurrencyPair{}, errors.Wrapf(err, ecode.FeedErr, "resolve currency pair %s", symbol)
	}
	return pair, nil
}

func (f *OkxFeed) Legs() []string {
	return []string{LegUp, LegDown}
}

func (f *OkxFeed) Poll(ctx context.Context) (PoolInfo, error) {
	last, err := f.fetchLast(ctx)
	if err != nil {
		return PoolInfo{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	if f.poolStart.IsZero() {
		f.startPool(now, last)
	} else if now.Sub(f.poolStart).Minutes() >= f.opts.PoolMinutes {
		f.poolSeq++
		f.startPool(now, last)
	}

	prob := f.fairProb(last)
	half := f.opts.Spread / 2
	f.quotes[LegUp] = mkQuote(LegUp, prob, half)
	f.quotes[LegDown] = mkQuote(LegDown, 1-prob, half)

	return PoolInfo{
		PoolID:      f.poolID(),
		Asset:       f.opts.Asset,
		Time:        now,
		MinutesLeft: f.opts.PoolMinutes - now.Sub(f.poolStart).Minutes(),
	}, nil
}

func (f *OkxFeed) GetQuote(_ context.Context, legID string) (model.LegQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[legID]
	if !ok {
		return model.LegQuote{}, fmt.Errorf("unknown leg %q", legID)
	}
	return q, nil
}

func (f *OkxFeed) poolID() string {
	return fmt.Sprintf("%s-%d", f.opts.Asset, f.poolSeq)
}

func (f *OkxFeed) startPool(now time.Time, last float64) {
	f.poolStart = now
	f.openPrice = last
	logger.Info("现货价驱动的池窗口开启",
		logger.Pair("pool_id", f.poolID()),
		logger.Pair("symbol", f.opts.Symbol),
		logger.Pair("open_price", last))
}

// fairProb 把相对开盘价的收益率压进 (0,1)：持平时为 0.5，涨得越多 up 腿越贵
func (f *OkxFeed) fairProb(last float64) float64 {
	r := (last - f.openPrice) / f.openPrice
	return clampProb(1 / (1 + math.Exp(-f.opts.Sensitivity*r)))
}

type tickerResult struct {
	last float64
	err  error
}

// fetchLast 拉取现货最新价。goex 的公共接口不收 context，
// 放到 goroutine 里跑并用超时上下文兜底。
func (f *OkxFeed) fetchLast(ctx context.Context) (float64, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	ch := make(chan tickerResult, 1)
	go func() {
		ticker, _, err := f.pub.GetTicker(f.pair)
		if err != nil {
			ch <- tickerResult{err: err}
			return
		}
		if ticker == nil {
			ch <- tickerResult{err: errors.WithCode(ecode.FeedErr, "failed to get ticker")}
			return
		}
		ch <- tickerResult{last: ticker.Last}
	}()

	select {
	case <-timeoutCtx.Done():
		return 0, errors.Wrap(timeoutCtx.Err(), ecode.FeedErr, "okx ticker request timed out")
	case r := <-ch:
		if r.err != nil {
			return 0, errors.Wrap(r.err, ecode.FeedErr, "get okx ticker")
		}
		if r.last <= 0 {
			return 0, errors.WithCodef(ecode.FeedErr, "okx ticker price %.4f not positive", r.last)
		}
		return r.last, nil
	}
}
