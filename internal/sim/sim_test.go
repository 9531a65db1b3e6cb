package sim

import (
	"context"
	"math"
	"testing"
	"time"

	"pairflow/internal/exchange"
	"pairflow/internal/model"
	"pairflow/internal/strategy"
)

var simStart = time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func mustEngine(t *testing.T, name string, poolMinutes float64) *strategy.Engine {
	t.Helper()
	p, err := strategy.Get(name)
	if err != nil {
		t.Fatalf("preset %s: %v", name, err)
	}
	return strategy.NewEngine(p, poolMinutes)
}

// certainOpts 关掉全部随机失败与滑点，挂单必然成交
func certainOpts() Options {
	return Options{
		RunID:           "test-run",
		Preset:          "pairlock-1h",
		Seed:            42,
		FillDelay:       1500 * time.Millisecond,
		BaseFillProb:    1.0,
		MaxRetries:      2,
		RetryDelay:      2 * time.Second,
		SettlementDelay: 3 * time.Second,
		Budget:          500,
	}
}

type memRecorder struct {
	records   []model.TradeRecord
	summaries []model.RunSummary
}

func (m *memRecorder) Append(r *model.TradeRecord) error {
	m.records = append(m.records, *r)
	return nil
}

func (m *memRecorder) WriteSummary(s *model.RunSummary) error {
	m.summaries = append(m.summaries, *s)
	return nil
}

type scriptFrame struct {
	poolID      string
	at          time.Time
	minutesLeft float64
	upAsk       float64
	downAsk     float64
}

// scriptFeed 按脚本逐帧吐行情，播完后停在最后一帧
type scriptFeed struct {
	frames []scriptFrame
	idx    int
	cur    scriptFrame
}

func (f *scriptFeed) Legs() []string {
	return []string{exchange.LegUp, exchange.LegDown}
}

func (f *scriptFeed) Poll(context.Context) (exchange.PoolInfo, error) {
	if f.idx < len(f.frames) {
		f.cur = f.frames[f.idx]
		f.idx++
	}
	return exchange.PoolInfo{
		PoolID:      f.cur.poolID,
		Asset:       "TEST",
		Time:        f.cur.at,
		MinutesLeft: f.cur.minutesLeft,
	}, nil
}

func (f *scriptFeed) GetQuote(_ context.Context, legID string) (model.LegQuote, error) {
	ask := f.cur.upAsk
	if legID == exchange.LegDown {
		ask = f.cur.downAsk
	}
	return model.LegQuote{LegID: legID, Bid: ask - 0.01, Ask: ask, Mid: ask - 0.005, Spread: 0.01}, nil
}

func quoteSnap(ts time.Time, upAsk, downAsk float64) *model.PoolSnapshot {
	return &model.PoolSnapshot{
		PoolID:      "T-0",
		Asset:       "TEST",
		Time:        ts,
		MinutesLeft: 50,
		Legs: []model.LegQuote{
			{LegID: exchange.LegUp, Bid: upAsk - 0.01, Ask: upAsk, Mid: upAsk - 0.005, Spread: 0.01},
			{LegID: exchange.LegDown, Bid: downAsk - 0.01, Ask: downAsk, Mid: downAsk - 0.005, Spread: 0.01},
		},
	}
}

func buyDecision(action model.Action, leg string, price, size float64) *model.TradingDecision {
	return &model.TradingDecision{Action: action, LegID: leg, Price: price, Size: size, Reason: "test"}
}

// 完整生命周期：探测挂单 → 延迟后成交 → 回报延迟过后持仓可见 →
// 引擎发出第二档，收尾清算把在途单落到终态
func TestSimulatorFillLifecycle(t *testing.T) {
	feed := &scriptFeed{frames: []scriptFrame{
		{"P-0", simStart, 55.00, 0.55, 0.40},
		{"P-0", simStart.Add(3 * time.Second), 54.95, 0.55, 0.40},
		{"P-0", simStart.Add(6 * time.Second), 54.90, 0.55, 0.40},
	}}
	rec := &memRecorder{}
	s, err := New(certainOpts(), mustEngine(t, "pairlock-1h", 60), feed, rec)
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}

	res, err := s.RunUntilEnd(context.Background(), 0, 6*time.Second)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.Summary.StopCause != model.StopMaxDuration {
		t.Fatalf("expected max_duration stop, got %s", res.Summary.StopCause)
	}
	if res.Cycles != 3 {
		t.Fatalf("expected 3 cycles, got %d", res.Cycles)
	}
	if res.Fills != 2 || res.Summary.Submitted != 2 || res.Failures != 0 {
		t.Fatalf("expected 2 submits / 2 fills / 0 failures, got %d/%d/%d",
			res.Summary.Submitted, res.Fills, res.Failures)
	}

	if len(rec.records) != 4 {
		t.Fatalf("expected 4 trade records, got %d", len(rec.records))
	}
	wantStatus := []model.RecordStatus{model.RecordSubmitted, model.RecordFilled, model.RecordSubmitted, model.RecordFilled}
	for i, want := range wantStatus {
		if rec.records[i].Status != want {
			t.Fatalf("record %d: expected %s, got %s", i, want, rec.records[i].Status)
		}
	}
	// 第一档 20@0.55，第二档 20@0.54（阶梯降一分）
	if !approx(rec.records[0].Price, 0.55) || !approx(rec.records[2].Price, 0.54) {
		t.Fatalf("ladder prices wrong: %.3f then %.3f", rec.records[0].Price, rec.records[2].Price)
	}
	if !approx(rec.records[3].LegQty, 40) || !approx(rec.records[3].LegAvgPrice, 0.545) {
		t.Fatalf("cumulative leg state wrong: qty=%.1f avg=%.4f",
			rec.records[3].LegQty, rec.records[3].LegAvgPrice)
	}

	sum := res.Summary
	if !approx(sum.HigherSize, 40) || !approx(sum.HigherCost, 21.8) {
		t.Fatalf("higher leg totals wrong: size=%.1f cost=%.2f", sum.HigherSize, sum.HigherCost)
	}
	if !approx(sum.PairCost, 0.545) {
		t.Fatalf("expected actual pair cost 0.545, got %.4f", sum.PairCost)
	}
	if !approx(sum.SpentUSD, 21.8) || !approx(sum.BudgetLeftUSD, 478.2) {
		t.Fatalf("budget accounting wrong: spent=%.2f left=%.2f", sum.SpentUSD, sum.BudgetLeftUSD)
	}
	if len(rec.summaries) != 1 {
		t.Fatalf("expected exactly one summary record, got %d", len(rec.summaries))
	}
	t.Logf("✅ 生命周期完整: %d 周期 %d 成交 spent=%.2f pnl=%.2f",
		res.Cycles, res.Fills, sum.SpentUSD, sum.PnlUSD)
}

// 大单抽中流动性不足 → 失败可重试，到点且腿上无在途单时带着
// retry_count=1 重新入场
func TestSimulatorScenarioIlliquidityRetry(t *testing.T) {
	opts := certainOpts()
	opts.FillDelay = time.Second
	opts.IlliquidityProb = 1.0
	opts.IlliquiditySize = 200
	rec := &memRecorder{}
	s, err := New(opts, mustEngine(t, "pairlock-1h", 60), &scriptFeed{}, rec)
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}
	snap := quoteSnap(simStart, 0.55, 0.40)

	s.beginCycle(simStart)
	if _, err := s.Submit(context.Background(), buyDecision(model.ActionBuyHigher, exchange.LegUp, 0.50, 250)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	s.beginCycle(simStart.Add(2 * time.Second))
	s.resolvePending(snap, false)
	if s.failCount != 1 {
		t.Fatalf("expected illiquidity failure, failures=%d", s.failCount)
	}
	s.processRetries() // 还没到重试时点
	if len(s.pending) != 0 {
		t.Fatalf("retry should wait for the delay")
	}

	s.beginCycle(simStart.Add(4 * time.Second))
	s.processRetries()
	if len(s.pending) != 1 {
		t.Fatalf("expected resubmission after retry delay")
	}
	for _, o := range s.pending {
		if o.RetryCount != 1 {
			t.Fatalf("expected retry_count=1, got %d", o.RetryCount)
		}
	}

	wantStatus := []model.RecordStatus{model.RecordSubmitted, model.RecordFailed, model.RecordSubmitted}
	if len(rec.records) != len(wantStatus) {
		t.Fatalf("expected %d records, got %d", len(wantStatus), len(rec.records))
	}
	for i, want := range wantStatus {
		if rec.records[i].Status != want {
			t.Fatalf("record %d: expected %s, got %s", i, want, rec.records[i].Status)
		}
	}
	if rec.records[1].FailureReason != string(model.FailIlliquidity) {
		t.Fatalf("expected insufficient_liquidity, got %s", rec.records[1].FailureReason)
	}
	t.Logf("✅ 流动性不足重试: retries=%d", s.retries)
}

// 重试到达上限后失败为终态，不再入场
func TestSimulatorRetryBound(t *testing.T) {
	opts := certainOpts()
	opts.FillDelay = time.Second
	opts.RetryDelay = time.Second
	opts.RejectProb = 1.0
	opts.MaxRetries = 2
	rec := &memRecorder{}
	s, err := New(opts, mustEngine(t, "pairlock-1h", 60), &scriptFeed{}, rec)
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}
	snap := quoteSnap(simStart, 0.55, 0.40)

	s.beginCycle(simStart)
	if _, err := s.Submit(context.Background(), buyDecision(model.ActionBuyHigher, exchange.LegUp, 0.50, 10)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	for i := 1; i <= 6; i++ {
		s.beginCycle(simStart.Add(time.Duration(i) * 2 * time.Second))
		s.resolvePending(snap, false)
		s.processRetries()
	}

	if s.submitted != 3 || s.retries != 2 || s.failCount != 3 {
		t.Fatalf("expected 3 submits / 2 retries / 3 failures, got %d/%d/%d",
			s.submitted, s.retries, s.failCount)
	}
	if len(s.pending) != 0 || len(s.retryQ) != 0 {
		t.Fatalf("maxed-out order must not be retried again: pending=%d queued=%d",
			len(s.pending), len(s.retryQ))
	}
	t.Logf("✅ 重试上限: 共 %d 次提交后终结", s.submitted)
}

// 预算门：已投入+在途锁定+新单不得超过池级上限
func TestSimulatorBudgetCeiling(t *testing.T) {
	opts := certainOpts()
	opts.Budget = 12
	rec := &memRecorder{}
	s, err := New(opts, mustEngine(t, "pairlock-1h", 60), &scriptFeed{}, rec)
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}

	s.beginCycle(simStart)
	if _, err := s.Submit(context.Background(), buyDecision(model.ActionBuyHigher, exchange.LegUp, 0.55, 20)); err != nil {
		t.Fatalf("first submit within budget: %v", err)
	}
	if _, err := s.Submit(context.Background(), buyDecision(model.ActionBuyLower, exchange.LegDown, 0.20, 20)); err == nil {
		t.Fatalf("second submit should breach the budget (11+4 > 12)")
	}

	if s.rejected != 1 || len(s.pending) != 1 {
		t.Fatalf("expected 1 rejection and 1 pending, got %d/%d", s.rejected, len(s.pending))
	}
	last := rec.records[len(rec.records)-1]
	if last.Status != model.RecordRejected || last.FailureReason != "budget_exceeded" {
		t.Fatalf("expected budget_exceeded rejection record, got %+v", last)
	}
	t.Logf("✅ 预算门拦截越界提交")
}

// 同一条腿有在途单或未回报成交时不再接新单
func TestSimulatorActiveLegFilter(t *testing.T) {
	opts := certainOpts()
	opts.FillDelay = time.Second
	opts.SettlementDelay = 2 * time.Second
	rec := &memRecorder{}
	s, err := New(opts, mustEngine(t, "pairlock-1h", 60), &scriptFeed{}, rec)
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}
	snap := quoteSnap(simStart, 0.55, 0.40)
	ctx := context.Background()

	s.beginCycle(simStart)
	if _, err := s.Submit(ctx, buyDecision(model.ActionBuyHigher, exchange.LegUp, 0.55, 20)); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := s.Submit(ctx, buyDecision(model.ActionBuyHigher, exchange.LegUp, 0.50, 10)); err == nil {
		t.Fatalf("second submit on busy leg should be rejected")
	}

	// 成交后、回报可见前，这条腿仍算占用
	s.beginCycle(simStart.Add(2 * time.Second))
	s.resolvePending(snap, false)
	if s.fillCount != 1 {
		t.Fatalf("expected fill, got fills=%d", s.fillCount)
	}
	if _, err := s.Submit(ctx, buyDecision(model.ActionBuyHigher, exchange.LegUp, 0.50, 10)); err == nil {
		t.Fatalf("leg should stay busy until the fill is visible")
	}

	s.beginCycle(simStart.Add(4 * time.Second))
	if _, err := s.Submit(ctx, buyDecision(model.ActionBuyHigher, exchange.LegUp, 0.50, 10)); err != nil {
		t.Fatalf("leg should be free after settlement visibility: %v", err)
	}
	if s.rejected != 2 {
		t.Fatalf("expected 2 rejections, got %d", s.rejected)
	}
	t.Logf("✅ 同腿在途过滤正常")
}

// 连续锁定提示只落一条记录，间断后重新落
func TestSimulatorHoldDedup(t *testing.T) {
	rec := &memRecorder{}
	s, err := New(certainOpts(), mustEngine(t, "pairlock-1h", 60), &scriptFeed{}, rec)
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}
	hold := &model.TradingDecision{Action: model.ActionHold, Reason: "locked"}

	s.beginCycle(simStart)
	s.recordHold(hold)
	s.recordHold(hold)
	if len(rec.records) != 1 {
		t.Fatalf("consecutive holds should collapse to one record, got %d", len(rec.records))
	}
	s.clearHoldStreak()
	s.recordHold(hold)
	if len(rec.records) != 2 {
		t.Fatalf("hold after a gap should be recorded again, got %d", len(rec.records))
	}
	t.Logf("✅ HOLD 去重正常")
}

func runSynthetic(t *testing.T, feedSeed, simSeed int64) *model.RunSummary {
	t.Helper()
	feed := exchange.NewSyntheticFeed(exchange.SyntheticOptions{
		Asset:       "BTC-USD",
		PoolMinutes: 15,
		Start:       simStart,
		Step:        3 * time.Second,
		Seed:        feedSeed,
		StartProb:   0.55,
		Volatility:  0.012,
		Spread:      0.01,
		Reversion:   0.05,
	})
	opts := Options{
		RunID:             "det-run",
		Preset:            "pairlock-15m",
		Seed:              simSeed,
		FillDelay:         1500 * time.Millisecond,
		BaseFillProb:      0.85,
		FillDistanceBoost: 4,
		MaxSlippage:       0.01,
		InvalidPriceProb:  0.01,
		RejectProb:        0.03,
		IlliquidityProb:   0.05,
		IlliquiditySize:   200,
		MaxRetries:        2,
		RetryDelay:        2 * time.Second,
		SettlementDelay:   3 * time.Second,
		Budget:            500,
	}
	s, err := New(opts, mustEngine(t, "pairlock-15m", 15), feed, &memRecorder{})
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}
	res, err := s.RunUntilEnd(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return res.Summary
}

// 同种子完整回放必须逐字段一致，这是回测可信的底线
func TestSimulatorDeterministicReplay(t *testing.T) {
	a := runSynthetic(t, 5, 9)
	b := runSynthetic(t, 5, 9)

	if a.StopCause != model.StopRollover {
		t.Fatalf("15m pool should end by rollover, got %s", a.StopCause)
	}
	if a.Cycles < 250 {
		t.Fatalf("run ended too early: %d cycles", a.Cycles)
	}
	if a.Cycles != b.Cycles || a.Submitted != b.Submitted || a.Fills != b.Fills ||
		a.Failures != b.Failures || a.Retries != b.Retries || a.Trades != b.Trades {
		t.Fatalf("counters diverged:\n a=%+v\n b=%+v", a, b)
	}
	if a.SpentUSD != b.SpentUSD || a.PnlUSD != b.PnlUSD || a.PairCost != b.PairCost ||
		a.HigherSize != b.HigherSize || a.LowerSize != b.LowerSize {
		t.Fatalf("positions diverged:\n a=%+v\n b=%+v", a, b)
	}
	t.Logf("✅ 回放一致: cycles=%d fills=%d spent=%.2f pnl=%.2f",
		a.Cycles, a.Fills, a.SpentUSD, a.PnlUSD)
}
