package sim

import (
	"context"
	"time"

	"pairflow/internal/exchange"
	"pairflow/internal/model"
	"pairflow/pkg/errors"
	"pairflow/pkg/errors/ecode"
	"pairflow/pkg/logger"
)

// 连续快照失败到这个次数视为行情源死亡，属于不可恢复错误
const maxFeedFailures = 5

// 剩余分钟数回跳超过该值判定为滚池（容忍线上时钟的小抖动）
const rolloverJitterMin = 0.01

// RunUntilEnd 驱动一条完整的模拟运行：
// 快照 → 裁决在途挂单 → 处理重试 → 策略决策 → 预检提交，
// 直到池走完、滚入下一池、超出最大时长或外部取消。
// 收尾会强制清算剩余挂单再写汇总，保证每张挂单都有终态。
func (s *Simulator) RunUntilEnd(ctx context.Context, pollInterval, maxDuration time.Duration) (*model.RunResult, error) {
	if pollInterval <= 0 {
		pollInterval = s.opts.PollInterval
	}
	if maxDuration <= 0 {
		maxDuration = s.opts.MaxDuration
	}

	var (
		poolID    string
		started   time.Time
		last      *model.PoolSnapshot
		stop      model.StopCause
		fatalErr  error
		feedFails int
	)

loop:
	for {
		select {
		case <-ctx.Done():
			stop = model.StopCancelled
			break loop
		default:
		}

		snap, err := exchange.BuildSnapshot(ctx, s.feed, nil)
		if err != nil {
			feedFails++
			logger.Warn("行情快照失败，跳过本轮",
				logger.Pair("consecutive", feedFails),
				logger.Pair("err", err.Error()))
			if feedFails >= maxFeedFailures {
				stop = model.StopCancelled
				fatalErr = errors.Wrap(err, ecode.FeedErr, "price feed unavailable")
				break loop
			}
			if !s.sleep(ctx, pollInterval) {
				stop = model.StopCancelled
				break loop
			}
			continue
		}
		feedFails = 0

		if poolID == "" {
			poolID = snap.PoolID
			started = snap.Time
			logger.Info("模拟运行开始",
				logger.Pair("run_id", s.opts.RunID),
				logger.Pair("pool", poolID),
				logger.Pair("preset", s.opts.Preset),
				logger.Pair("seed", s.opts.Seed),
				logger.Pair("budget", s.opts.Budget))
		} else if snap.PoolID != poolID || snap.MinutesLeft > last.MinutesLeft+rolloverJitterMin {
			// 新池的报价不能用来清算旧池挂单，收尾用上一帧
			stop = model.StopRollover
			break loop
		}

		if snap.MinutesLeft <= 0 {
			last = snap
			stop = model.StopTimeEnd
			break loop
		}

		cycle := s.beginCycle(snap.Time)
		s.resolvePending(snap, false)
		s.processRetries()
		snap.Positions, _ = s.GetPositions(ctx, "")

		s.applyDecisions(ctx, snap, s.engine.Execute(snap))
		s.emitUpdate(snap, cycle)

		last = snap
		if maxDuration > 0 && snap.Time.Sub(started) >= maxDuration {
			stop = model.StopMaxDuration
			break loop
		}
		if s.opts.Realtime {
			if !s.sleep(ctx, pollInterval) {
				stop = model.StopCancelled
				break loop
			}
		}
	}

	if last != nil {
		s.resolvePending(last, true)
	}
	summary := s.buildSummary(stop, started, last)
	if err := s.rec.WriteSummary(summary); err != nil {
		logger.Error("汇总记录写出失败",
			logger.Pair("run_id", s.opts.RunID),
			logger.Pair("err", err.Error()))
	}
	logger.Info("模拟运行结束",
		logger.Pair("run_id", s.opts.RunID),
		logger.Pair("stop_cause", string(stop)),
		logger.Pair("cycles", summary.Cycles),
		logger.Pair("fills", summary.Fills),
		logger.Pair("failures", summary.Failures),
		logger.Pair("pnl", summary.PnlUSD))

	return &model.RunResult{
		Cycles:   summary.Cycles,
		Fills:    summary.Fills,
		Failures: summary.Failures,
		Trades:   summary.Trades,
		FinalPnl: summary.PnlUSD,
		Spent:    summary.SpentUSD,
		Budget:   summary.BudgetUSD,
		Summary:  summary,
	}, fatalErr
}

func (s *Simulator) beginCycle(t time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = t
	s.cycles++
	return s.cycles
}

func (s *Simulator) applyDecisions(ctx context.Context, snap *model.PoolSnapshot, ds []model.TradingDecision) {
	if len(ds) == 0 {
		// 本周期未锁定，下次锁定提示重新落一条
		s.clearHoldStreak()
		return
	}
	for i := range ds {
		d := &ds[i]
		switch {
		case d.Action == model.ActionHold:
			s.recordHold(d)
		case d.IsBuy():
			if _, err := s.Submit(ctx, d); err != nil {
				logger.Debug("决策未通过预检",
					logger.Pair("action", string(d.Action)),
					logger.Pair("leg", d.LegID),
					logger.Pair("err", err.Error()))
			}
		default:
			logger.Warn("忽略不支持的决策动作",
				logger.Pair("action", string(d.Action)),
				logger.Pair("pool", snap.PoolID))
		}
	}
}

func (s *Simulator) clearHoldStreak() {
	s.mu.Lock()
	s.holdStreak = false
	s.mu.Unlock()
}

func (s *Simulator) emitUpdate(snap *model.PoolSnapshot, cycle int64) {
	if s.opts.OnUpdate == nil {
		return
	}
	u := &model.RunUpdate{
		RunID:            s.opts.RunID,
		Cycle:            cycle,
		Phase:            s.engine.PhaseName(snap.MinutesLeft),
		Time:             snap.Time,
		MinutesLeft:      snap.MinutesLeft,
		PairCost:         s.engine.Ledger().PairCost(),
		SmoothedPairCost: s.engine.SmoothedCost(),
		Paused:           s.engine.Paused(),
	}
	if h, l, ok := s.engine.Roles(); ok {
		if q, found := snap.Quote(h); found {
			u.HigherAsk = q.Ask
		}
		if q, found := snap.Quote(l); found {
			u.LowerAsk = q.Ask
		}
		u.HigherSize = s.engine.Ledger().Leg(model.SideHigher).Size()
		u.LowerSize = s.engine.Ledger().Leg(model.SideLower).Size()
	}
	s.mu.Lock()
	u.SpentUSD = s.book.Invested()
	u.PnlUSD = s.markValueLocked(snap) - u.SpentUSD
	u.BudgetLeftUSD = s.book.Available()
	s.mu.Unlock()
	s.opts.OnUpdate(u)
}

// buildSummary 汇总用模拟器的实际成交口径（含滑点），
// 平滑配对成本取策略引擎的滚动均值。
func (s *Simulator) buildSummary(stop model.StopCause, started time.Time, last *model.PoolSnapshot) *model.RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := &model.RunSummary{
		RunID:            s.opts.RunID,
		Preset:           s.opts.Preset,
		Seed:             s.opts.Seed,
		StartedAt:        started,
		EndedAt:          s.now,
		StopCause:        stop,
		Cycles:           s.cycles,
		Submitted:        s.submitted,
		Fills:            s.fillCount,
		Failures:         s.failCount,
		Retries:          s.retries,
		Rejected:         s.rejected,
		Trades:           s.trades,
		SmoothedPairCost: s.engine.SmoothedCost(),
		SpentUSD:         s.book.Invested(),
		BudgetUSD:        s.opts.Budget,
		BudgetLeftUSD:    s.book.Available(),
	}
	if last != nil {
		sum.PoolID = last.PoolID
		sum.MarkValueUSD = s.markValueLocked(last)
		sum.PnlUSD = sum.MarkValueUSD - sum.SpentUSD
	}
	if h, l, ok := s.engine.Roles(); ok {
		sum.HigherSize = s.legQty[h]
		sum.HigherCost = s.legCost[h]
		sum.LowerSize = s.legQty[l]
		sum.LowerCost = s.legCost[l]

		havg, lavg := 0.0, 0.0
		if sum.HigherSize > 0 {
			havg = sum.HigherCost / sum.HigherSize
		}
		if sum.LowerSize > 0 {
			lavg = sum.LowerCost / sum.LowerSize
		}
		sum.PairCost = havg + lavg
		if total := sum.HigherSize + sum.LowerSize; total > 0 {
			maxSize := sum.HigherSize
			minSize := sum.LowerSize
			if minSize > maxSize {
				maxSize, minSize = minSize, maxSize
			}
			sum.AsymRatio = maxSize / total
			if maxSize > 0 && minSize > 0 {
				sum.BalanceRatio = minSize / maxSize
			}
		}
	}
	return sum
}

func (s *Simulator) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
