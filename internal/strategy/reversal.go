package strategy

import (
	"fmt"

	"pairflow/internal/model"
	"pairflow/internal/risk"
	"pairflow/pkg/logger"
)

// 反转追补:低价腿的价格反超高价腿足够多,说明市场改押另一边;
// 仓位又不平衡时,分档追补低价腿降低单边敞口。
// 开盘宽限之后、尾段截止之前才激活,按固定粒度节流。
func (e *Engine) reversalCheck(snap *model.PoolSnapshot, hq, lq model.LegQuote) *model.TradingDecision {
	p := e.params
	elapsed := e.poolMinutes - snap.MinutesLeft
	if elapsed < p.ReversalGraceMin || snap.MinutesLeft < p.ReversalCutoffMin {
		return nil
	}
	if e.tranches >= p.ReversalTranches || !e.ld.BothOpen() {
		return nil
	}
	if !e.lastReversal.IsZero() && snap.Time.Sub(e.lastReversal) < p.ReversalInterval {
		return nil
	}
	if lq.Ask < hq.Ask+p.ReversalMargin-eps {
		return nil
	}
	if e.ld.BalanceRatio() >= p.ReversalBalanceMax-eps {
		return nil
	}
	e.lastReversal = snap.Time

	size := e.ld.Leg(model.SideLower).Size() * p.ReversalFrac
	if size <= eps {
		return nil
	}
	v := e.guard.Admit(e.ld, model.SideLower, lq.Ask, size, risk.ModeHedgeStrict)
	if !v.OK {
		logger.Info("反转追补被守卫拒绝",
			logger.Pair("pool", snap.PoolID),
			logger.Pair("reject", v.Reject),
			logger.Pair("lowerAsk", lq.Ask),
			logger.Pair("higherAsk", hq.Ask))
		return nil
	}

	e.tranches++
	return e.buy(model.SideLower, lq.Ask, size,
		fmt.Sprintf("reversal tranche %d/%d: lower %.2f over higher %.2f", e.tranches, p.ReversalTranches, lq.Ask, hq.Ask))
}
