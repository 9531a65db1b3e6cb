package strategy

import (
	"fmt"

	"pairflow/internal/consts"
	"pairflow/internal/model"
	"pairflow/internal/risk"
	"pairflow/pkg/logger"
)

// 开场探测:在高价腿上小额试探,距价带上沿越近数量越小。
// 每池只走一轮阶梯,上一档成交反映到持仓之前不发下一档。
func (e *Engine) probe(hq model.LegQuote) *model.TradingDecision {
	p := e.params
	if e.probeRungs >= p.ProbeRungs {
		return nil
	}
	higherSize := e.ld.Leg(model.SideHigher).Size()
	if e.probeAwait && higherSize <= e.probeBaseline+eps {
		return nil
	}
	if hq.Ask <= p.ProbeFloor || hq.Ask >= p.ProbeCeiling {
		return nil
	}

	// 下半带满额,上半带线性递减到零
	scale := 2 * (p.ProbeCeiling - hq.Ask) / (p.ProbeCeiling - p.ProbeFloor)
	if scale > 1 {
		scale = 1
	}
	size := p.ToShares(p.ProbeSize, hq.Ask) * scale
	if size <= eps {
		return nil
	}
	price := flooredPrice(hq.Ask + float64(e.probeRungs)*p.ProbeLadderStep)

	// 剩余阶梯全部按当前数量成交后的投影均价不能越过上限
	if proj := e.ladderProjection(hq.Ask, size); proj >= p.ProbeAvgCap-eps {
		logger.Debug("探测放弃,投影均价越限",
			logger.Pair("projected", proj),
			logger.Pair("cap", p.ProbeAvgCap))
		return nil
	}
	if v := e.guard.Admit(e.ld, model.SideHigher, price, size, risk.ModeStandard); !v.OK {
		return nil
	}

	e.probeRungs++
	e.probeAwait = true
	e.probeBaseline = higherSize
	return e.buy(model.SideHigher, price, size,
		fmt.Sprintf("probe rung %d/%d at %.3f", e.probeRungs, p.ProbeRungs, price))
}

// 从当前档到最后一档全部成交后的 higher 腿均价。
func (e *Engine) ladderProjection(ask, size float64) float64 {
	p := e.params
	leg := e.ld.Leg(model.SideHigher)
	cost, qty := leg.Cost(), leg.Size()
	for r := e.probeRungs; r < p.ProbeRungs; r++ {
		price := flooredPrice(ask + float64(r)*p.ProbeLadderStep)
		cost += price * size
		qty += size
	}
	if qty <= 0 {
		return 0
	}
	return cost / qty
}

// 摊低:腿价回落到自身均价之下足够深时,按深度等比加仓压低均价。
func (e *Engine) averageDown(side model.Side, q model.LegQuote) *model.TradingDecision {
	p := e.params
	leg := e.ld.Leg(side)
	if leg.Empty() {
		return nil
	}
	avg := leg.WeightedAvg()
	dip := avg - q.Ask
	if dip < p.DipThreshold-eps {
		return nil
	}

	size := p.ToShares(p.DipBaseSize, q.Ask) * dip / p.DipThreshold
	if max := p.ToShares(p.DipMaxSize, q.Ask); size > max {
		size = max
	}
	price := flooredPrice(q.Ask + p.DipLadderStep)
	v := e.guard.Admit(e.ld, side, price, size, risk.ModeStandard)
	if !v.OK {
		logger.Debug("摊低被守卫拒绝",
			logger.Pair("side", string(side)),
			logger.Pair("reject", v.Reject))
		return nil
	}
	return e.buy(side, price, size,
		fmt.Sprintf("dip %.3f below avg %.3f", dip, avg))
}

// 对冲:低价腿够便宜且数量不足目标比例时,向目标补齐。
func (e *Engine) hedge(lq model.LegQuote) *model.TradingDecision {
	p := e.params
	higherSize := e.ld.Leg(model.SideHigher).Size()
	if higherSize <= eps {
		return nil
	}
	if lq.Ask >= p.HedgeCeiling-eps {
		return nil
	}
	lowerSize := e.ld.Leg(model.SideLower).Size()
	deficit := p.HedgeTargetRatio*higherSize - lowerSize
	if deficit < p.ToShares(p.HedgeMinSize, lq.Ask) {
		return nil
	}
	size := deficit
	if max := p.ToShares(p.HedgeMaxSize, lq.Ask); size > max {
		size = max
	}
	price := flooredPrice(lq.Ask + p.HedgeLadderStep)
	v := e.guard.Admit(e.ld, model.SideLower, price, size, p.HedgeMode())
	if !v.OK {
		logger.Debug("对冲被守卫拒绝",
			logger.Pair("reject", v.Reject),
			logger.Pair("deficit", deficit))
		return nil
	}
	return e.buy(model.SideLower, price, size,
		fmt.Sprintf("hedge toward %.0f%% of higher size", p.HedgeTargetRatio*100))
}
