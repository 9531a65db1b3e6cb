package strategy

import (
	"fmt"
	"time"

	"pairflow/internal/consts"
	"pairflow/internal/ledger"
	"pairflow/internal/model"
	"pairflow/internal/risk"
	"pairflow/pkg/logger"
)

const eps = 1e-9

type phase int

const (
	phaseEntry phase = iota // 开场探测窗口
	phaseBuild              // 中段摊低与对冲
	phaseExit               // 尾段只等锁定或反转
)

// Engine 单池策略引擎。每池一个实例,只在自己的轮询循环里被访问,
// 状态全部内聚,不加锁。
type Engine struct {
	params      Params
	guard       *risk.Guard
	ld          *ledger.Ledger
	smoother    *CostSmoother
	poolMinutes float64

	// 腿角色:首个卖价越过探测下沿的腿定为 higher,整池粘滞不变
	higherLeg string
	lowerLeg  string
	roleSet   bool

	// 探测阶梯:每池只走一轮,上一档成交可见后才发下一档
	probeRungs    int
	probeAwait    bool
	probeBaseline float64

	// 配对成本超标后的加仓暂停
	paused bool

	lastRepeat   time.Time
	lastReversal time.Time
	tranches     int

	lastBuy map[model.Side]float64
	cycles  int64
}

func NewEngine(params Params, poolMinutes float64) *Engine {
	if poolMinutes <= 0 {
		poolMinutes = consts.DefaultPoolMinutes
	}
	return &Engine{
		params:      params,
		guard:       risk.NewGuard(params.Limits()),
		ld:          ledger.New(),
		smoother:    NewCostSmoother(params.SmoothingWindow),
		poolMinutes: poolMinutes,
		lastBuy:     make(map[model.Side]float64),
	}
}

// Reset 在池开始时调用,清掉上一池的全部状态。
func (e *Engine) Reset() {
	e.ld.Reset()
	e.smoother.Reset()
	e.higherLeg, e.lowerLeg = "", ""
	e.roleSet = false
	e.probeRungs = 0
	e.probeAwait = false
	e.probeBaseline = 0
	e.paused = false
	e.lastRepeat = time.Time{}
	e.lastReversal = time.Time{}
	e.tranches = 0
	e.lastBuy = make(map[model.Side]float64)
	e.cycles = 0
}

func (e *Engine) Params() Params           { return e.params }
func (e *Engine) Ledger() *ledger.Ledger   { return e.ld }
func (e *Engine) Cycles() int64            { return e.cycles }
func (e *Engine) Paused() bool             { return e.paused }
func (e *Engine) SmoothedCost() float64    { return e.smoother.Value() }
func (e *Engine) Roles() (higher, lower string, ok bool) {
	return e.higherLeg, e.lowerLeg, e.roleSet
}

// Execute 消化一帧快照,返回本周期的决策序列,nil 表示无动作。
// 规则链先命中者短路其余,因此当前每周期至多一条。
func (e *Engine) Execute(snap *model.PoolSnapshot) []model.TradingDecision {
	d := e.decide(snap)
	if d == nil {
		return nil
	}
	return []model.TradingDecision{*d}
}

// decide 规则链顺序固定:
// 锁定 → 反转 → 成本重查 → 阶段规则,先命中者短路其余。
func (e *Engine) decide(snap *model.PoolSnapshot) *model.TradingDecision {
	if snap == nil || len(snap.Legs) < 2 {
		return nil
	}
	e.cycles++

	// 1. 确定腿角色,定不了角色整池按兵不动
	if !e.roleSet && !e.assignRoles(snap) {
		return nil
	}
	hq, hok := snap.Quote(e.higherLeg)
	lq, lok := snap.Quote(e.lowerLeg)
	if !hok || !lok {
		return nil
	}

	// 2. 外部持仓是事实来源,先对账再决策
	e.reconcileLeg(model.SideHigher, e.higherLeg, snap)
	e.reconcileLeg(model.SideLower, e.lowerLeg, snap)

	// 3. 采样配对成本,更新暂停状态
	cost := e.ld.PairCost()
	if e.ld.BothOpen() {
		e.smoother.Add(cost)
	}
	e.updatePause(cost)

	// 4. 规则链
	if d := e.lockCheck(cost); d != nil {
		return d
	}
	if d := e.reversalCheck(snap, hq, lq); d != nil {
		return d
	}
	if d := e.repeatCheck(snap, hq, lq, cost); d != nil {
		return d
	}
	if e.paused {
		return nil
	}
	switch e.phase(snap.MinutesLeft) {
	case phaseEntry:
		return e.probe(hq)
	case phaseBuild:
		if d := e.averageDown(model.SideHigher, hq); d != nil {
			return d
		}
		return e.hedge(lq)
	}
	return nil
}

func (e *Engine) phase(minutesLeft float64) phase {
	if minutesLeft >= e.poolMinutes*(1-e.params.EntryWindow) {
		return phaseEntry
	}
	if minutesLeft <= e.poolMinutes*e.params.ExitWindow {
		return phaseExit
	}
	return phaseBuild
}

// PhaseName 剩余分钟数落在哪个阶段，监控帧用
func (e *Engine) PhaseName(minutesLeft float64) string {
	switch e.phase(minutesLeft) {
	case phaseEntry:
		return "entry"
	case phaseExit:
		return "exit"
	default:
		return "build"
	}
}

func (e *Engine) assignRoles(snap *model.PoolSnapshot) bool {
	a, b := snap.Legs[0], snap.Legs[1]
	if b.Ask > a.Ask {
		a, b = b, a
	}
	if a.Ask <= e.params.ProbeFloor {
		return false
	}
	e.higherLeg, e.lowerLeg = a.LegID, b.LegID
	e.roleSet = true
	logger.Info("确定腿角色",
		logger.Pair("pool", snap.PoolID),
		logger.Pair("higher", e.higherLeg),
		logger.Pair("lower", e.lowerLeg),
		logger.Pair("higherAsk", a.Ask),
		logger.Pair("lowerAsk", b.Ask))
	return true
}

func (e *Engine) reconcileLeg(side model.Side, legID string, snap *model.PoolSnapshot) {
	reported := snap.PositionSize(legID)
	est := e.lastBuy[side]
	if est <= 0 {
		if q, ok := snap.Quote(legID); ok {
			est = q.Ask
		}
	}
	if res := e.ld.Reconcile(side, reported, est); res != ledger.ReconcileNone {
		logger.Debug("持仓对账",
			logger.Pair("pool", snap.PoolID),
			logger.Pair("side", string(side)),
			logger.Pair("reported", reported),
			logger.Pair("estPrice", est))
	}
}

// 超标立即暂停;恢复看平滑值并留出回差,避免在目标线附近来回切换。
func (e *Engine) updatePause(cost float64) {
	target := e.params.TargetPairCost
	if !e.paused {
		if e.ld.BothOpen() && cost > target+eps {
			e.paused = true
			logger.Warn("配对成本超标,暂停加仓",
				logger.Pair("cost", cost),
				logger.Pair("target", target))
		}
		return
	}
	sm := e.smoother.Value()
	if sm > 0 && sm < target-e.params.PauseHysteresis {
		e.paused = false
		logger.Info("配对成本回落,恢复加仓",
			logger.Pair("smoothed", sm),
			logger.Pair("target", target))
	}
}

// 锁定检查:成本在目标之下且双边足够平衡时持有到结算。
func (e *Engine) lockCheck(cost float64) *model.TradingDecision {
	p := e.params
	if !e.ld.BothOpen() || cost <= 0 || cost > p.TargetPairCost+eps {
		return nil
	}
	bal := e.ld.BalanceRatio()
	if bal < p.LockBalanceFloor-eps {
		return nil
	}
	asym := e.ld.AsymRatio()
	if asym < p.MinAsymRatio-eps || asym > p.MaxAsymRatio+eps {
		return nil
	}
	return &model.TradingDecision{
		Action: model.ActionHold,
		Reason: fmt.Sprintf("locked: pair cost %.3f <= %.2f, balance %.2f, ride to settlement", cost, p.TargetPairCost, bal),
	}
}

// 成本重查:配对成本超出目标期间,按固定间隔重扫两条腿的摊低机会。
func (e *Engine) repeatCheck(snap *model.PoolSnapshot, hq, lq model.LegQuote, cost float64) *model.TradingDecision {
	p := e.params
	if !e.ld.BothOpen() || cost <= p.TargetPairCost+eps {
		return nil
	}
	if !e.lastRepeat.IsZero() && snap.Time.Sub(e.lastRepeat) < p.RepeatInterval {
		return nil
	}
	e.lastRepeat = snap.Time
	if d := e.averageDown(model.SideHigher, hq); d != nil {
		return d
	}
	return e.averageDown(model.SideLower, lq)
}

func (e *Engine) buy(side model.Side, price, size float64, reason string) *model.TradingDecision {
	action := model.ActionBuyHigher
	legID := e.higherLeg
	if side == model.SideLower {
		action = model.ActionBuyLower
		legID = e.lowerLeg
	}
	e.lastBuy[side] = price
	return &model.TradingDecision{
		Action: action,
		LegID:  legID,
		Price:  price,
		Size:   size,
		Reason: reason,
	}
}

func flooredPrice(price float64) float64 {
	if price < consts.MinTradePrice {
		return consts.MinTradePrice
	}
	return price
}
