package risk

import (
	"pairflow/internal/consts"
	"pairflow/internal/ledger"
	"pairflow/internal/model"
)

// Mode 表示准入检查的严格程度。加仓方向不同,约束不同。
type Mode int

const (
	// ModeStandard 普通加仓:改善配对成本 + 平衡/失衡区间。
	ModeStandard Mode = iota
	// ModeHedge 对冲加仓:额外要求加仓后配对成本不超过目标。
	ModeHedge
	// ModeHedgeStrict 严格对冲(反转加仓):成本改善规则换成目标上限,
	// 追高补小边时成本必然变差;另要求小边回报覆盖全部投入。
	ModeHedgeStrict
)

// 拒绝原因,写入交易记录与日志。
const (
	RejectInvalidAdd = "invalid_add"
	RejectPairCost   = "pair_cost_not_improved"
	RejectBalance    = "balance_below_floor"
	RejectAsym       = "asym_out_of_band"
	RejectCostTarget = "pair_cost_above_target"
	RejectPayout     = "payout_below_safety"
)

// Limits 是守卫的全部阈值,来自策略参数,构造后不再变化。
type Limits struct {
	TargetPairCost   float64 // 配对成本目标,对冲模式下的硬上限
	CostTolerance    float64 // 成本持平或轻微变差时的容忍带宽
	MinBalanceRatio  float64 // 加仓后双边平衡率下限
	MinAsymRatio     float64 // 失衡率区间下限
	MaxAsymRatio     float64 // 失衡率区间上限
	SafetyMultiplier float64 // 小边回报须覆盖投入的安全系数
}

// Verdict 是一次准入判定的结果。拒绝不是错误,是正常的业务结论。
type Verdict struct {
	OK       bool
	Reject   string  // 拒绝原因,通过时为空
	PairCost float64 // 加仓后的配对成本
	Balance  float64 // 加仓后的平衡率
	Asym     float64 // 加仓后的失衡率
	Spent    float64 // 加仓后的总投入(USD)
}

// Guard 对每一次拟加仓做纯函数式判定,不持有任何可变状态,
// 也不触达行情或订单,便于在策略引擎内逐周期调用。
type Guard struct {
	limits Limits
}

func NewGuard(limits Limits) *Guard {
	return &Guard{limits: limits}
}

func (g *Guard) Limits() Limits {
	return g.limits
}

const eps = 1e-9

// Admit 判定在当前账本之上,按给定价格数量往 side 腿加仓是否可接受。
// 检查顺序固定:成本改善 → 平衡下限 → 失衡区间 → 对冲约束,
// 第一条不满足即拒绝。
func (g *Guard) Admit(ld *ledger.Ledger, side model.Side, addPrice, addSize float64, mode Mode) Verdict {
	if addSize <= 0 || addPrice < consts.MinTradePrice || addPrice > consts.MaxTradePrice {
		return Verdict{Reject: RejectInvalidAdd}
	}

	leg := ld.Leg(side)
	other := ld.Leg(side.Opposite())

	preCost := ld.PairCost()
	bothPre := ld.BothOpen()
	firstHedge := leg.Empty() && !other.Empty()

	postCost := ld.ProjectedPairCost(side, addPrice, addSize)
	sideSize := leg.Size() + addSize
	otherSize := other.Size()
	spent := ld.TotalCost() + addPrice*addSize

	v := Verdict{PairCost: postCost, Spent: spent}
	minSize, maxSize := sideSize, otherSize
	if minSize > maxSize {
		minSize, maxSize = maxSize, minSize
	}
	bothPost := otherSize > eps
	if bothPost {
		v.Balance = minSize / maxSize
		v.Asym = maxSize / (minSize + maxSize)
	}

	// 规则一:双边已开仓时,加仓必须严格压低配对成本。
	// 已在目标之下时允许持平或轻微变差,但结果不得越过目标。
	// 严格对冲不适用本条,由规则四的目标上限约束。
	if mode != ModeHedgeStrict && bothPre && postCost >= preCost-eps {
		tolerated := preCost <= g.limits.TargetPairCost+eps &&
			postCost <= g.limits.TargetPairCost+eps &&
			postCost-preCost <= g.limits.CostTolerance+eps
		if !tolerated {
			v.Reject = RejectPairCost
			return v
		}
	}

	// 规则二:加仓后平衡率不得低于下限。首次对冲豁免,
	// 否则空腿永远开不出第一单。
	if bothPost && !firstHedge && v.Balance < g.limits.MinBalanceRatio-eps {
		v.Reject = RejectBalance
		return v
	}

	// 规则三:加仓后失衡率必须落在区间内。
	if bothPost && (v.Asym < g.limits.MinAsymRatio-eps || v.Asym > g.limits.MaxAsymRatio+eps) {
		v.Reject = RejectAsym
		return v
	}

	// 规则四:对冲模式下配对成本不得超过目标。
	if mode == ModeHedge || mode == ModeHedgeStrict {
		if postCost > g.limits.TargetPairCost+eps {
			v.Reject = RejectCostTarget
			return v
		}
	}

	// 规则五:严格对冲还要求小边数量按每股结算值折算后,
	// 覆盖全部投入乘以安全系数。满足即锁定最差结局也不亏。
	if mode == ModeHedgeStrict {
		payout := minSize * consts.SettleValuePerShare
		if payout <= spent*g.limits.SafetyMultiplier {
			v.Reject = RejectPayout
			return v
		}
	}

	v.OK = true
	return v
}
