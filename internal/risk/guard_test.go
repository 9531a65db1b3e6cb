package risk

import (
	"math"
	"testing"

	"pairflow/internal/ledger"
	"pairflow/internal/model"
)

func testLimits() Limits {
	return Limits{
		TargetPairCost:   0.95,
		CostTolerance:    0.005,
		MinBalanceRatio:  0.50,
		MinAsymRatio:     0.50,
		MaxAsymRatio:     0.85,
		SafetyMultiplier: 1.02,
	}
}

func book(hSize, hAvg, lSize, lAvg float64) *ledger.Ledger {
	ld := ledger.New()
	if hSize > 0 {
		ld.Add(model.SideHigher, hAvg, hSize)
	}
	if lSize > 0 {
		ld.Add(model.SideLower, lAvg, lSize)
	}
	return ld
}

// 单腿持仓时不检查成本改善与平衡率,探测与单边摊低都应放行。
func TestGuardOneSidedAdd(t *testing.T) {
	g := NewGuard(testLimits())

	// 空账本上的首单
	v := g.Admit(ledger.New(), model.SideHigher, 0.55, 20, ModeStandard)
	if !v.OK {
		t.Fatalf("first probe add rejected: %s", v.Reject)
	}

	// 高价腿单边摊低,对侧仍为空
	ld := book(100, 0.58, 0, 0)
	v = g.Admit(ld, model.SideHigher, 0.52, 30, ModeStandard)
	if !v.OK {
		t.Fatalf("one-sided average-down rejected: %s", v.Reject)
	}
	if got := ld.PairCost(); got != 0 {
		t.Fatalf("pair cost should stay 0 while one leg is empty, got %v", got)
	}
	t.Logf("✅ 单腿加仓放行, 预计成本 %.4f", v.PairCost)
}

// 双边开仓后,抬高配对成本的加仓必须被拒,压低的必须放行。
func TestGuardPairCostImprovement(t *testing.T) {
	g := NewGuard(testLimits())
	ld := book(100, 0.60, 80, 0.42) // pair cost 1.02, 高于目标

	pre := ld.PairCost()
	v := g.Admit(ld, model.SideHigher, 0.65, 20, ModeStandard)
	if v.OK || v.Reject != RejectPairCost {
		t.Fatalf("cost-raising add should be rejected with %s, got OK=%v reject=%s", RejectPairCost, v.OK, v.Reject)
	}

	v = g.Admit(ld, model.SideHigher, 0.50, 40, ModeStandard)
	if !v.OK {
		t.Fatalf("cost-lowering add rejected: %s", v.Reject)
	}
	if v.PairCost >= pre {
		t.Fatalf("admitted add must strictly improve pair cost: pre=%.4f post=%.4f", pre, v.PairCost)
	}
	t.Logf("✅ 成本改善判定正确: %.4f -> %.4f", pre, v.PairCost)
}

// 成本已在目标之下时,持平或轻微变差在容忍带内放行,越过目标仍拒绝。
func TestGuardToleranceBand(t *testing.T) {
	g := NewGuard(testLimits())
	ld := book(100, 0.55, 70, 0.40) // pair cost 恰为 0.95

	// 按现均价补仓,成本持平
	v := g.Admit(ld, model.SideLower, 0.40, 10, ModeStandard)
	if !v.OK {
		t.Fatalf("flat add within tolerance rejected: %s", v.Reject)
	}

	// 高价补仓把成本推过目标
	v = g.Admit(ld, model.SideLower, 0.46, 10, ModeStandard)
	if v.OK || v.Reject != RejectPairCost {
		t.Fatalf("add pushing cost above target should be rejected, got OK=%v reject=%s", v.OK, v.Reject)
	}
	t.Logf("✅ 容忍带行为正确")
}

// 加仓后平衡率不得跌破下限;唯一的例外是空腿的首次对冲。
func TestGuardBalanceFloor(t *testing.T) {
	g := NewGuard(testLimits())

	// 已有双边持仓,往大边加仓把平衡率压到下限之下
	ld := book(100, 0.60, 52, 0.30)
	v := g.Admit(ld, model.SideHigher, 0.50, 20, ModeStandard)
	if v.OK || v.Reject != RejectBalance {
		t.Fatalf("balance-breaking add should be rejected with %s, got OK=%v reject=%s", RejectBalance, v.OK, v.Reject)
	}

	// 首次对冲:对侧开仓而本腿为空,平衡率豁免
	ld = book(100, 0.55, 0, 0)
	v = g.Admit(ld, model.SideLower, 0.40, 20, ModeStandard)
	if !v.OK {
		t.Fatalf("first hedge should waive the balance floor, rejected: %s", v.Reject)
	}
	if v.Balance >= g.Limits().MinBalanceRatio {
		t.Fatalf("test premise broken: first hedge balance %.2f should be below floor", v.Balance)
	}
	t.Logf("✅ 平衡率下限与首次对冲豁免正确, balance=%.2f", v.Balance)
}

// 失衡率区间对首次对冲同样生效,过小的对冲单不放行。
func TestGuardAsymBand(t *testing.T) {
	g := NewGuard(testLimits())
	ld := book(100, 0.55, 0, 0)

	// 10 股对冲使失衡率 100/110 ≈ 0.909,超出上限
	v := g.Admit(ld, model.SideLower, 0.40, 10, ModeStandard)
	if v.OK || v.Reject != RejectAsym {
		t.Fatalf("over-asymmetric add should be rejected with %s, got OK=%v reject=%s", RejectAsym, v.OK, v.Reject)
	}

	// 20 股恰好落在上限内 (100/120 ≈ 0.833)
	v = g.Admit(ld, model.SideLower, 0.40, 20, ModeStandard)
	if !v.OK {
		t.Fatalf("minimum viable hedge rejected: %s", v.Reject)
	}
	if v.Asym > g.Limits().MaxAsymRatio {
		t.Fatalf("admitted asym %.4f above band max", v.Asym)
	}
	t.Logf("✅ 失衡率区间判定正确, asym=%.4f", v.Asym)
}

// 对冲模式要求加仓后的配对成本不超过目标。
func TestGuardHedgeCostTarget(t *testing.T) {
	g := NewGuard(testLimits())
	ld := book(100, 0.55, 0, 0)

	v := g.Admit(ld, model.SideLower, 0.45, 30, ModeHedge)
	if v.OK || v.Reject != RejectCostTarget {
		t.Fatalf("hedge above cost target should be rejected with %s, got OK=%v reject=%s", RejectCostTarget, v.OK, v.Reject)
	}

	v = g.Admit(ld, model.SideLower, 0.38, 30, ModeHedge)
	if !v.OK {
		t.Fatalf("hedge at cost 0.93 rejected: %s", v.Reject)
	}
	if v.PairCost > g.Limits().TargetPairCost {
		t.Fatalf("admitted hedge cost %.4f above target", v.PairCost)
	}
	t.Logf("✅ 对冲成本上限判定正确, cost=%.4f", v.PairCost)
}

// 严格对冲还要求小边回报覆盖全部投入乘以安全系数。
func TestGuardStrictPayout(t *testing.T) {
	g := NewGuard(testLimits())

	// 成本很低的完整对冲:min(100,100)=100 > 70*1.02
	ld := book(100, 0.45, 70, 0.25)
	v := g.Admit(ld, model.SideLower, 0.25, 30, ModeHedgeStrict)
	if !v.OK {
		t.Fatalf("profitable lock rejected: %s", v.Reject)
	}
	minSize := math.Min(100, 100)
	if minSize <= v.Spent*g.Limits().SafetyMultiplier {
		t.Fatalf("payout invariant broken post-admit: min=%.2f spent=%.2f", minSize, v.Spent)
	}

	// 成本贴着目标的部分对冲:min=70 <= 83*1.02,必须拒绝
	ld = book(100, 0.55, 40, 0.40)
	v = g.Admit(ld, model.SideLower, 0.40, 30, ModeHedgeStrict)
	if v.OK || v.Reject != RejectPayout {
		t.Fatalf("under-covered hedge should be rejected with %s, got OK=%v reject=%s", RejectPayout, v.OK, v.Reject)
	}

	// 同一笔加仓在普通对冲模式下可以放行
	v = g.Admit(ld, model.SideLower, 0.40, 30, ModeHedge)
	if !v.OK {
		t.Fatalf("same hedge in non-strict mode rejected: %s", v.Reject)
	}
	t.Logf("✅ 严格对冲回报覆盖判定正确")
}

// 反转式追高:小边在高价补仓,配对成本变差但仍在目标之下,
// 回报覆盖成立时严格模式应放行。
func TestGuardStrictAdmitsCostWorseningAdd(t *testing.T) {
	g := NewGuard(testLimits())
	ld := book(100, 0.40, 50, 0.25)

	pre := ld.PairCost()
	v := g.Admit(ld, model.SideLower, 0.55, 15, ModeHedgeStrict)
	if !v.OK {
		t.Fatalf("covered reversal add rejected: %s", v.Reject)
	}
	if v.PairCost <= pre {
		t.Fatalf("test premise broken: cost should worsen, pre=%.4f post=%.4f", pre, v.PairCost)
	}
	if v.PairCost > g.Limits().TargetPairCost {
		t.Fatalf("admitted cost %.4f above target", v.PairCost)
	}

	// 同一笔在普通模式按成本改善规则必拒
	v = g.Admit(ld, model.SideLower, 0.55, 15, ModeStandard)
	if v.OK || v.Reject != RejectPairCost {
		t.Fatalf("standard mode should reject cost-worsening add, got OK=%v reject=%s", v.OK, v.Reject)
	}
	t.Logf("✅ 严格模式允许受覆盖的追高补仓, cost %.4f -> %.4f", pre, v.PairCost)
}

func TestGuardInvalidAdd(t *testing.T) {
	g := NewGuard(testLimits())
	ld := book(100, 0.55, 0, 0)

	for _, c := range []struct {
		price, size float64
	}{
		{0, 20},
		{0.55, 0},
		{1.00, 20},
		{-0.10, 20},
	} {
		v := g.Admit(ld, model.SideLower, c.price, c.size, ModeStandard)
		if v.OK || v.Reject != RejectInvalidAdd {
			t.Fatalf("price=%v size=%v should be rejected as %s, got OK=%v reject=%s", c.price, c.size, RejectInvalidAdd, v.OK, v.Reject)
		}
	}
	t.Logf("✅ 非法加仓参数全部拒绝")
}
