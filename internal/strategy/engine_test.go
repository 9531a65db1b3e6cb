package strategy

import (
	"math"
	"testing"
	"time"

	"pairflow/internal/model"
)

var testStart = time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

func mkSnap(ts time.Time, minutesLeft, upAsk, downAsk, upPos, downPos float64) *model.PoolSnapshot {
	return &model.PoolSnapshot{
		PoolID:      "pool-test",
		Asset:       "ETH-1H",
		Time:        ts,
		MinutesLeft: minutesLeft,
		Legs: []model.LegQuote{
			{LegID: "up", Bid: upAsk - 0.01, Ask: upAsk, Mid: upAsk - 0.005, Spread: 0.01},
			{LegID: "down", Bid: downAsk - 0.01, Ask: downAsk, Mid: downAsk - 0.005, Spread: 0.01},
		},
		Positions: []model.Position{
			{Asset: "up", Size: upPos, Side: model.SideHigher},
			{Asset: "down", Size: downPos, Side: model.SideLower},
		},
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func mustPreset(t *testing.T, name string) Params {
	t.Helper()
	p, err := Get(name)
	if err != nil {
		t.Fatalf("preset %s: %v", name, err)
	}
	return p
}

// 开场探测:价带中段发满额试探单,同一快照不重复发,
// 上一档成交可见后才发下一档,阶梯走完即收手。
func TestEngineProbeLadder(t *testing.T) {
	e := NewEngine(mustPreset(t, "pairlock-1h"), 60)

	s1 := mkSnap(testStart, 55, 0.55, 0.40, 0, 0)
	d := e.decide(s1)
	if d == nil || d.Action != model.ActionBuyHigher {
		t.Fatalf("expected probe BUY on higher leg, got %+v", d)
	}
	if d.LegID != "up" || !approx(d.Price, 0.55) || !approx(d.Size, 20) {
		t.Fatalf("probe should be 20 shares at 0.55 on up, got %+v", d)
	}

	// 快照未变,不允许发第二档
	if d2 := e.decide(s1); d2 != nil {
		t.Fatalf("unchanged snapshot must not emit a second probe, got %+v", d2)
	}

	// 成交反映到持仓后,第二档在阶梯价挂出
	s2 := mkSnap(testStart.Add(3*time.Second), 54.9, 0.55, 0.40, 20, 0)
	d = e.decide(s2)
	if d == nil || d.Action != model.ActionBuyHigher || !approx(d.Price, 0.54) || !approx(d.Size, 20) {
		t.Fatalf("expected second rung 20 shares at 0.54, got %+v", d)
	}

	// 阶梯走完,本池不再探测
	s3 := mkSnap(testStart.Add(6*time.Second), 54.8, 0.55, 0.40, 40, 0)
	if d = e.decide(s3); d != nil {
		t.Fatalf("probe sequence exhausted, expected nil, got %+v", d)
	}
	if avg := e.Ledger().Leg(model.SideHigher).WeightedAvg(); !approx(avg, 0.545) {
		t.Fatalf("ladder average should be 0.545, got %.4f", avg)
	}
	t.Logf("✅ 探测阶梯行为正确, 均价 %.3f", e.Ledger().Leg(model.SideHigher).WeightedAvg())
}

// 距价带上沿越近,试探数量线性缩小;越过上沿不探测。
func TestEngineProbeSizeTaper(t *testing.T) {
	e := NewEngine(mustPreset(t, "pairlock-1h"), 60)
	d := e.decide(mkSnap(testStart, 55, 0.575, 0.40, 0, 0))
	if d == nil {
		t.Fatal("expected a tapered probe near the ceiling")
	}
	want := 20 * 2 * (0.59 - 0.575) / (0.59 - 0.52)
	if !approx(d.Size, want) {
		t.Fatalf("tapered size should be %.4f, got %.4f", want, d.Size)
	}

	e2 := NewEngine(mustPreset(t, "pairlock-1h"), 60)
	if d := e2.decide(mkSnap(testStart, 55, 0.60, 0.40, 0, 0)); d != nil {
		t.Fatalf("ask at/over ceiling must not probe, got %+v", d)
	}
	t.Logf("✅ 探测数量随价带位置收缩")
}

// 两腿卖价都没越过下沿时角色悬置,引擎按兵不动;价格上来后再定角色。
func TestEngineRoleDeferred(t *testing.T) {
	e := NewEngine(mustPreset(t, "pairlock-1h"), 60)
	if d := e.decide(mkSnap(testStart, 58, 0.50, 0.45, 0, 0)); d != nil {
		t.Fatalf("no role assignable yet, expected nil, got %+v", d)
	}
	if _, _, ok := e.Roles(); ok {
		t.Fatal("roles should remain unassigned below the probe floor")
	}

	d := e.decide(mkSnap(testStart.Add(3*time.Second), 57.9, 0.55, 0.40, 0, 0))
	if d == nil || d.Action != model.ActionBuyHigher {
		t.Fatalf("expected probe once a leg clears the floor, got %+v", d)
	}
	higher, lower, ok := e.Roles()
	if !ok || higher != "up" || lower != "down" {
		t.Fatalf("roles should be up/down, got %s/%s ok=%v", higher, lower, ok)
	}
	t.Logf("✅ 角色判定延迟到价格越过下沿")
}

// 角色一经判定整池粘滞,之后另一条腿价格反超也不换边。
func TestEngineStickyRoles(t *testing.T) {
	e := NewEngine(mustPreset(t, "pairlock-1h"), 60)
	if d := e.decide(mkSnap(testStart, 55, 0.55, 0.40, 0, 0)); d == nil {
		t.Fatal("expected initial probe")
	}

	// down 腿价格反超,角色不变
	s := mkSnap(testStart.Add(3*time.Second), 54.9, 0.40, 0.60, 20, 0)
	e.decide(s)
	higher, _, _ := e.Roles()
	if higher != "up" {
		t.Fatalf("roles must stay sticky, higher changed to %s", higher)
	}
	t.Logf("✅ 腿角色整池粘滞")
}

// 高价腿回落够深时按深度等比摊低,优先级高于对冲。
func TestEngineAverageDownOnDip(t *testing.T) {
	e := NewEngine(mustPreset(t, "pairlock-1h"), 60)
	// 先定角色(卖价在上沿之外,不会触发探测)
	if d := e.decide(mkSnap(testStart, 55, 0.60, 0.40, 0, 0)); d != nil {
		t.Fatalf("seed snapshot should not trade, got %+v", d)
	}
	e.Ledger().Add(model.SideHigher, 0.55, 100)

	// 回落 3 分,超过 2.5 分阈值
	s := mkSnap(testStart.Add(3*time.Second), 30, 0.52, 0.40, 100, 0)
	d := e.decide(s)
	if d == nil || d.Action != model.ActionBuyHigher {
		t.Fatalf("expected average-down BUY on higher leg, got %+v", d)
	}
	if d.Price > 0.52 {
		t.Fatalf("ladder price should not exceed the ask, got %.4f", d.Price)
	}
	if !approx(d.Size, 24) {
		t.Fatalf("size should scale with dip depth to 24, got %.4f", d.Size)
	}

	// 回落不够深时不摊低(低价腿也贵,不触发对冲)
	e2 := NewEngine(mustPreset(t, "pairlock-1h"), 60)
	e2.decide(mkSnap(testStart, 55, 0.60, 0.40, 0, 0))
	e2.Ledger().Add(model.SideHigher, 0.55, 100)
	if d := e2.decide(mkSnap(testStart.Add(3*time.Second), 30, 0.53, 0.50, 100, 0)); d != nil {
		t.Fatalf("2-cent dip should not trigger, got %+v", d)
	}
	t.Logf("✅ 摊低深度与priority正确")
}

// 锁定不成立(平衡率不足)时走对冲路径,向 higher 数量的目标比例补齐。
func TestEngineHedgeTowardTarget(t *testing.T) {
	e := NewEngine(mustPreset(t, "pairlock-1h"), 60)
	e.decide(mkSnap(testStart, 55, 0.60, 0.40, 0, 0))
	e.Ledger().Add(model.SideHigher, 0.55, 100)
	e.Ledger().Add(model.SideLower, 0.40, 40)

	s := mkSnap(testStart.Add(3*time.Second), 30, 0.55, 0.40, 100, 40)
	d := e.decide(s)
	if d == nil || d.Action != model.ActionBuyLower {
		t.Fatalf("expected hedge BUY on lower leg, got %+v", d)
	}
	// 40 + 30 = 70 = 0.70 × 100
	if !approx(d.Size, 30) {
		t.Fatalf("hedge should add 30 toward 70%% of higher size, got %.4f", d.Size)
	}
	if d.Price > 0.40 {
		t.Fatalf("hedge ladder price should sit under the ask, got %.4f", d.Price)
	}
	t.Logf("✅ 对冲向目标比例补齐: +%.0f", d.Size)
}

// 首次对冲:低价腿从零起步,平衡率豁免但失衡区间仍然把关。
func TestEngineFirstHedge(t *testing.T) {
	e := NewEngine(mustPreset(t, "pairlock-1h"), 60)
	e.decide(mkSnap(testStart, 55, 0.60, 0.40, 0, 0))
	e.Ledger().Add(model.SideHigher, 0.55, 100)

	s := mkSnap(testStart.Add(3*time.Second), 30, 0.55, 0.40, 100, 0)
	d := e.decide(s)
	if d == nil || d.Action != model.ActionBuyLower {
		t.Fatalf("expected first hedge on empty lower leg, got %+v", d)
	}
	// 缺口 70 被单笔上限 60 截断
	if !approx(d.Size, 60) {
		t.Fatalf("first hedge should be capped at 60, got %.4f", d.Size)
	}
	t.Logf("✅ 首次对冲放行且受单笔上限约束")
}

// 锁定:成本达标且双边平衡时每个周期给出 HOLD,短路其余规则。
func TestEngineLockHold(t *testing.T) {
	e := NewEngine(mustPreset(t, "pairlock-1h"), 60)
	e.decide(mkSnap(testStart, 55, 0.60, 0.40, 0, 0))
	e.Ledger().Add(model.SideHigher, 0.50, 100)
	e.Ledger().Add(model.SideLower, 0.40, 80)

	s := mkSnap(testStart.Add(3*time.Second), 30, 0.50, 0.42, 100, 80)
	for i := 0; i < 3; i++ {
		d := e.decide(s)
		if d == nil || d.Action != model.ActionHold {
			t.Fatalf("cycle %d: expected HOLD while locked, got %+v", i, d)
		}
	}
	t.Logf("✅ 锁定后持有到结算")
}

// 反转追补:lower 价格反超 higher 足够多且仓位失衡时,
// 按比例分档追补,每档都要过严格守卫,同一秒内只查一次。
func TestEngineReversalTranche(t *testing.T) {
	e := NewEngine(mustPreset(t, "pairlock-1h"), 60)
	e.decide(mkSnap(testStart, 55, 0.60, 0.40, 0, 0))
	e.Ledger().Add(model.SideHigher, 0.40, 100)
	e.Ledger().Add(model.SideLower, 0.25, 50)

	// lower 0.55 = higher 0.45 + 0.10,平衡率 0.5 < 0.80
	s := mkSnap(testStart.Add(10*time.Minute), 30, 0.45, 0.55, 100, 50)
	d := e.decide(s)
	if d == nil || d.Action != model.ActionBuyLower {
		t.Fatalf("expected reversal tranche on lower leg, got %+v", d)
	}
	if d.Size < 0.25*50-1e-6 || d.Size > 0.40*50+1e-6 {
		t.Fatalf("tranche size %.2f outside 25%%-40%% of lower quantity", d.Size)
	}
	if !approx(d.Price, 0.55) {
		t.Fatalf("reversal buys at the spiked ask, got %.4f", d.Price)
	}

	// 同一时间戳重复执行被节流
	if d2 := e.decide(s); d2 != nil {
		t.Fatalf("reversal must be throttled within the check interval, got %+v", d2)
	}
	t.Logf("✅ 反转追补分档与节流正确")
}

// 成本贴着目标的失衡仓位:追补会把配对成本推过目标,守卫拒绝,不出决策。
func TestEngineReversalRejectedByGuard(t *testing.T) {
	e := NewEngine(mustPreset(t, "pairlock-1h"), 60)
	e.decide(mkSnap(testStart, 55, 0.60, 0.40, 0, 0))
	e.Ledger().Add(model.SideHigher, 0.55, 100)
	e.Ledger().Add(model.SideLower, 0.40, 50)

	s := mkSnap(testStart.Add(10*time.Minute), 30, 0.55, 0.65, 100, 50)
	if d := e.decide(s); d != nil {
		t.Fatalf("uncovered reversal should be rejected silently, got %+v", d)
	}
	t.Logf("✅ 反转追补受守卫约束")
}

// 开盘宽限与尾段截止之外不做反转。
func TestEngineReversalWindow(t *testing.T) {
	p := mustPreset(t, "pairlock-1h")
	e := NewEngine(p, 60)
	e.decide(mkSnap(testStart, 58, 0.60, 0.40, 0, 0))
	e.Ledger().Add(model.SideHigher, 0.40, 100)
	e.Ledger().Add(model.SideLower, 0.25, 50)

	// 开盘第 2 分钟,宽限期内
	early := mkSnap(testStart.Add(time.Minute), 58, 0.45, 0.55, 100, 50)
	if d := e.decide(early); d != nil {
		t.Fatalf("reversal inside grace period, got %+v", d)
	}

	// 剩余 3 分钟,已过截止
	late := mkSnap(testStart.Add(57*time.Minute), 3, 0.45, 0.55, 100, 50)
	if d := e.decide(late); d != nil {
		t.Fatalf("reversal after cutoff, got %+v", d)
	}
	t.Logf("✅ 反转只在激活窗口内触发")
}

// 成本超标即暂停阶段性加仓;重查按固定间隔扫摊低机会,不受暂停影响;
// 成本回落过回差后恢复。
func TestEnginePauseAndRepeatCheck(t *testing.T) {
	p := mustPreset(t, "pairlock-1h")
	p.SmoothingWindow = 1 // 即时值,便于驱动恢复
	e := NewEngine(p, 60)
	e.decide(mkSnap(testStart, 55, 0.60, 0.40, 0, 0))
	e.Ledger().Add(model.SideHigher, 0.60, 100)
	e.Ledger().Add(model.SideLower, 0.38, 100)

	// 配对成本 0.98 > 0.95:挂起,但无回落机会,无决策
	t0 := testStart.Add(3 * time.Second)
	if d := e.decide(mkSnap(t0, 30, 0.60, 0.38, 100, 100)); d != nil {
		t.Fatalf("no dip to buy, expected nil, got %+v", d)
	}
	if !e.Paused() {
		t.Fatal("engine should pause once pair cost exceeds target")
	}

	// 3 秒后出现深度回落,但重查间隔未到,仍无决策
	if d := e.decide(mkSnap(t0.Add(3*time.Second), 29.9, 0.45, 0.38, 100, 100)); d != nil {
		t.Fatalf("repeat check should be throttled, got %+v", d)
	}

	// 到达重查间隔:即使处于暂停,压低成本的摊低买入仍放行
	d := e.decide(mkSnap(t0.Add(5*time.Second), 29.9, 0.45, 0.38, 100, 100))
	if d == nil || d.Action != model.ActionBuyHigher {
		t.Fatalf("repeat check should emit cost-lowering BUY while paused, got %+v", d)
	}
	if !e.Paused() {
		t.Fatal("pause holds until cost falls below target minus hysteresis")
	}

	// 成交后成本 0.92 < 0.945,恢复加仓
	if d := e.decide(mkSnap(t0.Add(8*time.Second), 29.8, 0.45, 0.38, 160, 100)); d != nil && d.Action != model.ActionHold {
		t.Fatalf("unexpected decision right after recovery: %+v", d)
	}
	if e.Paused() {
		t.Fatal("engine should resume once cost clears the hysteresis band")
	}
	t.Logf("✅ 暂停/重查/恢复行为正确, cost=%.4f", e.Ledger().PairCost())
}

// Reset 清空整池状态,可复用同一实例进入下一池。
func TestEngineReset(t *testing.T) {
	e := NewEngine(mustPreset(t, "pairlock-1h"), 60)
	if d := e.decide(mkSnap(testStart, 55, 0.55, 0.40, 0, 0)); d == nil {
		t.Fatal("expected initial probe")
	}
	e.Reset()

	if _, _, ok := e.Roles(); ok {
		t.Fatal("roles should clear on reset")
	}
	if e.Cycles() != 0 || !e.Ledger().Leg(model.SideHigher).Empty() {
		t.Fatal("counters and ledger should clear on reset")
	}
	// 新一池重新探测
	if d := e.decide(mkSnap(testStart.Add(time.Hour), 55, 0.55, 0.40, 0, 0)); d == nil || d.Action != model.ActionBuyHigher {
		t.Fatalf("fresh pool should probe again, got %+v", d)
	}
	t.Logf("✅ Reset 后引擎可复用")
}

// Execute 对外给出决策序列:有动作时恰好一条,无动作时为 nil。
func TestEngineExecuteDecisionList(t *testing.T) {
	e := NewEngine(mustPreset(t, "pairlock-1h"), 60)
	ds := e.Execute(mkSnap(testStart, 55, 0.55, 0.40, 0, 0))
	if len(ds) != 1 || ds[0].Action != model.ActionBuyHigher {
		t.Fatalf("expected a single probe decision, got %+v", ds)
	}
	if again := e.Execute(mkSnap(testStart, 55, 0.55, 0.40, 0, 0)); again != nil {
		t.Fatalf("no-op cycle should return nil, got %+v", again)
	}
	t.Logf("✅ 决策序列语义正确")
}

// USD 计价预设:数量按价格折算成股数。
func TestEngineUSDSizing(t *testing.T) {
	e := NewEngine(mustPreset(t, "pairlock-15m-usd"), 15)
	d := e.decide(mkSnap(testStart, 14, 0.55, 0.40, 0, 0))
	if d == nil || d.Action != model.ActionBuyHigher {
		t.Fatalf("expected probe under usd sizing, got %+v", d)
	}
	want := 12.0 / 0.55 // 12 USD 折算
	if !approx(d.Size, want) {
		t.Fatalf("usd probe size should be %.4f shares, got %.4f", want, d.Size)
	}
	t.Logf("✅ USD 计价折算正确: %.2f 股", d.Size)
}
