package ledger

import (
	"math"
	"pairflow/internal/model"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLeg_WeightedAvg(t *testing.T) {
	var leg Leg

	// 空腿均价为0
	if got := leg.WeightedAvg(); got != 0 {
		t.Fatalf("empty leg avg = %v, want 0", got)
	}

	// 单笔入场时均价等于该笔价格
	leg.Add(0.55, 20)
	if got := leg.WeightedAvg(); !almostEqual(got, 0.55) {
		t.Fatalf("single entry avg = %v, want 0.55", got)
	}

	// 多笔入场时等于 Σ(p·s)/Σ(s)
	leg.Add(0.52, 30)
	want := (0.55*20 + 0.52*30) / 50.0
	if got := leg.WeightedAvg(); !almostEqual(got, want) {
		t.Fatalf("multi entry avg = %v, want %v", got, want)
	}
	t.Logf("✅ weighted avg = %.6f", leg.WeightedAvg())
}

func TestLeg_ProjectedAvg(t *testing.T) {
	var leg Leg
	leg.Add(0.55, 100)

	// 假设按0.52加仓50后的均价
	want := (0.55*100 + 0.52*50) / 150.0
	if got := leg.ProjectedAvg(0.52, 50); !almostEqual(got, want) {
		t.Fatalf("projected avg = %v, want %v", got, want)
	}

	// 投影不应改变账本本身
	if got := leg.Size(); !almostEqual(got, 100) {
		t.Fatalf("projection mutated leg, size = %v", got)
	}
}

func TestLedger_PairCostAndRatios(t *testing.T) {
	ld := New()

	// 两腿都空
	if got := ld.PairCost(); got != 0 {
		t.Fatalf("empty pair cost = %v, want 0", got)
	}
	if got := ld.BalanceRatio(); got != 0 {
		t.Fatalf("empty balance = %v, want 0", got)
	}

	ld.Add(model.SideHigher, 0.55, 100)

	// 单边时 balance 仍为0
	if got := ld.BalanceRatio(); got != 0 {
		t.Fatalf("one-sided balance = %v, want 0", got)
	}

	ld.Add(model.SideLower, 0.40, 40)

	if got := ld.PairCost(); !almostEqual(got, 0.95) {
		t.Fatalf("pair cost = %v, want 0.95", got)
	}
	if got := ld.BalanceRatio(); !almostEqual(got, 0.4) {
		t.Fatalf("balance = %v, want 0.4", got)
	}
	if got := ld.AsymRatio(); !almostEqual(got, 100.0/140.0) {
		t.Fatalf("asym = %v, want %v", got, 100.0/140.0)
	}
	if got := ld.TotalCost(); !almostEqual(got, 0.55*100+0.40*40) {
		t.Fatalf("total cost = %v", got)
	}
}

func TestLedger_Reconcile(t *testing.T) {
	ld := New()
	ld.Add(model.SideHigher, 0.55, 100)

	// 外部仓位变大：按估价补一笔入场
	if res := ld.Reconcile(model.SideHigher, 120, 0.56); res != ReconcileGrew {
		t.Fatalf("reconcile grow result = %v", res)
	}
	if got := ld.Leg(model.SideHigher).Size(); !almostEqual(got, 120) {
		t.Fatalf("size after grow = %v, want 120", got)
	}
	wantAvg := (0.55*100 + 0.56*20) / 120.0
	if got := ld.Leg(model.SideHigher).WeightedAvg(); !almostEqual(got, wantAvg) {
		t.Fatalf("avg after grow = %v, want %v", got, wantAvg)
	}

	// 外部仓位变小：折叠为先前均价的单笔
	prevAvg := ld.Leg(model.SideHigher).WeightedAvg()
	if res := ld.Reconcile(model.SideHigher, 80, 0.60); res != ReconcileShrunk {
		t.Fatalf("reconcile shrink result = %v", res)
	}
	entries := ld.Leg(model.SideHigher).Entries()
	if len(entries) != 1 {
		t.Fatalf("entries after shrink = %d, want 1", len(entries))
	}
	if !almostEqual(entries[0].Price, prevAvg) || !almostEqual(entries[0].Size, 80) {
		t.Fatalf("collapsed entry = %+v, want price %v size 80", entries[0], prevAvg)
	}

	// 外部仓位清零
	if res := ld.Reconcile(model.SideHigher, 0, 0.60); res != ReconcileCleared {
		t.Fatalf("reconcile clear result = %v", res)
	}
	if !ld.Leg(model.SideHigher).Empty() {
		t.Fatalf("leg not empty after clear")
	}

	// 一致时不动
	ld.Add(model.SideLower, 0.4, 40)
	if res := ld.Reconcile(model.SideLower, 40, 0.41); res != ReconcileNone {
		t.Fatalf("reconcile noop result = %v", res)
	}
}
