package account

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// 预算门：锁定+已投入不得越过上限，释放后额度回来
func TestBookReserveWithinBudget(t *testing.T) {
	b := NewBook(100)

	if !b.Reserve("o1", 40) {
		t.Fatalf("first reserve within budget should pass")
	}
	if !b.Reserve("o2", 50) {
		t.Fatalf("second reserve within budget should pass")
	}
	if b.Reserve("o3", 20) {
		t.Fatalf("reserve beyond budget should be rejected (40+50+20 > 100)")
	}
	if got := b.Available(); !approx(got, 10) {
		t.Fatalf("expected 10 available, got %.2f", got)
	}

	b.Release("o2")
	if !b.Reserve("o3", 20) {
		t.Fatalf("reserve should pass after release freed 50")
	}
	t.Logf("✅ 预算门: available=%.2f", b.Available())
}

// 成交按实际金额入账，滑点偏差不放大冻结额
func TestBookCommitUsesActualCost(t *testing.T) {
	b := NewBook(100)
	if !b.Reserve("o1", 30) {
		t.Fatalf("reserve failed")
	}
	b.Commit("o1", 31.2) // 滑点让成交额略高于锁定额

	f := b.Funds()
	if !approx(f.Invested, 31.2) {
		t.Fatalf("expected invested 31.2, got %.2f", f.Invested)
	}
	if !approx(f.Frozen, 0) {
		t.Fatalf("commit should clear the frozen slot, got %.2f", f.Frozen)
	}
	if !approx(f.Available, 68.8) {
		t.Fatalf("expected available 68.8, got %.2f", f.Available)
	}
	t.Logf("✅ 成交记账: invested=%.2f available=%.2f", f.Invested, f.Available)
}

func TestBookRejectsNonPositiveCost(t *testing.T) {
	b := NewBook(100)
	if b.Reserve("o1", 0) || b.Reserve("o2", -5) {
		t.Fatalf("non-positive cost must be rejected")
	}
	t.Logf("✅ 非正金额被拒")
}

// 未知订单的 Commit/Release 不应破坏账本
func TestBookUnknownOrderIsNoop(t *testing.T) {
	b := NewBook(50)
	b.Release("ghost")
	b.Commit("ghost", 0)
	f := b.Funds()
	if !approx(f.Available, 50) || !approx(f.Invested, 0) {
		t.Fatalf("unknown order ops should not move funds: %+v", f)
	}
	t.Logf("✅ 幽灵订单不影响账本")
}
