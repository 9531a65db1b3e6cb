package exchange

import (
	"math"
	"testing"
)

// 收益率到概率的映射：持平 0.5、涨跌对称、极端行情被夹在边界内
func TestOkxFairProb(t *testing.T) {
	f := &OkxFeed{opts: OkxOptions{Sensitivity: 120}, openPrice: 100}

	if p := f.fairProb(100); math.Abs(p-0.5) > 1e-12 {
		t.Fatalf("flat underlying should map to 0.5, got %.6f", p)
	}

	up := f.fairProb(100.5)  // +0.5%
	down := f.fairProb(99.5) // -0.5%
	if up <= 0.6 || up >= 0.7 {
		t.Fatalf("+0.5%% move should lift prob into (0.6, 0.7), got %.4f", up)
	}
	if math.Abs(up+down-1.0) > 1e-12 {
		t.Fatalf("mapping should be symmetric, got %.6f + %.6f", up, down)
	}

	if p := f.fairProb(200); p != 0.98 {
		t.Fatalf("runaway move should clamp to 0.98, got %.4f", p)
	}
	if p := f.fairProb(50); p != 0.02 {
		t.Fatalf("collapse should clamp to 0.02, got %.4f", p)
	}
	t.Logf("✅ 概率映射: flat=0.5 +0.5%%→%.3f 极端→夹边界", up)
}

func TestOkxSymbolValidation(t *testing.T) {
	for _, sym := range []string{"", "BTCUSDT", "BTC/", "/USDT", "BTC/USDT/SWAP"} {
		if _, err := toCurrencyPair(nil, sym); err == nil {
			t.Fatalf("symbol %q should be rejected", sym)
		}
	}
	t.Logf("✅ 非法交易对格式全部被拒")
}
