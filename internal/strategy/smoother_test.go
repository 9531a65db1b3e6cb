package strategy

import "testing"

func TestCostSmootherWindow(t *testing.T) {
	s := NewCostSmoother(3)
	if s.Value() != 0 {
		t.Fatalf("empty smoother should read 0, got %v", s.Value())
	}

	s.Add(0.90)
	if got := s.Value(); !approx(got, 0.90) {
		t.Fatalf("single sample should read itself, got %v", got)
	}

	s.Add(0.94)
	if got := s.Value(); !approx(got, 0.92) {
		t.Fatalf("under-full window should average all samples, got %v", got)
	}

	s.Add(0.98)
	s.Add(1.02)
	// 整窗后只看最近三个样本
	if got := s.Value(); !approx(got, (0.94+0.98+1.02)/3) {
		t.Fatalf("rolling mean of last 3 samples expected, got %v", got)
	}
}

func TestCostSmootherInstantaneous(t *testing.T) {
	s := NewCostSmoother(1)
	s.Add(0.90)
	s.Add(0.97)
	if got := s.Value(); !approx(got, 0.97) {
		t.Fatalf("window<=1 should read the latest sample, got %v", got)
	}

	s.Reset()
	if s.Count() != 0 || s.Value() != 0 {
		t.Fatal("reset should drop all samples")
	}
	t.Logf("✅ 平滑器窗口语义正确")
}

func TestPresetRegistry(t *testing.T) {
	for _, name := range []string{"pairlock-1h", "pairlock-1h-aggressive", "pairlock-1h-tight", "pairlock-15m", "pairlock-15m-usd"} {
		p, err := Get(name)
		if err != nil {
			t.Fatalf("builtin preset %s missing: %v", name, err)
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("builtin preset %s invalid: %v", name, err)
		}
	}
	if _, err := Get("no-such-preset"); err == nil {
		t.Fatal("unknown preset should return an error")
	}
	if len(Names()) < 5 {
		t.Fatalf("expected at least 5 registered presets, got %v", Names())
	}
	t.Logf("✅ 预设注册表完整: %v", Names())
}
