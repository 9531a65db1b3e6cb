package strategy

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	// 预设注册表,支持运行时补注册
	registry = make(map[string]Params)
	mu       sync.RWMutex
)

func Register(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	registry[p.Name] = p
	return nil
}

func Get(name string) (Params, error) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := registry[name]
	if !ok {
		return Params{}, errors.New("preset not found: " + name)
	}
	return p, nil
}

func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func All() []Params {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Params, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name])
	}
	return out
}

// 基准预设:一小时池,按股数下单。其余预设在此之上改阈值。
func basePreset() Params {
	return Params{
		Name:   "pairlock-1h",
		Sizing: SizeShares,

		ProbeFloor:      0.52,
		ProbeCeiling:    0.59,
		ProbeSize:       20,
		ProbeRungs:      2,
		ProbeLadderStep: -0.01,
		ProbeAvgCap:     0.60,
		EntryWindow:     0.20,

		DipThreshold:  0.025,
		DipBaseSize:   20,
		DipMaxSize:    60,
		DipLadderStep: -0.01,

		HedgeCeiling:     0.45,
		HedgeTargetRatio: 0.70,
		HedgeMinSize:     20,
		HedgeMaxSize:     60,
		HedgeLadderStep:  -0.01,
		HedgeStrict:      false,

		ReversalMargin:     0.10,
		ReversalBalanceMax: 0.80,
		ReversalFrac:       0.30,
		ReversalTranches:   3,
		ReversalGraceMin:   5,
		ReversalCutoffMin:  5,
		ReversalInterval:   time.Second,

		TargetPairCost:   0.95,
		CostTolerance:    0.005,
		LockBalanceFloor: 0.75,
		MinBalanceRatio:  0.50,
		MinAsymRatio:     0.50,
		MaxAsymRatio:     0.85,
		SafetyMultiplier: 1.02,
		ExitWindow:       0.20,

		RepeatInterval:  5 * time.Second,
		PauseHysteresis: 0.005,
		SmoothingWindow: 20,
	}
}

func init() {
	base := basePreset()

	aggressive := base
	aggressive.Name = "pairlock-1h-aggressive"
	aggressive.ProbeCeiling = 0.62
	aggressive.ProbeAvgCap = 0.63
	aggressive.ProbeSize = 30
	aggressive.DipThreshold = 0.02
	aggressive.DipBaseSize = 30
	aggressive.DipMaxSize = 90
	aggressive.HedgeMaxSize = 90
	aggressive.TargetPairCost = 0.96
	aggressive.ReversalFrac = 0.40

	tight := base
	tight.Name = "pairlock-1h-tight"
	tight.ProbeSize = 15
	tight.DipBaseSize = 15
	tight.DipMaxSize = 45
	tight.HedgeMinSize = 15
	tight.HedgeStrict = true
	tight.TargetPairCost = 0.93
	tight.ReversalFrac = 0.25
	tight.SmoothingWindow = 30

	quarter := base
	quarter.Name = "pairlock-15m"
	quarter.EntryWindow = 0.25
	quarter.ExitWindow = 0.25
	quarter.ReversalGraceMin = 2
	quarter.ReversalCutoffMin = 2
	quarter.SmoothingWindow = 10

	quarterUSD := quarter
	quarterUSD.Name = "pairlock-15m-usd"
	quarterUSD.Sizing = SizeUSD
	quarterUSD.ProbeSize = 12
	quarterUSD.DipBaseSize = 12
	quarterUSD.DipMaxSize = 36
	quarterUSD.HedgeMinSize = 10
	quarterUSD.HedgeMaxSize = 30

	for _, p := range []Params{base, aggressive, tight, quarter, quarterUSD} {
		if err := Register(p); err != nil {
			panic(err)
		}
	}
}
