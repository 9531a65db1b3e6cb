package ledger

import (
	"pairflow/internal/model"
)

// 入场台账：按腿记录每笔成交的(价格,数量)，推导加权均价
// 外部持仓是事实来源，每个周期通过 Reconcile 对齐

const sizeEpsilon = 1e-9

// Entry 一笔成交，只追加不修改
type Entry struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

type Leg struct {
	entries []Entry
}

func (l *Leg) Add(price, size float64) {
	if size <= 0 {
		return
	}
	l.entries = append(l.entries, Entry{Price: price, Size: size})
}

func (l *Leg) Size() float64 {
	var total float64
	for _, e := range l.entries {
		total += e.Size
	}
	return total
}

// Cost 该腿累计投入的资金
func (l *Leg) Cost() float64 {
	var cost float64
	for _, e := range l.entries {
		cost += e.Price * e.Size
	}
	return cost
}

// WeightedAvg 加权均价，空腿为0
func (l *Leg) WeightedAvg() float64 {
	size := l.Size()
	if size < sizeEpsilon {
		return 0
	}
	return l.Cost() / size
}

// ProjectedAvg 假设按 price 加仓 size 后的加权均价
func (l *Leg) ProjectedAvg(price, size float64) float64 {
	total := l.Size() + size
	if total < sizeEpsilon {
		return 0
	}
	return (l.Cost() + price*size) / total
}

// Collapse 将全部入场折叠为单笔（仓位被外部削减时调用）
func (l *Leg) Collapse(avgPrice, size float64) {
	l.entries = l.entries[:0]
	if size > sizeEpsilon {
		l.entries = append(l.entries, Entry{Price: avgPrice, Size: size})
	}
}

func (l *Leg) Clear() {
	l.entries = l.entries[:0]
}

func (l *Leg) Empty() bool {
	return l.Size() < sizeEpsilon
}

// Entries 返回入场副本
func (l *Leg) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

type Ledger struct {
	higher Leg
	lower  Leg
}

func New() *Ledger {
	return &Ledger{}
}

func (ld *Ledger) Leg(side model.Side) *Leg {
	if side == model.SideLower {
		return &ld.lower
	}
	return &ld.higher
}

func (ld *Ledger) Add(side model.Side, price, size float64) {
	ld.Leg(side).Add(price, size)
}

// PairCost 两腿加权均价之和，空腿按0计入
func (ld *Ledger) PairCost() float64 {
	return ld.higher.WeightedAvg() + ld.lower.WeightedAvg()
}

// ProjectedPairCost 假设在 side 腿按 price 加仓 size 后的配对成本
func (ld *Ledger) ProjectedPairCost(side model.Side, price, size float64) float64 {
	if side == model.SideLower {
		return ld.higher.WeightedAvg() + ld.lower.ProjectedAvg(price, size)
	}
	return ld.higher.ProjectedAvg(price, size) + ld.lower.WeightedAvg()
}

// BalanceRatio 小腿量/大腿量，任一腿为空时为0
func (ld *Ledger) BalanceRatio() float64 {
	h, l := ld.higher.Size(), ld.lower.Size()
	if h < sizeEpsilon || l < sizeEpsilon {
		return 0
	}
	if h < l {
		return h / l
	}
	return l / h
}

// AsymRatio 大腿量占总量的比例
func (ld *Ledger) AsymRatio() float64 {
	h, l := ld.higher.Size(), ld.lower.Size()
	total := h + l
	if total < sizeEpsilon {
		return 0
	}
	if h > l {
		return h / total
	}
	return l / total
}

// TotalCost 两腿合计投入的资金
func (ld *Ledger) TotalCost() float64 {
	return ld.higher.Cost() + ld.lower.Cost()
}

func (ld *Ledger) BothOpen() bool {
	return !ld.higher.Empty() && !ld.lower.Empty()
}

func (ld *Ledger) Reset() {
	ld.higher.Clear()
	ld.lower.Clear()
}

type ReconcileResult int

const (
	ReconcileNone ReconcileResult = iota
	ReconcileGrew
	ReconcileShrunk
	ReconcileCleared
)

// Reconcile 将某腿对齐到外部报告的持仓量
// 增加：按估计成交价补一笔入场；减少：折叠为此前均价的单笔；清零：清空
func (ld *Ledger) Reconcile(side model.Side, reported, estPrice float64) ReconcileResult {
	leg := ld.Leg(side)
	current := leg.Size()
	diff := reported - current

	switch {
	case reported < sizeEpsilon && current >= sizeEpsilon:
		leg.Clear()
		return ReconcileCleared
	case diff > sizeEpsilon:
		leg.Add(estPrice, diff)
		return ReconcileGrew
	case diff < -sizeEpsilon:
		leg.Collapse(leg.WeightedAvg(), reported)
		return ReconcileShrunk
	default:
		return ReconcileNone
	}
}
