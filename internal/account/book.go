package account

import "sync"

// Book 池级纸面资金账本。预算内记账，三个桶：
// 已投入（成交转化）、冻结（在途挂单锁定）、可用。
// 订单提交前必须 Reserve 通过，终态后 Commit 或 Release，
// 这样 spent+pending 在任何时刻都不超过预算上限。

type Funds struct {
	Budget    float64 `json:"budget"`
	Invested  float64 `json:"invested"`
	Frozen    float64 `json:"frozen"`
	Available float64 `json:"available"`
}

type Book struct {
	mu       sync.Mutex
	budget   float64
	invested float64
	frozen   map[string]float64 // orderID -> 锁定资金
}

func NewBook(budget float64) *Book {
	return &Book{
		budget: budget,
		frozen: make(map[string]float64),
	}
}

// Reserve 按挂单名义金额锁定资金；预算不够则拒绝。
// cost 非正视为记账错误，直接拒绝。
func (b *Book) Reserve(orderID string, cost float64) bool {
	if cost <= 0 {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.invested+b.frozenLocked()+cost > b.budget {
		return false
	}
	b.frozen[orderID] = cost
	return true
}

// Commit 订单成交：解锁并按实际成交额转入已投入。
// 滑点会让实际成交额偏离锁定额，以成交额为准。
func (b *Book) Commit(orderID string, actualCost float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.frozen, orderID)
	if actualCost > 0 {
		b.invested += actualCost
	}
}

// Release 订单走到未成交终态，解锁资金。
func (b *Book) Release(orderID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.frozen, orderID)
}

func (b *Book) Funds() Funds {
	b.mu.Lock()
	defer b.mu.Unlock()
	frozen := b.frozenLocked()
	return Funds{
		Budget:    b.budget,
		Invested:  b.invested,
		Frozen:    frozen,
		Available: b.budget - b.invested - frozen,
	}
}

func (b *Book) Invested() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.invested
}

func (b *Book) Available() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.budget - b.invested - b.frozenLocked()
}

// 调用方必须已持锁
func (b *Book) frozenLocked() float64 {
	var sum float64
	for _, c := range b.frozen {
		sum += c
	}
	return sum
}
