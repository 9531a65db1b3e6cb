package sim

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"

	"pairflow/internal/account"
	"pairflow/internal/consts"
	"pairflow/internal/exchange"
	"pairflow/internal/model"
	"pairflow/internal/strategy"
	"pairflow/pkg/errors"
	"pairflow/pkg/errors/ecode"
	"pairflow/pkg/logger"
)

// 订单生命周期模拟器。把策略决策变成挂单，按配置的延迟、
// 失败概率和滑点裁决成交，持仓过了结算可见延迟才回流给策略。
// 随机性全部来自注入的种子源，同种子同序列。

// Recorder 逐笔记录与汇总的落盘边界
type Recorder interface {
	Append(rec *model.TradeRecord) error
	WriteSummary(s *model.RunSummary) error
}

// NopRecorder 丢弃全部记录，测试与干跑用
type NopRecorder struct{}

func (NopRecorder) Append(*model.TradeRecord) error      { return nil }
func (NopRecorder) WriteSummary(*model.RunSummary) error { return nil }

type Options struct {
	RunID  string
	Preset string
	Seed   int64

	FillDelay         time.Duration // 挂单到可裁决的最小延迟
	BaseFillProb      float64
	FillDistanceBoost float64 // 挂单价偏离市场价对成交概率的调整斜率
	MaxSlippage       float64
	InvalidPriceProb  float64
	RejectProb        float64
	IlliquidityProb   float64
	IlliquiditySize   float64 // 超过该数量才会掷流动性不足
	MaxRetries        int
	RetryDelay        time.Duration
	SettlementDelay   time.Duration // 成交对持仓可见的延迟
	PollInterval      time.Duration
	MaxDuration       time.Duration
	Budget            float64
	Realtime          bool // true 按真实时间轮询；false 跟随行情源的虚拟时钟

	// OnUpdate 每周期回调一帧监控数据，不得阻塞
	OnUpdate func(u *model.RunUpdate)
}

type Simulator struct {
	mu   sync.Mutex
	opts Options

	engine *strategy.Engine
	feed   exchange.PriceFeed
	book   *account.Book
	rec    Recorder
	rng    *rand.Rand
	node   *snowflake.Node

	now     time.Time // 虚拟时钟，跟随快照时间
	pending map[int64]*model.PendingOrder
	fills   []*model.FilledOrder
	retryQ  []*model.FailedOrder

	legQty  map[string]float64 // 实际成交累计数量
	legCost map[string]float64 // 实际成交累计金额
	legSide map[string]model.Side

	cycles    int64
	submitted int64
	fillCount int64
	failCount int64
	retries   int64
	rejected  int64
	trades    int64

	holdStreak bool // 连续 HOLD 只落一条记录
}

func New(opts Options, engine *strategy.Engine, feed exchange.PriceFeed, rec Recorder) (*Simulator, error) {
	if engine == nil || feed == nil {
		return nil, errors.WithCode(ecode.InternalErr, "simulator requires engine and feed")
	}
	if rec == nil {
		rec = NopRecorder{}
	}
	if opts.FillDelay <= 0 {
		opts.FillDelay = 1500 * time.Millisecond
	}
	if opts.BaseFillProb <= 0 {
		opts.BaseFillProb = 0.85
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.IlliquiditySize <= 0 {
		opts.IlliquiditySize = 200
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}
	if opts.SettlementDelay < 0 {
		opts.SettlementDelay = 0
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = consts.DefaultPollInterval
	}
	if opts.Budget <= 0 {
		opts.Budget = 500
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, errors.Wrap(err, ecode.InternalErr, "init order id node")
	}
	return &Simulator{
		opts:    opts,
		engine:  engine,
		feed:    feed,
		book:    account.NewBook(opts.Budget),
		rec:     rec,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		node:    node,
		pending: make(map[int64]*model.PendingOrder),
		legQty:  make(map[string]float64),
		legCost: make(map[string]float64),
		legSide: make(map[string]model.Side),
	}, nil
}

func (s *Simulator) Book() *account.Book { return s.book }

// Submit 预检（本地校验、同腿在途、预算）后入挂单表。
// 预检失败会落一条 rejected 记录并返回错误，调用方只需记日志。
func (s *Simulator) Submit(_ context.Context, d *model.TradingDecision) (string, error) {
	if d == nil || !d.IsBuy() {
		return "", errors.WithCode(ecode.ValidateErr, "only buy decisions can be submitted")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o := &model.PendingOrder{
		ID:          s.node.Generate().Int64(),
		LegID:       d.LegID,
		Side:        d.Side(),
		Action:      d.Action,
		Price:       d.Price,
		Size:        d.Size,
		Reason:      d.Reason,
		SubmittedAt: s.now,
		Cycle:       s.cycles,
	}
	if err := s.admitOrderLocked(o, d.Validate()); err != nil {
		return "", err
	}
	return strconv.FormatInt(o.ID, 10), nil
}

// admitOrderLocked 跑完预检并登记订单；任何一道预检失败都落 rejected 记录
func (s *Simulator) admitOrderLocked(o *model.PendingOrder, validateErr error) error {
	if validateErr != nil {
		s.recordLocked(o, model.RecordRejected, "validation: "+validateErr.Error())
		s.rejected++
		return errors.Wrap(validateErr, ecode.ValidateErr, "decision rejected")
	}
	if s.legBusyLocked(o.LegID) {
		s.recordLocked(o, model.RecordRejected, "active_order_on_leg")
		s.rejected++
		return errors.WithCodef(ecode.RunConflictErr, "leg %s already has an active order", o.LegID)
	}
	if !s.book.Reserve(strconv.FormatInt(o.ID, 10), o.Cost()) {
		s.recordLocked(o, model.RecordRejected, "budget_exceeded")
		s.rejected++
		return errors.WithCodef(ecode.RunConflictErr, "budget cannot cover %.2f", o.Cost())
	}

	s.pending[o.ID] = o
	s.submitted++
	s.recordLocked(o, model.RecordSubmitted, "")
	logger.Debug("挂单登记",
		logger.Pair("order_id", o.ID),
		logger.Pair("leg", o.LegID),
		logger.Pair("price", o.Price),
		logger.Pair("size", o.Size),
		logger.Pair("retry", o.RetryCount))
	return nil
}

func (s *Simulator) Cancel(_ context.Context, orderID string) (bool, error) {
	id, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil {
		return false, errors.Wrap(err, ecode.ValidateErr, "bad order id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.pending[id]
	if !ok {
		return false, nil
	}
	delete(s.pending, id)
	s.book.Release(orderID)
	s.failCount++
	s.recordLocked(o, model.RecordFailed, string(model.FailCancelled))
	return true, nil
}

func (s *Simulator) ListActive(_ context.Context) ([]exchange.ActiveOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]exchange.ActiveOrder, 0, len(s.pending))
	for _, id := range s.pendingIDsLocked() {
		o := s.pending[id]
		out = append(out, exchange.ActiveOrder{OrderID: strconv.FormatInt(id, 10), LegID: o.LegID})
	}
	return out, nil
}

// GetPositions 只返回已过结算可见延迟的成交，模拟交易所回报滞后
func (s *Simulator) GetPositions(_ context.Context, _ string) ([]model.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.realizedLocked(), nil
}

func (s *Simulator) realizedLocked() []model.Position {
	sizes := make(map[string]float64)
	for _, f := range s.fills {
		if f.VisibleAt.After(s.now) {
			continue
		}
		sizes[f.Order.LegID] += f.Order.Size
	}
	legs := make([]string, 0, len(sizes))
	for leg := range sizes {
		legs = append(legs, leg)
	}
	sort.Strings(legs)
	out := make([]model.Position, 0, len(legs))
	for _, leg := range legs {
		out = append(out, model.Position{Asset: leg, Size: sizes[leg], Side: s.legSide[leg]})
	}
	return out
}

// legBusyLocked 在途挂单或尚未回报的成交都算占用，
// 防止回报滞后期间对同一条腿重复加仓
func (s *Simulator) legBusyLocked(legID string) bool {
	for _, o := range s.pending {
		if o.LegID == legID {
			return true
		}
	}
	for _, f := range s.fills {
		if f.Order.LegID == legID && f.VisibleAt.After(s.now) {
			return true
		}
	}
	return false
}

func (s *Simulator) pendingIDsLocked() []int64 {
	ids := make([]int64, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// resolvePending 裁决到龄挂单：先掷失败（非法价、拒单、流动性），
// 再掷成交；两头落空按过期处理。force 用于收尾清算，忽略到龄要求。
func (s *Simulator) resolvePending(snap *model.PoolSnapshot, force bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.pendingIDsLocked() {
		o := s.pending[id]
		if !force && s.now.Sub(o.SubmittedAt) < s.opts.FillDelay {
			continue
		}
		delete(s.pending, id)

		if s.rng.Float64() < s.opts.InvalidPriceProb {
			s.failLocked(o, model.FailInvalidPrice, force)
			continue
		}
		if s.rng.Float64() < s.opts.RejectProb {
			s.failLocked(o, model.FailRejected, force)
			continue
		}
		if o.Size > s.opts.IlliquiditySize && s.rng.Float64() < s.opts.IlliquidityProb {
			s.failLocked(o, model.FailIlliquidity, force)
			continue
		}

		if s.rng.Float64() < s.fillProb(o, snap) {
			s.fillLocked(o)
			continue
		}
		s.failLocked(o, model.FailExpired, force)
	}
}

// fillProb 基础成交概率按挂单价与现价的距离调整：
// 挂在卖一价之上更容易成交，低于卖一价越多越难
func (s *Simulator) fillProb(o *model.PendingOrder, snap *model.PoolSnapshot) float64 {
	p := s.opts.BaseFillProb
	if q, ok := snap.Quote(o.LegID); ok {
		p += s.opts.FillDistanceBoost * (o.Price - q.Ask)
	}
	if p < 0.02 {
		p = 0.02
	}
	if p > 1 {
		p = 1
	}
	return p
}

func (s *Simulator) fillLocked(o *model.PendingOrder) {
	fillPrice := o.Price
	if s.opts.MaxSlippage > 0 {
		fillPrice += (s.rng.Float64()*2 - 1) * s.opts.MaxSlippage
	}
	if fillPrice < consts.MinTradePrice {
		fillPrice = consts.MinTradePrice
	}
	if fillPrice > consts.MaxTradePrice {
		fillPrice = consts.MaxTradePrice
	}

	f := &model.FilledOrder{
		Order:     *o,
		FillPrice: fillPrice,
		FilledAt:  s.now,
		VisibleAt: s.now.Add(s.opts.SettlementDelay),
	}
	s.fills = append(s.fills, f)
	s.fillCount++
	s.legQty[o.LegID] += o.Size
	s.legCost[o.LegID] += fillPrice * o.Size
	s.legSide[o.LegID] = o.Side
	s.book.Commit(strconv.FormatInt(o.ID, 10), fillPrice*o.Size)
	s.recordFillLocked(o, fillPrice)
	logger.Debug("挂单成交",
		logger.Pair("order_id", o.ID),
		logger.Pair("leg", o.LegID),
		logger.Pair("fill_price", fillPrice),
		logger.Pair("size", o.Size))
}

// failLocked 登记失败；可重试且未到上限时排进重试队列。
// drain 阶段不再排队，让每张挂单都能落到终态。
func (s *Simulator) failLocked(o *model.PendingOrder, reason model.FailureReason, drain bool) {
	s.book.Release(strconv.FormatInt(o.ID, 10))
	s.failCount++

	final := drain || !reason.Retryable() || o.RetryCount >= s.opts.MaxRetries
	f := &model.FailedOrder{
		Order:       *o,
		FailReason:  reason,
		FailedAt:    s.now,
		NextRetryAt: s.now.Add(s.opts.RetryDelay),
		Final:       final,
	}
	if !final {
		s.retryQ = append(s.retryQ, f)
	}
	s.recordLocked(o, model.RecordFailed, string(reason))
	logger.Debug("挂单失败",
		logger.Pair("order_id", o.ID),
		logger.Pair("leg", o.LegID),
		logger.Pair("reason", string(reason)),
		logger.Pair("final", final))
}

// processRetries 到点且腿空闲的失败单重新入场，重试计数加一。
// 预算不够直接出局，腿被占用则留到下一轮再试。
func (s *Simulator) processRetries() {
	s.mu.Lock()
	defer s.mu.Unlock()

	keep := s.retryQ[:0]
	for _, f := range s.retryQ {
		if f.NextRetryAt.After(s.now) {
			keep = append(keep, f)
			continue
		}
		if s.legBusyLocked(f.Order.LegID) {
			keep = append(keep, f)
			continue
		}

		o := &model.PendingOrder{
			ID:          s.node.Generate().Int64(),
			LegID:       f.Order.LegID,
			Side:        f.Order.Side,
			Action:      f.Order.Action,
			Price:       f.Order.Price,
			Size:        f.Order.Size,
			Reason:      f.Order.Reason,
			SubmittedAt: s.now,
			RetryCount:  f.Order.RetryCount + 1,
			Cycle:       s.cycles,
		}
		if !s.book.Reserve(strconv.FormatInt(o.ID, 10), o.Cost()) {
			s.recordLocked(o, model.RecordRejected, "budget_exceeded")
			s.rejected++
			continue
		}
		s.pending[o.ID] = o
		s.submitted++
		s.retries++
		s.recordLocked(o, model.RecordSubmitted, "")
		logger.Debug("失败单重试",
			logger.Pair("order_id", o.ID),
			logger.Pair("leg", o.LegID),
			logger.Pair("retry", o.RetryCount))
	}
	s.retryQ = keep
}

// markValueLocked 全部成交持仓按买一价估值，含尚未过回报延迟的部分
// （资金在成交时已经花出去，估值口径要跟上）
func (s *Simulator) markValueLocked(snap *model.PoolSnapshot) float64 {
	var mark float64
	for leg, qty := range s.legQty {
		if q, ok := snap.Quote(leg); ok {
			mark += qty * q.Bid
		}
	}
	return mark
}

func (s *Simulator) recordFillLocked(o *model.PendingOrder, fillPrice float64) {
	qty := s.legQty[o.LegID]
	avg := 0.0
	if qty > 0 {
		avg = s.legCost[o.LegID] / qty
	}
	rec := &model.TradeRecord{
		Timestamp:   s.now,
		Cycle:       o.Cycle,
		Action:      o.Action,
		Leg:         o.Side,
		Price:       fillPrice,
		Size:        o.Size,
		Cost:        fillPrice * o.Size,
		LegQty:      qty,
		LegAvgPrice: avg,
		TotalSpent:  s.book.Invested(),
		OrderID:     o.ID,
		Status:      model.RecordFilled,
		Reason:      o.Reason,
	}
	s.appendLocked(rec)
}

func (s *Simulator) recordLocked(o *model.PendingOrder, status model.RecordStatus, failReason string) {
	rec := &model.TradeRecord{
		Timestamp:     s.now,
		Cycle:         o.Cycle,
		Action:        o.Action,
		Leg:           o.Side,
		Price:         o.Price,
		Size:          o.Size,
		Cost:          o.Cost(),
		LegQty:        s.legQty[o.LegID],
		LegAvgPrice:   s.legAvgLocked(o.LegID),
		TotalSpent:    s.book.Invested(),
		OrderID:       o.ID,
		Status:        status,
		FailureReason: failReason,
		Reason:        o.Reason,
	}
	s.appendLocked(rec)
}

// recordHold 连续锁定提示只落第一条，避免刷屏
func (s *Simulator) recordHold(d *model.TradingDecision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holdStreak {
		return
	}
	s.holdStreak = true
	rec := &model.TradeRecord{
		Timestamp:  s.now,
		Cycle:      s.cycles,
		Action:     model.ActionHold,
		Leg:        d.Side(),
		TotalSpent: s.book.Invested(),
		Status:     model.RecordHold,
		Reason:     d.Reason,
	}
	s.appendLocked(rec)
}

func (s *Simulator) legAvgLocked(legID string) float64 {
	if qty := s.legQty[legID]; qty > 0 {
		return s.legCost[legID] / qty
	}
	return 0
}

func (s *Simulator) appendLocked(rec *model.TradeRecord) {
	if rec.Status != model.RecordHold {
		s.holdStreak = false
	}
	if err := s.rec.Append(rec); err != nil {
		logger.Error("交易记录落盘失败", logger.Pair("err", err.Error()))
		return
	}
	s.trades++
}
