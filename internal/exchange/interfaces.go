package exchange

import (
	"context"
	"time"

	"pairflow/internal/model"
)

// 行情与执行的边界接口。策略与模拟器只认这两张皮,
// 换数据源或接真盘都不触碰核心逻辑。

// PoolInfo 一次轮询时池的标识与剩余时间。
type PoolInfo struct {
	PoolID      string
	Asset       string
	Time        time.Time
	MinutesLeft float64
}

// PriceFeed 行情来源。Poll 推进一帧(虚拟时钟或真实网络拉取),
// GetQuote 读取该帧内某条腿的盘口。
type PriceFeed interface {
	Poll(ctx context.Context) (PoolInfo, error)
	GetQuote(ctx context.Context, legID string) (model.LegQuote, error)
	Legs() []string
}

// PositionSource 持仓来源,模拟器与真盘适配器各自实现。
type PositionSource interface {
	GetPositions(ctx context.Context, owner string) ([]model.Position, error)
}

// ActiveOrder 在途订单的最小视图。
type ActiveOrder struct {
	OrderID string
	LegID   string
}

// ExecutionAdapter 把通过守卫的决策变成订单的边界。
type ExecutionAdapter interface {
	Submit(ctx context.Context, d *model.TradingDecision) (orderID string, err error)
	Cancel(ctx context.Context, orderID string) (bool, error)
	ListActive(ctx context.Context) ([]ActiveOrder, error)
}

// BuildSnapshot 按当前帧拼装一份完整快照。
func BuildSnapshot(ctx context.Context, feed PriceFeed, positions []model.Position) (*model.PoolSnapshot, error) {
	info, err := feed.Poll(ctx)
	if err != nil {
		return nil, err
	}
	legIDs := feed.Legs()
	legs := make([]model.LegQuote, 0, len(legIDs))
	for _, id := range legIDs {
		q, err := feed.GetQuote(ctx, id)
		if err != nil {
			return nil, err
		}
		legs = append(legs, q)
	}
	return &model.PoolSnapshot{
		PoolID:      info.PoolID,
		Asset:       info.Asset,
		Time:        info.Time,
		MinutesLeft: info.MinutesLeft,
		Legs:        legs,
		Positions:   positions,
	}, nil
}
