package preset

import (
	"pairflow/internal/model"
	"pairflow/internal/strategy"
	"pairflow/pkg/errors"
	"pairflow/pkg/errors/ecode"
	"pairflow/pkg/response"
	"pairflow/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// 列表只给关键阈值，完整参数走详情接口
type presetSummary struct {
	Name           string  `json:"name"`
	Sizing         string  `json:"sizing"`
	TargetPairCost float64 `json:"target_pair_cost"`
	ProbeCeiling   float64 `json:"probe_ceiling"`
	HedgeCeiling   float64 `json:"hedge_ceiling"`
	HedgeStrict    bool    `json:"hedge_strict"`
}

func (h *Handler) PresetsGetList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		all := strategy.All()
		list := make([]presetSummary, 0, len(all))
		for _, p := range all {
			list = append(list, presetSummary{
				Name:           p.Name,
				Sizing:         string(p.Sizing),
				TargetPairCost: p.TargetPairCost,
				ProbeCeiling:   p.ProbeCeiling,
				HedgeCeiling:   p.HedgeCeiling,
				HedgeStrict:    p.HedgeStrict,
			})
		}
		response.JSON(ctx, nil, list)
	}
}

func (h *Handler) PresetGetDetail() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.PresetDetailReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		p, err := strategy.Get(req.Name)
		if err != nil {
			response.JSON(ctx, errors.Wrapf(err, ecode.PresetErr, "preset %s", req.Name), nil)
			return
		}
		response.JSON(ctx, nil, p)
	}
}
