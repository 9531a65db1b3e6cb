package model

// 运维接口的请求体

type RunDetailReq struct {
	Id string `json:"id" form:"id" binding:"required"`
}

type PresetDetailReq struct {
	Name string `json:"name" form:"name" binding:"required"`
}

type LoginReq struct {
	Operator  string `json:"operator" binding:"required"`
	AccessKey string `json:"access_key" binding:"required"`
}

type LoginResp struct {
	Token    string `json:"token"`
	ExpireAt int64  `json:"expire_at"` // token 过期时间戳（秒）
}
