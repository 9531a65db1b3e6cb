package ecode

// 业务错误码表
// 0 表示成功；1xxxx 为通用错误；2xxxx 为运行任务相关错误

const (
	Success = 0

	Unknown        = 10001
	ValidateErr    = 10002
	RequireAuthErr = 10003
	NotFoundErr    = 10004
	InternalErr    = 10005
	TooManyReqErr  = 10006

	RunConflictErr = 20001 // 运行任务状态冲突（重复启动、停止未运行的任务等）
	RunNotFoundErr = 20002
	FeedErr        = 20003 // 行情源不可用
	PresetErr      = 20004 // 策略预设不存在或参数非法
)

var text = map[int]string{
	Success:        "成功",
	Unknown:        "未知错误",
	ValidateErr:    "请求参数错误",
	RequireAuthErr: "鉴权失败",
	NotFoundErr:    "资源不存在",
	InternalErr:    "内部错误",
	TooManyReqErr:  "请求过于频繁",
	RunConflictErr: "运行任务状态冲突",
	RunNotFoundErr: "运行任务不存在",
	FeedErr:        "行情源不可用",
	PresetErr:      "策略预设无效",
}

func Text(code int) string {
	if s, ok := text[code]; ok {
		return s
	}
	return text[Unknown]
}
