package utils

import (
	"pairflow/internal/consts"
	"time"
)

// Stamp2str 时间戳转字符串
func Stamp2str(timestamp int64) string {
	if timestamp == 0 {
		return ""
	}
	return time.Unix(timestamp, 0).Format(consts.TimeLayout)
}

// Str2stamp 字符串转时间戳，时区与 Stamp2str 一致取本地
func Str2stamp(str string) int64 {
	t, err := time.ParseInLocation(consts.TimeLayout, str, time.Local)
	if err != nil {
		return 0
	}
	return t.Unix()
}
