package security

import (
	"crypto/md5"
	"encoding/hex"
)

// Md5 返回字符串的 md5 十六进制摘要
func Md5(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
