package uuid

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	guuid "github.com/google/uuid"
)

// GenUUID16 生成16位请求标识，用于调用链透传
func GenUUID16() string {
	s := strings.ReplaceAll(guuid.NewString(), "-", "")
	return s[:16]
}

// SnowNode 雪花id生成器，node 用来区分部署实例
type SnowNode struct {
	node *snowflake.Node
}

// NewNode n 的合法范围是 0~1023，越界属于编码错误，直接 panic
func NewNode(n int64) *SnowNode {
	node, err := snowflake.NewNode(n)
	if err != nil {
		panic(err)
	}
	return &SnowNode{node: node}
}

func (s *SnowNode) GenSnowID() int64 {
	return s.node.Generate().Int64()
}

func (s *SnowNode) GenSnowStr() string {
	return s.node.Generate().String()
}
