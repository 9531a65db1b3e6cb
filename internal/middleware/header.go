package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"pairflow/conf"
	"pairflow/internal/consts"
	"pairflow/pkg/response"
	"pairflow/utils/uuid"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/gin-gonic/gin"
)

// NoCache 控制客户端不要使用缓存
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, max-age=0, must-revalidate")
		c.Header("Expires", "Thu, 01 Jan 1970 00:00:00 GMT")
		c.Header("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		c.Next()
	}
}

// Options
func Options() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.ToUpper(c.Request.Method) != "OPTIONS" {
			c.Next()
		} else {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			c.Header("Access-Control-Allow-Headers", "authorization, origin, content-type, accept")
			c.Header("Allow", "HEAD,GET,POST,PUT,PATCH,DELETE,OPTIONS")
			c.Header("Content-State", "application/json")
			c.AbortWithStatus(http.StatusOK)
		}
	}
}

// Secure 添加安全控制和资源访问
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-State-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000")
		}
		c.Next()
	}
}

// RequestId 用来设置和透传requestId
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := uuid.GenUUID16()
		c.Header("X-Request-Id", requestId)

		// 设置requestId到context中，便于后面调用链的透传
		c.Set(consts.RequestId, requestId)
		c.Next()
	}
}

// 限制缓存的最大大小为 500，且是并发安全的 LRU 缓存
var reqCache, _ = lru.New(500)
var duplicateThreshold = 1 * time.Second

// 防止单个客户端 IP 在 1 秒内重复发送请求，保护触发链路
// 只挂在不需要高频重试的常规 HTTP 路由上（登录、外部触发等），不要用于websocket等实时性高的连接
func AntiDuplicateMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + c.Request.URL.Path
		// 使用IP + 接口路径 作为key 防抖动
		// 使用golang-lru 缓存库，解决锁竞争问题
		if value, ok := reqCache.Get(key); ok {
			lastRequestTime := value.(time.Time)

			// 检查是否在阀值内
			if time.Since(lastRequestTime) < duplicateThreshold {
				// 如果是重复请求，直接返回
				response.TooManyRequests(c)
				c.Abort()
				return
			}
		}

		// 更新时间戳 (Hit 或 Miss 都会更新)
		// Add 方法会自动处理 LRU 淘汰和并发安全
		reqCache.Add(key, time.Now())
		c.Next()
	}
}

// 签名允许的最大时钟偏差（秒）
const signatureTTL = 60

// RequestValidationMiddleware 校验外部触发请求头里的时间戳和签名，挡住重放
// 签名密钥与触发信号共用 webhook secret
func RequestValidationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		timestamp := c.GetHeader(consts.Timestamp) // 客户端在请求头中添加时间戳
		signature := c.GetHeader(consts.Signature) // 客户端在请求头中添加签名

		// 将UTC时间戳字符串转换为时间
		utcTimestamp, err := strconv.ParseInt(timestamp, 10, 64)
		if err != nil {
			response.BadRequests(c)
			c.Abort()
			return
		}

		// 验证时间戳是否在阈值内
		currentUTCTimestamp := time.Now().Unix()
		if (currentUTCTimestamp - utcTimestamp) > signatureTTL {
			response.BadRequests(c)
			c.Abort()
			return
		}

		// 验证签名
		validSignature := computeHMAC(timestamp, []byte(conf.AppConfig.Webhook.Secret))
		if signature != validSignature {
			// 无效的签名。
			response.BadRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func computeHMAC(data string, key []byte) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
