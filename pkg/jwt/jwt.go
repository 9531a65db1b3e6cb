package jwt

import (
	"pairflow/conf"
	"pairflow/utils/security"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type CustomClaims struct {
	Operator string `json:"operator"`
	Sub      string `json:"sub"` // 鉴权主题，运维口径下固定为 operator
	jwt.RegisteredClaims
}

func BuildClaims(exp time.Time, operator string) *CustomClaims {
	return &CustomClaims{
		Operator: operator,
		Sub:      "operator",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    conf.AppConfig.AppName,
		},
	}
}

func GenToken(c *CustomClaims, secretKey string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	ss, err := token.SignedString([]byte(secretKey))
	return ss, err
}

// 解析jwt token
func ParseToken(jwtStr, secretKey string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(jwtStr, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, err
	} else {
		return nil, err
	}
}

// 退出登录后的 token 进黑名单，进程内保存即可：
// 单实例部署，名单最长存活一个 token 有效期，不值得引入外部存储。
var (
	blackMu   sync.Mutex
	blackList = map[string]int64{} // md5(token) -> 过期时间戳
)

func getBlackListKey(token string) string {
	return "jwt_black_list:" + security.Md5(token)
}

func JoinBlackList(tokenStr string, secretKey string) error {
	claims, err := ParseToken(tokenStr, secretKey)
	if err != nil {
		return err
	}
	blackMu.Lock()
	defer blackMu.Unlock()
	purgeExpiredLocked()
	blackList[getBlackListKey(tokenStr)] = claims.ExpiresAt.Unix()
	return nil
}

func IsInBlackList(token string) bool {
	blackMu.Lock()
	defer blackMu.Unlock()
	expireAt, ok := blackList[getBlackListKey(token)]
	if !ok {
		return false
	}
	if time.Now().Unix() >= expireAt {
		delete(blackList, getBlackListKey(token))
		return false
	}
	return true
}

// 调用方必须已持有 blackMu
func purgeExpiredLocked() {
	now := time.Now().Unix()
	for k, expireAt := range blackList {
		if now >= expireAt {
			delete(blackList, k)
		}
	}
}
