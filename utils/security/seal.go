package security

import (
	"encoding/hex"
	"fmt"
	"pairflow/conf"
)

// 配置里的敏感字段（webhook secret、token secret、运维口令）支持密封存放：
// 落盘的是hex密文，进程启动时在这里解开。密钥材料同样以hex写在 security 配置段。

func newConfigCipher(sc *conf.SecurityConfig) (*ChaChaPoly, error) {
	priv, err := hex.DecodeString(sc.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("security.private-key 不是合法hex: %w", err)
	}
	pub, err := hex.DecodeString(sc.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("security.public-key 不是合法hex: %w", err)
	}
	salt, err := hex.DecodeString(sc.Salt)
	if err != nil {
		return nil, fmt.Errorf("security.salt 不是合法hex: %w", err)
	}
	nonce, err := hex.DecodeString(sc.Nonce)
	if err != nil {
		return nil, fmt.Errorf("security.nonce 不是合法hex: %w", err)
	}
	if len(nonce) == 0 {
		return nil, fmt.Errorf("security.nonce 未配置")
	}
	return NewChaChaPoly(priv, pub, salt, []byte(sc.SharedInfo), nonce)
}

// OpenSealed 解开一个hex密文字段，空字段原样返回
func OpenSealed(sc *conf.SecurityConfig, sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	c, err := newConfigCipher(sc)
	if err != nil {
		return "", err
	}
	data, err := hex.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("密文不是合法hex: %w", err)
	}
	plain, err := c.Decrypt(data)
	if err != nil {
		return "", fmt.Errorf("解封失败: %w", err)
	}
	return string(plain), nil
}

// SealSecret 把明文secret封成hex密文，给运维写配置时用
func SealSecret(sc *conf.SecurityConfig, plain string) (string, error) {
	c, err := newConfigCipher(sc)
	if err != nil {
		return "", err
	}
	ct, err := c.Encrypt([]byte(plain))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(ct), nil
}

// UnsealConfig 按配置开关解封所有密封字段，直接改写传入的配置
func UnsealConfig(cfg *conf.Config) error {
	if !cfg.Security.Sealed {
		return nil
	}
	secret, err := OpenSealed(&cfg.Security, cfg.Webhook.Secret)
	if err != nil {
		return fmt.Errorf("webhook.secret: %w", err)
	}
	cfg.Webhook.Secret = secret

	secret, err = OpenSealed(&cfg.Security, cfg.Jwt.Secret)
	if err != nil {
		return fmt.Errorf("jwt.secret: %w", err)
	}
	cfg.Jwt.Secret = secret

	secret, err = OpenSealed(&cfg.Security, cfg.Operator.AccessKey)
	if err != nil {
		return fmt.Errorf("operator.access-key: %w", err)
	}
	cfg.Operator.AccessKey = secret
	return nil
}
