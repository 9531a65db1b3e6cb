package security

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"pairflow/conf"
	"testing"

	"golang.org/x/crypto/chacha20poly1305"
)

func testSecurityConfig(t *testing.T) *conf.SecurityConfig {
	priv, pub, err := GenCurve25519Key()
	if err != nil {
		t.Fatal(err)
	}
	salt := make([]byte, 16)
	if _, err = rand.Read(salt); err != nil {
		t.Fatal(err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err = rand.Read(nonce); err != nil {
		t.Fatal(err)
	}
	return &conf.SecurityConfig{
		Sealed:     true,
		PrivateKey: hex.EncodeToString(priv),
		PublicKey:  hex.EncodeToString(pub),
		Salt:       hex.EncodeToString(salt),
		SharedInfo: "pairflow-config",
		Nonce:      hex.EncodeToString(nonce),
	}
}

func TestEncryptionAndDecryption(t *testing.T) {
	priv, pub, err := GenCurve25519Key()
	if err != nil {
		t.Fatal(err)
	}
	salt := make([]byte, 16)
	if _, err = rand.Read(salt); err != nil {
		t.Fatal(err)
	}

	chaCha, err := NewChaChaPoly(priv, pub, salt, []byte("pairflow-config"), nil)
	if err != nil {
		t.Fatal(err)
	}

	originalText := "hook-secret-0425"

	ciphertext, err := chaCha.Encrypt([]byte(originalText))
	if err != nil {
		t.Fatal(err)
	}

	decryptedText, err := chaCha.Decrypt(ciphertext)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal([]byte(originalText), decryptedText) {
		t.Fatalf("Original text and decrypted text do not match. Original: %s, Decrypted: %s", originalText, string(decryptedText))
	}
}

func TestSealOpenRoundTrip(t *testing.T) {
	sc := testSecurityConfig(t)

	sealed, err := SealSecret(sc, "hook-secret-0425")
	if err != nil {
		t.Fatal(err)
	}
	if sealed == "" || sealed == "hook-secret-0425" {
		t.Fatalf("密文异常: %q", sealed)
	}

	plain, err := OpenSealed(sc, sealed)
	if err != nil {
		t.Fatal(err)
	}
	if plain != "hook-secret-0425" {
		t.Fatalf("解封结果不一致: %q", plain)
	}

	// 空字段不算密文，原样返回
	plain, err = OpenSealed(sc, "")
	if err != nil || plain != "" {
		t.Fatalf("空字段应原样返回, got %q err %v", plain, err)
	}
}

// 密文被改动一个字节后AEAD校验必须失败
func TestOpenSealedTampered(t *testing.T) {
	sc := testSecurityConfig(t)

	sealed, err := SealSecret(sc, "token-secret-77")
	if err != nil {
		t.Fatal(err)
	}
	raw, err := hex.DecodeString(sealed)
	if err != nil {
		t.Fatal(err)
	}
	raw[0] ^= 0xff
	if _, err = OpenSealed(sc, hex.EncodeToString(raw)); err == nil {
		t.Fatal("改动过的密文不应该解封成功")
	}
}

func TestUnsealConfig(t *testing.T) {
	sc := testSecurityConfig(t)

	webhookSealed, err := SealSecret(sc, "hook-secret-0425")
	if err != nil {
		t.Fatal(err)
	}
	jwtSealed, err := SealSecret(sc, "token-secret-77")
	if err != nil {
		t.Fatal(err)
	}

	cfg := &conf.Config{Security: *sc}
	cfg.Webhook.Secret = webhookSealed
	cfg.Jwt.Secret = jwtSealed

	if err = UnsealConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Webhook.Secret != "hook-secret-0425" {
		t.Fatalf("webhook secret 解封错误: %q", cfg.Webhook.Secret)
	}
	if cfg.Jwt.Secret != "token-secret-77" {
		t.Fatalf("jwt secret 解封错误: %q", cfg.Jwt.Secret)
	}
	if cfg.Operator.AccessKey != "" {
		t.Fatalf("未配置的字段不应被改写: %q", cfg.Operator.AccessKey)
	}

	// 未开启sealed时不做任何处理
	cfg2 := &conf.Config{Security: *sc}
	cfg2.Security.Sealed = false
	cfg2.Webhook.Secret = webhookSealed
	if err = UnsealConfig(cfg2); err != nil {
		t.Fatal(err)
	}
	if cfg2.Webhook.Secret != webhookSealed {
		t.Fatal("sealed=false 时密文字段应保持原样")
	}
}
