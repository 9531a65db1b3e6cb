package security

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"io"
	"pairflow/pkg/logger"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

// 配置密封用的混合加密：curve25519 协商共享密钥，HKDF 衍生，ChaCha20-Poly1305 封装

type ChaChaPoly struct {
	senderPrivateKey, // 封存方的私钥
	receiverPublicKey, // 解封方的公钥
	salt, // 加盐，加密和解密两侧必须一致
	sharedInfo, // 鉴权信息，固定不变
	_symmetricKey, // 衍生出的对称密钥
	Nonce []byte
	aead cipher.AEAD
}

func NewChaChaPoly(senderPrivateKey, receiverPublicKey, salt, sharedInfo, nonce []byte) (*ChaChaPoly, error) {
	if len(senderPrivateKey) == 0 || len(receiverPublicKey) == 0 {
		return nil, errors.New("key is not empty")
	}
	chaCha := &ChaChaPoly{
		senderPrivateKey:  senderPrivateKey,
		receiverPublicKey: receiverPublicKey,
		salt:              salt,
		sharedInfo:        sharedInfo,
		Nonce:             nonce,
	}
	// 生成对称密钥
	key, err := chaCha.symmetricKey()
	if err != nil {
		logger.Errorf("衍生密钥失败")
		return nil, err
	}

	// 初始化AEAD实例，New和NewX处理的nonce（number used once）大小是不同的
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	chaCha.aead = aead
	if chaCha.Nonce == nil {
		nonce, err = chaCha.makeNonce()
		if err != nil {
			return nil, err
		}
		chaCha.Nonce = nonce
	}
	return chaCha, nil
}

// 密钥衍生：
// 把协商出的共享密钥连同salt和sharedInfo一起过HKDF，得到实际用于加解密的对称密钥
func (c *ChaChaPoly) deriveKey(sharedSecret, salt, sharedInfo []byte) ([]byte, error) {
	hkdfSha512 := hkdf.New(sha512.New, sharedSecret, salt, sharedInfo)
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdfSha512, key); err != nil {
		return nil, err
	}
	return key, nil
}

// 生成共享密钥
func (c *ChaChaPoly) generateSharedSecret() ([]byte, error) {
	var sharedSecret, priv, pub [32]byte
	copy(priv[:], c.senderPrivateKey)
	copy(pub[:], c.receiverPublicKey)
	curve25519.ScalarMult(&sharedSecret, &priv, &pub)
	return sharedSecret[:], nil
}

// 生成对称密钥
func (c *ChaChaPoly) symmetricKey() ([]byte, error) {
	if c._symmetricKey != nil {
		return c._symmetricKey, nil
	}
	// 根据己方私钥和对方公钥协商出共享密钥
	sharedSecret, err := c.generateSharedSecret()
	if err != nil {
		logger.Errorf("生成共享密钥失败！")
		return nil, err
	}

	key, err := c.deriveKey(sharedSecret, c.salt, c.sharedInfo)
	if err != nil {
		logger.Errorf("衍生密钥失败")
		return nil, err
	}
	c._symmetricKey = key
	return key, nil
}

func (c *ChaChaPoly) makeNonce() ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	_, err := rand.Read(nonce)
	if err != nil {
		return nil, err
	}
	return nonce, nil
}

// 加密
func (c *ChaChaPoly) Encrypt(plaintext []byte) ([]byte, error) {
	ciphertext := c.aead.Seal(nil, c.Nonce, plaintext, nil)
	return ciphertext, nil
}

// 解密
func (c *ChaChaPoly) Decrypt(ciphertext []byte) ([]byte, error) {
	plaintext, err := c.aead.Open(nil, c.Nonce, ciphertext, nil)
	if err != nil {
		return nil, err
	}

	return plaintext, nil
}

// 生成32位的curve25519私钥和对应公钥
func GenCurve25519Key() (privateKey, publicKey []byte, err error) {
	privateKey = make([]byte, 32)
	_, err = rand.Read(privateKey)
	if err != nil {
		return
	}

	// 根据私钥获取公钥
	publicKey, err = curve25519.X25519(privateKey, curve25519.Basepoint)
	return
}
