package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/hkdf"
)

// hkdfInfo 派生 key 时的上下文标识，修改会导致已有密文无法解密
const hkdfInfo = "conn-hub/connection-password/v1"

var ErrNotConfigured = errors.New("未配置 crypto.secret_key")

// Cipher AES-256-GCM 加解密，密文格式 base64(nonce|ciphertext)
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher 由任意长度的 secret 经 HKDF-SHA256 派生 32 字节 key
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrNotConfigured
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("派生加密 key 失败: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt AES加密
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	ciphertext := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt AES解密
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", fmt.Errorf("密文长度非法")
	}

	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

var (
	defaultMu     sync.RWMutex
	defaultCipher *Cipher
)

// SetDefault 设置持久化层使用的 Cipher，启动时调用一次
func SetDefault(c *Cipher) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultCipher = c
}

// Default 返回持久化层使用的 Cipher，未配置时返回 ErrNotConfigured
func Default() (*Cipher, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultCipher == nil {
		return nil, ErrNotConfigured
	}
	return defaultCipher, nil
}
