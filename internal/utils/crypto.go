package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"sync"
)

// 凭据加密密钥，启动时从配置加载（必须32字节，AES-256）
var (
	cryptoKey   []byte
	cryptoKeyMu sync.RWMutex
)

// ErrInvalidKeySize 密钥长度错误
var ErrInvalidKeySize = errors.New("加密密钥必须为32字节")

// SetCryptoKey 设置全局加密密钥
func SetCryptoKey(key string) error {
	if len(key) != 32 {
		return ErrInvalidKeySize
	}
	cryptoKeyMu.Lock()
	defer cryptoKeyMu.Unlock()
	cryptoKey = []byte(key)
	return nil
}

func getCryptoKey() []byte {
	cryptoKeyMu.RLock()
	defer cryptoKeyMu.RUnlock()
	if cryptoKey == nil {
		// 测试环境兜底密钥
		return []byte("nextract-credential-key-32bytes!")
	}
	return cryptoKey
}

// Encrypt AES-GCM加密
func Encrypt(plaintext string) (string, error) {
	return EncryptWithKey(plaintext, getCryptoKey())
}

// Decrypt AES-GCM解密
func Decrypt(ciphertext string) (string, error) {
	return DecryptWithKey(ciphertext, getCryptoKey())
}

// EncryptWithKey 使用指定密钥进行AES-GCM加密
func EncryptWithKey(plaintext string, key []byte) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptWithKey 使用指定密钥进行AES-GCM解密
func DecryptWithKey(ciphertext string, key []byte) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertextBytes := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertextBytes, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
