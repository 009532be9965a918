package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	// Prefix 标识 mesh 文件中的加密字段
	Prefix = "ENC:"

	saltSize = 16
	// scrypt 参数
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// Crypter 用密钥材料(密钥文件内容或口令)加解密 mesh 文件里的敏感字段。
// 每个密文带独立的 salt,AES-256 密钥由 scrypt 派生。
type Crypter struct {
	material []byte
}

// NewCrypter 创建加解密实例,material 不能为空
func NewCrypter(material []byte) (*Crypter, error) {
	if len(material) == 0 {
		return nil, errors.New("empty key material")
	}
	return &Crypter{material: append([]byte(nil), material...)}, nil
}

func (c *Crypter) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(c.material, salt, scryptN, scryptR, scryptP, KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt 加密字符串
// 输出格式: ENC:<Base64(Salt + Nonce + Ciphertext)>
func (c *Crypter) Encrypt(plaintext string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}
	gcm, err := c.aead(salt)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	buf := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	buf = append(buf, salt...)
	buf = append(buf, nonce...)
	buf = append(buf, sealed...)
	return Prefix + base64.StdEncoding.EncodeToString(buf), nil
}

// Decrypt 解密字符串,输入必须以 ENC: 开头
func (c *Crypter) Decrypt(encoded string) (string, error) {
	if !IsEncrypted(encoded) {
		return "", fmt.Errorf("invalid format: missing '%s' prefix", Prefix)
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(encoded, Prefix))
	if err != nil {
		return "", fmt.Errorf("invalid encoding: %w", err)
	}
	if len(data) < saltSize {
		return "", errors.New("ciphertext too short")
	}
	salt, rest := data[:saltSize], data[saltSize:]
	gcm, err := c.aead(salt)
	if err != nil {
		return "", err
	}
	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize {
		return "", errors.New("ciphertext too short")
	}
	plaintext, err := gcm.Open(nil, rest[:nonceSize], rest[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("decryption failed: %w", err)
	}
	return string(plaintext), nil
}

// IsEncrypted 判断字符串是否是加密格式
func IsEncrypted(s string) bool {
	return strings.HasPrefix(s, Prefix)
}
