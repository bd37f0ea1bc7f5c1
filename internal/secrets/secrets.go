// Package secrets seals access credentials with AES-GCM before they enter the
// subscription registry. Tokens are opened only at the point of an outbound
// API call and never appear in logs or chat replies.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
)

// Seal encrypts plaintext and returns it base64 encoded, nonce prepended.
func Seal(plaintext, keyString string) (string, error) {
	aesGCM, err := newGCM(keyString)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal.
func Open(sealed, keyString string) (string, error) {
	aesGCM, err := newGCM(keyString)
	if err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}

	nonceSize := aesGCM.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	plaintext, err := aesGCM.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

func newGCM(keyString string) (cipher.AEAD, error) {
	key, err := keyBytes(keyString)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}

func keyBytes(keyString string) ([]byte, error) {
	if len(keyString) == 64 {
		return hex.DecodeString(keyString)
	}

	if len(keyString) == 32 || len(keyString) == 24 || len(keyString) == 16 {
		return []byte(keyString), nil
	}
	return nil, errors.New("invalid key length: must be 16/24/32 bytes (raw) or 64 hex chars")
}
