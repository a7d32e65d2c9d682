package usecase

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const tokenKeyBytes = 20

// KeyGenerator создаёт ключи токенов
type KeyGenerator func() (string, error)

// RandomKey возвращает 40 hex-символов из crypto/rand.
func RandomKey() (string, error) {
	b := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
