// Package password реализует функции для хеширования и проверки паролей.
//
// Хеш хранится в формате "hash.salt": hex-представление ключа scrypt и hex-соль.
// GetHash создает такой хеш для хранения, CompareHash проверяет введённый пароль.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	saltLen = 16
	keyLen  = 64
)

// ErrMismatch возвращается, если пароль не совпадает с хешем.
var ErrMismatch = errors.New("password does not match")

// ErrMalformedHash возвращается, если строка хеша не в формате hash.salt.
var ErrMalformedHash = errors.New("malformed password hash")

// GetHash принимает пароль пользователя и возвращает строку hash.salt.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	saltHex := hex.EncodeToString(salt)

	key, err := derive(password, saltHex)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(key) + "." + saltHex, nil
}

// CompareHash сравнивает сохранённый хеш с введённым паролем.
// Возвращает nil при совпадении.
func CompareHash(stored, password string) error {
	const op = "password.CompareHash"

	hashHex, saltHex, ok := strings.Cut(stored, ".")
	if !ok || hashHex == "" || saltHex == "" {
		return fmt.Errorf("%s: %w", op, ErrMalformedHash)
	}
	want, err := hex.DecodeString(hashHex)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrMalformedHash)
	}

	got, err := derive(password, saltHex)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(got) != len(want) || subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

func derive(password, salt string) ([]byte, error) {
	return scrypt.Key([]byte(password), []byte(salt), 16384, 8, 1, keyLen)
}
