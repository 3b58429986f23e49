package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// GenerateRandomBytes returns securely generated random bytes.
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateRandomString returns a URL-safe random string of exactly s characters.
func GenerateRandomString(s int) (string, error) {
	if s <= 0 {
		return "", errors.New("random string length must be positive")
	}
	b, err := GenerateRandomBytes(s)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:s], nil
}

// GenerateCode returns a random code of length n drawn from the given alphabet.
func GenerateCode(alphabet string, n int) (string, error) {
	if n <= 0 || alphabet == "" {
		return "", errors.New("invalid code params")
	}
	b, err := GenerateRandomBytes(n)
	if err != nil {
		return "", err
	}
	code := make([]byte, n)
	for i := range b {
		code[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(code), nil
}
