package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	codeDigits     = 6
	reviewTokenLen = 32
)

var codeSpace = big.NewInt(1_000_000)

// RandomGenerator берёт энтропию из crypto/rand.
type RandomGenerator struct{}

func (RandomGenerator) VerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

func (RandomGenerator) ReviewToken() (string, error) {
	buf := make([]byte, reviewTokenLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken возвращает то, что хранится вместо сырого токена.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
