package service

import (
	"crypto/rand"
	"fmt"
)

// 64 symbols, so a random byte masked to 6 bits picks one without bias.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// CodeLength is the length of generated short codes.
const CodeLength = 6

// CodeGenerator produces candidate short codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// RandomCodes generates codes from crypto/rand.
type RandomCodes struct {
	length int
}

func NewRandomCodes(length int) *RandomCodes {
	if length <= 0 {
		length = CodeLength
	}
	return &RandomCodes{length: length}
}

func (g *RandomCodes) Generate() (string, error) {
	buf := make([]byte, g.length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	for i, b := range buf {
		buf[i] = codeAlphabet[b&63]
	}
	return string(buf), nil
}
