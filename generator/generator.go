// Package generator creates the random tokens used for password
// recovery.
package generator

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"strings"
)

type RandomTokenType string

func tokenTypeFromString(token string) RandomTokenType {
	if token == "" {
		panic("zero length token issued, this is probably the only reason to ever panic")
	}
	return RandomTokenType(token)
}

type RandomTokenGenerator struct{}

// CreateSecureToken returns 32 bytes of crypto/rand entropy as
// unpadded url-safe base64.
func (*RandomTokenGenerator) CreateSecureToken() RandomTokenType {
	return createToken(32)
}

func (*RandomTokenGenerator) CreateSecureTokenWithSize(size int) RandomTokenType {
	return createToken(size)
}

func createToken(size int) RandomTokenType {
	b := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(err.Error()) // rand should never fail
	}
	token := strings.TrimRight(base64.URLEncoding.EncodeToString(b), "=")
	return tokenTypeFromString(token)
}

func New() *RandomTokenGenerator {
	return &RandomTokenGenerator{}
}
