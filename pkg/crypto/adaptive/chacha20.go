package adaptive

import (
	"errors"

	"golang.org/x/crypto/chacha20poly1305"
)

// XChaCha20 implements XChaCha20-Poly1305 authenticated encryption.
// The extended 24-byte nonce makes random nonces safe at any volume.
type XChaCha20 struct {
	baseCipher
}

// NewXChaCha20 creates an XChaCha20-Poly1305 cipher. The key must be
// exactly 32 bytes.
func NewXChaCha20(key []byte) (*XChaCha20, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, errors.New("adaptive: xchacha20-poly1305 key must be 32 bytes")
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	return &XChaCha20{baseCipher{aead: aead}}, nil
}

func (c *XChaCha20) Type() CipherType {
	return CipherXChaCha20
}

func (c *XChaCha20) Encrypt(plaintext, additionalData []byte) ([]byte, error) {
	return c.encrypt(plaintext, additionalData)
}

func (c *XChaCha20) Decrypt(ciphertext, additionalData []byte) ([]byte, error) {
	return c.decrypt(ciphertext, additionalData)
}
