package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrBase64 indicates input that is not valid standard base64.
var ErrBase64 = errors.New("codec: invalid base64")

// Base64Encode encodes the byte representation of s as standard base64.
func Base64Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// Base64Decode reverses Base64Encode.
func Base64Decode(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBase64, err)
	}
	return string(b), nil
}
