// Package obfuscate implements the reversible additive shift transform
// applied to serialized registry values.
//
// A value is JSON-serialized, each UTF-16 code unit of the serialized text
// is shifted by the corresponding code unit of a repeating key, and the
// shifted integers are emitted as a JSON array. Null values bypass the
// transform entirely and are represented by a sentinel marker.
//
// This is a repeating-key additive cipher, not encryption. It deters casual
// inspection of stored payloads and nothing more.
package obfuscate

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/lesichkovm/registryjs/pkg/codec"
)

// NullSentinel marks an absent or null logical value inside the storage
// payload. It is stored verbatim, never shifted.
const NullSentinel = "__NULL__"

var (
	// ErrInvalidKey is returned when the transform key is empty.
	ErrInvalidKey = errors.New("obfuscate: key must not be empty")

	// ErrDecode is returned when a payload cannot be reversed: not a JSON
	// array of integers, a shifted code out of range, or plaintext that is
	// not valid JSON.
	ErrDecode = errors.New("obfuscate: payload decode failed")
)

// Encode serializes v and shifts it by key.
//
// Null values return NullSentinel without touching the key, so the
// sentinel round-trips under any key, including an invalid one. For all
// other values the key must be non-empty.
func Encode(v codec.Value, key string) (string, error) {
	if v.IsNull() {
		return NullSentinel, nil
	}
	if key == "" {
		return "", ErrInvalidKey
	}

	plain := utf16.Encode([]rune(codec.EncodeJSON(v)))
	ku := utf16.Encode([]rune(key))

	shifted := make([]codec.Value, len(plain))
	for i, u := range plain {
		shifted[i] = codec.Number(float64(int64(u) + int64(ku[i%len(ku)])))
	}
	return codec.EncodeJSON(codec.Array(shifted...)), nil
}

// Decode reverses Encode. The same key must be used on both sides; with a
// different key the result is unrelated to the original value and usually
// fails with ErrDecode.
func Decode(payload, key string) (codec.Value, error) {
	if payload == NullSentinel {
		return codec.Null(), nil
	}
	if key == "" {
		return codec.Value{}, ErrInvalidKey
	}

	arr, err := codec.DecodeJSON(payload)
	if err != nil {
		return codec.Value{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if arr.Kind() != codec.KindArray {
		return codec.Value{}, fmt.Errorf("%w: payload is %s, want array", ErrDecode, arr.Kind())
	}

	ku := utf16.Encode([]rune(key))
	units := make([]uint16, len(arr.Items()))
	for i, item := range arr.Items() {
		if item.Kind() != codec.KindNumber {
			return codec.Value{}, fmt.Errorf("%w: element %d is %s, want number", ErrDecode, i, item.Kind())
		}
		n := item.NumberVal()
		if math.Trunc(n) != n {
			return codec.Value{}, fmt.Errorf("%w: element %d is not an integer", ErrDecode, i)
		}
		code := int64(n) - int64(ku[i%len(ku)])
		if code < 0 || code > math.MaxUint16 {
			return codec.Value{}, fmt.Errorf("%w: element %d shifts out of range", ErrDecode, i)
		}
		units[i] = uint16(code)
	}

	plain := string(utf16.Decode(units))
	v, err := codec.DecodeJSON(plain)
	if err != nil {
		return codec.Value{}, fmt.Errorf("%w: reconstructed text is not json: %v", ErrDecode, err)
	}
	return v, nil
}
