package registry

import (
	"errors"

	"github.com/lesichkovm/registryjs/pkg/codec"
	"github.com/lesichkovm/registryjs/pkg/obfuscate"
)

// The registry error taxonomy. Parse and decode failures encountered while
// serving Get are handled internally (logged, surfaced as a null result);
// the remaining errors propagate to callers as hard failures because
// continuing would silently store unrecoverable data.
var (
	// ErrParse indicates malformed JSON in a stored record.
	ErrParse = codec.ErrParse

	// ErrDecode indicates an obfuscation payload that cannot be reversed.
	ErrDecode = obfuscate.ErrDecode

	// ErrInvalidKey indicates an empty logical key. The logical key doubles
	// as the obfuscation key, and the transform is undefined for an empty
	// key.
	ErrInvalidKey = obfuscate.ErrInvalidKey

	// ErrSubstrateUnavailable indicates that no storage collaborator was
	// supplied at construction.
	ErrSubstrateUnavailable = errors.New("registry: no substrate configured")

	// ErrUnsupportedEnvironment indicates a host without a base64
	// primitive. The Go standard library always provides one, so New never
	// returns it; it is defined so the complete taxonomy stays addressable
	// with errors.Is.
	ErrUnsupportedEnvironment = errors.New("registry: no base64 primitive available")
)
