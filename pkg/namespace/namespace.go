// Package namespace derives the stable scope token that isolates one
// application's registry entries from another's.
//
// A namespace comes from either an explicit caller-supplied label or a
// canonical rendering of the executing context's origin. Either way the
// token is base64-encoded before use so it is safe to embed in substrate
// keys.
package namespace

import (
	"strings"

	"github.com/lesichkovm/registryjs/pkg/codec"
)

// Unknown is the origin token used when no network origin is determinable:
// headless contexts, file-access schemes, or an absent origin collaborator.
const Unknown = "unknown"

// Origin describes the executing context's location, mirroring the
// host-provided origin collaborator.
type Origin struct {
	// Raw is a precomposed origin string, preferred when present and not
	// the literal "null" (the value opaque origins report).
	Raw string

	// Scheme is the URL scheme, with or without the trailing colon.
	Scheme string

	// Host is the hostname without port.
	Host string

	// Port is the explicit port, or empty when none is present.
	Port string
}

// OriginFunc reports the current origin. The second return is false when
// no origin concept is available at all.
type OriginFunc func() (Origin, bool)

// Derive computes the namespace token for an optional label.
//
// A non-empty label yields "@" + label; otherwise the origin token is
// used. The result is always base64-encoded and derivation never fails:
// every degraded case collapses to the encoded Unknown token.
func Derive(label string, origin OriginFunc) string {
	if label != "" {
		return codec.Base64Encode("@" + label)
	}
	return codec.Base64Encode(Token(origin))
}

// Token computes the canonical, unencoded origin token.
//
// Preference order: the precomposed origin string when usable, then
// scheme + "//" + host with an optional ":" + port suffix. File-access
// schemes and missing scheme or host degrade to Unknown.
func Token(origin OriginFunc) string {
	if origin == nil {
		return Unknown
	}
	o, ok := origin()
	if !ok {
		return Unknown
	}

	if o.Raw != "" && o.Raw != "null" {
		return o.Raw
	}

	scheme := o.Scheme
	if scheme != "" && !strings.HasSuffix(scheme, ":") {
		scheme += ":"
	}
	if scheme == "" || scheme == "file:" || o.Host == "" {
		return Unknown
	}

	token := scheme + "//" + o.Host
	if o.Port != "" {
		token += ":" + o.Port
	}
	return token
}
