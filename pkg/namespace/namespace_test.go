package namespace

import (
	"testing"

	"github.com/lesichkovm/registryjs/pkg/codec"
)

func staticOrigin(o Origin) OriginFunc {
	return func() (Origin, bool) { return o, true }
}

func noOrigin() (Origin, bool) {
	return Origin{}, false
}

func TestDerive_Label(t *testing.T) {
	got := Derive("app1", nil)
	if got != codec.Base64Encode("@app1") {
		t.Errorf("Derive(app1) = %q", got)
	}

	// Identical labels always yield identical namespaces.
	if Derive("app1", noOrigin) != got {
		t.Error("label derivation must ignore the origin")
	}
	if Derive("app2", nil) == got {
		t.Error("distinct labels must yield distinct namespaces")
	}
}

func TestToken(t *testing.T) {
	tests := []struct {
		name   string
		origin OriginFunc
		want   string
	}{
		{"nil collaborator", nil, Unknown},
		{"no origin concept", noOrigin, Unknown},
		{"precomposed", staticOrigin(Origin{Raw: "https://example.com"}), "https://example.com"},
		{
			"precomposed null literal falls through",
			staticOrigin(Origin{Raw: "null"}),
			Unknown,
		},
		{
			"reconstructed without port",
			staticOrigin(Origin{Scheme: "https:", Host: "example.com"}),
			"https://example.com",
		},
		{
			"reconstructed with port",
			staticOrigin(Origin{Scheme: "http:", Host: "localhost", Port: "8080"}),
			"http://localhost:8080",
		},
		{
			"scheme without colon is normalized",
			staticOrigin(Origin{Scheme: "https", Host: "example.com"}),
			"https://example.com",
		},
		{"file scheme", staticOrigin(Origin{Scheme: "file:", Host: "x"}), Unknown},
		{"missing scheme", staticOrigin(Origin{Host: "example.com"}), Unknown},
		{"missing host", staticOrigin(Origin{Scheme: "https:"}), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Token(tt.origin); got != tt.want {
				t.Errorf("Token() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDerive_Origin(t *testing.T) {
	origin := staticOrigin(Origin{Scheme: "https:", Host: "example.com", Port: "8443"})

	got := Derive("", origin)
	want := codec.Base64Encode("https://example.com:8443")
	if got != want {
		t.Errorf("Derive(\"\", origin) = %q, want %q", got, want)
	}

	// Determinism: same origin, same namespace.
	if Derive("", origin) != got {
		t.Error("origin derivation must be stable")
	}
}

func TestDerive_UnknownFallback(t *testing.T) {
	want := codec.Base64Encode(Unknown)
	if got := Derive("", nil); got != want {
		t.Errorf("Derive(\"\", nil) = %q, want encoded unknown", got)
	}
	if got := Derive("", noOrigin); got != want {
		t.Errorf("Derive(\"\", absent) = %q, want encoded unknown", got)
	}
}
