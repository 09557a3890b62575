// Package registry provides namespaced, expiring, lightly obfuscated
// key-value storage over a pluggable substrate.
//
// # Overview
//
// A Registry binds a namespace at construction and exposes four core
// operations (Set, Get, Remove and Empty) plus Keys and Has helpers.
// Namespaces isolate applications sharing one substrate: every logical
// key is suffixed with a base64-encoded scope token derived from either
// an explicit label or the executing context's origin.
//
// Values are JSON-serialized, shifted by a repeating-key additive
// transform, and stored as plain strings. Expiring values get a companion
// entry holding the absolute expiry; expired entries are evicted lazily
// the next time they are read.
//
// # Quick start
//
//	reg, err := registry.New("app1",
//		registry.WithSubstrate(memstore.New()))
//	if err != nil {
//		return err
//	}
//
//	ctx := context.Background()
//	reg.Set(ctx, "user", codec.Object(
//		codec.Member{Key: "name", Value: codec.String("Ann")},
//	), time.Hour)
//
//	v, _ := reg.Get(ctx, "user")
//
// # Custom substrates
//
// Any type implementing Substrate works as a backend. The module ships an
// in-memory substrate (substrate/memstore) and a Badger-backed persistent
// one (substrate/badgerstore).
//
// # Caveats
//
//   - The obfuscation transform is a repeating-key additive cipher. It is
//     not encryption and offers no confidentiality against an adversary
//     who can read the substrate.
//   - Get returns null for absent, expired and corrupt entries alike;
//     callers cannot tell the cases apart. Corruption is logged.
//   - Get is not pure: reading an expired entry deletes it.
//   - Empty matches entries by substring containment of the namespace
//     token, so a namespace whose token is a substring of another's will
//     clear both. This matches the historical on-disk format.
//   - No atomicity across the value entry and its expiration companion.
package registry
