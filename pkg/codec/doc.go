// Package codec provides the value model and string codecs for the registry.
//
// A stored value is represented as a closed algebraic type (Value) covering
// exactly the JSON data model: null, booleans, numbers, strings, arrays and
// string-keyed objects. Object member order is preserved on both encode and
// decode, so a decoded document re-encodes to the same member sequence.
//
// The package also provides base64 helpers over the raw byte representation
// of strings. All functions are pure and safe for concurrent use.
package codec
