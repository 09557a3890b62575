package registry

// expirationSuffix marks the companion entry holding a value's absolute
// expiry timestamp.
const expirationSuffix = "&&expires"

// NamespacedKey composes the substrate key for a logical key: plain
// concatenation of the logical key and the namespace token, no separator.
//
// Distinct (key, namespace) pairs can collide only through prefix/suffix
// ambiguity of the parts; this is an accepted limitation of the key
// format, kept for compatibility with existing stored data.
func NamespacedKey(key, namespace string) string {
	return key + namespace
}

// ExpirationKey derives the companion expiration key for a namespaced key.
// It is always derived, never stored independently.
func ExpirationKey(namespacedKey string) string {
	return namespacedKey + expirationSuffix
}
