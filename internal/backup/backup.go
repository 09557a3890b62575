// Package backup exports and imports namespace archives.
//
// An archive is a JSON manifest of raw substrate entries, sealed with a
// passphrase-derived key. The file layout is:
//
//	magic (4) | format version (1) | algorithm (1) | salt (16) | sealed manifest
//
// The header bytes are bound into the authentication tag, so a tampered
// header fails to open just like tampered ciphertext.
package backup

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"

	registry "github.com/lesichkovm/registryjs"
	"github.com/lesichkovm/registryjs/pkg/crypto/adaptive"
)

// Version is the current archive format version.
const Version = 1

// MinPassphraseLength is the minimum accepted passphrase length.
const MinPassphraseLength = 8

const saltLength = 16

// Argon2id parameters for passphrase-based key derivation.
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
)

var magic = []byte("RGBK")

// Archive errors.
var (
	ErrPassphraseTooWeak  = errors.New("backup: passphrase too weak (minimum 8 characters)")
	ErrMalformedArchive   = errors.New("backup: malformed archive")
	ErrVersionUnsupported = errors.New("backup: unsupported archive version")
	ErrDecryptFailed      = errors.New("backup: decryption failed, wrong passphrase or corrupted archive")
)

// Manifest describes an exported namespace.
type Manifest struct {
	Version   int     `json:"version"`
	ID        string  `json:"id"`
	Namespace string  `json:"namespace"`
	CreatedAt int64   `json:"created_at"`
	Entries   []Entry `json:"entries"`
}

// Entry is one raw substrate record: the namespaced key and the stored
// text exactly as the substrate holds it, expiration companions
// included.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// cipher type tags written into the archive header.
const (
	algoAESGCM    byte = 1
	algoXChaCha20 byte = 2
)

func algoByte(t adaptive.CipherType) (byte, error) {
	switch t {
	case adaptive.CipherAESGCM:
		return algoAESGCM, nil
	case adaptive.CipherXChaCha20:
		return algoXChaCha20, nil
	default:
		return 0, fmt.Errorf("backup: unsupported cipher type %q", t)
	}
}

func algoType(b byte) (adaptive.CipherType, error) {
	switch b {
	case algoAESGCM:
		return adaptive.CipherAESGCM, nil
	case algoXChaCha20:
		return adaptive.CipherXChaCha20, nil
	default:
		return "", fmt.Errorf("%w: unknown algorithm tag %d", ErrMalformedArchive, b)
	}
}

// deriveKey stretches the passphrase with Argon2id, then expands the
// result through HKDF so the sealing key is domain-separated from any
// other use of the same passphrase.
func deriveKey(passphrase, salt []byte) ([]byte, error) {
	stretched := argon2.IDKey(passphrase, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	key := make([]byte, argon2KeyLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, stretched, nil, []byte("registryjs/backup")), key); err != nil {
		return nil, fmt.Errorf("backup: derive key: %w", err)
	}
	return key, nil
}

// Export snapshots every substrate entry whose key contains the
// namespace token and writes the sealed archive to w. The match is the
// same substring containment Empty uses, so expiration companions are
// carried along with their values.
func Export(ctx context.Context, sub registry.Substrate, namespaceToken string, passphrase []byte, w io.Writer) (*Manifest, error) {
	if len(passphrase) < MinPassphraseLength {
		return nil, ErrPassphraseTooWeak
	}

	keys, err := sub.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: enumerate keys: %w", err)
	}
	sort.Strings(keys)

	manifest := &Manifest{
		Version:   Version,
		ID:        ulid.Make().String(),
		Namespace: namespaceToken,
		CreatedAt: time.Now().Unix(),
	}
	for _, k := range keys {
		if !strings.Contains(k, namespaceToken) {
			continue
		}
		value, err := sub.Get(ctx, k)
		if err != nil {
			if errors.Is(err, registry.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("backup: read %q: %w", k, err)
		}
		manifest.Entries = append(manifest.Entries, Entry{Key: k, Value: value})
	}

	plaintext, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("backup: encode manifest: %w", err)
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("backup: generate salt: %w", err)
	}

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer zero(key)

	c, err := adaptive.New(key)
	if err != nil {
		return nil, fmt.Errorf("backup: init cipher: %w", err)
	}

	algo, err := algoByte(c.Type())
	if err != nil {
		return nil, err
	}

	header := make([]byte, 0, len(magic)+2+saltLength)
	header = append(header, magic...)
	header = append(header, Version, algo)
	header = append(header, salt...)

	sealed, err := c.Encrypt(plaintext, header)
	if err != nil {
		return nil, fmt.Errorf("backup: seal manifest: %w", err)
	}

	if _, err := w.Write(header); err != nil {
		return nil, fmt.Errorf("backup: write archive: %w", err)
	}
	if _, err := w.Write(sealed); err != nil {
		return nil, fmt.Errorf("backup: write archive: %w", err)
	}
	return manifest, nil
}

// Open reads and unseals an archive without restoring it.
func Open(r io.Reader, passphrase []byte) (*Manifest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("backup: read archive: %w", err)
	}

	headerLen := len(magic) + 2 + saltLength
	if len(raw) < headerLen {
		return nil, ErrMalformedArchive
	}

	header := raw[:headerLen]
	if !bytes.Equal(header[:len(magic)], magic) {
		return nil, ErrMalformedArchive
	}
	if header[len(magic)] != Version {
		return nil, fmt.Errorf("%w: version %d", ErrVersionUnsupported, header[len(magic)])
	}

	cipherType, err := algoType(header[len(magic)+1])
	if err != nil {
		return nil, err
	}
	salt := header[len(magic)+2 : headerLen]

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer zero(key)

	c, err := adaptive.NewWithType(key, cipherType)
	if err != nil {
		return nil, fmt.Errorf("backup: init cipher: %w", err)
	}

	plaintext, err := c.Decrypt(raw[headerLen:], header)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	var manifest Manifest
	if err := json.Unmarshal(plaintext, &manifest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedArchive, err)
	}
	return &manifest, nil
}

// Import unseals an archive and writes its entries back into the
// substrate. Existing entries under the same keys are overwritten.
func Import(ctx context.Context, sub registry.Substrate, passphrase []byte, r io.Reader) (*Manifest, error) {
	manifest, err := Open(r, passphrase)
	if err != nil {
		return nil, err
	}

	for _, e := range manifest.Entries {
		if err := sub.Set(ctx, e.Key, e.Value); err != nil {
			return nil, fmt.Errorf("backup: restore %q: %w", e.Key, err)
		}
	}
	return manifest, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
