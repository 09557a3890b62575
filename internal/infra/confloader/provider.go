package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// ErrReadBytesNotSupported is returned when ReadBytes is called on the
// map provider; koanf uses Read for map-backed providers.
var ErrReadBytesNotSupported = errors.New("confloader: map provider does not serialize, use Read")

// mapProvider adapts a plain map to koanf's provider interface. Keys
// may be dotted paths ("store.dir"); Read unflattens them so they merge
// over nested structures from the file and env providers.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

func (m mapProvider) Read() (map[string]any, error) {
	return maps.Unflatten(m, "."), nil
}
