package xmlparts

import (
	"fmt"
	"strings"
)

// Namespace derives the storage namespace for a key: every character outside
// [A-Za-z0-9] becomes an underscore and the result is lower-cased, so
// "My Key!" and "my key!" both address namespace "my_key_".
//
// Empty and all-whitespace keys are rejected with ErrInvalidKey. This is the
// only validation gate; every operation trusts the namespace produced here.
func Namespace(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}

	return b.String(), nil
}
