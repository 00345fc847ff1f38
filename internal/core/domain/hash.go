package domain

import (
	"fmt"
	"strconv"

	"go.trai.ch/zerr"
)

// Hash is a 64-bit content digest. The zero value means "no hash".
type Hash uint64

// String returns the fixed-width hexadecimal form of the hash.
func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// IsZero reports whether the hash is unset.
func (h Hash) IsZero() bool {
	return h == 0
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHash parses the hexadecimal form produced by Hash.String.
func ParseHash(s string) (Hash, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "invalid hash"), "hash", s)
	}
	return Hash(v), nil
}
