package presets

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultPrefix is the key namespace used when none is given.
const DefaultPrefix = "wallhaven"

const maxNameLength = 64

// ErrInvalidName indicates a preset name that cannot be normalized into a key.
var ErrInvalidName = errors.New("invalid preset name")

var nameExpr = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)

// NormalizeName lowercases name and joins its words with "-".
func NormalizeName(name string) (string, error) {
	normalized := strings.Join(strings.Fields(strings.ToLower(name)), "-")
	if normalized == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if len(normalized) > maxNameLength {
		return "", fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidName, name, maxNameLength)
	}
	if !nameExpr.MatchString(normalized) {
		return "", fmt.Errorf("%w: %q may only contain letters, digits, '-', '_' and '.'", ErrInvalidName, name)
	}
	return normalized, nil
}

// Key identifies a stored preset.
type Key struct {
	// Prefix is the key namespace (e.g., "wallhaven")
	Prefix string

	// Name is the normalized preset name
	Name string
}

// String generates the Redis key.
// Format: prefix:preset:name
//
// Example:
//
//	wallhaven:preset:daily-landscapes
func (k Key) String() string {
	return k.pattern() + k.Name
}

// pattern is the key prefix shared by all presets of a namespace.
func (k Key) pattern() string {
	prefix := strings.Trim(k.Prefix, ":")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + ":preset:"
}
