package text

import (
	"fmt"
	"strings"
)

const DefaultNamespace = "minecraft"

// Key is a namespaced identifier such as "minecraft:stick".
type Key struct {
	Namespace string
	Value     string
}

// ParseKey parses "namespace:value" or a bare value in the default namespace.
// A leading colon with no namespace also selects the default namespace.
func ParseKey(s string) (Key, error) {
	ns, value := DefaultNamespace, s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		value = s[i+1:]
		if i > 0 {
			ns = s[:i]
		}
	}
	if !validNamespace(ns) {
		return Key{}, fmt.Errorf("%w: bad namespace in %q", ErrInvalidKey, s)
	}
	if !validKeyValue(value) {
		return Key{}, fmt.Errorf("%w: bad value in %q", ErrInvalidKey, s)
	}
	return Key{Namespace: ns, Value: value}, nil
}

func (k Key) String() string {
	return k.Namespace + ":" + k.Value
}

func validNamespace(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '-' || c == '.') {
			return false
		}
	}
	return true
}

func validKeyValue(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '/' && !validNamespace(s[i:i+1]) {
			return false
		}
	}
	return true
}
