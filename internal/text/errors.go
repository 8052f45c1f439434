package text

import (
	"errors"
	"fmt"

	"github.com/Versifine/chatnbt/internal/nbt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported component tag format")
	ErrMissingField      = errors.New("missing required field")
	ErrUnknownType       = errors.New("unknown component type")
	ErrInferType         = errors.New("unable to infer component type")
	ErrUnknownAction     = errors.New("unknown event action")
	ErrUnknownColor      = errors.New("unknown color")
	ErrMalformedUUID     = errors.New("malformed uuid")
	ErrUnsupported       = errors.New("not implemented")
	ErrInvalidTagShape   = errors.New("invalid tag shape")
	ErrInvalidKey        = errors.New("invalid namespaced key")
	ErrDepthExceeded     = errors.New("component nesting too deep")
)

func missingField(owner, field string) error {
	return fmt.Errorf("%w: %s requires %q", ErrMissingField, owner, field)
}

func invalidShape(field string, expected byte, actual *nbt.Node) error {
	return fmt.Errorf("%w: %q must be %s, got %s", ErrInvalidTagShape, field, nbt.TypeName(expected), nbt.TypeName(actual.Type))
}
