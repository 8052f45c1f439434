package nbt

import "errors"

var (
	ErrUnsupportedTag = errors.New("unsupported NBT tag type")
	ErrDepthExceeded  = errors.New("NBT nesting too deep")
	ErrNegativeLength = errors.New("negative NBT array length")
	ErrMixedList      = errors.New("NBT list elements differ in type")
	ErrStringTooLong  = errors.New("NBT string exceeds 65535 bytes")
	ErrInvalidValue   = errors.New("NBT value does not match tag type")
)
