package nbt

import (
	"bytes"
	"slices"
)

// Equal reports whether a and b hold the same tag tree. Compound entry order
// is ignored; list order is not.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TagEnd:
		return true
	case TagByteArray:
		return bytes.Equal(a.Value.([]byte), b.Value.([]byte))
	case TagIntArray:
		return slices.Equal(a.Value.([]int32), b.Value.([]int32))
	case TagLongArray:
		return slices.Equal(a.Value.([]int64), b.Value.([]int64))
	case TagList:
		return slices.EqualFunc(a.Value.([]*Node), b.Value.([]*Node), Equal)
	case TagCompound:
		return EqualCompound(a.Value.(*Compound), b.Value.(*Compound))
	default:
		return a.Value == b.Value
	}
}

func EqualCompound(a, b *Compound) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.Each(func(k string, av *Node) bool {
		bv, ok := b.Get(k)
		if !ok || !Equal(av, bv) {
			equal = false
		}
		return equal
	})
	return equal
}
