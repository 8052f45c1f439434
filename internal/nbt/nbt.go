// Package nbt 实现 Minecraft 网络协议使用的 NBT 标签树
package nbt

import (
	"fmt"
	"strings"
)

const (
	TagEnd       = 0
	TagByte      = 1
	TagShort     = 2
	TagInt       = 3
	TagLong      = 4
	TagFloat     = 5
	TagDouble    = 6
	TagByteArray = 7
	TagString    = 8
	TagList      = 9
	TagCompound  = 10
	TagIntArray  = 11
	TagLongArray = 12
)

// Node is a single tag. Value holds the Go representation for Type:
//
//	TagByte      byte
//	TagShort     int16
//	TagInt       int32
//	TagLong      int64
//	TagFloat     float32
//	TagDouble    float64
//	TagByteArray []byte
//	TagString    string
//	TagList      []*Node
//	TagCompound  *Compound
//	TagIntArray  []int32
//	TagLongArray []int64
type Node struct {
	Type  byte
	Value any
}

func Byte(v byte) *Node        { return &Node{Type: TagByte, Value: v} }
func Short(v int16) *Node      { return &Node{Type: TagShort, Value: v} }
func Int(v int32) *Node        { return &Node{Type: TagInt, Value: v} }
func Long(v int64) *Node       { return &Node{Type: TagLong, Value: v} }
func Float(v float32) *Node    { return &Node{Type: TagFloat, Value: v} }
func Double(v float64) *Node   { return &Node{Type: TagDouble, Value: v} }
func String(v string) *Node    { return &Node{Type: TagString, Value: v} }
func ByteArray(v []byte) *Node { return &Node{Type: TagByteArray, Value: v} }
func IntArray(v []int32) *Node { return &Node{Type: TagIntArray, Value: v} }
func LongArray(v []int64) *Node {
	return &Node{Type: TagLongArray, Value: v}
}

// Bool encodes v as a byte tag holding 1 or 0.
func Bool(v bool) *Node {
	if v {
		return Byte(1)
	}
	return Byte(0)
}

func List(items ...*Node) *Node {
	if items == nil {
		items = []*Node{}
	}
	return &Node{Type: TagList, Value: items}
}

func CompoundNode(c *Compound) *Node {
	if c == nil {
		c = NewCompound()
	}
	return &Node{Type: TagCompound, Value: c}
}

func (n *Node) AsString() (string, bool) {
	if n == nil || n.Type != TagString {
		return "", false
	}
	s, ok := n.Value.(string)
	return s, ok
}

func (n *Node) AsByte() (byte, bool) {
	if n == nil || n.Type != TagByte {
		return 0, false
	}
	b, ok := n.Value.(byte)
	return b, ok
}

// AsInt reads any integral tag (byte, short, int, long) as an int32.
// Longs are truncated.
func (n *Node) AsInt() (int32, bool) {
	if n == nil {
		return 0, false
	}
	switch v := n.Value.(type) {
	case byte:
		if n.Type == TagByte {
			return int32(int8(v)), true
		}
	case int16:
		return int32(v), true
	case int32:
		return v, true
	case int64:
		return int32(v), true
	}
	return 0, false
}

func (n *Node) AsList() ([]*Node, bool) {
	if n == nil || n.Type != TagList {
		return nil, false
	}
	l, ok := n.Value.([]*Node)
	return l, ok
}

func (n *Node) AsCompound() (*Compound, bool) {
	if n == nil || n.Type != TagCompound {
		return nil, false
	}
	c, ok := n.Value.(*Compound)
	return c, ok && c != nil
}

func (n *Node) AsIntArray() ([]int32, bool) {
	if n == nil || n.Type != TagIntArray {
		return nil, false
	}
	a, ok := n.Value.([]int32)
	return a, ok
}

// TypeName returns the lower-case kind name of a tag type byte.
func TypeName(t byte) string {
	switch t {
	case TagEnd:
		return "end"
	case TagByte:
		return "byte"
	case TagShort:
		return "short"
	case TagInt:
		return "int"
	case TagLong:
		return "long"
	case TagFloat:
		return "float"
	case TagDouble:
		return "double"
	case TagByteArray:
		return "byte_array"
	case TagString:
		return "string"
	case TagList:
		return "list"
	case TagCompound:
		return "compound"
	case TagIntArray:
		return "int_array"
	case TagLongArray:
		return "long_array"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type {
	case TagEnd:
		return "End"
	case TagByte:
		return fmt.Sprintf("Byte(%d)", n.Value.(byte))
	case TagShort:
		return fmt.Sprintf("Short(%d)", n.Value.(int16))
	case TagInt:
		return fmt.Sprintf("Int(%d)", n.Value.(int32))
	case TagLong:
		return fmt.Sprintf("Long(%d)", n.Value.(int64))
	case TagFloat:
		return fmt.Sprintf("Float(%f)", n.Value.(float32))
	case TagDouble:
		return fmt.Sprintf("Double(%f)", n.Value.(float64))
	case TagByteArray:
		return fmt.Sprintf("ByteArray(%v)", n.Value.([]byte))
	case TagString:
		return fmt.Sprintf("String(%q)", n.Value.(string))
	case TagList:
		items := n.Value.([]*Node)
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.String()
		}
		return "List[" + strings.Join(parts, ", ") + "]"
	case TagCompound:
		return "Compound" + n.Value.(*Compound).String()
	case TagIntArray:
		return fmt.Sprintf("IntArray(%v)", n.Value.([]int32))
	case TagLongArray:
		return fmt.Sprintf("LongArray(%v)", n.Value.([]int64))
	default:
		return "Unknown"
	}
}
