package nbt

import "strings"

// Compound is a keyed tag container that remembers insertion order.
// Replacing an existing key keeps its original position.
type Compound struct {
	keys    []string
	entries map[string]*Node
}

func NewCompound() *Compound {
	return &Compound{entries: make(map[string]*Node)}
}

func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

func (c *Compound) IsEmpty() bool {
	return c.Len() == 0
}

// Keys returns the keys in insertion order.
func (c *Compound) Keys() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

func (c *Compound) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.entries[key]
	return ok
}

func (c *Compound) Get(key string) (*Node, bool) {
	if c == nil {
		return nil, false
	}
	n, ok := c.entries[key]
	return n, ok
}

// Each calls fn for every entry in insertion order until fn returns false.
func (c *Compound) Each(fn func(key string, value *Node) bool) {
	if c == nil {
		return
	}
	for _, k := range c.keys {
		if !fn(k, c.entries[k]) {
			return
		}
	}
}

func (c *Compound) Put(key string, value *Node) *Compound {
	if c.entries == nil {
		c.entries = make(map[string]*Node)
	}
	if _, exists := c.entries[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.entries[key] = value
	return c
}

func (c *Compound) PutString(key, value string) *Compound { return c.Put(key, String(value)) }
func (c *Compound) PutBool(key string, value bool) *Compound { return c.Put(key, Bool(value)) }
func (c *Compound) PutInt(key string, value int32) *Compound { return c.Put(key, Int(value)) }
func (c *Compound) PutCompound(key string, value *Compound) *Compound {
	return c.Put(key, CompoundNode(value))
}
func (c *Compound) PutList(key string, items ...*Node) *Compound {
	return c.Put(key, List(items...))
}

// Merge copies every entry of other into c, in other's order.
func (c *Compound) Merge(other *Compound) *Compound {
	other.Each(func(k string, v *Node) bool {
		c.Put(k, v)
		return true
	})
	return c
}

// GetString reports a value only when key is present and holds a string tag.
func (c *Compound) GetString(key string) (string, bool) {
	n, ok := c.Get(key)
	if !ok {
		return "", false
	}
	return n.AsString()
}

func (c *Compound) GetByte(key string) (byte, bool) {
	n, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	return n.AsByte()
}

func (c *Compound) GetInt(key string) (int32, bool) {
	n, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	return n.AsInt()
}

// GetIntOr returns def when key is absent or not integral.
func (c *Compound) GetIntOr(key string, def int32) int32 {
	if v, ok := c.GetInt(key); ok {
		return v
	}
	return def
}

func (c *Compound) GetCompound(key string) (*Compound, bool) {
	n, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	return n.AsCompound()
}

func (c *Compound) GetList(key string) ([]*Node, bool) {
	n, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	return n.AsList()
}

func (c *Compound) String() string {
	if c == nil {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(c.entries[k].String())
	}
	sb.WriteByte('}')
	return sb.String()
}
