package text

import (
	"fmt"

	"github.com/Versifine/chatnbt/internal/nbt"
)

// DefaultMaxDepth bounds component nesting (children, arguments, separators
// and hover contents) for a single call. Each component level takes two tag
// levels (the component compound and the list or event compound holding
// it), so a tree within this limit also fits nbt.MaxDepth when written.
// Tag values inside ShowItem overlays are not counted here; the binary
// writer still rejects them if they go deeper.
const DefaultMaxDepth = nbt.MaxDepth/2 - 1

// Codec converts between components and NBT tags. The zero value uses
// DefaultMaxDepth. A Codec holds no per-call state and is safe for
// concurrent use.
type Codec struct {
	MaxDepth int
}

var defaultCodec = &Codec{}

// Decode converts a string, list or compound tag into a component.
func Decode(tag *nbt.Node) (Component, error) {
	return defaultCodec.Decode(tag)
}

// Encode converts a component into a compound tag.
func Encode(c Component) (*nbt.Node, error) {
	return defaultCodec.Encode(c)
}

func (c *Codec) Decode(tag *nbt.Node) (Component, error) {
	d := &walker{maxDepth: c.maxDepth()}
	return d.decodeAny(tag)
}

func (c *Codec) Encode(comp Component) (*nbt.Node, error) {
	e := &walker{maxDepth: c.maxDepth()}
	compound, err := e.encodeComponent(comp)
	if err != nil {
		return nil, err
	}
	return nbt.CompoundNode(compound), nil
}

// DecodeStyle reads only the style fields of a compound.
func (c *Codec) DecodeStyle(compound *nbt.Compound) (Style, error) {
	d := &walker{maxDepth: c.maxDepth()}
	return d.decodeStyle(compound)
}

// EncodeStyle writes only the style fields.
func (c *Codec) EncodeStyle(s Style) (*nbt.Compound, error) {
	e := &walker{maxDepth: c.maxDepth()}
	return e.encodeStyle(s)
}

func DecodeStyle(compound *nbt.Compound) (Style, error) {
	return defaultCodec.DecodeStyle(compound)
}

func EncodeStyle(s Style) (*nbt.Compound, error) {
	return defaultCodec.EncodeStyle(s)
}

func (c *Codec) maxDepth() int {
	if c == nil || c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

// walker tracks recursion depth for one Decode or Encode call.
type walker struct {
	maxDepth int
	depth    int
}

func (w *walker) enter() error {
	if w.depth >= w.maxDepth {
		return fmt.Errorf("%w: limit %d", ErrDepthExceeded, w.maxDepth)
	}
	w.depth++
	return nil
}

func (w *walker) leave() { w.depth-- }
