// Package text models chat components and converts them to and from NBT
// tag trees.
package text

// Component is one node of a chat component tree. The set of
// implementations is closed: Text, Translatable, Score, Selector, Keybind
// and Raw.
type Component interface {
	base() *Base
}

// Base holds what every component variant carries.
type Base struct {
	Children []Component
	Style    Style
}

func (b *Base) base() *Base { return b }

// Text is a literal string.
type Text struct {
	Base
	Content string
}

// Translatable is a translation key rendered with Args substituted in.
type Translatable struct {
	Base
	Key      string
	Fallback *string
	Args     []Component
}

// Score shows a scoreboard value for Name on Objective.
type Score struct {
	Base
	Name      string
	Objective string
	// Value is the legacy pre-resolved score text.
	Value *string
}

type Selector struct {
	Base
	Pattern   string
	Separator Component
}

type Keybind struct {
	Base
	Keybind string
}

// Raw is the NBT-path component. Neither decoding nor encoding supports it.
type Raw struct {
	Base
}

// NewText returns a Text with no style or children.
func NewText(content string) *Text {
	return &Text{Content: content}
}

// Empty returns the empty text component.
func Empty() *Text {
	return &Text{}
}

// ChildrenOf returns c's children, nil for a nil component.
func ChildrenOf(c Component) []Component {
	if c == nil {
		return nil
	}
	return c.base().Children
}

// StyleOf returns c's style, the zero Style for a nil component.
func StyleOf(c Component) Style {
	if c == nil {
		return Style{}
	}
	return c.base().Style
}

// VariantName is the type discriminator written for c.
func VariantName(c Component) string {
	switch c.(type) {
	case *Text:
		return typeText
	case *Translatable:
		return typeTranslatable
	case *Score:
		return typeScore
	case *Selector:
		return typeSelector
	case *Keybind:
		return typeKeybind
	case *Raw:
		return typeNBT
	default:
		return "unknown"
	}
}

const (
	typeText         = "text"
	typeTranslatable = "translatable"
	typeScore        = "score"
	typeSelector     = "selector"
	typeKeybind      = "keybind"
	typeNBT          = "nbt"
)
