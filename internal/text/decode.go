package text

import (
	"fmt"

	"github.com/Versifine/chatnbt/internal/nbt"
)

func (w *walker) decodeAny(tag *nbt.Node) (Component, error) {
	if tag == nil {
		return nil, fmt.Errorf("%w: nil tag", ErrUnsupportedFormat)
	}
	if err := w.enter(); err != nil {
		return nil, err
	}
	defer w.leave()

	switch tag.Type {
	case nbt.TagString:
		s, _ := tag.AsString()
		return NewText(s), nil
	case nbt.TagList:
		items, _ := tag.AsList()
		out := Empty()
		for _, item := range items {
			child, err := w.decodeAny(item)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, child)
		}
		return out, nil
	case nbt.TagCompound:
		c, _ := tag.AsCompound()
		return w.decodeComponent(c)
	default:
		return nil, fmt.Errorf("%w: %s tag", ErrUnsupportedFormat, nbt.TypeName(tag.Type))
	}
}

// decodeNested decodes a compound that must itself be a full component,
// such as a translation argument or hover text.
func (w *walker) decodeNested(c *nbt.Compound) (Component, error) {
	if err := w.enter(); err != nil {
		return nil, err
	}
	defer w.leave()
	return w.decodeComponent(c)
}

func (w *walker) decodeComponent(c *nbt.Compound) (Component, error) {
	var (
		comp Component
		err  error
	)
	// 只有字符串形式的 type 参与分派, 其他类型交给按键推断
	if typeName, ok := c.GetString("type"); ok {
		switch typeName {
		case typeText:
			comp, err = decodeText(c)
		case typeTranslatable:
			comp, err = w.decodeTranslatable(c)
		case typeScore:
			comp, err = decodeScore(c)
		case typeSelector:
			comp, err = w.decodeSelector(c)
		case typeKeybind:
			comp, err = decodeKeybind(c)
		case typeNBT:
			err = fmt.Errorf("%w: nbt component", ErrUnsupported)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownType, typeName)
		}
	} else {
		switch {
		case c.IsEmpty():
			return Empty(), nil
		case c.Has("text"):
			comp, err = decodeText(c)
		case c.Has("translate"):
			comp, err = w.decodeTranslatable(c)
		case c.Has("score"):
			comp, err = decodeScore(c)
		case c.Has("selector"):
			comp, err = w.decodeSelector(c)
		case c.Has("keybind"):
			comp, err = decodeKeybind(c)
		case c.Has("nbt"):
			err = fmt.Errorf("%w: nbt component", ErrUnsupported)
		case c.Has(""):
			// 旧版本服务端会把纯文本放在空键下
			var content string
			content, err = requireString(c, "text component", "")
			comp = NewText(content)
		default:
			err = fmt.Errorf("%w: keys %v", ErrInferType, c.Keys())
		}
	}
	if err != nil {
		return nil, err
	}

	base := comp.base()

	extra, err := optionalList(c, "extra")
	if err != nil {
		return nil, err
	}
	for _, item := range extra {
		child, err := w.decodeAny(item)
		if err != nil {
			return nil, err
		}
		base.Children = append(base.Children, child)
	}

	base.Style, err = w.decodeStyle(c)
	if err != nil {
		return nil, err
	}
	return comp, nil
}

func decodeText(c *nbt.Compound) (*Text, error) {
	content, err := requireString(c, "text component", "text")
	if err != nil {
		return nil, err
	}
	return NewText(content), nil
}

func (w *walker) decodeTranslatable(c *nbt.Compound) (*Translatable, error) {
	key, err := requireString(c, "translatable component", "translate")
	if err != nil {
		return nil, err
	}
	fallback, err := optionalString(c, "fallback")
	if err != nil {
		return nil, err
	}
	out := &Translatable{Key: key, Fallback: fallback}

	args, err := optionalList(c, "with")
	if err != nil {
		return nil, err
	}
	for _, arg := range args {
		argCompound, ok := arg.AsCompound()
		if !ok {
			return nil, invalidShape("with", nbt.TagCompound, arg)
		}
		decoded, err := w.decodeNested(argCompound)
		if err != nil {
			return nil, err
		}
		out.Args = append(out.Args, decoded)
	}
	return out, nil
}

func decodeScore(c *nbt.Compound) (*Score, error) {
	score, err := requireCompound(c, "score component", "score")
	if err != nil {
		return nil, err
	}
	name, err := requireString(score, "score component", "name")
	if err != nil {
		return nil, err
	}
	objective, err := requireString(score, "score component", "objective")
	if err != nil {
		return nil, err
	}
	value, err := optionalString(score, "value")
	if err != nil {
		return nil, err
	}
	return &Score{Name: name, Objective: objective, Value: value}, nil
}

func (w *walker) decodeSelector(c *nbt.Compound) (*Selector, error) {
	pattern, err := requireString(c, "selector component", "selector")
	if err != nil {
		return nil, err
	}
	out := &Selector{Pattern: pattern}
	if sep, ok := c.Get("separator"); ok {
		out.Separator, err = w.decodeAny(sep)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeKeybind(c *nbt.Compound) (*Keybind, error) {
	keybind, err := requireString(c, "keybind component", "keybind")
	if err != nil {
		return nil, err
	}
	return &Keybind{Keybind: keybind}, nil
}
