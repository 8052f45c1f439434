package text

import (
	"fmt"

	"github.com/Versifine/chatnbt/internal/nbt"
)

func (w *walker) encodeComponent(comp Component) (*nbt.Compound, error) {
	if comp == nil {
		return nil, fmt.Errorf("%w: nil component", ErrUnsupported)
	}
	if err := w.enter(); err != nil {
		return nil, err
	}
	defer w.leave()

	out := nbt.NewCompound()
	switch v := comp.(type) {
	case *Text:
		out.PutString("type", typeText).PutString("text", v.Content)
	case *Translatable:
		out.PutString("type", typeTranslatable).PutString("translate", v.Key)
		if v.Fallback != nil {
			out.PutString("fallback", *v.Fallback)
		}
		if len(v.Args) > 0 {
			args, err := w.encodeList(v.Args)
			if err != nil {
				return nil, err
			}
			out.PutList("with", args...)
		}
	case *Score:
		score := nbt.NewCompound().
			PutString("name", v.Name).
			PutString("objective", v.Objective)
		if v.Value != nil {
			score.PutString("value", *v.Value)
		}
		out.PutString("type", typeScore).PutCompound("score", score)
	case *Selector:
		out.PutString("type", typeSelector).PutString("selector", v.Pattern)
		if v.Separator != nil {
			sep, err := w.encodeComponent(v.Separator)
			if err != nil {
				return nil, err
			}
			out.PutCompound("separator", sep)
		}
	case *Keybind:
		out.PutString("type", typeKeybind).PutString("keybind", v.Keybind)
	case *Raw:
		return nil, fmt.Errorf("%w: nbt component", ErrUnsupported)
	default:
		return nil, fmt.Errorf("%w: component type %T", ErrUnsupported, comp)
	}

	base := comp.base()
	if len(base.Children) > 0 {
		children, err := w.encodeList(base.Children)
		if err != nil {
			return nil, err
		}
		out.PutList("extra", children...)
	}

	style, err := w.encodeStyle(base.Style)
	if err != nil {
		return nil, err
	}
	return out.Merge(style), nil
}

func (w *walker) encodeList(comps []Component) ([]*nbt.Node, error) {
	items := make([]*nbt.Node, 0, len(comps))
	for _, comp := range comps {
		c, err := w.encodeComponent(comp)
		if err != nil {
			return nil, err
		}
		items = append(items, nbt.CompoundNode(c))
	}
	return items, nil
}
