package text

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Versifine/chatnbt/internal/nbt"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// removedPrefix marks an item component key as removed from the item.
const removedPrefix = "!"

func decodeClickEvent(c *nbt.Compound) (*ClickEvent, error) {
	name, err := requireString(c, "click event", "action")
	if err != nil {
		return nil, err
	}
	action, ok := clickActionNames[name]
	if !ok {
		return nil, fmt.Errorf("%w: click event action %q", ErrUnknownAction, name)
	}

	owner := "click event " + action.String()
	field := action.payloadField()
	if action == ChangePage {
		page, err := decodePage(c, owner, field)
		if err != nil {
			return nil, err
		}
		return &ClickEvent{Action: action, Value: page}, nil
	}
	value, err := requireString(c, owner, field)
	if err != nil {
		return nil, err
	}
	return &ClickEvent{Action: action, Value: value}, nil
}

// decodePage reads the page number as an integer tag. The decimal string
// form written by encodeClickEvent is accepted too so that encoded events
// decode again.
func decodePage(c *nbt.Compound, owner, field string) (string, error) {
	n, ok := c.Get(field)
	if !ok {
		return "", missingField(owner, field)
	}
	if s, ok := n.AsString(); ok {
		page, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not a page number", ErrInvalidTagShape, s)
		}
		return strconv.FormatInt(page, 10), nil
	}
	page, err := requireInt(c, owner, field)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(int64(page), 10), nil
}

func encodeClickEvent(e *ClickEvent) (*nbt.Compound, error) {
	field := e.Action.payloadField()
	if field == "" {
		return nil, fmt.Errorf("%w: click event action %d", ErrUnknownAction, e.Action)
	}
	return nbt.NewCompound().
		PutString("action", e.Action.String()).
		PutString(field, e.Value), nil
}

// decodeHoverEvent resolves the action name without rejecting unknown names
// up front; an unknown name fails only after no variant matched.
func (w *walker) decodeHoverEvent(c *nbt.Compound) (HoverEvent, error) {
	name, err := requireString(c, "hover event", "action")
	if err != nil {
		return nil, err
	}

	switch hoverActionNames[name] {
	case ShowTextAction:
		value, err := requireCompound(c, "show_text hover event", "value")
		if err != nil {
			return nil, err
		}
		comp, err := w.decodeNested(value)
		if err != nil {
			return nil, err
		}
		return &ShowText{Text: comp}, nil
	case ShowItemAction:
		return decodeShowItem(c)
	case ShowEntityAction:
		return w.decodeShowEntity(c)
	}
	return nil, fmt.Errorf("%w: hover event action %q", ErrUnknownAction, name)
}

func decodeShowItem(c *nbt.Compound) (*ShowItem, error) {
	const owner = "show_item hover event"
	id, err := requireKey(c, owner, "id")
	if err != nil {
		return nil, err
	}
	// 缺失或非数值的 count 都按 1 处理
	out := &ShowItem{Item: id, Count: c.GetIntOr("count", 1)}

	components, err := optionalCompound(c, "components")
	if err != nil {
		return nil, err
	}
	components.Each(func(name string, value *nbt.Node) bool {
		var key Key
		removed := strings.HasPrefix(name, removedPrefix)
		key, err = ParseKey(strings.TrimPrefix(name, removedPrefix))
		if err != nil {
			return false
		}
		if out.Components == nil {
			out.Components = make(map[Key]ItemComponent)
		}
		if removed {
			out.Components[key] = RemovedComponent()
		} else {
			out.Components[key] = ComponentValue(value)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (w *walker) decodeShowEntity(c *nbt.Compound) (*ShowEntity, error) {
	const owner = "show_entity hover event"
	out := &ShowEntity{}

	name, err := optionalCompound(c, "name")
	if err != nil {
		return nil, err
	}
	if !name.IsEmpty() {
		if out.Name, err = w.decodeNested(name); err != nil {
			return nil, err
		}
	}

	if out.Type, err = requireKey(c, owner, "id"); err != nil {
		return nil, err
	}

	tag, ok := c.Get("uuid")
	if !ok {
		return nil, missingField(owner, "uuid")
	}
	if out.ID, err = decodeUUID(tag); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeUUID accepts either four ints (most significant first) or the
// hyphenated string form.
func decodeUUID(tag *nbt.Node) (uuid.UUID, error) {
	switch tag.Type {
	case nbt.TagIntArray:
		ints, _ := tag.AsIntArray()
		return uuidFromInts(ints)
	case nbt.TagString:
		s, _ := tag.AsString()
		if len(s) != 36 {
			return uuid.Nil, fmt.Errorf("%w: %q", ErrMalformedUUID, s)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: %v", ErrMalformedUUID, err)
		}
		return id, nil
	default:
		return uuid.Nil, fmt.Errorf("%w: %s tag", ErrMalformedUUID, nbt.TypeName(tag.Type))
	}
}

// uuidFromInts composes a UUID from four big-endian 32-bit parts, most
// significant first.
func uuidFromInts(ints []int32) (uuid.UUID, error) {
	if len(ints) != 4 {
		return uuid.Nil, fmt.Errorf("%w: int array of length %d", ErrMalformedUUID, len(ints))
	}
	var id uuid.UUID
	for i, v := range ints {
		binary.BigEndian.PutUint32(id[i*4:], uint32(v))
	}
	return id, nil
}

func (w *walker) encodeHoverEvent(h HoverEvent) (*nbt.Compound, error) {
	out := nbt.NewCompound()
	switch v := h.(type) {
	case *ShowText:
		value, err := w.encodeComponent(v.Text)
		if err != nil {
			return nil, err
		}
		out.PutString("action", ShowTextAction.String()).PutCompound("value", value)
	case *ShowItem:
		out.PutString("action", ShowItemAction.String()).PutString("id", v.Item.String())
		if v.Count != 1 {
			out.PutInt("count", v.Count)
		}
		if len(v.Components) > 0 {
			components, err := encodeItemComponents(v.Components)
			if err != nil {
				return nil, err
			}
			out.PutCompound("components", components)
		}
	case *ShowEntity:
		out.PutString("action", ShowEntityAction.String())
		if v.Name != nil {
			name, err := w.encodeComponent(v.Name)
			if err != nil {
				return nil, err
			}
			out.PutCompound("name", name)
		}
		out.PutString("id", v.Type.String()).PutString("uuid", v.ID.String())
	default:
		return nil, fmt.Errorf("%w: hover event %T", ErrUnknownAction, h)
	}
	return out, nil
}

func encodeItemComponents(components map[Key]ItemComponent) (*nbt.Compound, error) {
	keys := lo.Keys(components)
	slices.SortFunc(keys, func(a, b Key) int {
		return strings.Compare(a.String(), b.String())
	})

	out := nbt.NewCompound()
	for _, key := range keys {
		entry := components[key]
		switch {
		case entry.Removed:
			out.PutCompound(removedPrefix+key.String(), nbt.NewCompound())
		case entry.Value == nil:
			return nil, fmt.Errorf("%w: item component %s has no value", ErrMissingField, key)
		default:
			out.Put(key.String(), entry.Value)
		}
	}
	return out, nil
}
