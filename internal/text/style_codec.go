package text

import "github.com/Versifine/chatnbt/internal/nbt"

func (w *walker) decodeStyle(c *nbt.Compound) (Style, error) {
	var s Style

	color, err := optionalString(c, "color")
	if err != nil {
		return Style{}, err
	}
	if color != nil {
		parsed, err := ParseColor(*color)
		if err != nil {
			return Style{}, err
		}
		s.Color = &parsed
	}

	font, err := optionalString(c, "font")
	if err != nil {
		return Style{}, err
	}
	if font != nil {
		key, err := ParseKey(*font)
		if err != nil {
			return Style{}, err
		}
		s.Font = &key
	}

	// 非字节的装饰标签视为未设置
	for _, d := range decorations {
		if b, ok := c.GetByte(d.name); ok {
			d.set(&s, StateOf(b == 1))
		}
	}

	if s.Insertion, err = optionalString(c, "insertion"); err != nil {
		return Style{}, err
	}

	click, err := optionalCompound(c, "click_event")
	if err != nil {
		return Style{}, err
	}
	if !click.IsEmpty() {
		if s.ClickEvent, err = decodeClickEvent(click); err != nil {
			return Style{}, err
		}
	}

	hover, err := optionalCompound(c, "hover_event")
	if err != nil {
		return Style{}, err
	}
	if !hover.IsEmpty() {
		if s.HoverEvent, err = w.decodeHoverEvent(hover); err != nil {
			return Style{}, err
		}
	}
	return s, nil
}

func (w *walker) encodeStyle(s Style) (*nbt.Compound, error) {
	out := nbt.NewCompound()
	if s.Color != nil {
		out.PutString("color", s.Color.String())
	}
	if s.Font != nil {
		out.PutString("font", s.Font.String())
	}
	for _, d := range decorations {
		if v := d.get(&s); v.IsSet() {
			out.PutBool(d.name, v == True)
		}
	}
	if s.Insertion != nil {
		out.PutString("insertion", *s.Insertion)
	}
	if s.ClickEvent != nil {
		click, err := encodeClickEvent(s.ClickEvent)
		if err != nil {
			return nil, err
		}
		out.PutCompound("click_event", click)
	}
	if s.HoverEvent != nil {
		hover, err := w.encodeHoverEvent(s.HoverEvent)
		if err != nil {
			return nil, err
		}
		out.PutCompound("hover_event", hover)
	}
	return out, nil
}
