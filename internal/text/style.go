package text

// TriState is a formatting flag that may be left unset.
type TriState uint8

const (
	Unset TriState = iota
	True
	False
)

func StateOf(b bool) TriState {
	if b {
		return True
	}
	return False
}

func (s TriState) IsSet() bool { return s != Unset }

func (s TriState) String() string {
	switch s {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

// Style is the formatting and interaction attached to a component.
// The zero value is the empty style.
type Style struct {
	Color         *Color
	Font          *Key
	Bold          TriState
	Italic        TriState
	Underlined    TriState
	Strikethrough TriState
	Obfuscated    TriState
	Insertion     *string
	ClickEvent    *ClickEvent
	HoverEvent    HoverEvent
}

// IsEmpty reports whether no style field is set.
func (s Style) IsEmpty() bool {
	if s.Color != nil || s.Font != nil || s.Insertion != nil || s.ClickEvent != nil || s.HoverEvent != nil {
		return false
	}
	for _, d := range decorations {
		if d.get(&s).IsSet() {
			return false
		}
	}
	return true
}

type decoration struct {
	name string
	get  func(*Style) TriState
	set  func(*Style, TriState)
}

// decorations lists the flags in wire order.
var decorations = []decoration{
	{"bold", func(s *Style) TriState { return s.Bold }, func(s *Style, v TriState) { s.Bold = v }},
	{"italic", func(s *Style) TriState { return s.Italic }, func(s *Style, v TriState) { s.Italic = v }},
	{"underlined", func(s *Style) TriState { return s.Underlined }, func(s *Style, v TriState) { s.Underlined = v }},
	{"strikethrough", func(s *Style) TriState { return s.Strikethrough }, func(s *Style, v TriState) { s.Strikethrough = v }},
	{"obfuscated", func(s *Style) TriState { return s.Obfuscated }, func(s *Style, v TriState) { s.Obfuscated = v }},
}
