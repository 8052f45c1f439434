package text

import (
	"github.com/Versifine/chatnbt/internal/nbt"
	"github.com/google/uuid"
)

type ClickAction uint8

const (
	OpenURL ClickAction = iota + 1
	OpenFile
	RunCommand
	SuggestCommand
	ChangePage
	CopyToClipboard
)

var clickActionNames = map[string]ClickAction{
	"open_url":          OpenURL,
	"open_file":         OpenFile,
	"run_command":       RunCommand,
	"suggest_command":   SuggestCommand,
	"change_page":       ChangePage,
	"copy_to_clipboard": CopyToClipboard,
}

func (a ClickAction) String() string {
	switch a {
	case OpenURL:
		return "open_url"
	case OpenFile:
		return "open_file"
	case RunCommand:
		return "run_command"
	case SuggestCommand:
		return "suggest_command"
	case ChangePage:
		return "change_page"
	case CopyToClipboard:
		return "copy_to_clipboard"
	default:
		return "unknown"
	}
}

// payloadField is the wire field holding the event's value.
func (a ClickAction) payloadField() string {
	switch a {
	case OpenURL:
		return "url"
	case OpenFile:
		return "path"
	case RunCommand, SuggestCommand:
		return "command"
	case ChangePage:
		return "page"
	case CopyToClipboard:
		return "value"
	default:
		return ""
	}
}

// ClickEvent carries one string payload. For ChangePage the payload is the
// page number in decimal.
type ClickEvent struct {
	Action ClickAction
	Value  string
}

type HoverAction uint8

const (
	ShowTextAction HoverAction = iota + 1
	ShowItemAction
	ShowEntityAction
)

var hoverActionNames = map[string]HoverAction{
	"show_text":   ShowTextAction,
	"show_item":   ShowItemAction,
	"show_entity": ShowEntityAction,
}

func (a HoverAction) String() string {
	switch a {
	case ShowTextAction:
		return "show_text"
	case ShowItemAction:
		return "show_item"
	case ShowEntityAction:
		return "show_entity"
	default:
		return "unknown"
	}
}

// HoverEvent is one of ShowText, ShowItem or ShowEntity.
type HoverEvent interface {
	Action() HoverAction
}

type ShowText struct {
	Text Component
}

// ItemComponent is an entry of a ShowItem overlay: either a raw tag value or
// a removal marker.
type ItemComponent struct {
	Removed bool
	Value   *nbt.Node
}

func RemovedComponent() ItemComponent { return ItemComponent{Removed: true} }

func ComponentValue(v *nbt.Node) ItemComponent { return ItemComponent{Value: v} }

type ShowItem struct {
	Item       Key
	Count      int32
	Components map[Key]ItemComponent
}

type ShowEntity struct {
	Type Key
	ID   uuid.UUID
	Name Component
}

func (*ShowText) Action() HoverAction   { return ShowTextAction }
func (*ShowItem) Action() HoverAction   { return ShowItemAction }
func (*ShowEntity) Action() HoverAction { return ShowEntityAction }
