package encode

import (
	"fmt"

	"github.com/signadot/tony-format/docshape/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ir.Types() {
		colors.Map[Colorable{Type: t, Attr: SepColor}] = color.RGB(255, 0, 196).SprintfFunc()
	}
	colors.Map[Colorable{Type: ir.ObjectType, Attr: FieldColor}] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[Colorable{Type: ir.NumberType, Attr: ValueColor}] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[Colorable{Type: ir.StringType, Attr: ValueColor}] = color.GreenString
	colors.Map[Colorable{Type: ir.BoolType, Attr: ValueColor}] = color.YellowString
	colors.Map[Colorable{Type: ir.NullType, Attr: ValueColor}] = color.RGB(74, 92, 138).SprintfFunc()
	return colors
}

func colorDefault(f string, args ...any) string {
	return fmt.Sprintf(f, args...)
}

// Color renders s with the colour registered for able, or the default.
func (c *Colors) Color(able Colorable, s string) string {
	f := c.Map[able]
	if f == nil {
		f = c.Default
	}
	return f("%s", s)
}
