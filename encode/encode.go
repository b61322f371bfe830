package encode

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/signadot/tony-format/docshape/ir"
)

// EncState holds the settings of one Encode call.
type EncState struct {
	indent string
	wire   bool
	depth  int
	Color  func(Colorable, string) string
}

func (es *EncState) color(t ir.Type, attr ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(Colorable{Type: t, Attr: attr}, s)
}

// Encode writes node to w as JSON text. Object fields keep their order.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: "  "}
	for _, opt := range opts {
		opt(es)
	}
	buf := bytes.NewBuffer(nil)
	if err := es.encode(buf, node, 0); err != nil {
		return err
	}
	if !es.wire {
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (es *EncState) encode(buf *bytes.Buffer, node *ir.Node, depth int) error {
	if es.depth > 0 && depth > es.depth {
		return fmt.Errorf("%w: depth %d exceeded at %s", ErrDepth, es.depth, pathOf(node))
	}
	t := ir.KindOf(node)
	switch t {
	case ir.NullType:
		buf.WriteString(es.color(t, ValueColor, "null"))
	case ir.BoolType:
		buf.WriteString(es.color(t, ValueColor, strconv.FormatBool(node.Bool)))
	case ir.NumberType:
		buf.WriteString(es.color(t, ValueColor, numberText(node)))
	case ir.StringType:
		buf.WriteString(es.color(t, ValueColor, quote(node.String)))
	case ir.ArrayType:
		return es.encodeArray(buf, node, depth)
	case ir.ObjectType:
		return es.encodeObject(buf, node, depth)
	default:
		return fmt.Errorf("%w: %s at %s", ErrType, t, pathOf(node))
	}
	return nil
}

func (es *EncState) encodeArray(buf *bytes.Buffer, node *ir.Node, depth int) error {
	t := ir.ArrayType
	if len(node.Values) == 0 {
		buf.WriteString(es.color(t, SepColor, "[]"))
		return nil
	}
	buf.WriteString(es.color(t, SepColor, "["))
	for i, v := range node.Values {
		if i > 0 {
			buf.WriteString(es.color(t, SepColor, ","))
		}
		es.newline(buf, depth+1)
		if err := es.encode(buf, v, depth+1); err != nil {
			return err
		}
	}
	es.newline(buf, depth)
	buf.WriteString(es.color(t, SepColor, "]"))
	return nil
}

func (es *EncState) encodeObject(buf *bytes.Buffer, node *ir.Node, depth int) error {
	t := ir.ObjectType
	if len(node.Values) == 0 {
		buf.WriteString(es.color(t, SepColor, "{}"))
		return nil
	}
	if len(node.Fields) != len(node.Values) {
		return fmt.Errorf("%w: %d fields and %d values at %s", ErrType, len(node.Fields), len(node.Values), node.Path())
	}
	buf.WriteString(es.color(t, SepColor, "{"))
	for i, v := range node.Values {
		if i > 0 {
			buf.WriteString(es.color(t, SepColor, ","))
		}
		es.newline(buf, depth+1)
		buf.WriteString(es.color(t, FieldColor, quote(node.Fields[i].String)))
		buf.WriteString(es.color(t, SepColor, ":"))
		if !es.wire {
			buf.WriteByte(' ')
		}
		if err := es.encode(buf, v, depth+1); err != nil {
			return err
		}
	}
	es.newline(buf, depth)
	buf.WriteString(es.color(t, SepColor, "}"))
	return nil
}

func (es *EncState) newline(buf *bytes.Buffer, depth int) {
	if es.wire {
		return
	}
	buf.WriteByte('\n')
	for range depth {
		buf.WriteString(es.indent)
	}
}

func numberText(node *ir.Node) string {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10)
	case node.Float64 != nil:
		f := *node.Float64
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return quote(strconv.FormatFloat(f, 'g', -1, 64))
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case node.Number != "":
		return node.Number
	default:
		return "0"
	}
}

func pathOf(node *ir.Node) string {
	if node == nil {
		return "<nil>"
	}
	return node.Path()
}

const hex = "0123456789abcdef"

func quote(s string) string {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				buf = append(buf, '\\', c)
			case c == '\n':
				buf = append(buf, '\\', 'n')
			case c == '\r':
				buf = append(buf, '\\', 'r')
			case c == '\t':
				buf = append(buf, '\\', 't')
			case c < 0x20:
				buf = append(buf, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
			default:
				buf = append(buf, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf = append(buf, "\ufffd"...)
		} else {
			buf = append(buf, s[i:i+size]...)
		}
		i += size
	}
	return string(append(buf, '"'))
}
