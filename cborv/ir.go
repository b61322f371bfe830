package cborv

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/signadot/tony-format/docshape/ir"
)

// FromIR converts a textual tree node into a binary tree value. Numbers
// without a parsed payload are parsed from their source text.
func FromIR(node *ir.Node) (Value, error) {
	if node == nil {
		return Null(), nil
	}
	switch node.Type {
	case ir.NullType:
		return Null(), nil
	case ir.BoolType:
		return FromBool(node.Bool), nil
	case ir.StringType:
		return FromText(node.String), nil
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return FromInt(*node.Int64), nil
		case node.Float64 != nil:
			return FromFloat(*node.Float64), nil
		}
		if i, err := strconv.ParseInt(node.Number, 10, 64); err == nil {
			return FromInt(i), nil
		}
		f, err := strconv.ParseFloat(node.Number, 64)
		if err != nil {
			return Value{}, fmt.Errorf("number %q at %s: %w", node.Number, node.Path(), err)
		}
		return FromFloat(f), nil
	case ir.ArrayType:
		vs := make([]Value, len(node.Values))
		for i, y := range node.Values {
			v, err := FromIR(y)
			if err != nil {
				return Value{}, err
			}
			vs[i] = v
		}
		return FromArray(vs...), nil
	case ir.ObjectType:
		es := make([]Entry, len(node.Values))
		for i, y := range node.Values {
			v, err := FromIR(y)
			if err != nil {
				return Value{}, err
			}
			es[i] = Entry{Key: FromText(node.Fields[i].String), Val: v}
		}
		return FromEntries(es...), nil
	default:
		return Value{}, fmt.Errorf("%w: ir type %s", ErrUnsupportedItem, node.Type)
	}
}

// ToIR converts a binary tree value into a textual tree node. Byte strings
// become base64 strings and non-text map keys are rendered as text.
func ToIR(v Value) *ir.Node {
	switch v.Kind {
	case BoolKind:
		return ir.FromBool(v.Bool)
	case IntKind:
		return ir.FromInt(v.Int)
	case FloatKind:
		return ir.FromFloat(v.Float)
	case TextKind:
		return ir.FromString(v.Text)
	case BytesKind:
		return ir.FromString(base64.StdEncoding.EncodeToString(v.Bytes))
	case ArrayKind:
		ys := make([]*ir.Node, len(v.Array))
		for i := range v.Array {
			ys[i] = ToIR(v.Array[i])
		}
		return ir.FromSlice(ys)
	case MapKind:
		kvs := make([]ir.KeyVal, len(v.Map))
		for i := range v.Map {
			e := &v.Map[i]
			kvs[i] = ir.KeyVal{Key: ir.FromString(keyText(e.Key)), Val: ToIR(e.Val)}
		}
		return ir.FromKeyVals(kvs)
	default:
		return ir.Null()
	}
}

func keyText(k Value) string {
	switch k.Kind {
	case TextKind:
		return k.Text
	case NullKind:
		return "null"
	case BoolKind:
		return strconv.FormatBool(k.Bool)
	case IntKind:
		return strconv.FormatInt(k.Int, 10)
	case FloatKind:
		return strconv.FormatFloat(k.Float, 'g', -1, 64)
	case BytesKind:
		return base64.StdEncoding.EncodeToString(k.Bytes)
	default:
		return k.Kind.String()
	}
}
