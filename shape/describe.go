package shape

import "github.com/signadot/tony-format/docshape/ir"

// Describe renders d as a document: its type, kind and verdict, the shape
// and value kinds in both encodings when serializable, and its elements.
// A type met again below itself is rendered as a stub marked recursive.
func Describe(d *Descriptor) *ir.Node {
	return describe(d, map[*Descriptor]bool{})
}

func describe(d *Descriptor, path map[*Descriptor]bool) *ir.Node {
	kvs := []ir.KeyVal{
		kv("type", ir.FromString(d.Name)),
		kv("kind", ir.FromString(d.Kind.String())),
	}
	if path[d] {
		kvs = append(kvs, kv("recursive", ir.FromBool(true)))
		return ir.FromKeyVals(kvs)
	}
	path[d] = true
	defer delete(path, d)

	if d.Excluded {
		kvs = append(kvs, kv("excluded", ir.FromBool(true)))
	}
	s, err := ShapeOf(d)
	kvs = append(kvs, kv("serializable", ir.FromBool(err == nil)))
	if err != nil {
		kvs = append(kvs, kv("error", ir.FromString(err.Error())))
	} else {
		kvs = append(kvs,
			kv("shape", ir.FromString(s.String())),
			kv("text", ir.FromString(s.KindName(Text))),
			kv("binary", ir.FromString(s.KindName(Binary))),
		)
	}
	if len(d.Elems) != 0 {
		elems := make([]*ir.Node, len(d.Elems))
		for i, e := range d.Elems {
			elems[i] = describe(e, path)
		}
		kvs = append(kvs, kv("elems", ir.FromSlice(elems)))
	}
	return ir.FromKeyVals(kvs)
}

func kv(key string, val *ir.Node) ir.KeyVal {
	return ir.KeyVal{Key: ir.FromString(key), Val: val}
}
