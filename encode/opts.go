package encode

import "errors"

var (
	ErrType  = errors.New("cannot encode node")
	ErrDepth = errors.New("maximum depth exceeded")
)

type EncodeOption func(*EncState)

// EncodeWire selects compact output with no whitespace and no final newline.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}
func EncodeIndent(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// Depth limits nesting; 0 means unlimited.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}
