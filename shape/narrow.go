package shape

import (
	"errors"
	"fmt"

	"github.com/signadot/tony-format/docshape/cborv"
	"github.com/signadot/tony-format/docshape/debug"
	"github.com/signadot/tony-format/docshape/ir"
)

// ErrShapeMismatch is matched by every *NarrowError.
var ErrShapeMismatch = errors.New("shape mismatch")

// NarrowError is returned by the strict narrowing functions when a document
// value is not of the required shape.
type NarrowError struct {
	Want     Shape
	Encoding Encoding
	Got      string
	Path     string
}

func (e *NarrowError) Error() string {
	msg := fmt.Sprintf("%s %s: want %s, got %s", e.Encoding, ErrShapeMismatch, e.Want, e.Got)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

func (e *NarrowError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// NarrowText narrows n to s. It never fails: a node of the wrong kind yields
// a new empty object or array, and ScalarValue accepts any node. A nil node
// is treated as null.
func (s Shape) NarrowText(n *ir.Node) *ir.Node {
	if debug.Narrow() && !s.MatchesText(n) {
		debug.Logf("narrow text %s to empty %s\n", ir.KindOf(n), s)
	}
	switch s {
	case Object:
		return n.ToObject()
	case Array:
		return n.ToArray()
	default:
		return n.ToValue()
	}
}

// NarrowBinary is NarrowText for the binary model.
func (s Shape) NarrowBinary(v cborv.Value) cborv.Value {
	if debug.Narrow() && !s.MatchesBinary(v) {
		debug.Logf("narrow binary %s to empty %s\n", v.Kind, s)
	}
	switch s {
	case Object:
		return v.ToMap()
	case Array:
		return v.ToArray()
	default:
		return v
	}
}

// NarrowTextStrict returns n if it has shape s and a *NarrowError otherwise.
func (s Shape) NarrowTextStrict(n *ir.Node) (*ir.Node, error) {
	if !s.MatchesText(n) {
		e := &NarrowError{Want: s, Encoding: Text, Got: ir.KindOf(n).String()}
		if n != nil {
			e.Path = n.Path()
		}
		return nil, e
	}
	return n.ToValue(), nil
}

// NarrowBinaryStrict returns v if it has shape s and a *NarrowError otherwise.
func (s Shape) NarrowBinaryStrict(v cborv.Value) (cborv.Value, error) {
	if !s.MatchesBinary(v) {
		return cborv.Value{}, &NarrowError{Want: s, Encoding: Binary, Got: v.Kind.String()}
	}
	return v, nil
}

// MatchesText reports whether n already has shape s.
func (s Shape) MatchesText(n *ir.Node) bool {
	t, ok := s.TextType()
	return !ok || ir.KindOf(n) == t
}

// MatchesBinary reports whether v already has shape s.
func (s Shape) MatchesBinary(v cborv.Value) bool {
	k, ok := s.BinaryKind()
	return !ok || v.Kind == k
}

// NarrowText narrows n to the shape of T. T must be serializable; see
// MustResolve.
func NarrowText[T any](n *ir.Node) *ir.Node {
	return MustResolve[T]().NarrowText(n)
}

// NarrowBinary narrows v to the shape of T. T must be serializable; see
// MustResolve.
func NarrowBinary[T any](v cborv.Value) cborv.Value {
	return MustResolve[T]().NarrowBinary(v)
}
