package shape

import (
	"errors"
	"fmt"

	"github.com/signadot/tony-format/docshape/debug"
)

// ErrNotSerializable is matched by every *ClassError.
var ErrNotSerializable = errors.New("not serializable")

// Rule names the classification rule a type violates.
type Rule int

const (
	RulePointerTarget Rule = iota
	RuleSharedTarget
	RuleWeakTarget
	RuleElement
	RuleExcluded
)

func (r Rule) String() string {
	switch r {
	case RulePointerTarget:
		return "pointer to non-reflectable type"
	case RuleSharedTarget:
		return "shared owner of non-reflectable type"
	case RuleWeakTarget:
		return "weak reference to non-reflectable type"
	case RuleElement:
		return "unserializable element"
	case RuleExcluded:
		return "type is marked unserializable"
	default:
		return "<unknown rule>"
	}
}

// ClassError reports why a type is not serializable. For RuleElement, Err
// is the ClassError of the offending element, so the chain spells out the
// path from the outer type to the violation.
type ClassError struct {
	Type   string
	Rule   Rule
	Target string
	Err    error
}

func (e *ClassError) Error() string {
	msg := e.Rule.String()
	if e.Target != "" {
		msg += " " + e.Target
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

func (e *ClassError) Unwrap() error {
	return e.Err
}

func (e *ClassError) Is(target error) bool {
	return target == ErrNotSerializable
}

// Cause returns the innermost ClassError of the chain.
func (e *ClassError) Cause() *ClassError {
	c := e
	for {
		next, ok := c.Err.(*ClassError)
		if !ok {
			return c
		}
		c = next
	}
}

// IsSerializable reports whether values described by d can be serialized.
func IsSerializable(d *Descriptor) bool {
	return Check(d) == nil
}

// Serializable reports whether values of type T can be serialized.
func Serializable[T any]() bool {
	return IsSerializable(Of[T]())
}

// Check returns nil if d is serializable and a *ClassError otherwise.
//
//   - scalars, records and dynamic values are serializable unless excluded;
//   - pointers, shared owners and weak references need a record target;
//   - lists, maps, pairs and tuples need every element to be serializable.
//
// Recursive types are assumed serializable where they refer back to
// themselves, so Check terminates on any descriptor graph.
func Check(d *Descriptor) error {
	c := &checker{seen: map[*Descriptor]bool{}}
	err := c.check(d)
	if debug.Check() {
		debug.Logf("check %s: %v\n", d.Name, err)
	}
	return err
}

type checker struct {
	seen map[*Descriptor]bool
}

func (c *checker) check(d *Descriptor) error {
	if c.seen[d] {
		return nil
	}
	c.seen[d] = true
	switch d.Kind {
	case ScalarKind:
		if d.Excluded {
			return &ClassError{Type: d.Name, Rule: RuleExcluded}
		}
		return nil
	case RecordKind, DynamicKind:
		return nil
	case PointerKind, SharedKind, WeakKind:
		target := d.Elem()
		if target.Reflectable() {
			return nil
		}
		e := &ClassError{Type: d.Name, Rule: referenceRule(d.Kind)}
		if target != nil {
			e.Target = target.Name
		}
		return e
	case ListKind, MapKind, PairKind:
		for _, elem := range d.Elems {
			if err := c.check(elem); err != nil {
				return &ClassError{Type: d.Name, Rule: RuleElement, Err: err}
			}
		}
		return nil
	case TupleKind:
		return c.checkTuple(d, d.Elems)
	default:
		return fmt.Errorf("%w: %s has unknown kind %d", ErrNotSerializable, d.Name, d.Kind)
	}
}

// checkTuple decomposes (T1, T2..Tn) into T1 and (T2..Tn).
func (c *checker) checkTuple(d *Descriptor, elems []*Descriptor) error {
	if len(elems) == 0 {
		return nil
	}
	if err := c.check(elems[0]); err != nil {
		return &ClassError{Type: d.Name, Rule: RuleElement, Err: err}
	}
	return c.checkTuple(d, elems[1:])
}

func referenceRule(k Kind) Rule {
	switch k {
	case SharedKind:
		return RuleSharedTarget
	case WeakKind:
		return RuleWeakTarget
	default:
		return RulePointerTarget
	}
}
