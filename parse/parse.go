// Package parse reads JSON and YAML text into ir documents.
package parse

import (
	"encoding/base64"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/signadot/tony-format/docshape/ir"
)

var (
	ErrParse       = errors.New("parse error")
	ErrDepth       = fmt.Errorf("%w: maximum depth exceeded", ErrParse)
	ErrUnsupported = fmt.Errorf("%w: unsupported value", ErrParse)
)

type parseConfig struct {
	maxDepth int
}

type ParseOption func(*parseConfig)

// ParseMaxDepth limits document nesting; 0 means unlimited.
func ParseMaxDepth(n int) ParseOption {
	return func(c *parseConfig) { c.maxDepth = n }
}

// Parse reads a single JSON or YAML document. Mapping keys keep their order;
// non-string keys are rendered as text.
func Parse(data []byte, opts ...ParseOption) (*ir.Node, error) {
	cfg := &parseConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return cfg.toIR(v, 0)
}

func (c *parseConfig) toIR(v any, depth int) (*ir.Node, error) {
	if c.maxDepth > 0 && depth > c.maxDepth {
		return nil, ErrDepth
	}
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		if x > math.MaxInt64 {
			n := ir.FromFloat(float64(x))
			n.Number = strconv.FormatUint(x, 10)
			return n, nil
		}
		return ir.FromInt(int64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case float32:
		return ir.FromFloat(float64(x)), nil
	case []byte:
		return ir.FromString(base64.StdEncoding.EncodeToString(x)), nil
	case time.Time:
		return ir.FromString(x.Format(time.RFC3339Nano)), nil
	case []any:
		ys := make([]*ir.Node, len(x))
		for i := range x {
			y, err := c.toIR(x[i], depth+1)
			if err != nil {
				return nil, err
			}
			ys[i] = y
		}
		return ir.FromSlice(ys), nil
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, len(x))
		for i, item := range x {
			y, err := c.toIR(item.Value, depth+1)
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: ir.FromString(keyText(item.Key)), Val: y}
		}
		return ir.FromKeyVals(kvs), nil
	case map[string]any:
		kvs := make([]ir.KeyVal, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			y, err := c.toIR(x[k], depth+1)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: ir.FromString(k), Val: y})
		}
		return ir.FromKeyVals(kvs), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
}

func keyText(k any) string {
	switch x := k.(type) {
	case string:
		return x
	case nil:
		return "null"
	default:
		return fmt.Sprint(x)
	}
}
