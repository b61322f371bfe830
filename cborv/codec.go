package cborv

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"slices"
	"time"

	"github.com/fxamacker/cbor/v2"
)

var (
	ErrUnsupportedKey  = errors.New("unsupported map key")
	ErrUnsupportedItem = errors.New("unsupported cbor data item")
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[any]any(nil)),
		MaxNestedLevels: 256,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal encodes v using core deterministic encoding, so map entries are
// written in canonical key order rather than insertion order.
func Marshal(v Value) ([]byte, error) {
	x, err := toNative(v)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(x)
}

// Unmarshal decodes a single data item. Date/time tags 0 and 1 become RFC
// 3339 text in UTC, bignum tags become floats and other tags are dropped in
// favour of their content. Unsigned integers beyond int64 become floats.
func Unmarshal(data []byte) (Value, error) {
	var x any
	if err := decMode.Unmarshal(data, &x); err != nil {
		return Value{}, err
	}
	return fromNative(x)
}

func toNative(v Value) (any, error) {
	switch v.Kind {
	case NullKind:
		return nil, nil
	case BoolKind:
		return v.Bool, nil
	case IntKind:
		return v.Int, nil
	case FloatKind:
		return v.Float, nil
	case TextKind:
		return v.Text, nil
	case BytesKind:
		if v.Bytes == nil {
			return []byte{}, nil
		}
		return v.Bytes, nil
	case ArrayKind:
		res := make([]any, len(v.Array))
		for i := range v.Array {
			x, err := toNative(v.Array[i])
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return res, nil
	case MapKind:
		res := make(map[any]any, len(v.Map))
		for i := range v.Map {
			e := &v.Map[i]
			k, err := nativeKey(e.Key)
			if err != nil {
				return nil, err
			}
			x, err := toNative(e.Val)
			if err != nil {
				return nil, err
			}
			res[k] = x
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedItem, v.Kind)
	}
}

func nativeKey(k Value) (any, error) {
	switch k.Kind {
	case ArrayKind, MapKind:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKey, k.Kind)
	case BytesKind:
		return cbor.ByteString(k.Bytes), nil
	default:
		return toNative(k)
	}
}

func fromNative(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return FromFloat(float64(x)), nil
		}
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case big.Int:
		f, _ := new(big.Float).SetInt(&x).Float64()
		return FromFloat(f), nil
	case float64:
		return FromFloat(x), nil
	case string:
		return FromText(x), nil
	case []byte:
		return FromBytes(x), nil
	case cbor.ByteString:
		return FromBytes([]byte(x)), nil
	case []any:
		res := make([]Value, len(x))
		for i := range x {
			v, err := fromNative(x[i])
			if err != nil {
				return Value{}, err
			}
			res[i] = v
		}
		return FromArray(res...), nil
	case map[any]any:
		return mapFromNative(x)
	case time.Time:
		return FromText(x.UTC().Format(time.RFC3339Nano)), nil
	case cbor.Tag:
		return fromNative(x.Content)
	case cbor.SimpleValue:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedItem, x)
	}
}

type sortEntry struct {
	enc []byte
	e   Entry
}

// mapFromNative orders entries by the bytes of their encoded keys, which is
// the order Marshal writes them in.
func mapFromNative(m map[any]any) (Value, error) {
	ses := make([]sortEntry, 0, len(m))
	for k, x := range m {
		kv, err := fromNative(k)
		if err != nil {
			return Value{}, err
		}
		vv, err := fromNative(x)
		if err != nil {
			return Value{}, err
		}
		enc, err := encMode.Marshal(k)
		if err != nil {
			return Value{}, err
		}
		ses = append(ses, sortEntry{enc: enc, e: Entry{Key: kv, Val: vv}})
	}
	slices.SortFunc(ses, func(a, b sortEntry) int {
		return bytes.Compare(a.enc, b.enc)
	})
	es := make([]Entry, len(ses))
	for i := range ses {
		es[i] = ses[i].e
	}
	return FromEntries(es...), nil
}
