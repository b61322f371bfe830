package shape

type Shared[T any] struct{ p *T }

type Pair[A, B any] struct {
	First  A
	Second B
}

type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

type Resolver struct{}

func Resolve[T any]() (*Resolver, error) { return nil, nil }

func MustResolve[T any]() *Resolver { return nil }

func ShapeFor[T any]() (int, error) { return 0, nil }

func NarrowText[T any](n any) any { return n }

func NarrowBinary[T any](v any) any { return v }

func Serializable[T any]() bool { return true }
