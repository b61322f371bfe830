package dyn

type Value struct {
	v any
}
