package introspect

import (
	"reflect"
	"testing"
)

type point struct{ X, Y int }

func (p point) ReflectFields() []Field {
	return []Field{{Name: "x", Value: p.X}, {Name: "y", Value: p.Y}}
}

type ptrRecord struct{ N int }

func (p *ptrRecord) ReflectFields() []Field {
	return []Field{{Name: "n", Value: p.N}}
}

type plain struct{ A int }

type foreign struct{ B string }

func TestIsReflectable(t *testing.T) {
	t.Cleanup(Reset)
	Register[foreign]()

	tests := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"value receiver", reflect.TypeFor[point](), true},
		{"pointer receiver", reflect.TypeFor[ptrRecord](), true},
		{"registered", reflect.TypeFor[foreign](), true},
		{"plain struct", reflect.TypeFor[plain](), false},
		{"int", reflect.TypeFor[int](), false},
		{"pointer to record", reflect.TypeFor[*point](), false},
		{"pointer to pointer-receiver record", reflect.TypeFor[*ptrRecord](), false},
		{"interface", reflect.TypeFor[Reflectable](), false},
		{"nil", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsReflectable(tc.typ); got != tc.want {
				t.Errorf("IsReflectable(%v) = %v, want %v", tc.typ, got, tc.want)
			}
		})
	}
}

func TestRegisterIgnoresPointers(t *testing.T) {
	t.Cleanup(Reset)
	Register[*plain]()
	if IsReflectable(reflect.TypeFor[*plain]()) {
		t.Error("pointer type became reflectable")
	}
	if IsReflectable(reflect.TypeFor[plain]()) {
		t.Error("registering *plain made plain reflectable")
	}
}

func TestExclude(t *testing.T) {
	t.Cleanup(Reset)
	before := Generation()
	Exclude[plain]()
	if !IsExcluded(reflect.TypeFor[plain]()) {
		t.Error("plain not excluded")
	}
	if Generation() == before {
		t.Error("generation did not change")
	}
	mid := Generation()
	Exclude[plain]()
	if Generation() != mid {
		t.Error("idempotent exclude changed generation")
	}
	Reset()
	if IsExcluded(reflect.TypeFor[plain]()) {
		t.Error("Reset kept exclusion")
	}
}
