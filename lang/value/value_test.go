package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
		ok   bool
	}{
		{"number", Number(-42), "-42", true},
		{"string", Str("hello world"), "hello world", true},
		{"empty string", Str(""), "", true},
		{"bool", Bool(true), "", false},
		{"nil", Nil{}, "", false},
		{"lambda", Lambda{Params: []string{"a"}}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Display(tt.v)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "nil", Nil{}.Kind().String())
	assert.Equal(t, "number", Number(1).Kind().String())
	assert.Equal(t, "string", Str("").Kind().String())
	assert.Equal(t, "bool", Bool(false).Kind().String())
	assert.Equal(t, "lambda", Lambda{}.Kind().String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Number(3), Number(3)))
	assert.False(t, Equal(Number(3), Str("3")))
	assert.True(t, Equal(Nil{}, Nil{}))
	assert.True(t, Equal(
		Lambda{Params: []string{"a", "b"}},
		Lambda{Params: []string{"a", "b"}},
	))
	assert.False(t, Equal(
		Lambda{Params: []string{"a"}},
		Lambda{Params: []string{"b"}},
	))
	assert.False(t, Equal(Lambda{}, Nil{}))
}

func TestString(t *testing.T) {
	assert.Equal(t, "|x y| ...", Lambda{Params: []string{"x", "y"}}.String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "nil", Nil{}.String())
}
