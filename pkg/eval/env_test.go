package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvSeedsPrimitives(t *testing.T) {
	env := NewEnv()
	for _, name := range Primitives() {
		obj, ok := env.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, "primop", obj.TypeName())
	}
	assert.Equal(t, []string{"*", "+", "-", "/"}, env.Names())
}

func TestEnvChain(t *testing.T) {
	root := NewEnv()
	root.Define("x", NewInt(1))

	child := root.Child()
	assert.Same(t, root, child.Parent())
	child.Define("x", NewInt(2))
	child.Define("y", NewInt(3))

	v, ok := child.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "2", v.String())

	v, ok = root.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "1", v.String(), "child binding shadows without touching the parent")

	_, ok = root.Lookup("y")
	assert.False(t, ok)

	assert.Contains(t, child.Names(), "y")
	assert.NotContains(t, root.Names(), "y")
}

func TestDefineOverwritesAndReturnsNil(t *testing.T) {
	env := NewEnv()
	assert.True(t, IsNil(env.Define("+", NewInt(9))))

	v, ok := env.Lookup("+")
	require.True(t, ok)
	assert.Equal(t, "9", v.String())
}

func TestObjectStrings(t *testing.T) {
	tests := []struct {
		obj      Object
		str      string
		typeName string
	}{
		{obj: NewInt(-12), str: "-12", typeName: "int"},
		{obj: Nil{}, str: "()", typeName: "nil"},
		{obj: &Lambda{Params: []string{"a", "b"}}, str: "#lambda(a b)#", typeName: "lambda"},
		{obj: &Lambda{}, str: "#lambda()#", typeName: "lambda"},
		{obj: &PrimitiveOp{Name: "/", Fn: Div}, str: "#primop:/#", typeName: "primop"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.obj.String())
			assert.Equal(t, tt.typeName, tt.obj.TypeName())
		})
	}
}
