package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubContainer struct {
	constVisibility Visibility
}

func (s stubContainer) Name() string                          { return "Stub" }
func (s stubContainer) Kind() StructKind                      { return KindClass }
func (s stubContainer) DefaultConstVisibility() Visibility    { return s.constVisibility }
func (s stubContainer) DefaultPropertyVisibility() Visibility { return Public }
func (s stubContainer) DefaultMethodVisibility() Visibility   { return Public }

func TestConstant_String(t *testing.T) {
	c, err := NewConstant("FOO")
	require.NoError(t, err)
	require.Equal(t, "public const FOO = null;\n", c.String())

	v, err := ValueOf("bar")
	require.NoError(t, err)
	c.SetValue(v)
	require.Equal(t, "public const FOO = 'bar';\n", c.String())

	c.SetValue(Literal("self::OTHER"))
	require.NoError(t, c.SetVisibility(Private))
	c.SetComment("Some constant.\n\n@internal")
	require.Equal(t, "/**\n * Some constant.\n *\n * @internal\n */\nprivate const FOO = self::OTHER;\n", c.String())
}

func TestConstant_RenderInvariants(t *testing.T) {
	values := []*Value{nil, Null(), Literal("1 + 2")}
	for _, x := range []any{true, 3.5, map[string]any{"const": 1}, []any{"const"}} {
		v, err := ValueOf(x)
		require.NoError(t, err)
		values = append(values, v)
	}

	for _, v := range values {
		c, err := NewConstant("X")
		require.NoError(t, err)
		if v != nil {
			c.SetValue(v)
		}
		out := c.String()
		require.True(t, strings.HasSuffix(out, ";\n"), out)
		require.False(t, strings.HasSuffix(out, ";\n\n"), out)
		require.Equal(t, 1, strings.Count(out, " const "), out)
	}
}

func TestConstant_DefaultVisibility(t *testing.T) {
	c, err := NewConstant("FOO")
	require.NoError(t, err)
	require.Equal(t, Public, c.DefaultVisibility())

	c.SetParent(stubContainer{constVisibility: Protected})
	require.Equal(t, Protected, c.DefaultVisibility())
	require.Equal(t, Protected, c.Visibility())

	require.NoError(t, c.SetVisibility(Private))
	require.Equal(t, Private, c.Visibility())
	require.Equal(t, Protected, c.DefaultVisibility())

	require.ErrorIs(t, c.SetVisibility("internal"), ErrInvalidVisibility)
}

func TestValue_IsNull(t *testing.T) {
	require.True(t, Null().IsNull())

	s, err := ValueOf("null")
	require.NoError(t, err)
	require.True(t, s.IsNull())
	require.Equal(t, "'null'", s.String())

	require.False(t, Literal("null").IsNull())
	require.Equal(t, "null", Literal("null").String())

	zero, err := ValueOf(0)
	require.NoError(t, err)
	require.False(t, zero.IsNull())
}

func TestValue_NotSharedAcrossOwners(t *testing.T) {
	v := Literal("1")
	a, err := NewConstant("A")
	require.NoError(t, err)
	b, err := NewConstant("B")
	require.NoError(t, err)

	a.SetValue(v)
	b.SetValue(v)

	require.Same(t, v, a.Value())
	require.NotSame(t, a.Value(), b.Value())
	require.Equal(t, ValueAware(a), a.Value().Owner())
	require.Equal(t, ValueAware(b), b.Value().Owner())
}
