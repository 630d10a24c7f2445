package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewParameter_InvalidNames(t *testing.T) {
	for _, name := range []string{"", "*", "$test", "two words"} {
		_, err := NewParameter(name)
		require.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestParseName_TypeContract(t *testing.T) {
	_, err := ParseName(nil)
	require.ErrorIs(t, err, ErrTypeContract)

	_, err = ParseName(42)
	require.ErrorIs(t, err, ErrTypeContract)

	_, err = ParseName("$test")
	require.ErrorIs(t, err, ErrInvalidName)

	name, err := ParseName("toto")
	require.NoError(t, err)
	require.Equal(t, "toto", name)
}

func TestNewParameter_NameRoundTrip(t *testing.T) {
	for _, name := range []string{"Iñtërnâtiônàlizætiøn", "a", "_private", "value2", "名前"} {
		p, err := NewParameter(name)
		require.NoError(t, err)
		require.Equal(t, name, p.Name())
	}
}

func TestParameter_String(t *testing.T) {
	p, err := NewParameter("toto")
	require.NoError(t, err)
	require.Equal(t, "$toto", p.String())

	p.SetValue(Null())
	require.Equal(t, "$toto = null", p.String())

	p.AddType("string")
	require.Equal(t, "?string $toto = null", p.String())

	p.AddType(`PHPUnit\Framework\TestCase`)
	require.Equal(t, `null|string|PHPUnit\Framework\TestCase $toto = null`, p.String())

	p.SetInitialized(false)
	p.SetTypes([]string{"iterable", `PHPUnit\Framework\TestCase[]`})
	require.Equal(t, `iterable|PHPUnit\Framework\TestCase[] $toto`, p.String())

	p.SetReference(true)
	require.Equal(t, `iterable|PHPUnit\Framework\TestCase[] &$toto`, p.String())

	p.SetTypes([]string{"iterable"})
	p.SetValue(Null())
	require.Equal(t, "?iterable &$toto = null", p.String())

	p.RemoveValue()
	require.Equal(t, "?iterable &$toto", p.String())
	require.False(t, p.IsInitialized())
	require.Nil(t, p.Value())

	p.RemoveType("null")
	require.Equal(t, "iterable &$toto", p.String())

	p.SetReference(false)
	p.SetTypes([]string{`Sidux\Stub\PropertyTwo`, `PHPUnit\Framework\TestCase`})
	require.Equal(t, `Sidux\Stub\PropertyTwo|PHPUnit\Framework\TestCase $toto`, p.String())
}

func TestParameter_VariadicAndValues(t *testing.T) {
	p, err := NewParameter("args")
	require.NoError(t, err)
	p.AddType("int")
	p.SetVariadic(true)
	require.Equal(t, "int ...$args", p.String())

	q, err := NewParameter("options")
	require.NoError(t, err)
	q.AddType("array")
	v, err := ValueOf([]any{"a", 1})
	require.NoError(t, err)
	q.SetValue(v)
	require.Equal(t, "array $options = ['a', 1]", q.String())
	require.False(t, q.IsNullable())
}

func TestTypeSet_Shorthands(t *testing.T) {
	p, err := NewParameter("x")
	require.NoError(t, err)

	p.AddType("?int")
	require.Equal(t, []string{"int", "null"}, p.Types())
	require.Equal(t, "?int $x", p.String())

	p.AddType("int|string")
	require.Equal(t, []string{"int", "null", "string"}, p.Types())
	require.Equal(t, "int|null|string $x", p.String())

	p.SetNullable(false)
	require.Equal(t, "int|string $x", p.String())

	p.AddType("NULL")
	require.True(t, p.IsNullable())
}
