package literal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDump_Scalars(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		want string
	}{
		{"null", Null(), "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"int", Int(-42), "-42"},
		{"whole float", Float(2), "2.0"},
		{"fraction", Float(0.5), "0.5"},
		{"large float", Float(1e25), "1.0E+25"},
		{"small float", Float(1.5e-7), "1.5E-7"},
		{"inf", Float(math.Inf(1)), "INF"},
		{"negative inf", Float(math.Inf(-1)), "-INF"},
		{"nan", Float(math.NaN()), "NAN"},
		{"plain string", String("hello"), "'hello'"},
		{"quotes", String(`it's a \ test`), `'it\'s a \\ test'`},
		{"control chars", String("a\n\t$b\""), `"a\n\t\$b\""`},
		{"raw", Raw("Foo::BAR"), "Foo::BAR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Dump(tc.in))
		})
	}
}

func TestDump_Collections(t *testing.T) {
	require.Equal(t, "[]", Dump(List()))
	require.Equal(t, "[1, 'two', null]", Dump(List(Int(1), String("two"), Null())))

	m := Map(
		Entry{Key: "name", Value: String("x")},
		Entry{Key: "10", Value: Bool(true)},
		Entry{Key: "010", Value: List(Int(1))},
	)
	require.Equal(t, "['name' => 'x', 10 => true, '010' => [1]]", Dump(m))
}

func TestFrom(t *testing.T) {
	v, err := From(map[string]any{"b": 2, "a": []any{1.5, "x", nil}})
	require.NoError(t, err)
	require.Equal(t, KindMap, v.Kind())
	require.Equal(t, "['a' => [1.5, 'x', null], 'b' => 2]", Dump(v))

	v, err = From(uint8(7))
	require.NoError(t, err)
	require.Equal(t, "7", Dump(v))

	var p *int
	v, err = From(p)
	require.NoError(t, err)
	require.True(t, v.IsNull())

	_, err = From(make(chan int))
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = From([]any{func() {}})
	require.ErrorIs(t, err, ErrUnsupported)
}
