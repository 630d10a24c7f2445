// Package literal holds PHP literal values and turns them into PHP source text.
package literal

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// ErrUnsupported is returned by From for Go values that have no PHP literal form.
var ErrUnsupported = errors.New("unsupported literal value")

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
	KindRaw
)

var kindNames = [...]string{"null", "bool", "int", "float", "string", "list", "map", "raw"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Entry is a single key => value pair of a map literal.
type Entry struct {
	Key   string
	Value Value
}

// Value is a closed variant over the literal shapes PHP source can express.
// The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	integer int64
	float   float64
	text    string
	items   []Value
	entries []Entry
}

func Null() Value               { return Value{} }
func Bool(b bool) Value         { return Value{kind: KindBool, boolean: b} }
func Int(i int64) Value         { return Value{kind: KindInt, integer: i} }
func Float(f float64) Value     { return Value{kind: KindFloat, float: f} }
func String(s string) Value     { return Value{kind: KindString, text: s} }
func List(items ...Value) Value { return Value{kind: KindList, items: items} }
func Map(entries ...Entry) Value {
	return Value{kind: KindMap, entries: entries}
}

// Raw wraps text that is already valid PHP source, e.g. "Foo::BAR".
func Raw(code string) Value { return Value{kind: KindRaw, text: code} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the payload of string and raw values.
func (v Value) Text() string { return v.text }

func (v Value) BoolValue() bool     { return v.boolean }
func (v Value) IntValue() int64     { return v.integer }
func (v Value) FloatValue() float64 { return v.float }

func (v Value) Items() []Value {
	return append([]Value(nil), v.items...)
}

func (v Value) Entries() []Entry {
	return append([]Entry(nil), v.entries...)
}

// String implements fmt.Stringer by dumping the value.
func (v Value) String() string { return Dump(v) }

// From converts a Go value into a literal. Maps are emitted with sorted keys
// since Go map iteration order is random.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case *Value:
		if t == nil {
			return Null(), nil
		}
		return *t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case []byte:
		return String(string(t)), nil
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Int(int64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return From(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		items := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := From(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, item)
		}
		return List(items...), nil
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]reflect.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, k)
			byKey[k] = iter.Value()
		}
		sort.Strings(keys)
		entries := make([]Entry, 0, len(keys))
		for _, k := range keys {
			item, err := From(byKey[k].Interface())
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			entries = append(entries, Entry{Key: k, Value: item})
		}
		return Map(entries...), nil
	}

	return Value{}, fmt.Errorf("%w: %T", ErrUnsupported, x)
}
