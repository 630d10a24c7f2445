package model

import (
	"github.com/doITmagic/phpgen/internal/literal"
)

// ValueAware is implemented by elements that can carry a default or constant value.
type ValueAware interface {
	Value() *Value
	SetValue(v *Value)
	RemoveValue()
}

// Value wraps a literal together with a flag telling whether a string payload
// is already valid PHP source. The owner is a non-owning back reference.
type Value struct {
	data    literal.Value
	literal bool
	owner   ValueAware
}

func NewValue(data literal.Value, isLiteral bool) *Value {
	return &Value{data: data, literal: isLiteral}
}

// Null is the PHP null value.
func Null() *Value {
	return NewValue(literal.Null(), true)
}

// Literal wraps source text that is emitted verbatim, e.g. "Foo::BAR".
func Literal(code string) *Value {
	return NewValue(literal.String(code), true)
}

// ValueOf converts a Go value into a value that is dumped as a PHP literal.
func ValueOf(x any) (*Value, error) {
	if x == nil {
		return Null(), nil
	}
	data, err := literal.From(x)
	if err != nil {
		return nil, err
	}
	return NewValue(data, false), nil
}

func (v *Value) Data() literal.Value { return v.data }

func (v *Value) IsLiteral() bool { return v.literal }

func (v *Value) Owner() ValueAware { return v.owner }

func (v *Value) SetOwner(owner ValueAware) { v.owner = owner }

// IsNull reports whether v stands for an absent value: a real null marked
// literal, or the text "null" that is not marked literal.
func (v *Value) IsNull() bool {
	if v.data.Kind() == literal.KindNull && v.literal {
		return true
	}
	return v.data.Kind() == literal.KindString && v.data.Text() == "null" && !v.literal
}

func (v *Value) String() string {
	if v.data.Kind() == literal.KindString && v.literal {
		return v.data.Text()
	}
	return literal.Dump(v.data)
}

// valueAware holds a value and whether one was ever assigned. A null value
// still counts as initialized.
type valueAware struct {
	value       *Value
	initialized bool
}

func (a *valueAware) Value() *Value {
	return a.value
}

func (a *valueAware) RemoveValue() {
	if a.value != nil {
		a.value.owner = nil
	}
	a.value = nil
	a.initialized = false
}

func (a *valueAware) IsInitialized() bool {
	return a.initialized
}

func (a *valueAware) SetInitialized(initialized bool) {
	a.initialized = initialized
}

// assign stores v for owner. A value already owned by another element is
// copied so that no two elements share one.
func (a *valueAware) assign(owner ValueAware, v *Value) *Value {
	if v == nil {
		v = Null()
	}
	if v.owner != nil && v.owner != owner {
		cp := *v
		v = &cp
	}
	v.owner = owner
	a.value = v
	a.initialized = true
	return v
}

func (a *valueAware) valueToString() string {
	if a.value == nil {
		return "null"
	}
	return a.value.String()
}
