package model

import "strings"

// Parameter is a function or method parameter.
type Parameter struct {
	named
	typeSet
	valueAware
	reference bool
	variadic  bool
	function  *Method
}

// NewParameter validates name eagerly. Names are bare identifiers: "$x" is rejected.
func NewParameter(name string) (*Parameter, error) {
	p := &Parameter{}
	if err := p.setName(name); err != nil {
		return nil, err
	}
	return p, nil
}

// Function returns the method the parameter was added to, if any.
func (p *Parameter) Function() *Method {
	return p.function
}

// SetValue assigns a default value. Assigning null also makes the type nullable.
func (p *Parameter) SetValue(v *Value) {
	v = p.assign(p, v)
	if v.IsNull() {
		p.AddType(NullType)
	}
}

func (p *Parameter) IsReference() bool     { return p.reference }
func (p *Parameter) SetReference(ref bool) { p.reference = ref }
func (p *Parameter) IsVariadic() bool      { return p.variadic }
func (p *Parameter) SetVariadic(v bool)    { p.variadic = v }

func (p *Parameter) String() string {
	var sb strings.Builder
	if types := p.typesToString(); types != "" {
		sb.WriteString(types)
		sb.WriteByte(' ')
	}
	if p.reference {
		sb.WriteByte('&')
	}
	if p.variadic {
		sb.WriteString("...")
	}
	sb.WriteByte('$')
	sb.WriteString(p.Name())
	if p.initialized {
		sb.WriteString(" = ")
		sb.WriteString(p.valueToString())
	}
	return sb.String()
}
