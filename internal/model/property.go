package model

import "strings"

// Property is a class or trait property.
type Property struct {
	member
	visibilityAware
	commentAware
	typeSet
	valueAware
	static   bool
	readonly bool
}

func NewProperty(name string) (*Property, error) {
	p := &Property{}
	if err := p.setName(name); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Property) Visibility() Visibility {
	return p.resolveVisibility(p.DefaultVisibility())
}

func (p *Property) DefaultVisibility() Visibility {
	if p.parent != nil {
		return p.parent.DefaultPropertyVisibility()
	}
	return DefaultVisibility
}

func (p *Property) SetValue(v *Value) {
	v = p.assign(p, v)
	if v.IsNull() {
		p.AddType(NullType)
	}
}

func (p *Property) IsStatic() bool        { return p.static }
func (p *Property) SetStatic(static bool) { p.static = static }
func (p *Property) IsReadonly() bool      { return p.readonly }
func (p *Property) SetReadonly(ro bool)   { p.readonly = ro }

func (p *Property) String() string {
	var sb strings.Builder
	sb.WriteString(p.commentsToString())
	sb.WriteString(string(p.Visibility()))
	if p.static {
		sb.WriteString(" static")
	}
	if p.readonly {
		sb.WriteString(" readonly")
	}
	if types := p.typesToString(); types != "" {
		sb.WriteByte(' ')
		sb.WriteString(types)
	}
	sb.WriteString(" $")
	sb.WriteString(p.Name())
	if p.initialized {
		sb.WriteString(" = ")
		sb.WriteString(p.valueToString())
	}
	sb.WriteString(";\n")
	return sb.String()
}
