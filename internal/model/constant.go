package model

import "strings"

// Constant is a class or interface constant.
type Constant struct {
	member
	namespaceAware
	visibilityAware
	commentAware
	valueAware
}

func NewConstant(name string) (*Constant, error) {
	c := &Constant{}
	if err := c.setName(name); err != nil {
		return nil, err
	}
	return c, nil
}

// Visibility returns the explicit visibility or the default one.
func (c *Constant) Visibility() Visibility {
	return c.resolveVisibility(c.DefaultVisibility())
}

// DefaultVisibility lets the enclosing container decide for every constant
// that does not carry its own qualifier.
func (c *Constant) DefaultVisibility() Visibility {
	if c.parent != nil {
		return c.parent.DefaultConstVisibility()
	}
	return DefaultVisibility
}

func (c *Constant) SetValue(v *Value) {
	c.assign(c, v)
}

func (c *Constant) String() string {
	var sb strings.Builder
	sb.WriteString(c.commentsToString())
	sb.WriteString(string(c.Visibility()))
	sb.WriteString(" const ")
	sb.WriteString(c.Name())
	sb.WriteString(" = ")
	sb.WriteString(c.valueToString())
	sb.WriteString(";\n")
	return sb.String()
}
