package model

import "strings"

// indent is the indentation unit used for class members and method bodies.
const indent = "    "

// Method is a class, interface or trait method.
type Method struct {
	member
	visibilityAware
	commentAware
	returns          typeSet
	params           []*Parameter
	body             string
	static           bool
	abstract         bool
	final            bool
	returnsReference bool
}

func NewMethod(name string) (*Method, error) {
	m := &Method{}
	if err := m.setName(name); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Method) Visibility() Visibility {
	return m.resolveVisibility(m.DefaultVisibility())
}

func (m *Method) DefaultVisibility() Visibility {
	if m.parent != nil {
		return m.parent.DefaultMethodVisibility()
	}
	return DefaultVisibility
}

// AddParameter appends p, replacing an existing parameter with the same name
// in place.
func (m *Method) AddParameter(p *Parameter) {
	p.function = m
	for i, existing := range m.params {
		if existing.Name() == p.Name() {
			existing.function = nil
			m.params[i] = p
			return
		}
	}
	m.params = append(m.params, p)
}

func (m *Method) Parameter(name string) (*Parameter, bool) {
	for _, p := range m.params {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

func (m *Method) Parameters() []*Parameter {
	return append([]*Parameter(nil), m.params...)
}

func (m *Method) RemoveParameter(name string) {
	for i, p := range m.params {
		if p.Name() == name {
			p.function = nil
			m.params = append(m.params[:i], m.params[i+1:]...)
			return
		}
	}
}

func (m *Method) AddReturnType(name string)       { m.returns.AddType(name) }
func (m *Method) SetReturnTypes(names []string)   { m.returns.SetTypes(names) }
func (m *Method) RemoveReturnType(name string)    { m.returns.RemoveType(name) }
func (m *Method) ReturnTypes() []string           { return m.returns.Types() }
func (m *Method) SetReturnNullable(nullable bool) { m.returns.SetNullable(nullable) }

// SetBody stores the statements between the braces, without indentation.
func (m *Method) SetBody(body string) {
	m.body = strings.Trim(body, "\n")
}

// AddBody appends a line to the body.
func (m *Method) AddBody(line string) {
	if m.body == "" {
		m.body = line
		return
	}
	m.body += "\n" + line
}

func (m *Method) Body() string { return m.body }

func (m *Method) IsStatic() bool               { return m.static }
func (m *Method) SetStatic(static bool)        { m.static = static }
func (m *Method) IsAbstract() bool             { return m.abstract }
func (m *Method) SetAbstract(abstract bool)    { m.abstract = abstract }
func (m *Method) IsFinal() bool                { return m.final }
func (m *Method) SetFinal(final bool)          { m.final = final }
func (m *Method) ReturnsReference() bool       { return m.returnsReference }
func (m *Method) SetReturnsReference(ref bool) { m.returnsReference = ref }

// Signature renders everything up to, but excluding, the body or terminator.
func (m *Method) Signature() string {
	var sb strings.Builder
	if m.final {
		sb.WriteString("final ")
	}
	if m.abstract {
		sb.WriteString("abstract ")
	}
	sb.WriteString(string(m.Visibility()))
	if m.static {
		sb.WriteString(" static")
	}
	sb.WriteString(" function ")
	if m.returnsReference {
		sb.WriteByte('&')
	}
	sb.WriteString(m.Name())
	sb.WriteByte('(')
	for i, p := range m.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	if ret := m.returns.typesToString(); ret != "" {
		sb.WriteString(": ")
		sb.WriteString(ret)
	}
	return sb.String()
}

func (m *Method) String() string {
	var sb strings.Builder
	sb.WriteString(m.commentsToString())
	sb.WriteString(m.Signature())
	if m.abstract || m.inInterface() {
		sb.WriteString(";\n")
		return sb.String()
	}
	sb.WriteString("\n{\n")
	if m.body != "" {
		sb.WriteString(indentLines(m.body, indent))
		sb.WriteByte('\n')
	}
	sb.WriteString("}\n")
	return sb.String()
}

// indentLines prefixes every non-empty line of text with prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
