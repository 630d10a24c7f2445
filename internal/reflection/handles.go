package reflection

import (
	"strings"
)

// Documented is anything carrying a doc comment in a namespace.
type Documented interface {
	NamespaceName() string
	// DocComment returns the raw /** */ text; ok is false when there is none.
	DocComment() (doc string, ok bool)
}

// Function is a reflection handle over a function or method.
type Function interface {
	Documented
	Name() string
	// FileName returns the declaring file; ok is false for synthetic handles.
	FileName() (file string, ok bool)
	IsAbstract() bool
}

// Instance stands in for a live object: all reflection needs from it is the
// class it was created from.
type Instance interface {
	PHPClass() string
}

// Closure identifies an anonymous function by where it was declared.
type Closure struct {
	File string
	Line int
}

// importer is implemented by handles that know their file's use imports.
type importer interface {
	Imports() map[string]string
}

// Kind of a declared class-like.
type Kind string

const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindTrait     Kind = "trait"
)

// Class describes a class, interface or trait declaration.
type Class struct {
	name       string
	namespace  string
	kind       Kind
	abstract   bool
	final      bool
	extends    []string
	implements []string
	traits     []string
	doc        string
	file       string
	startLine  int
	endLine    int
	imports    map[string]string

	constants  []*ClassConstant
	properties []*Property
	methods    []*Method
}

func (c *Class) Name() string          { return c.name }
func (c *Class) NamespaceName() string { return c.namespace }
func (c *Class) Kind() Kind            { return c.kind }
func (c *Class) IsInterface() bool     { return c.kind == KindInterface }
func (c *Class) IsAbstract() bool      { return c.abstract }
func (c *Class) IsFinal() bool         { return c.final }
func (c *Class) Extends() []string     { return c.extends }
func (c *Class) Implements() []string  { return c.implements }
func (c *Class) Traits() []string      { return c.traits }
func (c *Class) StartLine() int        { return c.startLine }
func (c *Class) EndLine() int          { return c.endLine }

// FullName is the namespaced class name without a leading separator.
func (c *Class) FullName() string {
	if c.namespace == "" {
		return c.name
	}
	return c.namespace + `\` + c.name
}

func (c *Class) DocComment() (string, bool)  { return c.doc, c.doc != "" }
func (c *Class) FileName() (string, bool)    { return c.file, c.file != "" }
func (c *Class) Imports() map[string]string  { return c.imports }
func (c *Class) Constants() []*ClassConstant { return c.constants }
func (c *Class) Properties() []*Property     { return c.properties }
func (c *Class) Methods() []*Method          { return c.methods }

// Method looks a method up the way PHP does, ignoring case.
func (c *Class) Method(name string) (*Method, bool) {
	for _, m := range c.methods {
		if strings.EqualFold(m.name, name) {
			return m, true
		}
	}
	return nil, false
}

// Property names are case-sensitive.
func (c *Class) Property(name string) (*Property, bool) {
	name = strings.TrimPrefix(name, "$")
	for _, p := range c.properties {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

func (c *Class) Constant(name string) (*ClassConstant, bool) {
	for _, k := range c.constants {
		if k.name == name {
			return k, true
		}
	}
	return nil, false
}

// signature holds what methods and functions have in common.
type signature struct {
	name       string
	params     []*Parameter
	returnType string
	byRef      bool
	doc        string
	startLine  int
	endLine    int
}

func (s *signature) Name() string               { return s.name }
func (s *signature) Parameters() []*Parameter   { return s.params }
func (s *signature) ReturnType() string         { return s.returnType }
func (s *signature) ReturnsReference() bool     { return s.byRef }
func (s *signature) DocComment() (string, bool) { return s.doc, s.doc != "" }
func (s *signature) StartLine() int             { return s.startLine }
func (s *signature) EndLine() int               { return s.endLine }

// Parameter returns the parameter called name, compared exactly.
func (s *signature) Parameter(name string) (*Parameter, bool) {
	name = strings.TrimPrefix(name, "$")
	for _, p := range s.params {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// Method is a function declared in a class-like.
type Method struct {
	signature
	class      *Class
	visibility string
	static     bool
	abstract   bool
	final      bool
}

func (m *Method) Class() *Class              { return m.class }
func (m *Method) NamespaceName() string      { return m.class.namespace }
func (m *Method) FileName() (string, bool)   { return m.class.FileName() }
func (m *Method) Imports() map[string]string { return m.class.imports }
func (m *Method) Visibility() string         { return m.visibility }
func (m *Method) IsStatic() bool             { return m.static }
func (m *Method) IsFinal() bool              { return m.final }

// IsAbstract is true for abstract methods and for every interface method.
func (m *Method) IsAbstract() bool {
	return m.abstract || m.class.kind == KindInterface
}

// Func is a global function or a closure.
type Func struct {
	signature
	namespace string
	file      string
	closure   bool
	imports   map[string]string
}

func (f *Func) NamespaceName() string      { return f.namespace }
func (f *Func) FileName() (string, bool)   { return f.file, f.file != "" }
func (f *Func) Imports() map[string]string { return f.imports }
func (f *Func) IsAbstract() bool           { return false }
func (f *Func) IsClosure() bool            { return f.closure }

// FullName is the namespaced function name.
func (f *Func) FullName() string {
	if f.namespace == "" {
		return f.name
	}
	return f.namespace + `\` + f.name
}

// Parameter of a method, function or closure.
type Parameter struct {
	name       string
	position   int
	typ        string
	defaultVal string
	hasDefault bool
	byRef      bool
	variadic   bool
	function   Function
}

func (p *Parameter) Name() string  { return p.name }
func (p *Parameter) Position() int { return p.position }

// Type is the declared type hint as written, empty when there is none.
func (p *Parameter) Type() string { return p.typ }

// DefaultValue is the source text of the default expression.
func (p *Parameter) DefaultValue() (string, bool) { return p.defaultVal, p.hasDefault }

func (p *Parameter) IsPassedByReference() bool   { return p.byRef }
func (p *Parameter) IsVariadic() bool            { return p.variadic }
func (p *Parameter) DeclaringFunction() Function { return p.function }
func (p *Parameter) NamespaceName() string       { return p.function.NamespaceName() }

// DocComment is the declaring function's comment; parameters have none of
// their own.
func (p *Parameter) DocComment() (string, bool) { return p.function.DocComment() }

func (p *Parameter) Imports() map[string]string {
	if i, ok := p.function.(importer); ok {
		return i.Imports()
	}
	return nil
}

// Property declared in a class-like.
type Property struct {
	name       string
	class      *Class
	visibility string
	static     bool
	readonly   bool
	typ        string
	defaultVal string
	hasDefault bool
	doc        string
	startLine  int
}

func (p *Property) Name() string                 { return p.name }
func (p *Property) Class() *Class                { return p.class }
func (p *Property) Visibility() string           { return p.visibility }
func (p *Property) IsStatic() bool               { return p.static }
func (p *Property) IsReadonly() bool             { return p.readonly }
func (p *Property) Type() string                 { return p.typ }
func (p *Property) DefaultValue() (string, bool) { return p.defaultVal, p.hasDefault }
func (p *Property) NamespaceName() string        { return p.class.namespace }
func (p *Property) DocComment() (string, bool)   { return p.doc, p.doc != "" }
func (p *Property) Imports() map[string]string   { return p.class.imports }
func (p *Property) StartLine() int               { return p.startLine }

// ClassConstant is a `const` declared in a class-like.
type ClassConstant struct {
	name       string
	class      *Class
	visibility string
	final      bool
	value      string
	doc        string
}

func (k *ClassConstant) Name() string               { return k.name }
func (k *ClassConstant) Class() *Class              { return k.class }
func (k *ClassConstant) Visibility() string         { return k.visibility }
func (k *ClassConstant) IsFinal() bool              { return k.final }
func (k *ClassConstant) NamespaceName() string      { return k.class.namespace }
func (k *ClassConstant) DocComment() (string, bool) { return k.doc, k.doc != "" }

// Value is the source text of the constant expression.
func (k *ClassConstant) Value() string { return k.value }
