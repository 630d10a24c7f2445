package model

// Container is an element that owns members and decides their default
// visibility (a class, interface or trait).
type Container interface {
	Name() string
	Kind() StructKind
	DefaultConstVisibility() Visibility
	DefaultPropertyVisibility() Visibility
	DefaultMethodVisibility() Visibility
}

// member is the common part of constants, properties and methods. The parent
// reference is non-owning; whoever built the graph keeps the container alive.
type member struct {
	named
	parent Container
}

func (m *member) Parent() Container {
	return m.parent
}

func (m *member) SetParent(parent Container) {
	m.parent = parent
}

func (m *member) inInterface() bool {
	return m.parent != nil && m.parent.Kind() == KindInterface
}
