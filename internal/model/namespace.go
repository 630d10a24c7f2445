package model

import "strings"

type namespaceAware struct {
	namespace string
}

func (n *namespaceAware) Namespace() string {
	return n.namespace
}

// SetNamespace stores ns without leading or trailing separators.
func (n *namespaceAware) SetNamespace(ns string) {
	n.namespace = strings.Trim(ns, `\`)
}

func (n *namespaceAware) qualify(name string) string {
	if n.namespace == "" {
		return name
	}
	return n.namespace + `\` + name
}

// splitQualified splits "A\B\C" into ("A\B", "C").
func splitQualified(fqn string) (string, string) {
	fqn = strings.Trim(fqn, `\`)
	if i := strings.LastIndex(fqn, `\`); i >= 0 {
		return fqn[:i], fqn[i+1:]
	}
	return "", fqn
}
