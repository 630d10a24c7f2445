package model

import (
	"fmt"
	"strings"
)

// reservedNameChars may never appear in an element name. Callers pass bare
// identifiers, not the "$name" form used at call sites.
const reservedNameChars = " $*"

// ValidateName checks that name is usable as an element identifier.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if i := strings.IndexAny(name, reservedNameChars); i >= 0 {
		return fmt.Errorf("%w: %q contains reserved character %q", ErrInvalidName, name, name[i])
	}
	return nil
}

// ParseName validates a name coming from untyped input (YAML, JSON, tool
// arguments). A missing or non-string value is a type contract violation.
func ParseName(v any) (string, error) {
	if v == nil {
		return "", fmt.Errorf("%w: name is required", ErrTypeContract)
	}
	name, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: name must be a string, got %T", ErrTypeContract, v)
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return name, nil
}

type named struct {
	name string
}

func (n *named) Name() string {
	return n.name
}

func (n *named) setName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	n.name = name
	return nil
}
