package model

import (
	"fmt"
	"strings"
)

// Visibility is a PHP access qualifier.
type Visibility string

const (
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Private   Visibility = "private"
)

// DefaultVisibility is used by members that have neither an explicit
// visibility nor a parent to inherit one from.
const DefaultVisibility = Public

func (v Visibility) Valid() bool {
	switch v {
	case Public, Protected, Private:
		return true
	}
	return false
}

// ParseVisibility accepts the keyword in any letter case.
func ParseVisibility(s string) (Visibility, error) {
	v := Visibility(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidVisibility, s)
	}
	return v, nil
}

// visibilityAware stores an explicit visibility. The owning element decides
// what an unset visibility falls back to.
type visibilityAware struct {
	visibility Visibility
}

func (v *visibilityAware) SetVisibility(vis Visibility) error {
	if !vis.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidVisibility, vis)
	}
	v.visibility = vis
	return nil
}

// ResetVisibility drops the explicit visibility so the default applies again.
func (v *visibilityAware) ResetVisibility() {
	v.visibility = ""
}

func (v *visibilityAware) HasVisibility() bool {
	return v.visibility != ""
}

func (v *visibilityAware) resolveVisibility(fallback Visibility) Visibility {
	if v.visibility != "" {
		return v.visibility
	}
	return fallback
}
