// Package docblock parses PHPDoc comments and resolves the type names they declare.
package docblock

import (
	"strings"
)

// DocBlock contains parsed PHPDoc information
type DocBlock struct {
	Summary     string
	Description string
	Tags        []Tag
	Context     *Context
}

// Tag is a single @tag line. Type and Variable are only filled for tags that
// carry them (@param, @return, @var, @throws, @property...).
type Tag struct {
	Name        string
	Type        string
	Variable    string
	Description string
}

// typedTags take a type expression as their first argument.
var typedTags = map[string]bool{
	"param":          true,
	"return":         true,
	"var":            true,
	"throws":         true,
	"property":       true,
	"property-read":  true,
	"property-write": true,
	"phpstan-param":  true,
	"phpstan-return": true,
	"psalm-param":    true,
	"psalm-return":   true,
}

// variableTags are followed by a $variable after their type.
var variableTags = map[string]bool{
	"param":          true,
	"var":            true,
	"property":       true,
	"property-read":  true,
	"property-write": true,
	"phpstan-param":  true,
	"psalm-param":    true,
}

// Parse extracts the summary, description and tags of a /** ... */ comment.
// ctx is kept on the result so callers can resolve tag types later.
func Parse(comment string, ctx *Context) *DocBlock {
	doc := &DocBlock{Tags: []Tag{}, Context: ctx}

	var desc []string
	inDescription := true
	for _, line := range cleanLines(comment) {
		if strings.HasPrefix(line, "@") {
			inDescription = false
			doc.Tags = append(doc.Tags, parseTag(line))
			continue
		}
		if inDescription {
			desc = append(desc, line)
			continue
		}
		// Continuation of the previous tag's description
		if n := len(doc.Tags); n > 0 && line != "" {
			last := &doc.Tags[n-1]
			last.Description = strings.TrimSpace(last.Description + " " + line)
		}
	}

	// Summary ends at the first blank line
	for i, line := range desc {
		if line == "" {
			doc.Summary = strings.Join(desc[:i], " ")
			doc.Description = strings.TrimSpace(strings.Join(desc[i+1:], "\n"))
			return doc
		}
	}
	doc.Summary = strings.Join(desc, " ")
	return doc
}

// TagsByName returns every tag called name (without the @), in source order.
func (d *DocBlock) TagsByName(name string) []Tag {
	name = strings.TrimPrefix(name, "@")
	var tags []Tag
	for _, t := range d.Tags {
		if t.Name == name {
			tags = append(tags, t)
		}
	}
	return tags
}

func (d *DocBlock) HasTag(name string) bool {
	return len(d.TagsByName(name)) > 0
}

// Text returns the comment without its delimiters and leading stars, one
// line per source line.
func Text(comment string) string {
	return strings.Join(cleanLines(comment), "\n")
}

func cleanLines(comment string) []string {
	comment = strings.ReplaceAll(comment, "\r\n", "\n")
	lines := strings.Split(comment, "\n")
	clean := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)

		// Remove /** and */
		line = strings.TrimPrefix(line, "/**")
		line = strings.TrimSuffix(line, "*/")

		// Remove leading *
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "*") {
			line = strings.TrimPrefix(line, "*")
			line = strings.TrimSpace(line)
		}
		clean = append(clean, line)
	}

	// Drop leading and trailing blank lines left by the delimiters
	for len(clean) > 0 && clean[0] == "" {
		clean = clean[1:]
	}
	for len(clean) > 0 && clean[len(clean)-1] == "" {
		clean = clean[:len(clean)-1]
	}
	return clean
}

func parseTag(line string) Tag {
	name, rest, _ := strings.Cut(strings.TrimPrefix(line, "@"), " ")
	name = strings.TrimSpace(name)
	rest = strings.TrimSpace(rest)
	tag := Tag{Name: name}

	if !typedTags[name] {
		tag.Description = rest
		return tag
	}

	// "@param $name" carries no type, but $this is one
	if !variableTags[name] || !startsWithVariable(rest) {
		tag.Type, rest = splitType(rest)
	}
	if variableTags[name] && startsWithVariable(rest) {
		v, after, _ := strings.Cut(rest, " ")
		tag.Variable = strings.TrimPrefix(strings.TrimPrefix(v, "..."), "$")
		rest = after
	}
	tag.Description = strings.TrimSpace(rest)
	return tag
}

func startsWithVariable(s string) bool {
	token, _, _ := strings.Cut(s, " ")
	if token == "$this" {
		return false
	}
	return strings.HasPrefix(token, "$") || strings.HasPrefix(token, "...$")
}

// splitType reads a type expression up to the first blank outside brackets,
// so "array<int, string> $x" yields "array<int, string>".
func splitType(s string) (string, string) {
	depth := 0
	for i, r := range s {
		switch r {
		case '<', '(', '{', '[':
			depth++
		case '>', ')', '}', ']':
			if depth > 0 {
				depth--
			}
		case ' ', '\t':
			if depth == 0 {
				return s[:i], strings.TrimSpace(s[i:])
			}
		}
	}
	return s, ""
}
