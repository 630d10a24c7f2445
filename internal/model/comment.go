package model

import "strings"

type commentAware struct {
	comments []string
}

// SetComment replaces the comment block; text is split on newlines.
func (c *commentAware) SetComment(text string) {
	c.comments = nil
	if text == "" {
		return
	}
	c.comments = strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func (c *commentAware) AddComment(line string) {
	c.comments = append(c.comments, line)
}

func (c *commentAware) Comments() []string {
	return append([]string(nil), c.comments...)
}

func (c *commentAware) commentsToString() string {
	if len(c.comments) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("/**\n")
	for _, line := range c.comments {
		if line == "" {
			sb.WriteString(" *\n")
			continue
		}
		sb.WriteString(" * ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(" */\n")
	return sb.String()
}
