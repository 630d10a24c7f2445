package reflection

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// braceLine matches an opening or closing brace that ends a line, together
// with the whitespace before it.
var braceLine = regexp.MustCompile(`\s+\{\n|\s+\}\n`)

// ExtractBody recovers the statements between the braces of fn by scanning
// the lines of its declaring file. It is a best-effort heuristic, not a
// parser: it assumes the braces sit on their own lines and that the name of
// fn does not reappear inside its body. Interface members and abstract
// methods have no body and yield "". Delimiter braces are stripped even in
// the first column, so global functions with an Allman brace lose their
// braces too.
func ExtractBody(fsys afero.Fs, fn Function, isInterface bool) (string, error) {
	if isInterface || fn.IsAbstract() {
		return "", nil
	}

	filename, ok := fn.FileName()
	if !ok {
		return "", fmt.Errorf("%w for %s", ErrNoFile, fn.Name())
	}

	lines, err := readLines(fsys, filename)
	if err != nil {
		return "", err
	}
	if c, ok := fn.(*Func); ok && c.IsClosure() {
		return closureBody(lines, c.StartLine(), c.EndLine()), nil
	}

	start := BodyStartLine(fn.Name(), lines)
	end := BodyEndLine(fn.Name(), lines)

	length := end - start + 1
	if length <= 2 {
		length = 0
	}
	if start+length > len(lines) {
		length = len(lines) - start
	}

	// The leading newline lets a brace in the first column match as well
	code := "\n" + strings.Join(lines[start:start+length], "")
	return strings.TrimSpace(braceLine.ReplaceAllString(code, "")), nil
}

// closureBody cuts the text between the first `{` and the last `}` of the
// closure's lines. A closure has no name to scan for and its opening brace
// usually shares the line with `function`. Arrow functions have no braces
// and yield "".
func closureBody(lines []string, startLine, endLine int) string {
	if startLine < 1 || endLine > len(lines) || startLine > endLine {
		return ""
	}
	code := strings.Join(lines[startLine-1:endLine], "")
	open := strings.Index(code, "{")
	end := strings.LastIndex(code, "}")
	if open < 0 || end < open {
		return ""
	}
	return strings.TrimSpace(code[open+1 : end])
}

// BodyStartLine returns the index of the first line holding a `{` at or after
// the last line naming the function. Every line containing name re-arms the
// search, so a name repeated in a doc comment or a multi-line signature
// still lands on the brace after the real declaration.
func BodyStartLine(name string, lines []string) int {
	return scanBoundary(name, "{", lines)
}

// BodyEndLine is BodyStartLine for the first `}`. It does not balance braces.
func BodyEndLine(name string, lines []string) int {
	return scanBoundary(name, "}", lines)
}

func scanBoundary(name, brace string, lines []string) int {
	line := 0
	found := false
	for i, l := range lines {
		if strings.Contains(l, name) {
			line = i
			found = true
		}
		if found && strings.Contains(l, brace) {
			return i
		}
	}
	return line
}

// readLines reads a file into lines that keep their trailing newline.
func readLines(fsys afero.Fs, filename string) ([]string, error) {
	content, err := afero.ReadFile(fsys, filename)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrReadFile, filename, err)
	}
	lines := strings.SplitAfter(string(content), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

// ExtractBody runs ExtractBody against the reflector's filesystem.
func (r *Reflector) ExtractBody(fn Function, isInterface bool) (string, error) {
	return ExtractBody(r.fs, fn, isInterface)
}
