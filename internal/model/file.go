package model

import "strings"

// File is a PHP source file holding one namespace worth of structs.
type File struct {
	namespaceAware
	commentAware
	strictTypes bool
	uses        []string
	structs     []*Struct
}

// NewFile returns an empty file with strict_types enabled.
func NewFile() *File {
	return &File{strictTypes: true}
}

func (f *File) StrictTypes() bool          { return f.strictTypes }
func (f *File) SetStrictTypes(strict bool) { f.strictTypes = strict }

// AddUse imports a fully qualified name; the leading separator is dropped.
func (f *File) AddUse(names ...string) {
	for _, name := range names {
		f.uses = appendUnique(f.uses, strings.TrimPrefix(name, `\`))
	}
}

func (f *File) Uses() []string { return append([]string(nil), f.uses...) }

// AddStruct appends s. A struct without a namespace adopts the file's one.
func (f *File) AddStruct(s *Struct) {
	if s.Namespace() == "" {
		s.SetNamespace(f.Namespace())
	}
	f.structs = append(f.structs, s)
}

func (f *File) Structs() []*Struct { return append([]*Struct(nil), f.structs...) }

func (f *File) String() string {
	var sb strings.Builder
	sb.WriteString("<?php\n\n")
	if c := f.commentsToString(); c != "" {
		sb.WriteString(c)
		sb.WriteByte('\n')
	}
	if f.strictTypes {
		sb.WriteString("declare(strict_types=1);\n\n")
	}
	if ns := f.Namespace(); ns != "" {
		sb.WriteString("namespace " + ns + ";\n\n")
	}
	if len(f.uses) > 0 {
		for _, u := range f.uses {
			sb.WriteString("use " + u + ";\n")
		}
		sb.WriteByte('\n')
	}
	for i, s := range f.structs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}
