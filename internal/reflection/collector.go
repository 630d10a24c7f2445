package reflection

import (
	"strings"

	"github.com/VKCOM/php-parser/pkg/ast"
	"github.com/VKCOM/php-parser/pkg/token"
	"github.com/VKCOM/php-parser/pkg/visitor"
	"github.com/VKCOM/php-parser/pkg/visitor/traverser"
)

// collector is a visitor that indexes the declarations of one file
type collector struct {
	visitor.Null // Embedded - provides default implementations for all visitor methods
	reflector    *Reflector
	file         string
	content      []byte
	namespace    string
	imports      map[string]string
	current      *Class

	classes   int
	functions int
}

// StmtNamespace handles namespace declarations
func (v *collector) StmtNamespace(n *ast.StmtNamespace) {
	v.namespace = nameOf(n.Name)
	v.imports = make(map[string]string)
}

// StmtUse handles use statements (imports)
func (v *collector) StmtUse(n *ast.StmtUseList) {
	if v.imports == nil {
		v.imports = make(map[string]string)
	}
	for _, use := range n.Uses {
		useNode, ok := use.(*ast.StmtUse)
		if !ok {
			continue
		}
		name := nameOf(useNode.Use)
		alias := identifierOf(useNode.Alias)
		if alias == "" {
			alias = name[strings.LastIndex(name, `\`)+1:]
		}
		if alias != "" {
			v.imports[alias] = name
		}
	}
}

func (v *collector) StmtClass(n *ast.StmtClass) {
	name := identifierOf(n.Name)
	if name == "" {
		// anonymous class
		return
	}

	class := v.newClass(name, KindClass, n.Position.StartLine, n.Position.EndLine)
	class.abstract = hasModifier(n.Modifiers, "abstract")
	class.final = hasModifier(n.Modifiers, "final")
	class.doc = docFromModifiers(n.Modifiers)
	if class.doc == "" {
		class.doc = docFromToken(n.ClassTkn)
	}
	if n.Extends != nil {
		class.extends = []string{nameOf(n.Extends)}
	}
	for _, iface := range n.Implements {
		class.implements = append(class.implements, nameOf(iface))
	}
	v.collectMembers(class, n.Stmts)
}

func (v *collector) StmtInterface(n *ast.StmtInterface) {
	name := identifierOf(n.Name)
	if name == "" {
		return
	}
	iface := v.newClass(name, KindInterface, n.Position.StartLine, n.Position.EndLine)
	iface.doc = docFromToken(n.InterfaceTkn)
	for _, ext := range n.Extends {
		iface.extends = append(iface.extends, nameOf(ext))
	}
	v.collectMembers(iface, n.Stmts)
}

func (v *collector) StmtTrait(n *ast.StmtTrait) {
	name := identifierOf(n.Name)
	if name == "" {
		return
	}
	trait := v.newClass(name, KindTrait, n.Position.StartLine, n.Position.EndLine)
	trait.doc = docFromToken(n.TraitTkn)
	v.collectMembers(trait, n.Stmts)
}

func (v *collector) newClass(name string, kind Kind, start, end int) *Class {
	return &Class{
		name:      name,
		namespace: v.namespace,
		kind:      kind,
		file:      v.file,
		startLine: start,
		endLine:   end,
		imports:   v.copyImports(),
	}
}

// collectMembers walks the body of a class-like with current set, so member
// handlers know their owner, then registers it.
func (v *collector) collectMembers(class *Class, stmts []ast.Vertex) {
	v.current = class
	for _, stmt := range stmts {
		traverser.NewTraverser(v).Traverse(stmt)
	}
	v.current = nil

	v.reflector.addClass(class)
	v.classes++
}

// StmtTraitUse handles trait usage within a class
func (v *collector) StmtTraitUse(n *ast.StmtTraitUse) {
	if v.current == nil {
		return
	}
	for _, trait := range n.Traits {
		if name := nameOf(trait); name != "" {
			v.current.traits = append(v.current.traits, name)
		}
	}
}

// StmtClassMethod handles method declarations
func (v *collector) StmtClassMethod(n *ast.StmtClassMethod) {
	if v.current == nil {
		return
	}
	name := identifierOf(n.Name)
	if name == "" {
		return
	}

	m := &Method{
		class:      v.current,
		visibility: visibilityOf(n.Modifiers),
		static:     hasModifier(n.Modifiers, "static"),
		abstract:   hasModifier(n.Modifiers, "abstract"),
		final:      hasModifier(n.Modifiers, "final"),
	}
	m.signature = signature{
		name:       name,
		returnType: v.text(n.ReturnType),
		byRef:      v.refBefore(n, n.Name),
		doc:        docFromModifiers(n.Modifiers),
		startLine:  n.Position.StartLine,
		endLine:    n.Position.EndLine,
	}
	if m.doc == "" {
		m.doc = docFromToken(n.FunctionTkn)
	}
	m.params = v.parameters(n.Params, m)

	// Re-declaring a method keeps the first one, as PHP refuses the second
	if _, exists := v.current.Method(name); !exists {
		v.current.methods = append(v.current.methods, m)
	}
}

// StmtFunction handles global function declarations
func (v *collector) StmtFunction(n *ast.StmtFunction) {
	name := identifierOf(n.Name)
	if name == "" {
		return
	}
	f := &Func{
		namespace: v.namespace,
		file:      v.file,
		imports:   v.copyImports(),
	}
	f.signature = signature{
		name:       name,
		returnType: v.text(n.ReturnType),
		byRef:      v.refBefore(n, n.Name),
		doc:        docFromToken(n.FunctionTkn),
		startLine:  n.Position.StartLine,
		endLine:    n.Position.EndLine,
	}
	f.params = v.parameters(n.Params, f)
	v.reflector.addFunction(f)
	v.functions++
}

func (v *collector) ExprClosure(n *ast.ExprClosure) {
	v.closure(n, n.Params, n.ReturnType)
}

func (v *collector) ExprArrowFunction(n *ast.ExprArrowFunction) {
	v.closure(n, n.Params, n.ReturnType)
}

func (v *collector) closure(n ast.Vertex, params []ast.Vertex, returnType ast.Vertex) {
	pos := n.GetPosition()
	if pos == nil {
		return
	}
	f := &Func{
		namespace: v.namespace,
		file:      v.file,
		closure:   true,
		imports:   v.copyImports(),
	}
	f.signature = signature{
		name:       "{closure}",
		returnType: v.text(returnType),
		startLine:  pos.StartLine,
		endLine:    pos.EndLine,
	}
	f.params = v.parameters(params, f)
	v.reflector.addFunction(f)
}

// StmtPropertyList handles class property declarations
func (v *collector) StmtPropertyList(n *ast.StmtPropertyList) {
	if v.current == nil {
		return
	}

	visibility := visibilityOf(n.Modifiers)
	isStatic := hasModifier(n.Modifiers, "static")
	isReadonly := hasModifier(n.Modifiers, "readonly")
	typ := v.text(n.Type)
	doc := docFromModifiers(n.Modifiers)

	for _, prop := range n.Props {
		stmtProp, ok := prop.(*ast.StmtProperty)
		if !ok {
			continue
		}
		p := &Property{
			name:       variableOf(stmtProp.Var),
			class:      v.current,
			visibility: visibility,
			static:     isStatic,
			readonly:   isReadonly,
			typ:        typ,
			doc:        doc,
			startLine:  stmtProp.Position.StartLine,
		}
		if stmtProp.Expr != nil {
			p.defaultVal, p.hasDefault = v.text(stmtProp.Expr), true
		}
		v.current.properties = append(v.current.properties, p)
	}
}

// StmtClassConstList handles class constant declarations
func (v *collector) StmtClassConstList(n *ast.StmtClassConstList) {
	if v.current == nil {
		return
	}

	visibility := visibilityOf(n.Modifiers)
	final := hasModifier(n.Modifiers, "final")
	doc := docFromModifiers(n.Modifiers)
	if doc == "" {
		doc = docFromToken(n.ConstTkn)
	}

	for _, constVertex := range n.Consts {
		stmtConst, ok := constVertex.(*ast.StmtConstant)
		if !ok {
			continue
		}
		name := identifierOf(stmtConst.Name)
		if name == "" {
			continue
		}
		v.current.constants = append(v.current.constants, &ClassConstant{
			name:       name,
			class:      v.current,
			visibility: visibility,
			final:      final,
			value:      v.text(stmtConst.Expr),
			doc:        doc,
		})
	}
}

// parameters converts a parameter list. Markers like & and ... and default
// values are read from the source text around the variable.
func (v *collector) parameters(params []ast.Vertex, owner Function) []*Parameter {
	var result []*Parameter
	for i, param := range params {
		p, ok := param.(*ast.Parameter)
		if !ok || p.Var == nil {
			continue
		}
		info := &Parameter{
			name:     variableOf(p.Var),
			position: i,
			typ:      v.text(p.Type),
			function: owner,
		}

		pos, varPos := p.GetPosition(), p.Var.GetPosition()
		if pos != nil && varPos != nil {
			before := v.slice(pos.StartPos, varPos.StartPos)
			if p.Type != nil {
				if typePos := p.Type.GetPosition(); typePos != nil {
					before = v.slice(typePos.EndPos, varPos.StartPos)
				}
			}
			info.byRef = strings.Contains(before, "&")
			info.variadic = strings.Contains(before, "...")

			after := strings.TrimSpace(v.slice(varPos.EndPos, pos.EndPos))
			if rest, found := strings.CutPrefix(after, "="); found {
				info.defaultVal, info.hasDefault = strings.TrimSpace(rest), true
			}
		}
		result = append(result, info)
	}
	return result
}

// refBefore reports whether a & sits between the start of decl and its name,
// which is how a function returning by reference is spelled.
func (v *collector) refBefore(decl, name ast.Vertex) bool {
	pos, namePos := decl.GetPosition(), name.GetPosition()
	if pos == nil || namePos == nil {
		return false
	}
	head := v.slice(pos.StartPos, namePos.StartPos)
	i := strings.LastIndex(head, "function")
	return i >= 0 && strings.Contains(head[i:], "&")
}

// text returns the source text a node was parsed from.
func (v *collector) text(n ast.Vertex) string {
	if n == nil {
		return ""
	}
	pos := n.GetPosition()
	if pos == nil {
		return ""
	}
	return strings.TrimSpace(v.slice(pos.StartPos, pos.EndPos))
}

func (v *collector) slice(start, end int) string {
	if start < 0 || end > len(v.content) || start > end {
		return ""
	}
	return string(v.content[start:end])
}

// copyImports creates a copy of the current imports map
func (v *collector) copyImports() map[string]string {
	if v.imports == nil {
		return nil
	}
	dst := make(map[string]string, len(v.imports))
	for key, value := range v.imports {
		dst[key] = value
	}
	return dst
}

// docFromModifiers returns the doc comment attached to the first modifier.
func docFromModifiers(modifiers []ast.Vertex) string {
	for _, mod := range modifiers {
		if identifier, ok := mod.(*ast.Identifier); ok {
			if doc := docFromToken(identifier.IdentifierTkn); doc != "" {
				return doc
			}
		}
	}
	return ""
}

// docFromToken returns the T_DOC_COMMENT closest to tok.
func docFromToken(tok *token.Token) string {
	if tok == nil {
		return ""
	}
	doc := ""
	for _, ff := range tok.FreeFloating {
		if ff.ID.String() == "T_DOC_COMMENT" {
			doc = string(ff.Value)
		}
	}
	return doc
}

func nameOf(node ast.Vertex) string {
	if node == nil {
		return ""
	}

	var parts []ast.Vertex
	prefix := ""
	switch n := node.(type) {
	case *ast.Name:
		parts = n.Parts
	case *ast.NameFullyQualified:
		parts, prefix = n.Parts, `\`
	case *ast.Identifier:
		return string(n.Value)
	default:
		return ""
	}

	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if namePart, ok := part.(*ast.NamePart); ok {
			names = append(names, string(namePart.Value))
		}
	}
	return prefix + strings.Join(names, `\`)
}

func identifierOf(node ast.Vertex) string {
	if ident, ok := node.(*ast.Identifier); ok && ident != nil {
		return string(ident.Value)
	}
	return ""
}

func variableOf(node ast.Vertex) string {
	if exprVar, ok := node.(*ast.ExprVariable); ok && exprVar != nil {
		return strings.TrimPrefix(identifierOf(exprVar.Name), "$")
	}
	return ""
}

func visibilityOf(modifiers []ast.Vertex) string {
	for _, mod := range modifiers {
		if ident, ok := mod.(*ast.Identifier); ok {
			switch s := strings.ToLower(string(ident.Value)); s {
			case "public", "protected", "private":
				return s
			}
		}
	}
	return "public" // Default visibility in PHP
}

func hasModifier(modifiers []ast.Vertex, target string) bool {
	for _, mod := range modifiers {
		if ident, ok := mod.(*ast.Identifier); ok && strings.EqualFold(string(ident.Value), target) {
			return true
		}
	}
	return false
}
