// Package printer converts a WGSL AST into a document tree for layout
// resolution. Printing is read-only over the AST: one explicit branch per
// node kind, with verbatim source passthrough as the fallback for anything
// the printer does not model.
package printer

import (
	"strings"

	"bennypowers.dev/wgslfmt/internal/doc"
	"bennypowers.dev/wgslfmt/internal/wgsl"
)

// Printer renders AST nodes to document fragments. It keeps the original
// source so unmodeled nodes can be re-emitted byte-for-byte.
type Printer struct {
	source string
}

// New creates a printer for an AST parsed from source.
func New(source string) *Printer {
	return &Printer{source: source}
}

// Module prints a whole translation unit. Top-level declarations are
// separated by blank lines, except runs of directives and value
// declarations, which stay adjacent.
func (p *Printer) Module(m *wgsl.Module) doc.Fragment {
	parts := make([]doc.Fragment, 0, len(m.Decls)*2)
	for i, d := range m.Decls {
		if i > 0 {
			parts = append(parts, doc.Hardline())
			if wantsBlankLine(m.Decls[i-1], d) {
				parts = append(parts, doc.Hardline())
			}
		}
		parts = append(parts, p.Decl(d))
	}
	if len(m.Decls) > 0 {
		parts = append(parts, doc.Hardline())
	}
	return doc.Concat(parts...)
}

func wantsBlankLine(prev, next wgsl.Decl) bool {
	switch next.(type) {
	case *wgsl.FunctionDecl, *wgsl.StructDecl:
		return true
	}
	switch prev.(type) {
	case *wgsl.FunctionDecl, *wgsl.StructDecl:
		return true
	}
	return false
}

// Decl prints one declaration.
func (p *Printer) Decl(d wgsl.Decl) doc.Fragment {
	switch decl := d.(type) {
	case *wgsl.VarDecl:
		return p.varDecl(decl)
	case *wgsl.AliasDecl:
		return doc.Concat(
			doc.Text("alias "), doc.Text(decl.Name), doc.Text(" = "),
			p.Type(decl.Type), doc.Text(";"),
		)
	case *wgsl.StructDecl:
		return p.structDecl(decl)
	case *wgsl.FunctionDecl:
		return p.functionDecl(decl)
	case *wgsl.EnableDirective:
		return doc.Concat(doc.Text("enable "), doc.Text(strings.Join(decl.Extensions, ", ")), doc.Text(";"))
	case *wgsl.RequiresDirective:
		return doc.Concat(doc.Text("requires "), doc.Text(strings.Join(decl.Extensions, ", ")), doc.Text(";"))
	case *wgsl.DiagnosticDirective:
		return doc.Concat(
			doc.Text("diagnostic("), doc.Text(decl.Severity), doc.Text(", "),
			doc.Text(decl.Rule), doc.Text(");"),
		)
	case *wgsl.ConstAssert:
		return doc.Concat(doc.Text("const_assert "), p.Expr(decl.Expr), doc.Text(";"))
	default:
		return p.verbatim(d)
	}
}

// declAttributes prints declaration-level attributes, one per forced line.
func (p *Printer) declAttributes(attrs []wgsl.Attribute) []doc.Fragment {
	var parts []doc.Fragment
	for _, attr := range attrs {
		parts = append(parts, p.attribute(attr), doc.Hardline())
	}
	return parts
}

// inlineAttributes prints attributes space-joined on the current line, as
// used for parameters, struct members, and return types.
func (p *Printer) inlineAttributes(attrs []wgsl.Attribute) []doc.Fragment {
	var parts []doc.Fragment
	for _, attr := range attrs {
		parts = append(parts, p.attribute(attr), doc.Text(" "))
	}
	return parts
}

func (p *Printer) attribute(attr wgsl.Attribute) doc.Fragment {
	parts := []doc.Fragment{doc.Text("@"), doc.Text(attr.Name)}
	if len(attr.Args) > 0 {
		parts = append(parts, doc.Text("("))
		for i, arg := range attr.Args {
			if i > 0 {
				parts = append(parts, doc.Text(", "))
			}
			parts = append(parts, p.Expr(arg))
		}
		parts = append(parts, doc.Text(")"))
	}
	return doc.Concat(parts...)
}

func (p *Printer) varDecl(decl *wgsl.VarDecl) doc.Fragment {
	parts := p.declAttributes(decl.Attributes)

	parts = append(parts, doc.Text(decl.Kind.String()))
	if decl.AddressSpace != "" {
		qual := "<" + decl.AddressSpace
		if decl.AccessMode != "" {
			qual += ", " + decl.AccessMode
		}
		qual += ">"
		parts = append(parts, doc.Text(qual))
	}
	parts = append(parts, doc.Text(" "), doc.Text(decl.Name))

	if decl.Type != nil {
		parts = append(parts, doc.Text(": "), p.Type(decl.Type))
	}
	// An absent initializer omits the clause entirely.
	if decl.Init != nil {
		parts = append(parts, doc.Text(" = "), p.exprIn(decl.Init, floatContext(decl.Type)))
	}
	parts = append(parts, doc.Text(";"))
	return doc.Concat(parts...)
}

func (p *Printer) structDecl(decl *wgsl.StructDecl) doc.Fragment {
	parts := p.declAttributes(decl.Attributes)
	parts = append(parts, doc.Text("struct "), doc.Text(decl.Name), doc.Text(" {"))

	if len(decl.Members) == 0 {
		parts = append(parts, doc.Text("}"))
		return doc.Concat(parts...)
	}

	var members []doc.Fragment
	for _, m := range decl.Members {
		members = append(members, doc.Hardline())
		members = append(members, p.inlineAttributes(m.Attributes)...)
		// Member lines always end in a comma, including the last.
		members = append(members, doc.Text(m.Name), doc.Text(": "), p.Type(m.Type), doc.Text(","))
	}
	parts = append(parts, doc.Indent(doc.Concat(members...)), doc.Hardline(), doc.Text("}"))
	return doc.Concat(parts...)
}

func (p *Printer) functionDecl(decl *wgsl.FunctionDecl) doc.Fragment {
	parts := p.declAttributes(decl.Attributes)
	parts = append(parts, doc.Text("fn "), doc.Text(decl.Name), p.paramList(decl.Params))

	if decl.ReturnType != nil {
		parts = append(parts, doc.Text(" -> "))
		parts = append(parts, p.inlineAttributes(decl.ReturnAttrs)...)
		parts = append(parts, p.Type(decl.ReturnType))
	}

	parts = append(parts, doc.Text(" "), p.block(decl.Body))
	return doc.Concat(parts...)
}

// paramList prints the parenthesized parameter list as a group: one line
// when it fits, otherwise one parameter per indented line with a trailing
// comma before the closing paren.
func (p *Printer) paramList(params []*wgsl.Parameter) doc.Fragment {
	if len(params) == 0 {
		return doc.Text("()")
	}

	items := make([]doc.Fragment, 0, len(params))
	for _, param := range params {
		var item []doc.Fragment
		item = append(item, p.inlineAttributes(param.Attributes)...)
		item = append(item, doc.Text(param.Name), doc.Text(": "), p.Type(param.Type))
		items = append(items, doc.Concat(item...))
	}

	return doc.Group(doc.Concat(
		doc.Text("("),
		doc.Indent(doc.Concat(
			doc.Softline(),
			doc.Join(doc.Concat(doc.Text(","), doc.Line()), items),
			doc.IfBreak(doc.Text(","), nil),
		)),
		doc.Softline(),
		doc.Text(")"),
	))
}

// Statements

// Stmt prints one statement, including its terminating semicolon where the
// grammar requires one.
func (p *Printer) Stmt(s wgsl.Stmt) doc.Fragment {
	switch stmt := s.(type) {
	case *wgsl.VarDecl:
		return p.varDecl(stmt)
	case *wgsl.ConstAssert:
		return doc.Concat(doc.Text("const_assert "), p.Expr(stmt.Expr), doc.Text(";"))
	case *wgsl.BlockStmt:
		return p.block(stmt)
	case *wgsl.ReturnStmt:
		if stmt.Value == nil {
			return doc.Text("return;")
		}
		return doc.Concat(doc.Text("return "), p.Expr(stmt.Value), doc.Text(";"))
	case *wgsl.IfStmt:
		return p.ifStmt(stmt)
	case *wgsl.ForStmt:
		return p.forStmt(stmt)
	case *wgsl.WhileStmt:
		return doc.Concat(
			doc.Text("while ("), p.condition(stmt.Condition), doc.Text(") "),
			p.block(stmt.Body),
		)
	case *wgsl.LoopStmt:
		return p.loopStmt(stmt)
	case *wgsl.SwitchStmt:
		return p.switchStmt(stmt)
	case *wgsl.BreakStmt:
		if stmt.If != nil {
			return doc.Concat(doc.Text("break if "), p.Expr(stmt.If), doc.Text(";"))
		}
		return doc.Text("break;")
	case *wgsl.ContinueStmt:
		return doc.Text("continue;")
	case *wgsl.DiscardStmt:
		return doc.Text("discard;")
	case *wgsl.AssignStmt:
		return doc.Concat(p.assign(stmt), doc.Text(";"))
	case *wgsl.IncDecStmt:
		return doc.Concat(p.incDec(stmt), doc.Text(";"))
	case *wgsl.ExprStmt:
		return doc.Concat(p.Expr(stmt.Expr), doc.Text(";"))
	default:
		return p.verbatim(s)
	}
}

// headerStmt prints a statement for a for-loop header, suppressing the
// trailing semicolon the loop header supplies itself.
func (p *Printer) headerStmt(s wgsl.Stmt) doc.Fragment {
	switch stmt := s.(type) {
	case *wgsl.VarDecl:
		return trimSemi(p.varDecl(stmt))
	case *wgsl.AssignStmt:
		return p.assign(stmt)
	case *wgsl.IncDecStmt:
		return p.incDec(stmt)
	case *wgsl.ExprStmt:
		return p.Expr(stmt.Expr)
	default:
		return trimSemi(p.Stmt(s))
	}
}

// trimSemi drops a trailing ";" text fragment from a printed statement.
func trimSemi(f doc.Fragment) doc.Fragment {
	concat, ok := f.(*doc.ConcatFragment)
	if !ok || len(concat.Parts) == 0 {
		return f
	}
	last, ok := concat.Parts[len(concat.Parts)-1].(*doc.TextFragment)
	if ok && last.Text == ";" {
		return doc.Concat(concat.Parts[:len(concat.Parts)-1]...)
	}
	return f
}

func (p *Printer) assign(stmt *wgsl.AssignStmt) doc.Fragment {
	return doc.Concat(
		p.Expr(stmt.Left),
		doc.Text(" "+stmt.Op.String()+" "),
		p.Expr(stmt.Right),
	)
}

func (p *Printer) incDec(stmt *wgsl.IncDecStmt) doc.Fragment {
	return doc.Concat(p.Expr(stmt.Target), doc.Text(stmt.Op.String()))
}

// block prints a brace-delimited statement list. An empty body renders as
// the two characters {} with no interior newline.
func (p *Printer) block(b *wgsl.BlockStmt) doc.Fragment {
	if b == nil || len(b.Statements) == 0 {
		return doc.Text("{}")
	}

	var body []doc.Fragment
	for _, s := range b.Statements {
		body = append(body, doc.Hardline(), p.Stmt(s))
	}

	return doc.Concat(
		doc.Text("{"),
		doc.Indent(doc.Concat(body...)),
		doc.Hardline(),
		doc.Text("}"),
	)
}

// condition prints a control-flow condition inside the parens the printer
// supplies, unwrapping one explicit paren level so output stays stable
// across repeated formatting.
func (p *Printer) condition(e wgsl.Expr) doc.Fragment {
	if paren, ok := e.(*wgsl.ParenExpr); ok {
		return p.Expr(paren.Expr)
	}
	return p.Expr(e)
}

func (p *Printer) ifStmt(stmt *wgsl.IfStmt) doc.Fragment {
	parts := []doc.Fragment{
		doc.Text("if ("), p.condition(stmt.Condition), doc.Text(") "),
		p.block(stmt.Body),
	}

	// Else-if chains render flat, not as nested else { if ... }.
	switch elseStmt := stmt.Else.(type) {
	case nil:
	case *wgsl.IfStmt:
		parts = append(parts, doc.Text(" else "), p.ifStmt(elseStmt))
	case *wgsl.BlockStmt:
		parts = append(parts, doc.Text(" else "), p.block(elseStmt))
	default:
		parts = append(parts, doc.Text(" else "), p.Stmt(stmt.Else))
	}

	return doc.Concat(parts...)
}

func (p *Printer) forStmt(stmt *wgsl.ForStmt) doc.Fragment {
	parts := []doc.Fragment{doc.Text("for (")}

	if stmt.Init != nil {
		parts = append(parts, p.headerStmt(stmt.Init))
	}
	parts = append(parts, doc.Text(";"))
	if stmt.Condition != nil {
		parts = append(parts, doc.Text(" "), p.Expr(stmt.Condition))
	}
	parts = append(parts, doc.Text(";"))
	if stmt.Update != nil {
		parts = append(parts, doc.Text(" "), p.headerStmt(stmt.Update))
	}
	parts = append(parts, doc.Text(") "), p.block(stmt.Body))
	return doc.Concat(parts...)
}

func (p *Printer) loopStmt(stmt *wgsl.LoopStmt) doc.Fragment {
	if len(stmt.Body.Statements) == 0 && stmt.Continuing == nil {
		return doc.Text("loop {}")
	}

	var body []doc.Fragment
	for _, s := range stmt.Body.Statements {
		body = append(body, doc.Hardline(), p.Stmt(s))
	}
	if stmt.Continuing != nil {
		body = append(body, doc.Hardline(), doc.Text("continuing "), p.block(stmt.Continuing))
	}

	return doc.Concat(
		doc.Text("loop {"),
		doc.Indent(doc.Concat(body...)),
		doc.Hardline(),
		doc.Text("}"),
	)
}

func (p *Printer) switchStmt(stmt *wgsl.SwitchStmt) doc.Fragment {
	parts := []doc.Fragment{
		doc.Text("switch ("), p.condition(stmt.Selector), doc.Text(") {"),
	}

	var clauses []doc.Fragment
	for _, clause := range stmt.Cases {
		clauses = append(clauses, doc.Hardline(), p.caseClause(clause))
	}
	parts = append(parts, doc.Indent(doc.Concat(clauses...)), doc.Hardline(), doc.Text("}"))
	return doc.Concat(parts...)
}

func (p *Printer) caseClause(clause *wgsl.CaseClause) doc.Fragment {
	var parts []doc.Fragment
	if clause.IsDefault && len(clause.Selectors) == 0 {
		parts = append(parts, doc.Text("default: "))
	} else {
		// Multiple selector values share one case keyword.
		parts = append(parts, doc.Text("case "))
		for i, sel := range clause.Selectors {
			if i > 0 {
				parts = append(parts, doc.Text(", "))
			}
			parts = append(parts, p.Expr(sel))
		}
		if clause.IsDefault {
			parts = append(parts, doc.Text(", default"))
		}
		parts = append(parts, doc.Text(": "))
	}
	parts = append(parts, p.block(clause.Body))
	return doc.Concat(parts...)
}

// Expressions

// Expr prints one expression.
func (p *Printer) Expr(e wgsl.Expr) doc.Fragment {
	return p.exprIn(e, false)
}

// exprIn prints an expression, tracking whether it sits in a float-typed
// position for literal normalization.
func (p *Printer) exprIn(e wgsl.Expr, floatCtx bool) doc.Fragment {
	switch expr := e.(type) {
	case *wgsl.Literal:
		return doc.Text(p.literal(expr, floatCtx))
	case *wgsl.Ident:
		return doc.Text(expr.Name)
	case *wgsl.ParenExpr:
		return doc.Concat(doc.Text("("), p.exprIn(expr.Expr, floatCtx), doc.Text(")"))
	case *wgsl.UnaryExpr:
		return doc.Concat(doc.Text(expr.Op.String()), p.exprIn(expr.Operand, floatCtx))
	case *wgsl.BinaryExpr:
		// Grouping comes from the tree shape alone; the printer neither
		// inserts nor removes parentheses. Float context survives
		// arithmetic operators; comparisons yield bool and bitwise
		// operators are integer-only, so it stops there.
		operandCtx := floatCtx && isArithmeticOp(expr.Op)
		return doc.Concat(
			p.exprIn(expr.Left, operandCtx),
			doc.Text(" "+expr.Op.String()+" "),
			p.exprIn(expr.Right, operandCtx),
		)
	case *wgsl.CallExpr:
		return doc.Concat(doc.Text(expr.Func.Name), p.argList(expr.Args, false))
	case *wgsl.ConstructExpr:
		return p.constructExpr(expr)
	case *wgsl.IndexExpr:
		return doc.Concat(p.Expr(expr.Expr), doc.Text("["), p.Expr(expr.Index), doc.Text("]"))
	case *wgsl.MemberExpr:
		return doc.Concat(p.Expr(expr.Expr), doc.Text("."), doc.Text(expr.Member))
	case *wgsl.BitcastExpr:
		return doc.Concat(
			doc.Text("bitcast<"), p.Type(expr.Type), doc.Text(">("),
			p.Expr(expr.Expr), doc.Text(")"),
		)
	default:
		return p.verbatim(e)
	}
}

func isArithmeticOp(op wgsl.TokenKind) bool {
	switch op {
	case wgsl.TokenPlus, wgsl.TokenMinus, wgsl.TokenStar, wgsl.TokenSlash, wgsl.TokenPercent:
		return true
	}
	return false
}

// argList prints a parenthesized argument list as a width-sensitive group.
func (p *Printer) argList(args []wgsl.Expr, floatCtx bool) doc.Fragment {
	if len(args) == 0 {
		return doc.Text("()")
	}

	items := make([]doc.Fragment, len(args))
	for i, arg := range args {
		items[i] = p.exprIn(arg, floatCtx)
	}

	return doc.Group(doc.Concat(
		doc.Text("("),
		doc.Indent(doc.Concat(
			doc.Softline(),
			doc.Join(doc.Concat(doc.Text(","), doc.Line()), items),
			doc.IfBreak(doc.Text(","), nil),
		)),
		doc.Softline(),
		doc.Text(")"),
	))
}

// Types

// Type prints a type expression.
func (p *Printer) Type(t wgsl.Type) doc.Fragment {
	switch typ := t.(type) {
	case *wgsl.NamedType:
		if len(typ.TypeParams) == 0 {
			return doc.Text(typ.Name)
		}
		parts := []doc.Fragment{doc.Text(typ.Name), doc.Text("<")}
		for i, param := range typ.TypeParams {
			if i > 0 {
				parts = append(parts, doc.Text(", "))
			}
			parts = append(parts, p.Type(param))
		}
		parts = append(parts, doc.Text(">"))
		return doc.Concat(parts...)
	case *wgsl.ArrayType:
		if typ.Element == nil {
			return doc.Text("array")
		}
		parts := []doc.Fragment{doc.Text("array<"), p.Type(typ.Element)}
		if typ.Size != nil {
			parts = append(parts, doc.Text(", "), p.Expr(typ.Size))
		}
		parts = append(parts, doc.Text(">"))
		return doc.Concat(parts...)
	case *wgsl.PtrType:
		parts := []doc.Fragment{
			doc.Text("ptr<"), doc.Text(typ.AddressSpace), doc.Text(", "), p.Type(typ.Pointee),
		}
		if typ.AccessMode != "" {
			parts = append(parts, doc.Text(", "), doc.Text(typ.AccessMode))
		}
		parts = append(parts, doc.Text(">"))
		return doc.Concat(parts...)
	default:
		return p.verbatim(t)
	}
}

// verbatim re-emits a node's original source slice unchanged. This is the
// safety valve for syntax the printer does not model: never a crash, never
// text loss, at the cost of no layout normalization.
func (p *Printer) verbatim(n wgsl.Node) doc.Fragment {
	span := n.Pos()
	if span.Start < 0 || span.End > len(p.source) || span.Start > span.End {
		return doc.Text("")
	}
	return doc.Text(p.source[span.Start:span.End])
}
