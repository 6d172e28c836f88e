package wgsl

// Module represents a WGSL translation unit. Declarations are kept in source
// order so the formatter reproduces the author's layout.
type Module struct {
	Decls    []Decl
	Comments []Comment
	Source   string
}

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() Span
}

// Decl is the interface for top-level declarations.
type Decl interface {
	Node
	declNode()
}

// Stmt is the interface for statements.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface for expressions.
type Expr interface {
	Node
	exprNode()
}

// Type is the interface for type expressions.
type Type interface {
	Node
	typeNode()
}

// Attribute represents an attribute such as @vertex or @location(0).
type Attribute struct {
	Name string
	Args []Expr
	Span Span
}

// VarKind distinguishes the value declaration keywords, which share one node
// shape but differ in which clauses are legal.
type VarKind uint8

const (
	KindVar VarKind = iota
	KindLet
	KindConst
	KindOverride
)

func (k VarKind) String() string {
	switch k {
	case KindLet:
		return "let"
	case KindConst:
		return "const"
	case KindOverride:
		return "override"
	default:
		return "var"
	}
}

// VarDecl represents a var, let, const, or override declaration, global or
// local. AddressSpace and AccessMode are the optional `var<...>` qualifiers.
type VarDecl struct {
	Kind         VarKind
	Name         string
	Type         Type // nil when inferred
	Init         Expr // nil when absent
	AddressSpace string
	AccessMode   string
	Attributes   []Attribute
	Span         Span
}

func (v *VarDecl) Pos() Span { return v.Span }
func (v *VarDecl) declNode() {}
func (v *VarDecl) stmtNode() {}

// AliasDecl represents a type alias declaration.
type AliasDecl struct {
	Name string
	Type Type
	Span Span
}

func (a *AliasDecl) Pos() Span { return a.Span }
func (a *AliasDecl) declNode() {}

// StructDecl represents a struct declaration.
type StructDecl struct {
	Name       string
	Members    []*StructMember
	Attributes []Attribute
	Span       Span
}

func (s *StructDecl) Pos() Span { return s.Span }
func (s *StructDecl) declNode() {}

// StructMember represents a struct member.
type StructMember struct {
	Name       string
	Type       Type
	Attributes []Attribute
	Span       Span
}

// FunctionDecl represents a function declaration.
type FunctionDecl struct {
	Name        string
	Params      []*Parameter
	ReturnType  Type // nil for no return type
	ReturnAttrs []Attribute
	Attributes  []Attribute
	Body        *BlockStmt
	Span        Span
}

func (f *FunctionDecl) Pos() Span { return f.Span }
func (f *FunctionDecl) declNode() {}

// Parameter represents a function parameter.
type Parameter struct {
	Name       string
	Type       Type
	Attributes []Attribute
	Span       Span
}

// EnableDirective represents an enable directive.
type EnableDirective struct {
	Extensions []string
	Span       Span
}

func (e *EnableDirective) Pos() Span { return e.Span }
func (e *EnableDirective) declNode() {}

// RequiresDirective represents a requires directive.
type RequiresDirective struct {
	Extensions []string
	Span       Span
}

func (r *RequiresDirective) Pos() Span { return r.Span }
func (r *RequiresDirective) declNode() {}

// DiagnosticDirective represents a diagnostic(severity, rule) directive.
type DiagnosticDirective struct {
	Severity string
	Rule     string
	Span     Span
}

func (d *DiagnosticDirective) Pos() Span { return d.Span }
func (d *DiagnosticDirective) declNode() {}

// ConstAssert represents a const_assert declaration or statement.
type ConstAssert struct {
	Expr Expr
	Span Span
}

func (c *ConstAssert) Pos() Span { return c.Span }
func (c *ConstAssert) declNode() {}
func (c *ConstAssert) stmtNode() {}

// Types

// NamedType represents a named type, optionally with template parameters,
// e.g. f32, vec3<f32>, texture_2d<f32>, atomic<u32>.
type NamedType struct {
	Name       string
	TypeParams []Type
	Span       Span
}

func (n *NamedType) Pos() Span { return n.Span }
func (n *NamedType) typeNode() {}

// ArrayType represents array<E> or array<E, N>.
type ArrayType struct {
	Element Type
	Size    Expr // nil for runtime-sized arrays
	Span    Span
}

func (a *ArrayType) Pos() Span { return a.Span }
func (a *ArrayType) typeNode() {}

// PtrType represents ptr<space, T> or ptr<space, T, access>.
type PtrType struct {
	AddressSpace string
	Pointee      Type
	AccessMode   string
	Span         Span
}

func (p *PtrType) Pos() Span { return p.Span }
func (p *PtrType) typeNode() {}

// Statements

// BlockStmt represents a brace-delimited statement list.
type BlockStmt struct {
	Statements []Stmt
	Span       Span
}

func (b *BlockStmt) Pos() Span { return b.Span }
func (b *BlockStmt) stmtNode() {}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	Value Expr // nil for bare return
	Span  Span
}

func (r *ReturnStmt) Pos() Span { return r.Span }
func (r *ReturnStmt) stmtNode() {}

// IfStmt represents an if statement. Else is nil, another *IfStmt for
// `else if` chains, or a *BlockStmt for a final else.
type IfStmt struct {
	Condition Expr
	Body      *BlockStmt
	Else      Stmt
	Span      Span
}

func (i *IfStmt) Pos() Span { return i.Span }
func (i *IfStmt) stmtNode() {}

// ForStmt represents a for loop. Any header clause may be nil.
type ForStmt struct {
	Init      Stmt
	Condition Expr
	Update    Stmt
	Body      *BlockStmt
	Span      Span
}

func (f *ForStmt) Pos() Span { return f.Span }
func (f *ForStmt) stmtNode() {}

// WhileStmt represents a while loop.
type WhileStmt struct {
	Condition Expr
	Body      *BlockStmt
	Span      Span
}

func (w *WhileStmt) Pos() Span { return w.Span }
func (w *WhileStmt) stmtNode() {}

// LoopStmt represents a loop statement with an optional continuing block.
type LoopStmt struct {
	Body       *BlockStmt
	Continuing *BlockStmt
	Span       Span
}

func (l *LoopStmt) Pos() Span { return l.Span }
func (l *LoopStmt) stmtNode() {}

// BreakStmt represents a break statement, optionally `break if` inside a
// continuing block.
type BreakStmt struct {
	If   Expr // nil for plain break
	Span Span
}

func (b *BreakStmt) Pos() Span { return b.Span }
func (b *BreakStmt) stmtNode() {}

// ContinueStmt represents a continue statement.
type ContinueStmt struct {
	Span Span
}

func (c *ContinueStmt) Pos() Span { return c.Span }
func (c *ContinueStmt) stmtNode() {}

// DiscardStmt represents a discard statement.
type DiscardStmt struct {
	Span Span
}

func (d *DiscardStmt) Pos() Span { return d.Span }
func (d *DiscardStmt) stmtNode() {}

// AssignStmt represents simple and compound assignment, including
// assignment to the phony `_` target.
type AssignStmt struct {
	Left  Expr
	Op    TokenKind
	Right Expr
	Span  Span
}

func (a *AssignStmt) Pos() Span { return a.Span }
func (a *AssignStmt) stmtNode() {}

// IncDecStmt represents i++ and i--.
type IncDecStmt struct {
	Target Expr
	Op     TokenKind // TokenPlusPlus or TokenMinusMinus
	Span   Span
}

func (i *IncDecStmt) Pos() Span { return i.Span }
func (i *IncDecStmt) stmtNode() {}

// ExprStmt represents a bare call used as a statement.
type ExprStmt struct {
	Expr Expr
	Span Span
}

func (e *ExprStmt) Pos() Span { return e.Span }
func (e *ExprStmt) stmtNode() {}

// SwitchStmt represents a switch statement.
type SwitchStmt struct {
	Selector Expr
	Cases    []*CaseClause
	Span     Span
}

func (s *SwitchStmt) Pos() Span { return s.Span }
func (s *SwitchStmt) stmtNode() {}

// CaseClause represents a case or default clause. A default clause has
// IsDefault set and no selectors.
type CaseClause struct {
	Selectors []Expr
	IsDefault bool
	Body      *BlockStmt
	Span      Span
}

// Expressions

// Ident represents an identifier.
type Ident struct {
	Name string
	Span Span
}

func (i *Ident) Pos() Span { return i.Span }
func (i *Ident) exprNode() {}

// Literal represents an integer, float, or boolean literal. Value is the
// exact source text including any suffix.
type Literal struct {
	Kind  TokenKind // TokenIntLiteral, TokenFloatLiteral, TokenBoolLiteral
	Value string
	Span  Span
}

func (l *Literal) Pos() Span { return l.Span }
func (l *Literal) exprNode() {}

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	Left  Expr
	Op    TokenKind
	Right Expr
	Span  Span
}

func (b *BinaryExpr) Pos() Span { return b.Span }
func (b *BinaryExpr) exprNode() {}

// UnaryExpr represents a unary expression.
type UnaryExpr struct {
	Op      TokenKind
	Operand Expr
	Span    Span
}

func (u *UnaryExpr) Pos() Span { return u.Span }
func (u *UnaryExpr) exprNode() {}

// ParenExpr represents an explicitly parenthesized expression. The parser
// records parentheses rather than discarding them so the printer reproduces
// grouping exactly as written; precedence is never re-derived.
type ParenExpr struct {
	Expr Expr
	Span Span
}

func (p *ParenExpr) Pos() Span { return p.Span }
func (p *ParenExpr) exprNode() {}

// CallExpr represents a call to a named function.
type CallExpr struct {
	Func *Ident
	Args []Expr
	Span Span
}

func (c *CallExpr) Pos() Span { return c.Span }
func (c *CallExpr) exprNode() {}

// ConstructExpr represents a type constructor call such as vec3<f32>(...)
// or mat2x2<f32>(...).
type ConstructExpr struct {
	Type Type
	Args []Expr
	Span Span
}

func (c *ConstructExpr) Pos() Span { return c.Span }
func (c *ConstructExpr) exprNode() {}

// IndexExpr represents an index expression.
type IndexExpr struct {
	Expr  Expr
	Index Expr
	Span  Span
}

func (i *IndexExpr) Pos() Span { return i.Span }
func (i *IndexExpr) exprNode() {}

// MemberExpr represents a member access expression.
type MemberExpr struct {
	Expr   Expr
	Member string
	Span   Span
}

func (m *MemberExpr) Pos() Span { return m.Span }
func (m *MemberExpr) exprNode() {}

// BitcastExpr represents bitcast<T>(expr).
type BitcastExpr struct {
	Type Type
	Expr Expr
	Span Span
}

func (b *BitcastExpr) Pos() Span { return b.Span }
func (b *BitcastExpr) exprNode() {}
