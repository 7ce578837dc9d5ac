package syntax

import (
	"scratchc/logging"
	"strings"
)

// Node represents a piece of the Abstract Syntax Tree (AST)
type Node interface {
	// Position should point at the start of the construct (meaningfully)
	Position() *logging.TextPosition
}

// Stmt is a Node that occurs in statement position
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a Node that occurs in expression position
type Expr interface {
	Node
	exprNode()
}

// -----------------------------------------------------------------------------

// Program is the root node of a translation unit
type Program struct {
	Body []Stmt

	Loc *logging.TextPosition
}

func (p *Program) Position() *logging.TextPosition { return p.Loc }

// VarDecl is a single variable declarator.  Multi-declarator statements
// (`let a = 1, b = 2`) are flattened into one VarDecl per declarator by the
// parser adapter.
type VarDecl struct {
	// Keyword is `var`, `let` or `const`
	Keyword string

	Name string

	// Init is nil when the declarator carries no initializer
	Init Expr

	Loc *logging.TextPosition
}

func (vd *VarDecl) Position() *logging.TextPosition { return vd.Loc }
func (vd *VarDecl) stmtNode()                       {}

// ExprStmt is an expression in statement position
type ExprStmt struct {
	X Expr

	Loc *logging.TextPosition
}

func (es *ExprStmt) Position() *logging.TextPosition { return es.Loc }
func (es *ExprStmt) stmtNode()                       {}

// IfStmt is an `if` statement.  Else is nil when there is no alternate.
type IfStmt struct {
	Test Expr
	Body []Stmt
	Else []Stmt

	Loc *logging.TextPosition
}

func (is *IfStmt) Position() *logging.TextPosition { return is.Loc }
func (is *IfStmt) stmtNode()                       {}

// WhileStmt is a `while` loop
type WhileStmt struct {
	Test Expr
	Body []Stmt

	Loc *logging.TextPosition
}

func (ws *WhileStmt) Position() *logging.TextPosition { return ws.Loc }
func (ws *WhileStmt) stmtNode()                       {}

// ForStmt is a C-style `for` loop.  Any of Init, Test and Update may be
// absent (nil or empty).
type ForStmt struct {
	Init   []Stmt
	Test   Expr
	Update Stmt
	Body   []Stmt

	Loc *logging.TextPosition
}

func (fs *ForStmt) Position() *logging.TextPosition { return fs.Loc }
func (fs *ForStmt) stmtNode()                       {}

// BlockStmt is a brace-delimited statement list
type BlockStmt struct {
	Body []Stmt

	Loc *logging.TextPosition
}

func (bs *BlockStmt) Position() *logging.TextPosition { return bs.Loc }
func (bs *BlockStmt) stmtNode()                       {}

// FuncDecl is a named `function` declaration
type FuncDecl struct {
	Name   string
	Params []string
	Body   []Stmt
	Async  bool

	Loc *logging.TextPosition
}

func (fd *FuncDecl) Position() *logging.TextPosition { return fd.Loc }
func (fd *FuncDecl) stmtNode()                       {}

// ReturnStmt is a `return` statement; Value is nil for a bare return
type ReturnStmt struct {
	Value Expr

	Loc *logging.TextPosition
}

func (rs *ReturnStmt) Position() *logging.TextPosition { return rs.Loc }
func (rs *ReturnStmt) stmtNode()                       {}

// -----------------------------------------------------------------------------

// AssignExpr is a simple assignment.  Compound assignment operators are
// desugared by the parser adapter (`a += b` becomes `a = a + b`) so Target
// and Value are all that remain.
type AssignExpr struct {
	Target Expr
	Value  Expr

	Loc *logging.TextPosition
}

func (ae *AssignExpr) Position() *logging.TextPosition { return ae.Loc }
func (ae *AssignExpr) exprNode()                       {}

// BinaryExpr is a binary operator application.  Op is the operator's source
// spelling (`+`, `<`, `===`, ...).
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr

	Loc *logging.TextPosition
}

func (be *BinaryExpr) Position() *logging.TextPosition { return be.Loc }
func (be *BinaryExpr) exprNode()                       {}

// UnaryExpr is a prefix unary operator application
type UnaryExpr struct {
	Op      string
	Operand Expr

	Loc *logging.TextPosition
}

func (ue *UnaryExpr) Position() *logging.TextPosition { return ue.Loc }
func (ue *UnaryExpr) exprNode()                       {}

// UpdateExpr is an increment or decrement (`i++`, `--i`)
type UpdateExpr struct {
	// Op is `++` or `--`
	Op      string
	Target  Expr
	Postfix bool

	Loc *logging.TextPosition
}

func (ue *UpdateExpr) Position() *logging.TextPosition { return ue.Loc }
func (ue *UpdateExpr) exprNode()                       {}

// CallExpr is a function or method call
type CallExpr struct {
	Callee Expr
	Args   []Expr

	Loc *logging.TextPosition
}

func (ce *CallExpr) Position() *logging.TextPosition { return ce.Loc }
func (ce *CallExpr) exprNode()                       {}

// MemberExpr is a property access.  For dotted access (`a.b`) Name holds the
// property and Computed is false; for bracketed access (`a[i]`) Computed is
// true and Index holds the subscript expression.
type MemberExpr struct {
	Object   Expr
	Name     string
	Index    Expr
	Computed bool

	Loc *logging.TextPosition
}

func (me *MemberExpr) Position() *logging.TextPosition { return me.Loc }
func (me *MemberExpr) exprNode()                       {}

// PropName returns the statically known property name of the access, if any:
// the dotted name, or the value of a string-literal subscript.
func (me *MemberExpr) PropName() (string, bool) {
	if !me.Computed {
		return me.Name, true
	}

	if s, ok := me.Index.(*StringLit); ok {
		return s.Value, true
	}

	return "", false
}

// DottedName renders the member expression as its dotted source form
// (`document.getElementById`).  It returns false if the chain is not built
// purely from identifiers and dotted accesses.
func (me *MemberExpr) DottedName() (string, bool) {
	if me.Computed {
		return "", false
	}

	switch obj := me.Object.(type) {
	case *Ident:
		return obj.Name + "." + me.Name, true
	case *MemberExpr:
		prefix, ok := obj.DottedName()
		if !ok {
			return "", false
		}

		return prefix + "." + me.Name, true
	default:
		return "", false
	}
}

// Ident is an identifier reference
type Ident struct {
	Name string

	Loc *logging.TextPosition
}

func (id *Ident) Position() *logging.TextPosition { return id.Loc }
func (id *Ident) exprNode()                       {}

// NumberLit is a numeric literal.  Raw preserves the source spelling so the
// lowerer can embed it without reformatting.
type NumberLit struct {
	Raw   string
	Value float64

	Loc *logging.TextPosition
}

func (nl *NumberLit) Position() *logging.TextPosition { return nl.Loc }
func (nl *NumberLit) exprNode()                       {}

// StringLit is a string literal (already unquoted)
type StringLit struct {
	Value string

	Loc *logging.TextPosition
}

func (sl *StringLit) Position() *logging.TextPosition { return sl.Loc }
func (sl *StringLit) exprNode()                       {}

// BoolLit is `true` or `false`
type BoolLit struct {
	Value bool

	Loc *logging.TextPosition
}

func (bl *BoolLit) Position() *logging.TextPosition { return bl.Loc }
func (bl *BoolLit) exprNode()                       {}

// NullLit is the `null` literal
type NullLit struct {
	Loc *logging.TextPosition
}

func (nl *NullLit) Position() *logging.TextPosition { return nl.Loc }
func (nl *NullLit) exprNode()                       {}

// FuncLit is a function expression or arrow function.  A concise arrow body
// is stored in Expr; a braced body in Body.
type FuncLit struct {
	Params []string
	Body   []Stmt
	Expr   Expr
	Arrow  bool
	Async  bool

	Loc *logging.TextPosition
}

func (fl *FuncLit) Position() *logging.TextPosition { return fl.Loc }
func (fl *FuncLit) exprNode()                       {}

// ArrayLit is an array literal
type ArrayLit struct {
	Elems []Expr

	Loc *logging.TextPosition
}

func (al *ArrayLit) Position() *logging.TextPosition { return al.Loc }
func (al *ArrayLit) exprNode()                       {}

// ObjectProp is one `key: value` entry of an object literal.  Identifier,
// string-literal and numeric-literal keys (the latter in their source
// spelling) are representable; computed and other keys are dropped by the
// parser adapter.
type ObjectProp struct {
	Key   string
	Value Expr

	Loc *logging.TextPosition
}

// ObjectLit is an object literal
type ObjectLit struct {
	Props []*ObjectProp

	Loc *logging.TextPosition
}

func (ol *ObjectLit) Position() *logging.TextPosition { return ol.Loc }
func (ol *ObjectLit) exprNode()                       {}

// AwaitExpr is an `await` expression.  It survives parsing only so the
// feature gate can reject it with a precise location.
type AwaitExpr struct {
	X Expr

	Loc *logging.TextPosition
}

func (ae *AwaitExpr) Position() *logging.TextPosition { return ae.Loc }
func (ae *AwaitExpr) exprNode()                       {}

// -----------------------------------------------------------------------------

// LiteralString renders a literal expression the way the target environment
// stores literal values: numbers keep their source spelling, strings their
// contents, booleans their keyword.  The second result is false for
// non-literal expressions.
func LiteralString(e Expr) (string, bool) {
	switch v := e.(type) {
	case *NumberLit:
		return v.Raw, true
	case *StringLit:
		return v.Value, true
	case *BoolLit:
		if v.Value {
			return "true", true
		}

		return "false", true
	case *NullLit:
		return "", true
	default:
		return "", false
	}
}

// IsDottedPrefix reports whether `name` matches `banned` as an exact dotted
// prefix: either the names are equal or `name` continues past `banned` at a
// dot boundary.
func IsDottedPrefix(name, banned string) bool {
	if name == banned {
		return true
	}

	return strings.HasPrefix(name, banned+".")
}
