package gate

import (
	"fmt"

	"scratchc/logging"
	"scratchc/syntax"
)

// BannedFeatures is the closed list of host-environment constructs the
// translator refuses.  Matching is by exact dotted prefix: `window.location`
// bans `window.location.href` but not `window.locationbar`.
var BannedFeatures = []string{
	"window.location",
	"window.alert",
	"window.confirm",
	"window.prompt",
	"document.getElementById",
	"document.querySelector",
	"console.log",
	"localStorage",
	"sessionStorage",
	"fetch",
	"XMLHttpRequest",
	"setTimeout",
	"setInterval",
	"Promise",
}

// UnsupportedFeature indicates that a banned construct was observed.  Only
// the first occurrence in lexical pre-order is ever reported.
type UnsupportedFeature struct {
	Name string
	Line int
	Col  int
}

func (uf *UnsupportedFeature) Error() string {
	return fmt.Sprintf("unsupported feature `%s` (line %d, column %d)", uf.Name, uf.Line, uf.Col)
}

// Check walks the program in lexical pre-order and returns the first banned
// construct it finds, or nil if the program is clean.  It must run after the
// canvas preprocessor so that rewritten `document.getElementById` and
// `getContext` sites no longer trigger.
func Check(prg *syntax.Program) *UnsupportedFeature {
	c := &checker{}
	c.walkStmts(prg.Body)
	return c.found
}

type checker struct {
	found *UnsupportedFeature
}

func (c *checker) report(name string, pos *logging.TextPosition) {
	if c.found != nil {
		return
	}

	uf := &UnsupportedFeature{Name: name}
	if pos != nil {
		uf.Line = pos.Line
		uf.Col = pos.Col
	}

	c.found = uf
}

func (c *checker) walkStmts(stmts []syntax.Stmt) {
	for _, s := range stmts {
		if c.found != nil {
			return
		}

		c.walkStmt(s)
	}
}

func (c *checker) walkStmt(s syntax.Stmt) {
	switch v := s.(type) {
	case *syntax.VarDecl:
		c.walkExpr(v.Init)
	case *syntax.ExprStmt:
		c.walkExpr(v.X)
	case *syntax.IfStmt:
		c.walkExpr(v.Test)
		c.walkStmts(v.Body)
		c.walkStmts(v.Else)
	case *syntax.WhileStmt:
		c.walkExpr(v.Test)
		c.walkStmts(v.Body)
	case *syntax.ForStmt:
		c.walkStmts(v.Init)
		c.walkExpr(v.Test)
		if v.Update != nil {
			c.walkStmt(v.Update)
		}
		c.walkStmts(v.Body)
	case *syntax.BlockStmt:
		c.walkStmts(v.Body)
	case *syntax.FuncDecl:
		if v.Async {
			c.report("async", v.Position())
			return
		}

		c.walkStmts(v.Body)
	case *syntax.ReturnStmt:
		c.walkExpr(v.Value)
	}
}

func (c *checker) walkExpr(e syntax.Expr) {
	if e == nil || c.found != nil {
		return
	}

	switch v := e.(type) {
	case *syntax.AssignExpr:
		c.walkExpr(v.Target)
		c.walkExpr(v.Value)
	case *syntax.BinaryExpr:
		c.walkExpr(v.Left)
		c.walkExpr(v.Right)
	case *syntax.UnaryExpr:
		c.walkExpr(v.Operand)
	case *syntax.UpdateExpr:
		c.walkExpr(v.Target)
	case *syntax.CallExpr:
		c.walkExpr(v.Callee)
		for _, a := range v.Args {
			c.walkExpr(a)
		}
	case *syntax.MemberExpr:
		c.checkMember(v)
	case *syntax.Ident:
		c.checkName(v.Name, v.Position())
	case *syntax.ArrayLit:
		for _, el := range v.Elems {
			c.walkExpr(el)
		}
	case *syntax.ObjectLit:
		for _, p := range v.Props {
			c.walkExpr(p.Value)
		}
	case *syntax.FuncLit:
		if v.Async {
			c.report("async", v.Position())
			return
		}

		c.walkStmts(v.Body)
		c.walkExpr(v.Expr)
	case *syntax.AwaitExpr:
		c.report("await", v.Position())
	}
}

// checkMember matches the dotted form of a member expression against the
// banned list, then descends.  The dotted form is checked before the object
// so the report names the full banned prefix rather than its head.
func (c *checker) checkMember(m *syntax.MemberExpr) {
	if dotted, ok := m.DottedName(); ok {
		for _, banned := range BannedFeatures {
			if syntax.IsDottedPrefix(dotted, banned) {
				c.report(banned, m.Position())
				return
			}
		}
	}

	c.walkExpr(m.Object)
	if m.Computed {
		c.walkExpr(m.Index)
	}
}

// checkName catches bare references to banned globals (`fetch`, `Promise`,
// `localStorage`) that never appear under a member expression
func (c *checker) checkName(name string, pos *logging.TextPosition) {
	for _, banned := range BannedFeatures {
		if name == banned {
			c.report(banned, pos)
			return
		}
	}
}
