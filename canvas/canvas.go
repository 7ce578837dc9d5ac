package canvas

import (
	"strconv"
	"strings"

	"scratchc/logging"
	"scratchc/syntax"
)

// Names of the private namespace the rewrite targets.  The symbol analyzer
// and lowerer treat these like any other user variable or call.
const (
	PenColorVar    = "scratch_pen_color"
	StrokeColorVar = "scratch_stroke_color"
	LineWidthVar   = "scratch_line_width"
	TextSizeVar    = "scratch_text_size"
	SayFunc        = "scratch_say"
)

// context-state properties whose assignment becomes a variable assignment
var propertyVars = map[string]string{
	"fillStyle":   PenColorVar,
	"strokeStyle": StrokeColorVar,
	"lineWidth":   LineWidthVar,
}

// context properties whose assignment is dropped outright
var droppedProperties = map[string]bool{
	"textAlign":    true,
	"textBaseline": true,
}

// context methods whose calls are dropped outright: geometry and path
// plumbing with no block equivalent
var droppedMethods = map[string]bool{
	"fillRect":   true,
	"strokeRect": true,
	"clearRect":  true,
	"arc":        true,
	"beginPath":  true,
	"closePath":  true,
	"moveTo":     true,
	"lineTo":     true,
	"stroke":     true,
	"fill":       true,
	"save":       true,
	"restore":    true,
}

// context methods rewritten to a scratch_say call
var sayMethods = map[string]bool{
	"fillText":   true,
	"strokeText": true,
}

// Rewrite replaces canvas-2D usage in the program with calls and assignments
// in the scratch_ namespace, per the fixed rewrite table.  The rewrite is
// best-effort and purely structural: a program with no canvas bindings is
// returned unchanged.  The input program is not mutated; statement lists are
// rebuilt where rewriting occurs.
func Rewrite(prg *syntax.Program) *syntax.Program {
	r := &rewriter{
		elements: make(map[string]bool),
		contexts: make(map[string]bool),
	}

	r.collect(prg.Body)
	if len(r.elements) == 0 && len(r.contexts) == 0 {
		return prg
	}

	return &syntax.Program{
		Body: r.rewriteStmts(prg.Body),
		Loc:  prg.Loc,
	}
}

type rewriter struct {
	// elements holds names bound to `document.getElementById(...)`
	elements map[string]bool

	// contexts holds names bound to `<element>.getContext(...)`
	contexts map[string]bool
}

// collect is the first pass: find canvas-element and canvas-context bindings
// anywhere in the program
func (r *rewriter) collect(stmts []syntax.Stmt) {
	for _, s := range stmts {
		switch v := s.(type) {
		case *syntax.VarDecl:
			r.collectBinding(v.Name, v.Init)
		case *syntax.ExprStmt:
			if assign, ok := v.X.(*syntax.AssignExpr); ok {
				if target, ok := assign.Target.(*syntax.Ident); ok {
					r.collectBinding(target.Name, assign.Value)
				}
			}
		case *syntax.IfStmt:
			r.collect(v.Body)
			r.collect(v.Else)
		case *syntax.WhileStmt:
			r.collect(v.Body)
		case *syntax.ForStmt:
			r.collect(v.Init)
			r.collect(v.Body)
		case *syntax.BlockStmt:
			r.collect(v.Body)
		case *syntax.FuncDecl:
			r.collect(v.Body)
		}
	}
}

func (r *rewriter) collectBinding(name string, init syntax.Expr) {
	call, ok := init.(*syntax.CallExpr)
	if !ok {
		return
	}

	callee, ok := call.Callee.(*syntax.MemberExpr)
	if !ok {
		return
	}

	if dotted, ok := callee.DottedName(); ok && dotted == "document.getElementById" {
		r.elements[name] = true
		return
	}

	prop, ok := callee.PropName()
	if !ok || prop != "getContext" {
		return
	}

	// the receiver must be a known canvas element, or an identifier that at
	// least looks like one (`canvas.getContext(...)` with the element bound
	// elsewhere, eg. in HTML)
	if recv, ok := callee.Object.(*syntax.Ident); ok {
		if r.elements[recv.Name] || strings.Contains(strings.ToLower(recv.Name), "canvas") {
			r.contexts[name] = true
		}
	}
}

// -----------------------------------------------------------------------------

// rewriteStmts is the second pass: rebuild a statement list with canvas
// statements rewritten or dropped
func (r *rewriter) rewriteStmts(stmts []syntax.Stmt) []syntax.Stmt {
	var out []syntax.Stmt
	for _, s := range stmts {
		if repl, drop := r.rewriteStmt(s); !drop {
			out = append(out, repl)
		}
	}

	return out
}

// rewriteStmt returns the replacement for one statement and whether the
// statement should be dropped instead
func (r *rewriter) rewriteStmt(s syntax.Stmt) (syntax.Stmt, bool) {
	switch v := s.(type) {
	case *syntax.VarDecl:
		// the bindings themselves vanish from the translated program
		if r.elements[v.Name] || r.contexts[v.Name] {
			return nil, true
		}

		return v, false
	case *syntax.ExprStmt:
		return r.rewriteExprStmt(v)
	case *syntax.IfStmt:
		return &syntax.IfStmt{
			Test: v.Test,
			Body: r.rewriteStmts(v.Body),
			Else: r.rewriteStmts(v.Else),
			Loc:  v.Loc,
		}, false
	case *syntax.WhileStmt:
		return &syntax.WhileStmt{Test: v.Test, Body: r.rewriteStmts(v.Body), Loc: v.Loc}, false
	case *syntax.ForStmt:
		return &syntax.ForStmt{
			Init:   r.rewriteStmts(v.Init),
			Test:   v.Test,
			Update: v.Update,
			Body:   r.rewriteStmts(v.Body),
			Loc:    v.Loc,
		}, false
	case *syntax.BlockStmt:
		return &syntax.BlockStmt{Body: r.rewriteStmts(v.Body), Loc: v.Loc}, false
	case *syntax.FuncDecl:
		return &syntax.FuncDecl{
			Name:   v.Name,
			Params: v.Params,
			Body:   r.rewriteStmts(v.Body),
			Async:  v.Async,
			Loc:    v.Loc,
		}, false
	default:
		return s, false
	}
}

func (r *rewriter) rewriteExprStmt(es *syntax.ExprStmt) (syntax.Stmt, bool) {
	switch x := es.X.(type) {
	case *syntax.AssignExpr:
		if repl, handled, drop := r.rewriteAssign(x); handled {
			if drop {
				return nil, true
			}

			return &syntax.ExprStmt{X: repl, Loc: es.Loc}, false
		}

		// re-binding a canvas name drops the statement too
		if target, ok := x.Target.(*syntax.Ident); ok {
			if r.elements[target.Name] || r.contexts[target.Name] {
				return nil, true
			}
		}
	case *syntax.CallExpr:
		if repl, handled, drop := r.rewriteCall(x); handled {
			if drop {
				return nil, true
			}

			return &syntax.ExprStmt{X: repl, Loc: es.Loc}, false
		}
	}

	return es, false
}

// rewriteAssign handles `ctx.<prop> = E` forms.  The second result reports
// whether the assignment targeted a context binding at all.
func (r *rewriter) rewriteAssign(assign *syntax.AssignExpr) (syntax.Expr, bool, bool) {
	member, ok := assign.Target.(*syntax.MemberExpr)
	if !ok {
		return nil, false, false
	}

	recv, ok := member.Object.(*syntax.Ident)
	if !ok || !r.contexts[recv.Name] {
		return nil, false, false
	}

	prop, ok := member.PropName()
	if !ok {
		return nil, true, true
	}

	if varName, ok := propertyVars[prop]; ok {
		return &syntax.AssignExpr{
			Target: &syntax.Ident{Name: varName, Loc: member.Loc},
			Value:  assign.Value,
			Loc:    assign.Loc,
		}, true, false
	}

	if prop == "font" {
		return &syntax.AssignExpr{
			Target: &syntax.Ident{Name: TextSizeVar, Loc: member.Loc},
			Value:  fontSize(assign.Value, assign.Loc),
			Loc:    assign.Loc,
		}, true, false
	}

	if droppedProperties[prop] {
		return nil, true, true
	}

	// unknown context property: drop rather than leak the binding name
	return nil, true, true
}

// rewriteCall handles `ctx.<method>(...)` forms
func (r *rewriter) rewriteCall(call *syntax.CallExpr) (syntax.Expr, bool, bool) {
	member, ok := call.Callee.(*syntax.MemberExpr)
	if !ok {
		return nil, false, false
	}

	recv, ok := member.Object.(*syntax.Ident)
	if !ok || !r.contexts[recv.Name] {
		return nil, false, false
	}

	prop, ok := member.PropName()
	if !ok {
		return nil, true, true
	}

	if sayMethods[prop] {
		return &syntax.CallExpr{
			Callee: &syntax.Ident{Name: SayFunc, Loc: member.Loc},
			Args:   call.Args,
			Loc:    call.Loc,
		}, true, false
	}

	if droppedMethods[prop] {
		return nil, true, true
	}

	return nil, true, true
}

// fontSize extracts the integer pixel size out of a CSS font shorthand
// literal (`"30px Arial"` -> 30).  Non-literal or unparseable fonts fall
// back to size 0.
func fontSize(value syntax.Expr, loc *logging.TextPosition) syntax.Expr {
	size := 0
	if s, ok := value.(*syntax.StringLit); ok {
		digits := s.Value
		for i, ch := range digits {
			if ch < '0' || ch > '9' {
				digits = digits[:i]
				break
			}
		}

		if n, err := strconv.Atoi(digits); err == nil {
			size = n
		}
	}

	return &syntax.NumberLit{Raw: strconv.Itoa(size), Value: float64(size), Loc: loc}
}
