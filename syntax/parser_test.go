package syntax

import (
	"testing"
)

func TestParseVariableDeclarations(t *testing.T) {
	prg, err := Parse("test.js", "let x = 10, y = 'hi';\nconst z = true;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(prg.Body) != 3 {
		t.Fatalf("statement count = %d, want 3 (declarators flatten)", len(prg.Body))
	}

	x, ok := prg.Body[0].(*VarDecl)
	if !ok {
		t.Fatalf("first statement = %T, want *VarDecl", prg.Body[0])
	}
	if x.Name != "x" || x.Keyword != "let" {
		t.Errorf("first declarator = %s (%s), want x (let)", x.Name, x.Keyword)
	}
	num, ok := x.Init.(*NumberLit)
	if !ok || num.Raw != "10" {
		t.Errorf("x initializer = %#v, want NumberLit 10", x.Init)
	}

	y := prg.Body[1].(*VarDecl)
	if s, ok := y.Init.(*StringLit); !ok || s.Value != "hi" {
		t.Errorf("y initializer = %#v, want StringLit hi", y.Init)
	}

	z := prg.Body[2].(*VarDecl)
	if z.Keyword != "const" {
		t.Errorf("z keyword = %q, want const", z.Keyword)
	}
	if b, ok := z.Init.(*BoolLit); !ok || !b.Value {
		t.Errorf("z initializer = %#v, want BoolLit true", z.Init)
	}
}

func TestParsePositions(t *testing.T) {
	prg, err := Parse("test.js", "let a = 1;\nlet b = 2;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	b := prg.Body[1].(*VarDecl)
	if b.Position() == nil {
		t.Fatal("second declarator has no position")
	}
	if b.Position().Line != 2 {
		t.Errorf("second declarator line = %d, want 2", b.Position().Line)
	}
}

func TestParseError(t *testing.T) {
	_, err := Parse("test.js", "let x = ;")
	if err == nil {
		t.Fatal("Parse succeeded on invalid source")
	}

	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.Line == 0 {
		t.Error("parse error carries no line")
	}
}

func TestParseCompoundAssignmentDesugars(t *testing.T) {
	prg, err := Parse("test.js", "x += 2;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	assign := prg.Body[0].(*ExprStmt).X.(*AssignExpr)
	add, ok := assign.Value.(*BinaryExpr)
	if !ok || add.Op != "+" {
		t.Fatalf("compound value = %#v, want BinaryExpr +", assign.Value)
	}
	if left, ok := add.Left.(*Ident); !ok || left.Name != "x" {
		t.Errorf("desugared left = %#v, want Ident x", add.Left)
	}
}

func TestParseArrowForms(t *testing.T) {
	prg, err := Parse("test.js", "const add = (a, b) => a + b;\nconst f = (n) => { return n; };")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	concise := prg.Body[0].(*VarDecl).Init.(*FuncLit)
	if !concise.Arrow {
		t.Error("concise arrow not marked Arrow")
	}
	if concise.Expr == nil {
		t.Error("concise arrow body not captured as expression")
	}
	if len(concise.Params) != 2 || concise.Params[0] != "a" {
		t.Errorf("concise params = %v, want [a b]", concise.Params)
	}

	braced := prg.Body[1].(*VarDecl).Init.(*FuncLit)
	if braced.Expr != nil {
		t.Error("braced arrow captured an expression body")
	}
	if len(braced.Body) != 1 {
		t.Errorf("braced arrow body length = %d, want 1", len(braced.Body))
	}
}

func TestParseFoldsNegativeLiterals(t *testing.T) {
	prg, err := Parse("test.js", "let x = -5;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	num, ok := prg.Body[0].(*VarDecl).Init.(*NumberLit)
	if !ok {
		t.Fatalf("initializer = %#v, want folded NumberLit", prg.Body[0].(*VarDecl).Init)
	}
	if num.Raw != "-5" {
		t.Errorf("folded literal = %q, want -5", num.Raw)
	}
}

func TestParseUpdateExpression(t *testing.T) {
	prg, err := Parse("test.js", "i++;")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	upd, ok := prg.Body[0].(*ExprStmt).X.(*UpdateExpr)
	if !ok {
		t.Fatalf("statement = %#v, want UpdateExpr", prg.Body[0])
	}
	if upd.Op != "++" || !upd.Postfix {
		t.Errorf("update = %s postfix=%v, want ++ postfix", upd.Op, upd.Postfix)
	}
}

func TestParseMemberForms(t *testing.T) {
	prg, err := Parse("test.js", "a.b.c; a['k']; a[i];")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	dotted := prg.Body[0].(*ExprStmt).X.(*MemberExpr)
	if name, ok := dotted.DottedName(); !ok || name != "a.b.c" {
		t.Errorf("dotted name = %q (%v), want a.b.c", name, ok)
	}

	keyed := prg.Body[1].(*ExprStmt).X.(*MemberExpr)
	if prop, ok := keyed.PropName(); !ok || prop != "k" {
		t.Errorf("string-keyed prop = %q (%v), want k", prop, ok)
	}

	indexed := prg.Body[2].(*ExprStmt).X.(*MemberExpr)
	if _, ok := indexed.PropName(); ok {
		t.Error("dynamic subscript reported a static prop name")
	}
	if !indexed.Computed {
		t.Error("subscript access not marked computed")
	}
}

func TestIsDottedPrefix(t *testing.T) {
	if !IsDottedPrefix("window.location", "window.location") {
		t.Error("exact name did not match")
	}
	if !IsDottedPrefix("window.location.href", "window.location") {
		t.Error("dotted continuation did not match")
	}
	if IsDottedPrefix("window.locationbar", "window.location") {
		t.Error("non-boundary continuation matched")
	}
}
