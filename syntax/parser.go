package syntax

import (
	"fmt"
	"strings"

	"scratchc/logging"

	js "github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/parser"
)

// ParseError indicates that the input is not syntactically valid JavaScript
type ParseError struct {
	Message string
	Line    int
	Col     int
}

func (pe *ParseError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", pe.Message, pe.Line, pe.Col)
}

// Parse parses a JavaScript source string into the standardized AST consumed
// by the downstream phases.  `path` is used only for diagnostics.  On any
// lexical or syntactic error it returns a *ParseError and no program.
func Parse(path, src string) (*Program, error) {
	prg, err := parser.ParseFile(nil, path, src, 0)
	if err != nil {
		return nil, convertParseError(err)
	}

	c := &converter{file: prg.File}

	program := &Program{
		Body: c.convertStmts(prg.Body),
		Loc:  &logging.TextPosition{Line: 1, Col: 1},
	}

	return program, nil
}

// convertParseError extracts the first reported position out of the parser's
// error list
func convertParseError(err error) *ParseError {
	if list, ok := err.(parser.ErrorList); ok && len(list) > 0 {
		first := list[0]
		return &ParseError{
			Message: first.Message,
			Line:    first.Position.Line,
			Col:     first.Position.Column,
		}
	}

	return &ParseError{Message: err.Error(), Line: 1, Col: 1}
}

// converter flattens the parser's AST into the standardized form: one node
// kind per construct the translator understands, `{line, column}` on every
// node, compound assignments desugared, multi-declarator statements split.
// Constructs outside the supported subset convert to nil and are dropped by
// the callers.
type converter struct {
	file *file.File
}

// at converts a parser index into a text position
func (c *converter) at(idx file.Idx) *logging.TextPosition {
	if c.file == nil {
		return &logging.TextPosition{Line: 1, Col: 1}
	}

	p := c.file.Position(int(idx) - c.file.Base())
	return &logging.TextPosition{Line: p.Line, Col: p.Column}
}

func (c *converter) convertStmts(stmts []js.Statement) []Stmt {
	var out []Stmt
	for _, s := range stmts {
		out = append(out, c.convertStmt(s)...)
	}

	return out
}

// convertStmt converts one parser statement into zero or more standardized
// statements
func (c *converter) convertStmt(s js.Statement) []Stmt {
	switch v := s.(type) {
	case *js.VariableStatement:
		return c.convertBindings("var", v.List)
	case *js.LexicalDeclaration:
		return c.convertBindings(strings.ToLower(v.Token.String()), v.List)
	case *js.ExpressionStatement:
		x := c.convertExpr(v.Expression)
		if x == nil {
			return nil
		}

		return []Stmt{&ExprStmt{X: x, Loc: x.Position()}}
	case *js.BlockStatement:
		return []Stmt{&BlockStmt{
			Body: c.convertStmts(v.List),
			Loc:  c.at(v.LeftBrace),
		}}
	case *js.IfStatement:
		return []Stmt{&IfStmt{
			Test: c.convertExpr(v.Test),
			Body: c.bodyOf(v.Consequent),
			Else: c.bodyOf(v.Alternate),
			Loc:  c.at(v.If),
		}}
	case *js.WhileStatement:
		return []Stmt{&WhileStmt{
			Test: c.convertExpr(v.Test),
			Body: c.bodyOf(v.Body),
			Loc:  c.at(v.While),
		}}
	case *js.ForStatement:
		return []Stmt{c.convertFor(v)}
	case *js.FunctionDeclaration:
		return []Stmt{c.convertFuncDecl(v.Function)}
	case *js.ReturnStatement:
		var value Expr
		if v.Argument != nil {
			value = c.convertExpr(v.Argument)
		}

		return []Stmt{&ReturnStmt{Value: value, Loc: c.at(v.Return)}}
	default:
		// empty statements and constructs outside the subset contribute
		// nothing; the feature gate and lowerer never see them
		return nil
	}
}

// convertBindings splits a declarator list into one VarDecl per binding.
// Destructuring targets are outside the subset and are dropped.
func (c *converter) convertBindings(keyword string, list []*js.Binding) []Stmt {
	var out []Stmt
	for _, b := range list {
		target, ok := b.Target.(*js.Identifier)
		if !ok {
			continue
		}

		var init Expr
		if b.Initializer != nil {
			init = c.convertExpr(b.Initializer)
		}

		out = append(out, &VarDecl{
			Keyword: keyword,
			Name:    target.Name.String(),
			Init:    init,
			Loc:     c.at(target.Idx),
		})
	}

	return out
}

func (c *converter) convertFor(v *js.ForStatement) Stmt {
	f := &ForStmt{
		Body: c.bodyOf(v.Body),
		Loc:  c.at(v.For),
	}

	switch init := v.Initializer.(type) {
	case *js.ForLoopInitializerExpression:
		if x := c.convertExpr(init.Expression); x != nil {
			f.Init = []Stmt{&ExprStmt{X: x, Loc: x.Position()}}
		}
	case *js.ForLoopInitializerVarDeclList:
		f.Init = c.convertBindings("var", init.List)
	case *js.ForLoopInitializerLexicalDecl:
		decl := init.LexicalDeclaration
		f.Init = c.convertBindings(strings.ToLower(decl.Token.String()), decl.List)
	}

	if v.Test != nil {
		f.Test = c.convertExpr(v.Test)
	}

	if v.Update != nil {
		if x := c.convertExpr(v.Update); x != nil {
			f.Update = &ExprStmt{X: x, Loc: x.Position()}
		}
	}

	return f
}

func (c *converter) convertFuncDecl(lit *js.FunctionLiteral) *FuncDecl {
	name := ""
	if lit.Name != nil {
		name = lit.Name.Name.String()
	}

	return &FuncDecl{
		Name:   name,
		Params: c.paramNames(lit.ParameterList),
		Body:   c.bodyOf(lit.Body),
		Async:  lit.Async,
		Loc:    c.at(lit.Function),
	}
}

// bodyOf normalizes a statement into a statement list: blocks flatten to
// their contents, a lone statement becomes a singleton list
func (c *converter) bodyOf(s js.Statement) []Stmt {
	if s == nil {
		return nil
	}

	if block, ok := s.(*js.BlockStatement); ok {
		return c.convertStmts(block.List)
	}

	return c.convertStmt(s)
}

func (c *converter) paramNames(pl *js.ParameterList) []string {
	if pl == nil {
		return nil
	}

	var names []string
	for _, b := range pl.List {
		if id, ok := b.Target.(*js.Identifier); ok {
			names = append(names, id.Name.String())
		}
	}

	return names
}

// -----------------------------------------------------------------------------

// convertExpr converts one parser expression.  Expressions outside the
// subset convert to nil; the lowerer encodes nil as its safe fallback.
func (c *converter) convertExpr(e js.Expression) Expr {
	if e == nil {
		return nil
	}

	switch v := e.(type) {
	case *js.AssignExpression:
		return c.convertAssign(v)
	case *js.BinaryExpression:
		return &BinaryExpr{
			Op:    v.Operator.String(),
			Left:  c.convertExpr(v.Left),
			Right: c.convertExpr(v.Right),
			Loc:   c.exprAt(v.Left),
		}
	case *js.UnaryExpression:
		return c.convertUnary(v)
	case *js.CallExpression:
		var args []Expr
		for _, a := range v.ArgumentList {
			args = append(args, c.convertExpr(a))
		}

		callee := c.convertExpr(v.Callee)
		if callee == nil {
			return nil
		}

		return &CallExpr{Callee: callee, Args: args, Loc: callee.Position()}
	case *js.DotExpression:
		obj := c.convertExpr(v.Left)
		if obj == nil {
			return nil
		}

		return &MemberExpr{
			Object: obj,
			Name:   v.Identifier.Name.String(),
			Loc:    obj.Position(),
		}
	case *js.BracketExpression:
		obj := c.convertExpr(v.Left)
		if obj == nil {
			return nil
		}

		return &MemberExpr{
			Object:   obj,
			Index:    c.convertExpr(v.Member),
			Computed: true,
			Loc:      obj.Position(),
		}
	case *js.Identifier:
		return &Ident{Name: v.Name.String(), Loc: c.at(v.Idx)}
	case *js.NumberLiteral:
		return &NumberLit{Raw: v.Literal, Value: numberValue(v.Value), Loc: c.at(v.Idx)}
	case *js.StringLiteral:
		return &StringLit{Value: v.Value.String(), Loc: c.at(v.Idx)}
	case *js.BooleanLiteral:
		return &BoolLit{Value: v.Value, Loc: c.at(v.Idx)}
	case *js.NullLiteral:
		return &NullLit{Loc: c.at(v.Idx)}
	case *js.ArrayLiteral:
		lit := &ArrayLit{Loc: c.at(v.LeftBracket)}
		for _, el := range v.Value {
			if el == nil {
				continue
			}

			lit.Elems = append(lit.Elems, c.convertExpr(el))
		}

		return lit
	case *js.ObjectLiteral:
		return c.convertObject(v)
	case *js.FunctionLiteral:
		return &FuncLit{
			Params: c.paramNames(v.ParameterList),
			Body:   c.bodyOf(v.Body),
			Async:  v.Async,
			Loc:    c.at(v.Function),
		}
	case *js.ArrowFunctionLiteral:
		return c.convertArrow(v)
	case *js.AwaitExpression:
		return &AwaitExpr{X: c.convertExpr(v.Argument), Loc: c.at(v.Await)}
	default:
		return nil
	}
}

func (c *converter) exprAt(e js.Expression) *logging.TextPosition {
	if e == nil {
		return &logging.TextPosition{Line: 1, Col: 1}
	}

	return c.at(e.Idx0())
}

// convertAssign desugars compound assignment (`a += b` -> `a = a + b`) so
// downstream phases only ever see plain assignment
func (c *converter) convertAssign(v *js.AssignExpression) Expr {
	target := c.convertExpr(v.Left)
	value := c.convertExpr(v.Right)
	if target == nil {
		return nil
	}

	op := v.Operator.String()
	if op != "=" {
		value = &BinaryExpr{
			Op:    strings.TrimSuffix(op, "="),
			Left:  target,
			Right: value,
			Loc:   target.Position(),
		}
	}

	return &AssignExpr{Target: target, Value: value, Loc: target.Position()}
}

func (c *converter) convertUnary(v *js.UnaryExpression) Expr {
	op := v.Operator.String()

	if op == "++" || op == "--" {
		return &UpdateExpr{
			Op:      op,
			Target:  c.convertExpr(v.Operand),
			Postfix: v.Postfix,
			Loc:     c.at(v.Idx),
		}
	}

	operand := c.convertExpr(v.Operand)

	// fold a literal sign so negative constants stay literals
	if op == "-" {
		if num, ok := operand.(*NumberLit); ok {
			return &NumberLit{Raw: "-" + num.Raw, Value: -num.Value, Loc: c.at(v.Idx)}
		}
	}

	return &UnaryExpr{Op: op, Operand: operand, Loc: c.at(v.Idx)}
}

func (c *converter) convertObject(v *js.ObjectLiteral) Expr {
	lit := &ObjectLit{Loc: c.at(v.LeftBrace)}

	for _, p := range v.Value {
		switch prop := p.(type) {
		case *js.PropertyKeyed:
			if prop.Computed {
				continue
			}

			key, ok := propertyKey(prop.Key)
			if !ok {
				continue
			}

			value := c.convertExpr(prop.Value)
			lit.Props = append(lit.Props, &ObjectProp{Key: key, Value: value, Loc: c.exprAt(prop.Key)})
		case *js.PropertyShort:
			lit.Props = append(lit.Props, &ObjectProp{
				Key:   prop.Name.Name.String(),
				Value: &Ident{Name: prop.Name.Name.String(), Loc: c.at(prop.Name.Idx)},
				Loc:   c.at(prop.Name.Idx),
			})
		}
	}

	return lit
}

// propertyKey extracts an identifier or string-literal object key
func propertyKey(e js.Expression) (string, bool) {
	switch k := e.(type) {
	case *js.StringLiteral:
		return k.Value.String(), true
	case *js.Identifier:
		return k.Name.String(), true
	case *js.NumberLiteral:
		return k.Literal, true
	default:
		return "", false
	}
}

func (c *converter) convertArrow(v *js.ArrowFunctionLiteral) Expr {
	lit := &FuncLit{
		Params: c.paramNames(v.ParameterList),
		Arrow:  true,
		Async:  v.Async,
		Loc:    c.at(v.Start),
	}

	switch body := v.Body.(type) {
	case *js.BlockStatement:
		lit.Body = c.convertStmts(body.List)
	case *js.ExpressionBody:
		lit.Expr = c.convertExpr(body.Expression)
	}

	return lit
}

func numberValue(v interface{}) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
