package generate

import (
	"scratchc/sb3"
	"scratchc/syntax"
)

// lowerFor lowers a `for` loop.  Counting loops of the canonical shape
// normalize into a fixed control_repeat; everything else becomes the
// general init + repeat-until form.
func (g *Generator) lowerFor(v *syntax.ForStmt) (string, string, bool) {
	if loop, ok := simpleForOf(v); ok {
		return g.lowerSimpleFor(loop)
	}

	return g.lowerGeneralFor(v)
}

// simpleFor is a normalized counting loop: `for (let i = start; i rel end;
// i++)` with rel one of `<` and `<=` and an increment-by-one update
type simpleFor struct {
	counter   string
	start     syntax.Expr
	end       syntax.Expr
	inclusive bool
	body      []syntax.Stmt
}

// simpleForOf recognizes the canonical counting-loop shape
func simpleForOf(v *syntax.ForStmt) (*simpleFor, bool) {
	if len(v.Init) != 1 || v.Test == nil || v.Update == nil {
		return nil, false
	}

	decl, ok := v.Init[0].(*syntax.VarDecl)
	if !ok || decl.Init == nil {
		return nil, false
	}

	test, ok := v.Test.(*syntax.BinaryExpr)
	if !ok || (test.Op != "<" && test.Op != "<=") {
		return nil, false
	}

	left, ok := test.Left.(*syntax.Ident)
	if !ok || left.Name != decl.Name {
		return nil, false
	}

	if !incrementsByOne(v.Update, decl.Name) {
		return nil, false
	}

	return &simpleFor{
		counter:   decl.Name,
		start:     decl.Init,
		end:       test.Right,
		inclusive: test.Op == "<=",
		body:      v.Body,
	}, true
}

// incrementsByOne matches `i++` and `i += 1` (the latter arrives desugared
// as `i = i + 1`)
func incrementsByOne(update syntax.Stmt, name string) bool {
	es, ok := update.(*syntax.ExprStmt)
	if !ok {
		return false
	}

	switch x := es.X.(type) {
	case *syntax.UpdateExpr:
		target, ok := x.Target.(*syntax.Ident)
		return ok && x.Op == "++" && target.Name == name
	case *syntax.AssignExpr:
		target, ok := x.Target.(*syntax.Ident)
		if !ok || target.Name != name {
			return false
		}

		add, ok := x.Value.(*syntax.BinaryExpr)
		if !ok || add.Op != "+" {
			return false
		}

		addLeft, ok := add.Left.(*syntax.Ident)
		if !ok || addLeft.Name != name {
			return false
		}

		one, ok := add.Right.(*syntax.NumberLit)
		return ok && one.Value == 1
	default:
		return false
	}
}

// lowerSimpleFor emits `i := start` followed by a control_repeat running
// `end - start` times (`end - start + 1` when the bound is inclusive).  The
// span expression is emitted as-is: a negative span yields a repeat count
// the target environment treats as zero iterations.
func (g *Generator) lowerSimpleFor(loop *simpleFor) (string, string, bool) {
	initID, initBlock := g.newBlock(sb3.OpDataSetVariableTo)
	initBlock.Fields["VARIABLE"] = sb3.VariableField(loop.counter)
	initBlock.Inputs["VALUE"] = g.encode(loop.start, initID)

	var times syntax.Expr = &syntax.BinaryExpr{
		Op:    "-",
		Left:  loop.end,
		Right: loop.start,
		Loc:   loop.end.Position(),
	}
	if loop.inclusive {
		times = &syntax.BinaryExpr{
			Op:    "+",
			Left:  times,
			Right: &syntax.NumberLit{Raw: "1", Value: 1, Loc: loop.end.Position()},
			Loc:   loop.end.Position(),
		}
	}

	repeatID, repeat := g.newBlock(sb3.OpControlRepeat)
	repeat.Inputs["TIMES"] = g.encode(times, repeatID)

	body := append(append([]syntax.Stmt{}, loop.body...), counterIncrement(loop.counter))
	if first, _ := g.lowerStmts(body, repeatID); first != "" {
		repeat.Inputs["SUBSTACK"] = sb3.SubStack(first)
	}

	g.chain(initID, repeatID)

	return initID, repeatID, true
}

// lowerGeneralFor emits the loop's init statements followed by a
// repeat-until over the negated test, with the update statement appended to
// the body
func (g *Generator) lowerGeneralFor(v *syntax.ForStmt) (string, string, bool) {
	repeatID, repeat := g.newBlock(sb3.OpControlRepeatUntil)
	if v.Test != nil {
		repeat.Inputs["CONDITION"] = g.encode(negateCondition(v.Test), repeatID)
	} else {
		repeat.Inputs["CONDITION"] = sb3.TextShadow("true")
	}

	body := append([]syntax.Stmt{}, v.Body...)
	if v.Update != nil {
		body = append(body, v.Update)
	}

	if first, _ := g.lowerStmts(body, repeatID); first != "" {
		repeat.Inputs["SUBSTACK"] = sb3.SubStack(first)
	}

	initFirst, initLast := "", ""
	for _, s := range v.Init {
		entry, exit, ok := g.lowerStmt(s)
		if !ok {
			continue
		}

		if initFirst == "" {
			initFirst = entry
		} else {
			g.chain(initLast, entry)
		}

		initLast = exit
	}

	if initFirst == "" {
		return repeatID, repeatID, true
	}

	g.chain(initLast, repeatID)

	return initFirst, repeatID, true
}

// counterIncrement synthesizes the trailing `i := i + 1` of a normalized
// counting loop
func counterIncrement(name string) syntax.Stmt {
	return &syntax.ExprStmt{
		X: &syntax.AssignExpr{
			Target: &syntax.Ident{Name: name},
			Value: &syntax.BinaryExpr{
				Op:    "+",
				Left:  &syntax.Ident{Name: name},
				Right: &syntax.NumberLit{Raw: "1", Value: 1},
			},
		},
	}
}
