package generate

import (
	"scratchc/canvas"
	"scratchc/sb3"
	"scratchc/syntax"
	"scratchc/walk"
)

// lowerStmt lowers one statement into zero or more wired blocks.  It returns
// the entry and exit block ids of the emitted run; ok is false when the
// statement contributes no block.  The entry block's parent is left for the
// caller to wire.
func (g *Generator) lowerStmt(s syntax.Stmt) (string, string, bool) {
	switch v := s.(type) {
	case *syntax.VarDecl:
		return g.lowerVarDecl(v)
	case *syntax.ExprStmt:
		return g.lowerExprStmt(v)
	case *syntax.IfStmt:
		return g.lowerIf(v)
	case *syntax.WhileStmt:
		return g.lowerWhile(v)
	case *syntax.ForStmt:
		return g.lowerFor(v)
	case *syntax.BlockStmt:
		first, last := g.lowerStmts(v.Body, "")
		if first == "" {
			return "", "", false
		}

		return first, last, true
	case *syntax.FuncDecl:
		return g.lowerFuncDecl(v.Name, v.Params, v.Body)
	default:
		// returns and anything unrecognized contribute no block
		return "", "", false
	}
}

// lowerVarDecl lowers a variable declarator.  Function, array and object
// declarators emit nothing: functions are inlined or promoted, lists and
// flattened variables are declared in the sprite envelope.  A recursive
// function bound by a declarator still gets its procedure definition here.
func (g *Generator) lowerVarDecl(v *syntax.VarDecl) (string, string, bool) {
	if g.table.IsRecursive(v.Name) {
		def := g.table.Funcs[v.Name]
		return g.lowerFuncDecl(def.Name, def.Params, funcBody(def))
	}

	if g.table.IsFunction(v.Name) || g.table.IsList(v.Name) || g.table.IsObject(v.Name) {
		return "", "", false
	}

	id, b := g.newBlock(sb3.OpDataSetVariableTo)
	b.Fields["VARIABLE"] = sb3.VariableField(v.Name)
	if v.Init != nil {
		b.Inputs["VALUE"] = g.encode(v.Init, id)
	} else {
		b.Inputs["VALUE"] = sb3.NumberShadow("0")
	}

	return id, id, true
}

func (g *Generator) lowerExprStmt(es *syntax.ExprStmt) (string, string, bool) {
	switch x := es.X.(type) {
	case *syntax.AssignExpr:
		return g.lowerAssign(x)
	case *syntax.CallExpr:
		return g.lowerCallStmt(x)
	case *syntax.UpdateExpr:
		return g.lowerUpdate(x)
	default:
		return "", "", false
	}
}

// lowerAssign lowers the three assignable shapes: identifier, list element
// and flattened object property
func (g *Generator) lowerAssign(a *syntax.AssignExpr) (string, string, bool) {
	switch target := a.Target.(type) {
	case *syntax.Ident:
		id, b := g.newBlock(sb3.OpDataSetVariableTo)
		b.Fields["VARIABLE"] = sb3.VariableField(target.Name)
		b.Inputs["VALUE"] = g.encode(a.Value, id)
		return id, id, true
	case *syntax.MemberExpr:
		obj, ok := target.Object.(*syntax.Ident)
		if !ok {
			return "", "", false
		}

		if target.Computed && g.table.IsList(obj.Name) {
			// 1-based replace; the index expression is emitted verbatim
			id, b := g.newBlock(sb3.OpDataReplaceItemList)
			b.Fields["LIST"] = sb3.VariableField(obj.Name)
			b.Inputs["INDEX"] = g.encode(target.Index, id)
			b.Inputs["ITEM"] = g.encode(a.Value, id)
			return id, id, true
		}

		if prop, ok := target.PropName(); ok && g.table.IsObject(obj.Name) {
			id, b := g.newBlock(sb3.OpDataSetVariableTo)
			b.Fields["VARIABLE"] = sb3.VariableField(walk.FlattenedName(obj.Name, prop))
			b.Inputs["VALUE"] = g.encode(a.Value, id)
			return id, id, true
		}

		return "", "", false
	default:
		return "", "", false
	}
}

// lowerUpdate lowers `i++` / `i--` in statement position as the equivalent
// assignment
func (g *Generator) lowerUpdate(u *syntax.UpdateExpr) (string, string, bool) {
	target, ok := u.Target.(*syntax.Ident)
	if !ok {
		return "", "", false
	}

	op := "+"
	if u.Op == "--" {
		op = "-"
	}

	id, b := g.newBlock(sb3.OpDataSetVariableTo)
	b.Fields["VARIABLE"] = sb3.VariableField(target.Name)
	b.Inputs["VALUE"] = g.encode(&syntax.BinaryExpr{
		Op:    op,
		Left:  &syntax.Ident{Name: target.Name, Loc: u.Loc},
		Right: &syntax.NumberLit{Raw: "1", Value: 1, Loc: u.Loc},
		Loc:   u.Loc,
	}, id)

	return id, id, true
}

// lowerCallStmt lowers the statement-position calls that map to blocks:
// scratch_say, list push and list pop.  Every other call in statement
// position emits nothing.
func (g *Generator) lowerCallStmt(call *syntax.CallExpr) (string, string, bool) {
	if callee, ok := call.Callee.(*syntax.Ident); ok && callee.Name == canvas.SayFunc {
		id, b := g.newBlock(sb3.OpLooksSay)
		var msg syntax.Expr
		if len(call.Args) > 0 {
			msg = call.Args[0]
		}
		b.Inputs["MESSAGE"] = g.encode(msg, id)
		return id, id, true
	}

	member, ok := call.Callee.(*syntax.MemberExpr)
	if !ok {
		return "", "", false
	}

	recv, ok := member.Object.(*syntax.Ident)
	if !ok || !g.table.IsList(recv.Name) {
		return "", "", false
	}

	prop, _ := member.PropName()
	switch prop {
	case "push":
		id, b := g.newBlock(sb3.OpDataAddToList)
		var item syntax.Expr
		if len(call.Args) > 0 {
			item = call.Args[0]
		}
		b.Inputs["ITEM"] = g.encode(item, id)
		b.Fields["LIST"] = sb3.VariableField(recv.Name)
		return id, id, true
	case "pop":
		id, b := g.newBlock(sb3.OpDataDeleteOfList)
		b.Fields["LIST"] = sb3.VariableField(recv.Name)

		lenID, lenBlock := g.newBlock(sb3.OpDataLengthOfList)
		lenBlock.Fields["LIST"] = sb3.VariableField(recv.Name)
		g.setParent(lenID, id)

		b.Inputs["INDEX"] = sb3.BlockRef(lenID)
		return id, id, true
	default:
		return "", "", false
	}
}

func (g *Generator) lowerIf(v *syntax.IfStmt) (string, string, bool) {
	id, b := g.newBlock(sb3.OpControlIf)
	b.Inputs["CONDITION"] = g.encode(v.Test, id)

	if first, _ := g.lowerStmts(v.Body, id); first != "" {
		b.Inputs["SUBSTACK"] = sb3.SubStack(first)
	}

	return id, id, true
}

func (g *Generator) lowerWhile(v *syntax.WhileStmt) (string, string, bool) {
	id, b := g.newBlock(sb3.OpControlRepeatUntil)
	b.Inputs["CONDITION"] = g.encode(negateCondition(v.Test), id)

	if first, _ := g.lowerStmts(v.Body, id); first != "" {
		b.Inputs["SUBSTACK"] = sb3.SubStack(first)
	}

	return id, id, true
}

// lowerFuncDecl emits the procedure definition for a recursive function and
// nothing for anything else (non-recursive functions are inlined at their
// call sites)
func (g *Generator) lowerFuncDecl(name string, params []string, body []syntax.Stmt) (string, string, bool) {
	if !g.table.IsRecursive(name) {
		return "", "", false
	}

	zero := 0
	id, b := g.newBlock(sb3.OpProceduresDefinition)
	b.TopLevel = true
	b.X = &zero
	b.Y = &zero
	b.Mutation = sb3.NewMutation()
	b.Mutation.ProcCode = name
	b.Mutation.ArgumentIDs = argumentIDs(params)
	b.Mutation.Warp = "false"

	if first, _ := g.lowerStmts(body, id); first != "" {
		next := first
		b.Next = &next
	}

	// a definition stack is its own root; it never joins the event script
	return "", "", false
}

// funcBody returns the statement body of a registered function, wrapping a
// concise arrow body in a return
func funcBody(def *walk.FuncDef) []syntax.Stmt {
	if def.Body != nil {
		return def.Body
	}

	if def.Expr != nil {
		return []syntax.Stmt{&syntax.ReturnStmt{Value: def.Expr, Loc: def.Expr.Position()}}
	}

	return nil
}
