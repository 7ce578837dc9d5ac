package generate

import (
	"scratchc/syntax"
	"scratchc/walk"
)

// inline performs compile-time beta-reduction of a non-recursive call:
// the function's return expression with argument expressions substituted
// for parameters.  It returns nil when the function yields no value (no
// return, or a bare return), in which case the caller encodes the numeric
// zero shadow.
func (g *Generator) inline(def *walk.FuncDef, args []syntax.Expr) syntax.Expr {
	ret := returnExpr(def)
	if ret == nil {
		return nil
	}

	subst := make(map[string]syntax.Expr, len(def.Params))
	for i, param := range def.Params {
		if i < len(args) && args[i] != nil {
			subst[param] = args[i]
		} else {
			subst[param] = &syntax.NumberLit{Raw: "0", Value: 0}
		}
	}

	return substitute(ret, subst)
}

// returnExpr picks the function's value: the concise arrow body, or the
// argument of the first top-level return statement
func returnExpr(def *walk.FuncDef) syntax.Expr {
	if def.Expr != nil {
		return def.Expr
	}

	for _, s := range def.Body {
		if ret, ok := s.(*syntax.ReturnStmt); ok {
			return ret.Value
		}
	}

	return nil
}

// substitute rebuilds an expression with parameter references replaced by
// argument expressions.  Substitution is capture-free: a nested function
// literal that rebinds a substituted name shields its body.
func substitute(e syntax.Expr, subst map[string]syntax.Expr) syntax.Expr {
	if e == nil {
		return nil
	}

	switch v := e.(type) {
	case *syntax.Ident:
		if repl, ok := subst[v.Name]; ok {
			return repl
		}

		return v
	case *syntax.AssignExpr:
		return &syntax.AssignExpr{
			Target: substitute(v.Target, subst),
			Value:  substitute(v.Value, subst),
			Loc:    v.Loc,
		}
	case *syntax.BinaryExpr:
		return &syntax.BinaryExpr{
			Op:    v.Op,
			Left:  substitute(v.Left, subst),
			Right: substitute(v.Right, subst),
			Loc:   v.Loc,
		}
	case *syntax.UnaryExpr:
		return &syntax.UnaryExpr{Op: v.Op, Operand: substitute(v.Operand, subst), Loc: v.Loc}
	case *syntax.UpdateExpr:
		return &syntax.UpdateExpr{
			Op:      v.Op,
			Target:  substitute(v.Target, subst),
			Postfix: v.Postfix,
			Loc:     v.Loc,
		}
	case *syntax.CallExpr:
		call := &syntax.CallExpr{Callee: substitute(v.Callee, subst), Loc: v.Loc}
		for _, arg := range v.Args {
			call.Args = append(call.Args, substitute(arg, subst))
		}

		return call
	case *syntax.MemberExpr:
		return &syntax.MemberExpr{
			Object:   substitute(v.Object, subst),
			Name:     v.Name,
			Index:    substitute(v.Index, subst),
			Computed: v.Computed,
			Loc:      v.Loc,
		}
	case *syntax.ArrayLit:
		lit := &syntax.ArrayLit{Loc: v.Loc}
		for _, el := range v.Elems {
			lit.Elems = append(lit.Elems, substitute(el, subst))
		}

		return lit
	case *syntax.ObjectLit:
		lit := &syntax.ObjectLit{Loc: v.Loc}
		for _, p := range v.Props {
			lit.Props = append(lit.Props, &syntax.ObjectProp{
				Key:   p.Key,
				Value: substitute(p.Value, subst),
				Loc:   p.Loc,
			})
		}

		return lit
	case *syntax.FuncLit:
		inner := shielded(subst, v.Params)
		if len(inner) == 0 {
			return v
		}

		return &syntax.FuncLit{
			Params: v.Params,
			Body:   v.Body,
			Expr:   substitute(v.Expr, inner),
			Arrow:  v.Arrow,
			Async:  v.Async,
			Loc:    v.Loc,
		}
	default:
		return e
	}
}

// shielded drops the substitutions a nested parameter list rebinds
func shielded(subst map[string]syntax.Expr, params []string) map[string]syntax.Expr {
	inner := make(map[string]syntax.Expr, len(subst))
	for name, repl := range subst {
		rebound := false
		for _, p := range params {
			if p == name {
				rebound = true
				break
			}
		}

		if !rebound {
			inner[name] = repl
		}
	}

	return inner
}
