package walk

import "scratchc/syntax"

// Analyzer classifies every name of a translation unit into plain variable,
// list, flattened object property, inlinable function or recursive
// procedure.  It performs three passes over the AST and never mutates it.
type Analyzer struct {
	table *SymbolTable

	// objInit carries the literal initial values of flattened properties
	// until pass C materializes them as variables
	objInit map[string]float64
}

// Analyze runs all three analysis passes and returns the finished symbol
// table
func Analyze(prg *syntax.Program) *SymbolTable {
	a := &Analyzer{
		table:   NewSymbolTable(),
		objInit: make(map[string]float64),
	}

	// Pass A -- declarations and structural usage
	a.walkDeclStmts(prg.Body)

	// Pass B -- assignment references
	a.walkAssignStmts(prg.Body)

	// Pass C -- recursion detection, then cleanup
	a.finish()

	return a.table
}

// -----------------------------------------------------------------------------

// walkDeclStmts is pass A: it registers declarations (functions, lists,
// flattened objects, variables) and the structural usages that classify
// names (list method calls, flattened property accesses).
func (a *Analyzer) walkDeclStmts(stmts []syntax.Stmt) {
	for _, s := range stmts {
		a.walkDeclStmt(s)
	}
}

func (a *Analyzer) walkDeclStmt(s syntax.Stmt) {
	switch v := s.(type) {
	case *syntax.VarDecl:
		a.declare(v)
		a.walkDeclExpr(v.Init)
	case *syntax.ExprStmt:
		a.walkDeclExpr(v.X)
	case *syntax.IfStmt:
		a.walkDeclExpr(v.Test)
		a.walkDeclStmts(v.Body)
		a.walkDeclStmts(v.Else)
	case *syntax.WhileStmt:
		a.walkDeclExpr(v.Test)
		a.walkDeclStmts(v.Body)
	case *syntax.ForStmt:
		a.walkDeclStmts(v.Init)
		a.walkDeclExpr(v.Test)
		if v.Update != nil {
			a.walkDeclStmt(v.Update)
		}
		a.walkDeclStmts(v.Body)
	case *syntax.BlockStmt:
		a.walkDeclStmts(v.Body)
	case *syntax.FuncDecl:
		a.table.DefineFunc(&FuncDef{Name: v.Name, Params: v.Params, Body: v.Body})
		a.walkDeclStmts(v.Body)
	case *syntax.ReturnStmt:
		a.walkDeclExpr(v.Value)
	}
}

// declare classifies a single declarator by the shape of its initializer
func (a *Analyzer) declare(v *syntax.VarDecl) {
	switch init := v.Init.(type) {
	case *syntax.FuncLit:
		a.table.DefineFunc(&FuncDef{Name: v.Name, Params: init.Params, Body: init.Body, Expr: init.Expr})
	case *syntax.ArrayLit:
		values := make([]string, 0, len(init.Elems))
		for _, el := range init.Elems {
			text, ok := syntax.LiteralString(el)
			if !ok {
				text = ""
			}

			values = append(values, text)
		}

		a.table.DeclareList(v.Name, values)
	case *syntax.ObjectLit:
		a.table.DeclareObject(v.Name)
		for _, prop := range init.Props {
			a.table.RegisterProperty(v.Name, prop.Key)
			if num, ok := prop.Value.(*syntax.NumberLit); ok {
				a.objInit[FlattenedName(v.Name, prop.Key)] = num.Value
			}
		}
	default:
		a.table.DeclareVariable(v.Name)
	}
}

// listMethods is the set of array method names whose receiver is classified
// as a list
var listMethods = map[string]bool{
	"push":    true,
	"pop":     true,
	"shift":   true,
	"unshift": true,
	"splice":  true,
	"slice":   true,
}

func (a *Analyzer) walkDeclExpr(e syntax.Expr) {
	if e == nil {
		return
	}

	switch v := e.(type) {
	case *syntax.AssignExpr:
		a.walkDeclExpr(v.Target)
		a.walkDeclExpr(v.Value)
	case *syntax.BinaryExpr:
		a.walkDeclExpr(v.Left)
		a.walkDeclExpr(v.Right)
	case *syntax.UnaryExpr:
		a.walkDeclExpr(v.Operand)
	case *syntax.UpdateExpr:
		a.walkDeclExpr(v.Target)
	case *syntax.CallExpr:
		a.registerListCall(v)
		a.walkDeclExpr(v.Callee)
		for _, arg := range v.Args {
			a.walkDeclExpr(arg)
		}
	case *syntax.MemberExpr:
		a.registerMember(v)
		a.walkDeclExpr(v.Object)
		if v.Computed {
			a.walkDeclExpr(v.Index)
		}
	case *syntax.ArrayLit:
		for _, el := range v.Elems {
			a.walkDeclExpr(el)
		}
	case *syntax.ObjectLit:
		for _, p := range v.Props {
			a.walkDeclExpr(p.Value)
		}
	case *syntax.FuncLit:
		a.walkDeclStmts(v.Body)
		a.walkDeclExpr(v.Expr)
	case *syntax.AwaitExpr:
		a.walkDeclExpr(v.X)
	}
}

// registerMember records flattened-property usage (`obj.prop` with obj a
// known object)
func (a *Analyzer) registerMember(m *syntax.MemberExpr) {
	obj, ok := m.Object.(*syntax.Ident)
	if !ok {
		return
	}

	if prop, ok := m.PropName(); ok && a.table.IsObject(obj.Name) {
		a.table.RegisterProperty(obj.Name, prop)
	}
}

// registerListCall classifies `x.push(...)` (and the other array methods) as
// list usage of x
func (a *Analyzer) registerListCall(call *syntax.CallExpr) {
	member, ok := call.Callee.(*syntax.MemberExpr)
	if !ok {
		return
	}

	recv, ok := member.Object.(*syntax.Ident)
	if !ok {
		return
	}

	if prop, ok := member.PropName(); ok && listMethods[prop] {
		a.table.DeclareList(recv.Name, nil)
	}
}

// -----------------------------------------------------------------------------

// walkAssignStmts is pass B: every assignment to a bare identifier makes
// that identifier a variable
func (a *Analyzer) walkAssignStmts(stmts []syntax.Stmt) {
	for _, s := range stmts {
		a.walkAssignStmt(s)
	}
}

func (a *Analyzer) walkAssignStmt(s syntax.Stmt) {
	switch v := s.(type) {
	case *syntax.VarDecl:
		a.walkAssignExpr(v.Init)
	case *syntax.ExprStmt:
		a.walkAssignExpr(v.X)
	case *syntax.IfStmt:
		a.walkAssignExpr(v.Test)
		a.walkAssignStmts(v.Body)
		a.walkAssignStmts(v.Else)
	case *syntax.WhileStmt:
		a.walkAssignExpr(v.Test)
		a.walkAssignStmts(v.Body)
	case *syntax.ForStmt:
		a.walkAssignStmts(v.Init)
		a.walkAssignExpr(v.Test)
		if v.Update != nil {
			a.walkAssignStmt(v.Update)
		}
		a.walkAssignStmts(v.Body)
	case *syntax.BlockStmt:
		a.walkAssignStmts(v.Body)
	case *syntax.FuncDecl:
		a.walkAssignStmts(v.Body)
	case *syntax.ReturnStmt:
		a.walkAssignExpr(v.Value)
	}
}

func (a *Analyzer) walkAssignExpr(e syntax.Expr) {
	if e == nil {
		return
	}

	switch v := e.(type) {
	case *syntax.AssignExpr:
		if target, ok := v.Target.(*syntax.Ident); ok {
			if !a.table.IsList(target.Name) && !a.table.IsObject(target.Name) {
				a.table.DeclareVariable(target.Name)
			}
		}

		a.walkAssignExpr(v.Target)
		a.walkAssignExpr(v.Value)
	case *syntax.BinaryExpr:
		a.walkAssignExpr(v.Left)
		a.walkAssignExpr(v.Right)
	case *syntax.UnaryExpr:
		a.walkAssignExpr(v.Operand)
	case *syntax.UpdateExpr:
		a.walkAssignExpr(v.Target)
	case *syntax.CallExpr:
		a.walkAssignExpr(v.Callee)
		for _, arg := range v.Args {
			a.walkAssignExpr(arg)
		}
	case *syntax.MemberExpr:
		a.walkAssignExpr(v.Object)
		if v.Computed {
			a.walkAssignExpr(v.Index)
		}
	case *syntax.ArrayLit:
		for _, el := range v.Elems {
			a.walkAssignExpr(el)
		}
	case *syntax.ObjectLit:
		for _, p := range v.Props {
			a.walkAssignExpr(p.Value)
		}
	case *syntax.FuncLit:
		a.walkAssignStmts(v.Body)
		a.walkAssignExpr(v.Expr)
	case *syntax.AwaitExpr:
		a.walkAssignExpr(v.X)
	}
}

// -----------------------------------------------------------------------------

// finish is pass C: detect recursion, materialize flattened properties, then
// scrub function names and parameters out of the variable set
func (a *Analyzer) finish() {
	for name, def := range a.table.Funcs {
		if def.Expr != nil && callsNamed(def.Expr, name) {
			a.table.Recursive[name] = true
			continue
		}

		for _, s := range def.Body {
			if stmtCallsNamed(s, name) {
				a.table.Recursive[name] = true
				break
			}
		}
	}

	for _, obj := range a.table.Objects() {
		for _, prop := range a.table.Properties(obj) {
			flat := FlattenedName(obj, prop)
			a.table.DeclareInitializedVariable(flat, a.objInit[flat])
		}
	}

	for name, def := range a.table.Funcs {
		a.table.RemoveVariable(name)
		for _, param := range def.Params {
			a.table.RemoveVariable(param)
		}
	}
}

// stmtCallsNamed reports whether a statement contains a call to the named
// function
func stmtCallsNamed(s syntax.Stmt, name string) bool {
	switch v := s.(type) {
	case *syntax.VarDecl:
		return callsNamed(v.Init, name)
	case *syntax.ExprStmt:
		return callsNamed(v.X, name)
	case *syntax.IfStmt:
		if callsNamed(v.Test, name) {
			return true
		}

		return anyStmtCallsNamed(v.Body, name) || anyStmtCallsNamed(v.Else, name)
	case *syntax.WhileStmt:
		return callsNamed(v.Test, name) || anyStmtCallsNamed(v.Body, name)
	case *syntax.ForStmt:
		if anyStmtCallsNamed(v.Init, name) || callsNamed(v.Test, name) {
			return true
		}

		if v.Update != nil && stmtCallsNamed(v.Update, name) {
			return true
		}

		return anyStmtCallsNamed(v.Body, name)
	case *syntax.BlockStmt:
		return anyStmtCallsNamed(v.Body, name)
	case *syntax.FuncDecl:
		return anyStmtCallsNamed(v.Body, name)
	case *syntax.ReturnStmt:
		return callsNamed(v.Value, name)
	default:
		return false
	}
}

func anyStmtCallsNamed(stmts []syntax.Stmt, name string) bool {
	for _, s := range stmts {
		if stmtCallsNamed(s, name) {
			return true
		}
	}

	return false
}

// callsNamed reports whether an expression contains a call whose callee is
// the named identifier
func callsNamed(e syntax.Expr, name string) bool {
	if e == nil {
		return false
	}

	switch v := e.(type) {
	case *syntax.AssignExpr:
		return callsNamed(v.Target, name) || callsNamed(v.Value, name)
	case *syntax.BinaryExpr:
		return callsNamed(v.Left, name) || callsNamed(v.Right, name)
	case *syntax.UnaryExpr:
		return callsNamed(v.Operand, name)
	case *syntax.UpdateExpr:
		return callsNamed(v.Target, name)
	case *syntax.CallExpr:
		if callee, ok := v.Callee.(*syntax.Ident); ok && callee.Name == name {
			return true
		}

		if callsNamed(v.Callee, name) {
			return true
		}

		for _, arg := range v.Args {
			if callsNamed(arg, name) {
				return true
			}
		}

		return false
	case *syntax.MemberExpr:
		if callsNamed(v.Object, name) {
			return true
		}

		return v.Computed && callsNamed(v.Index, name)
	case *syntax.ArrayLit:
		for _, el := range v.Elems {
			if callsNamed(el, name) {
				return true
			}
		}

		return false
	case *syntax.ObjectLit:
		for _, p := range v.Props {
			if callsNamed(p.Value, name) {
				return true
			}
		}

		return false
	case *syntax.FuncLit:
		if callsNamed(v.Expr, name) {
			return true
		}

		return anyStmtCallsNamed(v.Body, name)
	case *syntax.AwaitExpr:
		return callsNamed(v.X, name)
	default:
		return false
	}
}
