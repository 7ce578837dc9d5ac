package generate

import (
	"encoding/json"

	"scratchc/sb3"
	"scratchc/syntax"
	"scratchc/walk"
)

// encode converts an expression into an input-slot encoding, creating
// reporter blocks in the store as needed.  `parent` is the id of the block
// that owns the slot; reporters created here are wired under it.
func (g *Generator) encode(e syntax.Expr, parent string) sb3.Input {
	switch v := e.(type) {
	case *syntax.NumberLit:
		return sb3.NumberShadow(v.Raw)
	case *syntax.StringLit:
		return sb3.TextShadow(v.Value)
	case *syntax.BoolLit:
		if v.Value {
			return sb3.TextShadow("true")
		}

		return sb3.TextShadow("false")
	case *syntax.NullLit:
		return sb3.TextShadow("")
	case *syntax.Ident:
		return sb3.VariableWithTextShadow(v.Name)
	case *syntax.MemberExpr:
		return g.encodeMember(v, parent)
	case *syntax.CallExpr:
		return g.encodeCall(v, parent)
	case *syntax.UnaryExpr:
		if v.Op == "!" {
			id, b := g.newBlock(sb3.OpOperatorNot)
			g.setParent(id, parent)
			b.Inputs["OPERAND"] = g.encode(v.Operand, id)
			return sb3.BlockRef(id)
		}

		return fallbackInput()
	case *syntax.BinaryExpr:
		return g.encodeBinary(v, parent)
	default:
		// anything unencodable gets the safe fallback
		return fallbackInput()
	}
}

// fallbackInput is the safe encoding for expressions outside the subset
func fallbackInput() sb3.Input {
	return sb3.TextShadow("0")
}

// encodeMember encodes list length, list element and flattened property
// accesses
func (g *Generator) encodeMember(m *syntax.MemberExpr, parent string) sb3.Input {
	obj, ok := m.Object.(*syntax.Ident)
	if !ok {
		return fallbackInput()
	}

	if g.table.IsList(obj.Name) {
		if prop, ok := m.PropName(); ok && prop == "length" && !m.Computed {
			id, b := g.newBlock(sb3.OpDataLengthOfList)
			g.setParent(id, parent)
			b.Fields["LIST"] = sb3.VariableField(obj.Name)
			return sb3.BlockRef(id)
		}

		if m.Computed {
			id, b := g.newBlock(sb3.OpDataItemOfList)
			g.setParent(id, parent)
			b.Fields["LIST"] = sb3.VariableField(obj.Name)
			b.Inputs["INDEX"] = g.encode(m.Index, id)
			return sb3.BlockRef(id)
		}
	}

	if prop, ok := m.PropName(); ok && g.table.IsObject(obj.Name) {
		return sb3.VariableWithTextShadow(walk.FlattenedName(obj.Name, prop))
	}

	return fallbackInput()
}

// encodeCall encodes a call expression: recursive functions become
// procedures_call blocks, every other known function is inlined by
// substitution, anything else falls back
func (g *Generator) encodeCall(call *syntax.CallExpr, parent string) sb3.Input {
	callee, ok := call.Callee.(*syntax.Ident)
	if !ok {
		return fallbackInput()
	}

	def, known := g.table.Funcs[callee.Name]
	if !known {
		return fallbackInput()
	}

	if g.table.IsRecursive(callee.Name) {
		return g.encodeProcedureCall(def, call, parent)
	}

	inlined := g.inline(def, call.Args)
	if inlined == nil {
		return sb3.NumberShadow("0")
	}

	return g.encode(inlined, parent)
}

// encodeProcedureCall emits a procedures_call whose inputs are keyed by the
// procedure's argument ids (the parameter names).  The procedure's result
// variable is materialized at the sprite level as a side effect.
func (g *Generator) encodeProcedureCall(def *walk.FuncDef, call *syntax.CallExpr, parent string) sb3.Input {
	id, b := g.newBlock(sb3.OpProceduresCall)
	g.setParent(id, parent)
	b.Mutation = sb3.NewMutation()
	b.Mutation.ProcCode = def.Name
	b.Mutation.ArgumentIDs = argumentIDs(def.Params)

	for i, param := range def.Params {
		if i < len(call.Args) {
			b.Inputs[param] = g.encode(call.Args[i], id)
		} else {
			b.Inputs[param] = sb3.NumberShadow("0")
		}
	}

	g.table.DeclareVariable(def.Name + "_result")

	return sb3.BlockRef(id)
}

// argumentIDs renders the JSON-encoded ordered argument id list carried in
// procedure mutations
func argumentIDs(params []string) string {
	if params == nil {
		params = []string{}
	}

	data, _ := json.Marshal(params)
	return string(data)
}
