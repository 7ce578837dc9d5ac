package generate

import (
	"scratchc/sb3"
	"scratchc/syntax"
)

// arithmeticOps maps source arithmetic operators onto their blocks
var arithmeticOps = map[string]string{
	"+": sb3.OpOperatorAdd,
	"-": sb3.OpOperatorSubtract,
	"*": sb3.OpOperatorMultiply,
	"/": sb3.OpOperatorDivide,
}

// comparisonLowering describes how a comparison operator reaches the target
// environment, which natively offers only `<`, `>` and `=`: the remaining
// operators are the negation-wrapped duals.
type comparisonLowering struct {
	opcode string
	negate bool
}

var comparisonOps = map[string]comparisonLowering{
	"<":   {sb3.OpOperatorLt, false},
	">":   {sb3.OpOperatorGt, false},
	"==":  {sb3.OpOperatorEquals, false},
	"===": {sb3.OpOperatorEquals, false},
	"!=":  {sb3.OpOperatorEquals, true},
	"!==": {sb3.OpOperatorEquals, true},
	"<=":  {sb3.OpOperatorGt, true},
	">=":  {sb3.OpOperatorLt, true},
}

// encodeBinary lowers arithmetic and comparison expressions; operators
// outside the two tables fall back
func (g *Generator) encodeBinary(bin *syntax.BinaryExpr, parent string) sb3.Input {
	if opcode, ok := arithmeticOps[bin.Op]; ok {
		id, b := g.newBlock(opcode)
		g.setParent(id, parent)
		b.Inputs["NUM1"] = g.encodeArithOperand(bin.Left, id)
		b.Inputs["NUM2"] = g.encodeArithOperand(bin.Right, id)
		return sb3.BlockRef(id)
	}

	if lowering, ok := comparisonOps[bin.Op]; ok {
		return g.encodeComparison(bin, lowering, parent)
	}

	return fallbackInput()
}

// encodeArithOperand encodes one NUM slot.  Identifier operands carry an
// empty-number shadow behind the reporter; everything else encodes normally.
func (g *Generator) encodeArithOperand(e syntax.Expr, parent string) sb3.Input {
	if id, ok := e.(*syntax.Ident); ok {
		return sb3.VariableWithNumberShadow(id.Name)
	}

	return g.encode(e, parent)
}

// encodeComparison emits the comparison block and, for the wrapped
// operators, the enclosing operator_not
func (g *Generator) encodeComparison(bin *syntax.BinaryExpr, lowering comparisonLowering, parent string) sb3.Input {
	cmpID, cmp := g.newBlock(lowering.opcode)
	cmp.Inputs["OPERAND1"] = g.encodeComparisonOperand(bin.Left, lowering.opcode, true, cmpID)
	cmp.Inputs["OPERAND2"] = g.encodeComparisonOperand(bin.Right, lowering.opcode, false, cmpID)

	if !lowering.negate {
		g.setParent(cmpID, parent)
		return sb3.BlockRef(cmpID)
	}

	notID, not := g.newBlock(sb3.OpOperatorNot)
	g.setParent(notID, parent)
	g.setParent(cmpID, notID)
	not.Inputs["OPERAND"] = sb3.BlockRef(cmpID)

	return sb3.BlockRef(notID)
}

// encodeComparisonOperand encodes one OPERAND slot.  Literals become text
// shadows; identifiers are bare reporters except on the left slot of
// operator_gt, which the validator wants shadow-backed.
func (g *Generator) encodeComparisonOperand(e syntax.Expr, opcode string, left bool, parent string) sb3.Input {
	if text, ok := syntax.LiteralString(e); ok {
		return sb3.TextShadow(text)
	}

	if id, ok := e.(*syntax.Ident); ok {
		if left && opcode == sb3.OpOperatorGt {
			return sb3.VariableWithTextShadow(id.Name)
		}

		return sb3.VariableRef(id.Name)
	}

	return g.encode(e, parent)
}

// -----------------------------------------------------------------------------

// comparisonDuals maps each comparison operator to its logical dual, used
// when negating a whole loop condition
var comparisonDuals = map[string]string{
	"<":   ">=",
	">=":  "<",
	"<=":  ">",
	">":   "<=",
	"==":  "!=",
	"!=":  "==",
	"===": "!==",
	"!==": "===",
}

// negateCondition rewrites a condition to its logical negation: comparisons
// flip to their dual operator, everything else is wrapped in `!`
func negateCondition(e syntax.Expr) syntax.Expr {
	if e == nil {
		return nil
	}

	if bin, ok := e.(*syntax.BinaryExpr); ok {
		if dual, ok := comparisonDuals[bin.Op]; ok {
			return &syntax.BinaryExpr{Op: dual, Left: bin.Left, Right: bin.Right, Loc: bin.Loc}
		}
	}

	return &syntax.UnaryExpr{Op: "!", Operand: e, Loc: e.Position()}
}
