package sb3

// Input is one operand slot encoding: a tagged array whose first element
// selects among literal shadow (1), block reference (2) and block reference
// with shadow fallback (3).
type Input []interface{}

// Shadow payload and reporter type tags
const (
	tagShadowOnly    = 1
	tagBlockNoShadow = 2
	tagBlockShadow   = 3

	payloadNumber   = 4
	payloadText     = 10
	payloadVariable = 12
)

// NumberShadow encodes a numeric literal shadow: [1, [4, "<num>"]]
func NumberShadow(value string) Input {
	return Input{tagShadowOnly, []interface{}{payloadNumber, value}}
}

// TextShadow encodes a string literal shadow: [1, [10, "<text>"]]
func TextShadow(value string) Input {
	return Input{tagShadowOnly, []interface{}{payloadText, value}}
}

// VariableReporter builds the reporter tuple naming a variable: [12, n, n]
func VariableReporter(name string) []interface{} {
	return []interface{}{payloadVariable, name, name}
}

// BlockRef encodes a bare reference to a nested block: [2, id]
func BlockRef(id string) Input {
	return Input{tagBlockNoShadow, id}
}

// VariableRef encodes a bare variable reporter: [2, [12, n, n]]
func VariableRef(name string) Input {
	return Input{tagBlockNoShadow, VariableReporter(name)}
}

// VariableWithTextShadow encodes a variable reporter backed by an empty text
// shadow: [3, [12, n, n], [10, ""]]
func VariableWithTextShadow(name string) Input {
	return Input{tagBlockShadow, VariableReporter(name), []interface{}{payloadText, ""}}
}

// VariableWithNumberShadow encodes a variable reporter backed by an empty
// number shadow: [3, [12, n, n], [4, ""]]
func VariableWithNumberShadow(name string) Input {
	return Input{tagBlockShadow, VariableReporter(name), []interface{}{payloadNumber, ""}}
}

// SubStack encodes a C-slot reference to the first block of a nested stack
func SubStack(firstID string) Input {
	return Input{tagBlockNoShadow, firstID}
}

// RefersToBlock returns the block id an input references, if any.  Reporter
// tuples and literal shadows reference no block.
func (in Input) RefersToBlock() (string, bool) {
	if len(in) < 2 {
		return "", false
	}

	tag, ok := in[0].(int)
	if !ok || tag == tagShadowOnly {
		return "", false
	}

	id, ok := in[1].(string)
	return id, ok
}
