package generate

import (
	"fmt"

	"scratchc/sb3"
	"scratchc/syntax"
	"scratchc/walk"
)

// Generator lowers one analyzed program into a block store.  It owns the
// per-translation monotonic id counter and performs all parent/next/substack
// wiring; cross-references are always by id, never by pointer.
type Generator struct {
	table *walk.SymbolTable

	blocks  sb3.Store
	counter int
}

// NewGenerator creates a generator over an analyzed translation unit
func NewGenerator(table *walk.SymbolTable) *Generator {
	return &Generator{
		table:  table,
		blocks: sb3.Store{},
	}
}

// Generate lowers the program and returns the finished block store.  The
// symbol table is extended with the result variables of recursive procedure
// calls as they are encountered.
func Generate(prg *syntax.Program, table *walk.SymbolTable) sb3.Store {
	g := NewGenerator(table)
	g.lowerProgram(prg)
	return g.blocks
}

// newID draws the next fresh block id
func (g *Generator) newID() string {
	g.counter++
	return fmt.Sprintf("b%d", g.counter)
}

// newBlock allocates a block with empty input and field maps and registers
// it in the store
func (g *Generator) newBlock(opcode string) (string, *sb3.Block) {
	id := g.newID()
	b := &sb3.Block{
		Opcode: opcode,
		Inputs: map[string]sb3.Input{},
		Fields: map[string]sb3.Field{},
	}
	g.blocks[id] = b

	return id, b
}

// setParent wires a block under a parent id; an empty parent leaves the
// block detached (top-level roots only)
func (g *Generator) setParent(id, parent string) {
	if parent == "" {
		return
	}

	p := parent
	g.blocks[id].Parent = &p
}

// chain wires prev.next = next and next.parent = prev
func (g *Generator) chain(prev, next string) {
	n := next
	g.blocks[prev].Next = &n
	g.setParent(next, prev)
}

// lowerProgram converts the program body into the single event script:
// an event_whenflagclicked root, the lowered top-level statements, and a
// closing control_stop
func (g *Generator) lowerProgram(prg *syntax.Program) {
	zero := 0
	rootID, root := g.newBlock(sb3.OpEventWhenFlagClicked)
	root.TopLevel = true
	root.X = &zero
	root.Y = &zero

	last := rootID
	for _, s := range prg.Body {
		entry, exit, ok := g.lowerStmt(s)
		if !ok {
			continue
		}

		g.chain(last, entry)
		last = exit
	}

	stopID, stop := g.newBlock(sb3.OpControlStop)
	stop.Fields["STOP_OPTION"] = sb3.OptionField("all")
	stop.Mutation = sb3.NewMutation()
	stop.Mutation.HasNext = "false"
	g.chain(last, stopID)
}

// lowerStmts lowers a statement sequence under an enclosing block, chaining
// the emitted entries.  It returns the first and last emitted block ids;
// first is empty when nothing was emitted.
func (g *Generator) lowerStmts(stmts []syntax.Stmt, parent string) (string, string) {
	first, prev := "", ""
	for _, s := range stmts {
		entry, exit, ok := g.lowerStmt(s)
		if !ok {
			continue
		}

		if prev == "" {
			first = entry
			g.setParent(entry, parent)
		} else {
			g.chain(prev, entry)
		}

		prev = exit
	}

	return first, prev
}
