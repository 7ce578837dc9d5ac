package build

import (
	"scratchc/canvas"
	"scratchc/gate"
	"scratchc/generate"
	"scratchc/logging"
	"scratchc/sb3"
	"scratchc/syntax"
	"scratchc/walk"
)

// Compiler is the data structure responsible for maintaining the high-level
// state of one translation: the source text, its display path, and the
// artifacts each phase hands to the next.  Phases run strictly in sequence;
// no shared mutable state crosses a phase boundary.
type Compiler struct {
	// srcPath is the path the source was read from; it is used only for
	// diagnostics and may name a synthetic location (eg. an upload)
	srcPath string

	// source is the program text being translated
	source string

	lctx *logging.LogContext
}

// NewCompiler creates a new compiler for a single source text
func NewCompiler(srcPath, source string) *Compiler {
	return &Compiler{
		srcPath: srcPath,
		source:  source,
		lctx:    &logging.LogContext{FilePath: srcPath},
	}
}

// Compile runs the full translation pipeline and returns the assembled
// project envelope.  Errors are logged before being returned; on error no
// partial envelope is produced.
func (c *Compiler) Compile() (*sb3.Project, error) {
	logging.LogBeginPhase("Parsing")
	prg, err := syntax.Parse(c.srcPath, c.source)
	if err != nil {
		if pe, ok := err.(*syntax.ParseError); ok {
			logging.LogCompileError(c.lctx, pe.Message, logging.LMKSyntax, &logging.TextPosition{Line: pe.Line, Col: pe.Col})
		}

		return nil, err
	}
	logging.LogEndPhase()

	// the canvas rewrite runs before the gate so rewritten DOM lookups no
	// longer trip it
	logging.LogBeginPhase("Preprocessing")
	prg = canvas.Rewrite(prg)

	if uf := gate.Check(prg); uf != nil {
		logging.LogCompileError(c.lctx, "unsupported feature `"+uf.Name+"`", logging.LMKFeature, &logging.TextPosition{Line: uf.Line, Col: uf.Col})
		return nil, uf
	}
	logging.LogEndPhase()

	logging.LogBeginPhase("Analyzing")
	table := walk.Analyze(prg)
	logging.LogEndPhase()

	logging.LogBeginPhase("Generating")
	blocks := generate.Generate(prg, table)
	logging.LogEndPhase()

	logging.LogBeginPhase("Assembling")
	project := Assemble(blocks, table)
	logging.LogEndPhase()

	return project, nil
}
